package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/models"
	"github.com/Skotchmaster/furniture_supply/internal/printing"
	"github.com/Skotchmaster/furniture_supply/internal/repo"
)

// PrintService renders invoices with the supplier's logo.
type PrintService struct {
	Repo     *repo.GormRepo
	Renderer *printing.Renderer
}

func (s *PrintService) Logo(ctx context.Context) (string, error) {
	return s.Repo.GetSetting(ctx, models.SettingLogo)
}

// SetLogo accepts a data image, an http(s) URL or "" to clear it.
func (s *PrintService) SetLogo(ctx context.Context, logo string) error {
	if !printing.ValidLogo(logo) {
		return fmt.Errorf("%w: logo must be an image data URL or http(s) URL", domain.ErrValidation)
	}
	return s.Repo.PutSetting(ctx, models.SettingLogo, logo)
}

func (s *PrintService) Invoice(ctx context.Context, orderID string) ([]byte, error) {
	o, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	logo, err := s.Logo(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load logo: %v", domain.ErrExternalService, err)
	}
	return s.Renderer.Render(o, logo)
}
