package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/furniture_supply/internal/auth"
	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/models"
	"github.com/Skotchmaster/furniture_supply/internal/repo"
)

type StoreService struct {
	Repo *repo.GormRepo
}

type StoreInput struct {
	ID            string
	Name          string
	Username      string
	Password      string
	OwnerName     string
	OwnerLastName string
	Phone         string
	Address       string
	IsActive      bool
}

// Save upserts by id. An empty password on update keeps the current one.
func (s *StoreService) Save(ctx context.Context, in StoreInput) (*models.StoreAccount, error) {
	name, err := domain.ValidateName(in.Name)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	acc := &models.StoreAccount{
		ID:            strings.TrimSpace(in.ID),
		Name:          name,
		Username:      username,
		OwnerName:     strings.TrimSpace(in.OwnerName),
		OwnerLastName: strings.TrimSpace(in.OwnerLastName),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		IsActive:      in.IsActive,
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		acc.PasswordHash = hash
	}
	if err := s.Repo.SaveStore(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *StoreService) Get(ctx context.Context, id string) (*models.StoreAccount, error) {
	return s.Repo.GetStore(ctx, id)
}

func (s *StoreService) List(ctx context.Context) ([]models.StoreAccount, error) {
	stores, err := s.Repo.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	if stores == nil {
		stores = []models.StoreAccount{}
	}
	return stores, nil
}

// Delete leaves the store's orders untouched.
func (s *StoreService) Delete(ctx context.Context, id string) error {
	return s.Repo.DeleteStore(ctx, id)
}
