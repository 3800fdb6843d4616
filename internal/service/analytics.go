package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Skotchmaster/furniture_supply/internal/analytics"
	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/logging"
	"github.com/Skotchmaster/furniture_supply/internal/models"
	"github.com/Skotchmaster/furniture_supply/internal/repo"
)

type AnalyticsService struct {
	Repo      *repo.GormRepo
	Generator analytics.Generator
	Loc       *time.Location
}

// orderDigest is the read-only shape sent to the model.
type orderDigest struct {
	Code      string             `json:"code"`
	CreatedAt string             `json:"created_at"`
	StoreName string             `json:"store_name"`
	Status    models.OrderStatus `json:"status"`
	Total     int64              `json:"total"`
	Lines     []lineDigest       `json:"lines"`
}

type lineDigest struct {
	Item      string `json:"item"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

// Analyze always returns text. Generator failures become a fixed message.
func (s *AnalyticsService) Analyze(ctx context.Context, q ReportQuery) (string, error) {
	f, err := domain.ParseReportFilter(q.StartDate, q.EndDate, q.StoreIDs, q.SortBy, q.ReportType, s.Loc)
	if err != nil {
		return "", err
	}
	orders, err := s.Repo.ListOrders(ctx, f.StoreIDs)
	if err != nil {
		return "", err
	}
	return s.Summarize(ctx, domain.FilterOrders(orders, f)), nil
}

func (s *AnalyticsService) Summarize(ctx context.Context, orders []models.Order) string {
	l := logging.FromContext(ctx).With("op", "analytics.summarize")

	digest := make([]orderDigest, 0, len(orders))
	for _, o := range orders {
		d := orderDigest{
			Code:      o.Code,
			CreatedAt: o.CreatedAtDisplay,
			StoreName: o.StoreName,
			Status:    o.Status,
			Total:     o.TotalPriceSnapshot,
		}
		for _, ln := range o.Lines {
			d.Lines = append(d.Lines, lineDigest{
				Item:      ln.CategorySnapshot + " - " + ln.ItemSnapshot,
				Quantity:  ln.Quantity,
				UnitPrice: ln.UnitPriceSnapshot,
				LineTotal: ln.LineTotal,
			})
		}
		digest = append(digest, d)
	}
	data, err := json.Marshal(digest)
	if err != nil {
		l.Error("marshal_failed", "error", err)
		return analytics.MessageFailure
	}

	gen := s.Generator
	if gen == nil {
		gen = analytics.Disabled{}
	}
	text, err := gen.Generate(ctx, analytics.OrdersPrompt(data))
	if err != nil {
		l.Warn("generate_failed", "orders", len(orders), "error", err)
		return analytics.MessageFailure
	}
	if text == "" {
		return analytics.MessageEmpty
	}
	return text
}
