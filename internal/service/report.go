package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/repo"
)

type ReportService struct {
	Repo *repo.GormRepo
	Loc  *time.Location
}

type ReportQuery struct {
	StartDate  string
	EndDate    string
	StoreIDs   []string
	SortBy     string
	ReportType string
}

type Report struct {
	Type     domain.ReportType     `json:"report_type"`
	SortBy   domain.SortBy         `json:"sort_by"`
	Sales    *domain.SalesReport   `json:"sales,omitempty"`
	Products *domain.ProductReport `json:"products,omitempty"`
}

func (s *ReportService) Run(ctx context.Context, q ReportQuery) (*Report, error) {
	f, err := domain.ParseReportFilter(q.StartDate, q.EndDate, q.StoreIDs, q.SortBy, q.ReportType, s.Loc)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.ListOrders(ctx, f.StoreIDs)
	if err != nil {
		return nil, err
	}
	rep := &Report{Type: f.Type, SortBy: f.SortBy}
	switch f.Type {
	case domain.ReportProducts:
		p := domain.BuildProductReport(orders, f)
		rep.Products = &p
	default:
		sales := domain.BuildSalesReport(orders, f)
		rep.Sales = &sales
	}
	return rep, nil
}

// RunForStore restricts the report to one store's orders.
func (s *ReportService) RunForStore(ctx context.Context, storeID string, q ReportQuery) (*Report, error) {
	q.StoreIDs = []string{storeID}
	return s.Run(ctx, q)
}
