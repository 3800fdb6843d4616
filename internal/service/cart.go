package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/events"
	"github.com/Skotchmaster/furniture_supply/internal/models"
	"github.com/Skotchmaster/furniture_supply/internal/repo"
)

// CartService keeps one open cart per store.
type CartService struct {
	Repo    *repo.GormRepo
	Catalog *CatalogService
	Events  events.Publisher
}

type Cart struct {
	Lines []models.CartLine `json:"lines"`
	Total int64             `json:"total"`
}

func (s *CartService) Get(ctx context.Context, storeID string) (*Cart, error) {
	lines, err := s.Repo.GetCart(ctx, storeID)
	if err != nil {
		return nil, err
	}
	c := &Cart{Lines: lines}
	if c.Lines == nil {
		c.Lines = []models.CartLine{}
	}
	for _, l := range lines {
		c.Total += l.LineTotal
	}
	return c, nil
}

type AddToCart struct {
	ItemID      string
	Quantity    int
	Color       string
	Description string
}

// Add snapshots the item as it is in the catalog now.
func (s *CartService) Add(ctx context.Context, storeID string, in AddToCart) (*models.CartLine, error) {
	cat, item, err := s.Catalog.Resolve(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	snap, err := domain.NewSnapshot(cat, item, in.Quantity, strings.TrimSpace(in.Color), strings.TrimSpace(in.Description))
	if err != nil {
		return nil, err
	}
	line := &models.CartLine{StoreID: storeID, Snapshot: snap}
	if err := s.Repo.AddCartLine(ctx, line); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicOrders, storeID, map[string]any{
		"type": "cart_line_added", "store_id": storeID, "item_id": item.ID, "quantity": snap.Quantity,
	})
	return line, nil
}

func (s *CartService) ChangeQuantity(ctx context.Context, storeID, lineID string, delta int) (*models.CartLine, error) {
	return s.Repo.ChangeCartLineQuantity(ctx, storeID, lineID, delta)
}

func (s *CartService) Remove(ctx context.Context, storeID, lineID string) error {
	return s.Repo.RemoveCartLine(ctx, storeID, lineID)
}

func (s *CartService) Clear(ctx context.Context, storeID string) error {
	return s.Repo.ClearCart(ctx, storeID)
}
