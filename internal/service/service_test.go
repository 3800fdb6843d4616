package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furniture_supply/internal/clock"
	"github.com/Skotchmaster/furniture_supply/internal/db/dbtest"
	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/models"
	"github.com/Skotchmaster/furniture_supply/internal/repo"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []map[string]any
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	m, _ := event.(map[string]any)
	p.events = append(p.events, m)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e["type"].(string))
	}
	return out
}

type env struct {
	repo    *repo.GormRepo
	clock   *clock.Manual
	events  *recordingPublisher
	catalog *CatalogService
	cart    *CartService
	orders  *OrderService
}

var t0 = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

func newEnv(t *testing.T) *env {
	t.Helper()
	r := repo.New(dbtest.Open(t))
	c := clock.NewManual(t0)
	p := &recordingPublisher{}
	cat := &CatalogService{Repo: r, Events: p}
	return &env{
		repo:    r,
		clock:   c,
		events:  p,
		catalog: cat,
		cart:    &CartService{Repo: r, Catalog: cat, Events: p},
		orders:  &OrderService{Repo: r, Catalog: cat, Events: p, Clock: c},
	}
}

func (e *env) seedItem(t *testing.T, catName, itemName string, price int64) (models.ModelCategory, models.ModelItem) {
	t.Helper()
	ctx := context.Background()
	cat, err := e.catalog.CreateCategory(ctx, catName)
	require.NoError(t, err)
	item, err := e.catalog.CreateItem(ctx, CreateItem{CategoryID: cat.ID, Name: itemName, BasePrice: price})
	require.NoError(t, err)
	return *cat, *item
}

func customer() domain.CustomerFields {
	return domain.CustomerFields{
		CustomerName:    "رضا",
		CustomerPhone:   "09120000000",
		DeliveryAddress: "تهران",
		DeliveryDate:    "1403/05/01",
	}
}
