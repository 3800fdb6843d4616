package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/furniture_supply/internal/clock"
	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/events"
	"github.com/Skotchmaster/furniture_supply/internal/logging"
	"github.com/Skotchmaster/furniture_supply/internal/models"
	"github.com/Skotchmaster/furniture_supply/internal/repo"
)

type OrderService struct {
	Repo    *repo.GormRepo
	Catalog *CatalogService
	Events  events.Publisher
	Clock   clock.Clock
	Format  domain.DateFormatter

	locks keyedMutex
}

func (s *OrderService) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

type OrderInput struct {
	domain.CustomerFields
	OrderDescription string
}

// PlaceFromCart turns the store's cart into a NEW order and empties the cart.
func (s *OrderService) PlaceFromCart(ctx context.Context, storeID, storeName string, in OrderInput) (*models.Order, error) {
	now := s.Now()
	o, err := s.Repo.PlaceOrderFromCart(ctx, storeID, func(cart []models.CartLine) (*models.Order, error) {
		lines := make([]models.OrderLine, 0, len(cart))
		for _, c := range cart {
			lines = append(lines, models.OrderLine{ID: uuid.NewString(), Snapshot: c.Snapshot})
		}
		return domain.NewOrder(domain.PlaceOrder{
			StoreID:          storeID,
			StoreName:        storeName,
			CustomerFields:   in.CustomerFields,
			OrderDescription: in.OrderDescription,
			Lines:            lines,
		}, now, s.Format)
	})
	if err != nil {
		return nil, err
	}
	s.placed(ctx, o)
	return o, nil
}

// Place creates an order from explicit lines, each snapshotted from the
// current catalog.
func (s *OrderService) Place(ctx context.Context, storeID, storeName string, in OrderInput, edits []domain.LineEdit) (*models.Order, error) {
	if len(edits) == 0 {
		return nil, domain.ErrEmptyCart
	}
	lines, err := domain.BuildEditedLines(nil, edits, s.lookup(ctx))
	if err != nil {
		return nil, err
	}
	o, err := domain.NewOrder(domain.PlaceOrder{
		StoreID:          storeID,
		StoreName:        storeName,
		CustomerFields:   in.CustomerFields,
		OrderDescription: in.OrderDescription,
		Lines:            lines,
	}, s.Now(), s.Format)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}
	s.placed(ctx, o)
	return o, nil
}

func (s *OrderService) placed(ctx context.Context, o *models.Order) {
	logging.FromContext(ctx).Info("order_placed", "order_id", o.ID, "code", o.Code, "store_id", o.StoreID, "total", o.TotalPriceSnapshot)
	publish(ctx, s.Events, events.TopicOrders, o.ID, map[string]any{
		"type":     "order_placed",
		"order_id": o.ID,
		"code":     o.Code,
		"store_id": o.StoreID,
		"total":    o.TotalPriceSnapshot,
		"lines":    len(o.Lines),
	})
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.Repo.GetOrder(ctx, id)
}

// GetForStore hides orders of other stores.
func (s *OrderService) GetForStore(ctx context.Context, storeID, id string) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context, storeIDs []string) ([]models.Order, error) {
	orders, err := s.Repo.ListOrders(ctx, storeIDs)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

type StoreEditInput struct {
	OrderInput
	Lines []domain.LineEdit
}

// UpdateByStore applies a store edit. The window is checked against the
// clock at submission, under the order's lock.
func (s *OrderService) UpdateByStore(ctx context.Context, storeID, id string, in StoreEditInput) (*models.Order, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	// Catalog reads happen before the transaction so storage is not
	// re-entered while the order row is locked.
	lookup, err := s.prefetch(ctx, in.Lines)
	if err != nil {
		return nil, err
	}
	o, err := s.Repo.UpdateOrder(ctx, id, true, func(o *models.Order) error {
		if o.StoreID != storeID {
			return domain.ErrNotFound
		}
		now := s.Now()
		if !domain.IsEditable(o, now) {
			return domain.ErrEditWindowExpired
		}
		lines, err := domain.BuildEditedLines(o.Lines, in.Lines, lookup)
		if err != nil {
			return err
		}
		return domain.ApplyStoreEdit(o, domain.StoreEdit{
			CustomerFields:   in.CustomerFields,
			OrderDescription: in.OrderDescription,
			Lines:            lines,
		}, now)
	})
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicOrders, o.ID, map[string]any{
		"type": "order_edited", "order_id": o.ID, "store_id": o.StoreID, "total": o.TotalPriceSnapshot,
	})
	return o, nil
}

// CorrectBySupplier changes logistics fields only, at any time.
func (s *OrderService) CorrectBySupplier(ctx context.Context, id string, c domain.Correction) (*models.Order, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	o, err := s.Repo.UpdateOrder(ctx, id, false, func(o *models.Order) error {
		return domain.ApplySupplierCorrection(o, c)
	})
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicOrders, o.ID, map[string]any{
		"type": "order_corrected", "order_id": o.ID,
	})
	return o, nil
}

func (s *OrderService) ChangeStatus(ctx context.Context, id, status string) (*models.Order, error) {
	to, ok := domain.ParseStatus(status)
	if !ok {
		return nil, domain.ErrInvalidStatusTransition
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	var from models.OrderStatus
	o, err := s.Repo.UpdateOrder(ctx, id, false, func(o *models.Order) error {
		from = o.Status
		return domain.ChangeStatus(o, to, s.Now())
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("order_status_changed", "order_id", id, "from", from, "to", to)
	publish(ctx, s.Events, events.TopicOrders, o.ID, map[string]any{
		"type": "order_status_changed", "order_id": o.ID, "from": from, "to": to,
	})
	return o, nil
}

type resolved struct {
	cat  models.ModelCategory
	item models.ModelItem
}

func (s *OrderService) prefetch(ctx context.Context, edits []domain.LineEdit) (domain.CatalogLookup, error) {
	found := map[string]resolved{}
	for _, e := range edits {
		if e.LineID != "" || e.ItemID == "" {
			continue
		}
		if _, ok := found[e.ItemID]; ok {
			continue
		}
		cat, item, err := s.Catalog.Resolve(ctx, e.ItemID)
		if err != nil {
			return nil, err
		}
		found[e.ItemID] = resolved{cat: cat, item: item}
	}
	return func(itemID string) (models.ModelCategory, models.ModelItem, error) {
		r, ok := found[itemID]
		if !ok {
			return models.ModelCategory{}, models.ModelItem{}, domain.ErrNotFound
		}
		return r.cat, r.item, nil
	}, nil
}

func (s *OrderService) lookup(ctx context.Context) domain.CatalogLookup {
	return func(itemID string) (models.ModelCategory, models.ModelItem, error) {
		return s.Catalog.Resolve(ctx, itemID)
	}
}
