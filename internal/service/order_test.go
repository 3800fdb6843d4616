package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/models"
)

func placeFromCart(t *testing.T, e *env, storeID string, items ...models.ModelItem) *models.Order {
	t.Helper()
	ctx := context.Background()
	for _, it := range items {
		_, err := e.cart.Add(ctx, storeID, AddToCart{ItemID: it.ID, Quantity: 1})
		require.NoError(t, err)
	}
	o, err := e.orders.PlaceFromCart(ctx, storeID, "store "+storeID, OrderInput{CustomerFields: customer()})
	require.NoError(t, err)
	return o
}

func TestPlaceFromCart(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, item := e.seedItem(t, "مدل ماتینا", "مبل", 1000000)

	_, err := e.orders.PlaceFromCart(ctx, "s1", "s1", OrderInput{CustomerFields: customer()})
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	line, err := e.cart.Add(ctx, "s1", AddToCart{ItemID: item.ID, Quantity: 2, Color: "کرم"})
	require.NoError(t, err)
	_, err = e.cart.ChangeQuantity(ctx, "s1", line.ID, 1)
	require.NoError(t, err)
	cart, err := e.cart.Get(ctx, "s1")
	require.NoError(t, err)
	assert.EqualValues(t, 3000000, cart.Total)

	bad := customer()
	bad.CustomerPhone = ""
	_, err = e.orders.PlaceFromCart(ctx, "s1", "s1", OrderInput{CustomerFields: bad})
	require.ErrorIs(t, err, domain.ErrValidation)
	cart, err = e.cart.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1, "a failed placement keeps the cart")

	o, err := e.orders.PlaceFromCart(ctx, "s1", "گالری", OrderInput{CustomerFields: customer(), OrderDescription: "فوری"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusNew, o.Status)
	assert.EqualValues(t, 3000000, o.TotalPriceSnapshot)
	assert.Equal(t, "گالری", o.StoreName)
	assert.True(t, t0.Equal(o.Timestamp))
	assert.NotEqual(t, line.ID, o.Lines[0].ID)

	cart, err = e.cart.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
	assert.Contains(t, e.events.types(), "order_placed")
}

func TestSnapshotIsolation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cat, item := e.seedItem(t, "مدل ماتینا", "مبل تک نفره مدل ماتینا", 15000000)
	o := placeFromCart(t, e, "s1", item)

	_, _, err := e.catalog.RenameCategory(ctx, cat.ID, "مدل جدید")
	require.NoError(t, err)
	_, err = e.catalog.UpdateItem(ctx, models.ModelItem{ID: item.ID, Name: "x", BasePrice: 1, IsActive: true})
	require.NoError(t, err)

	got, err := e.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "مدل ماتینا", got.Lines[0].CategorySnapshot)
	assert.Equal(t, "مبل تک نفره مدل ماتینا", got.Lines[0].ItemSnapshot)
	assert.EqualValues(t, 15000000, got.Lines[0].UnitPriceSnapshot)

	require.NoError(t, e.catalog.DeleteCategory(ctx, cat.ID))
	got, err = e.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.EqualValues(t, 15000000, got.TotalPriceSnapshot)
}

func TestUpdateByStore(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, a := e.seedItem(t, "C", "A", 1000000)
	_, b := e.seedItem(t, "D", "B", 500000)

	o := placeFromCart(t, e, "s1", a, b)
	require.EqualValues(t, 1500000, o.TotalPriceSnapshot)

	e.clock.Advance(4*time.Minute + 59*time.Second)
	in := StoreEditInput{
		OrderInput: OrderInput{CustomerFields: customer()},
		Lines: []domain.LineEdit{
			{LineID: o.Lines[0].ID, Quantity: 3},
			{ItemID: b.ID, Quantity: 1},
		},
	}
	got, err := e.orders.UpdateByStore(ctx, "s1", o.ID, in)
	require.NoError(t, err)
	assert.EqualValues(t, 3500000, got.TotalPriceSnapshot)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, o.Lines[0].ID, got.Lines[0].ID)

	_, err = e.orders.UpdateByStore(ctx, "s2", o.ID, in)
	require.ErrorIs(t, err, domain.ErrNotFound)

	e.clock.Advance(2 * time.Second)
	_, err = e.orders.UpdateByStore(ctx, "s1", o.ID, in)
	require.ErrorIs(t, err, domain.ErrEditWindowExpired)

	stored, err := e.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3500000, stored.TotalPriceSnapshot)
	assert.Equal(t, models.OrderStatusNew, stored.Status)
	assert.Equal(t, 1, stored.Version)
}

func TestUpdateByStore_EmptyLines(t *testing.T) {
	e := newEnv(t)
	_, a := e.seedItem(t, "C", "A", 10)
	o := placeFromCart(t, e, "s1", a)

	_, err := e.orders.UpdateByStore(context.Background(), "s1", o.ID, StoreEditInput{
		OrderInput: OrderInput{CustomerFields: customer()},
	})
	require.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCorrectBySupplier(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, a := e.seedItem(t, "C", "A", 100)
	o := placeFromCart(t, e, "s1", a)

	e.clock.Advance(time.Hour)
	_, err := e.orders.ChangeStatus(ctx, o.ID, "CONFIRMED")
	require.NoError(t, err)

	addr, date := "کرج", "1403/06/01"
	got, err := e.orders.CorrectBySupplier(ctx, o.ID, domain.Correction{DeliveryAddress: &addr, DeliveryDate: &date})
	require.NoError(t, err)
	assert.Equal(t, "کرج", got.DeliveryAddress)
	assert.Equal(t, "1403/06/01", got.DeliveryDate)
	assert.Equal(t, models.OrderStatusConfirmed, got.Status)
	assert.EqualValues(t, 100, got.TotalPriceSnapshot)

	stored, err := e.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, o.Lines[0].ID, stored.Lines[0].ID)
	assert.Equal(t, "رضا", stored.CustomerName)

	_, err = e.orders.CorrectBySupplier(ctx, "missing", domain.Correction{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangeStatus_Guarded(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, a := e.seedItem(t, "C", "A", 100)
	o := placeFromCart(t, e, "s1", a)

	_, err := e.orders.ChangeStatus(ctx, o.ID, "CONFIRMED")
	require.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	_, err = e.orders.ChangeStatus(ctx, o.ID, "SHIPPED")
	require.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	e.clock.Advance(5 * time.Minute)
	for _, st := range []string{"CONFIRMED", "IN_PRODUCTION", "READY", "DELIVERED"} {
		got, err := e.orders.ChangeStatus(ctx, o.ID, st)
		require.NoError(t, err, st)
		assert.Equal(t, models.OrderStatus(st), got.Status)
	}
	_, err = e.orders.ChangeStatus(ctx, o.ID, "CANCELED")
	require.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.Contains(t, e.events.types(), "order_status_changed")
}

func TestGetForStore_Ownership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, a := e.seedItem(t, "C", "A", 100)
	o := placeFromCart(t, e, "s1", a)

	_, err := e.orders.GetForStore(ctx, "s1", o.ID)
	require.NoError(t, err)
	_, err = e.orders.GetForStore(ctx, "s2", o.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	mine, err := e.orders.List(ctx, []string{"s2"})
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestPlace_ExplicitLines(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, a := e.seedItem(t, "C", "A", 250)

	o, err := e.orders.Place(ctx, "s1", "s1", OrderInput{CustomerFields: customer()}, []domain.LineEdit{{ItemID: a.ID, Quantity: 4}})
	require.NoError(t, err)
	assert.EqualValues(t, 1000, o.TotalPriceSnapshot)

	_, err = e.orders.Place(ctx, "s1", "s1", OrderInput{CustomerFields: customer()}, nil)
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = e.orders.Place(ctx, "s1", "s1", OrderInput{CustomerFields: customer()}, []domain.LineEdit{{ItemID: "gone", Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConcurrentStatusChanges(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, a := e.seedItem(t, "C", "A", 100)
	o := placeFromCart(t, e, "s1", a)
	e.clock.Advance(time.Hour)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		oks int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.orders.ChangeStatus(ctx, o.ID, "CANCELED"); err == nil {
				mu.Lock()
				oks++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, oks)

	got, err := e.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCanceled, got.Status)
	assert.Equal(t, 1, got.Version)
}

func TestKeyedMutex(t *testing.T) {
	var k keyedMutex
	unlock := k.Lock("a")
	done := make(chan struct{})
	go func() {
		u := k.Lock("b")
		u()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("unrelated key blocked")
	}
	unlock()
	assert.Empty(t, k.locks)
}
