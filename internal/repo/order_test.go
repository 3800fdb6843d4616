package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/models"
)

func newOrder(t *testing.T, storeID string, ts time.Time, qty int) *models.Order {
	t.Helper()
	cat := models.ModelCategory{ID: "c", Name: "مدل ماتینا"}
	item := models.ModelItem{ID: "i", Name: "مبل", BasePrice: 1000}
	line, err := domain.NewLine(cat, item, qty, "", "")
	require.NoError(t, err)
	o, err := domain.NewOrder(domain.PlaceOrder{
		StoreID:   storeID,
		StoreName: "store " + storeID,
		CustomerFields: domain.CustomerFields{
			CustomerName: "n", CustomerPhone: "p", DeliveryAddress: "a", DeliveryDate: "d",
		},
		Lines: []models.OrderLine{line},
	}, ts, nil)
	require.NoError(t, err)
	return o
}

func TestOrder_CreateGetList(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	o1 := newOrder(t, "s1", base, 1)
	o2 := newOrder(t, "s2", base.Add(time.Hour), 2)
	require.NoError(t, r.CreateOrder(ctx, o1))
	require.NoError(t, r.CreateOrder(ctx, o2))

	got, err := r.GetOrder(ctx, o1.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "مدل ماتینا", got.Lines[0].CategorySnapshot)
	assert.EqualValues(t, 1000, got.TotalPriceSnapshot)
	assert.True(t, base.Equal(got.Timestamp))

	all, err := r.ListOrders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, o2.ID, all[0].ID)

	mine, err := r.ListOrders(ctx, []string{"s1"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, o1.ID, mine[0].ID)

	_, err = r.GetOrder(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateOrder_ReplacesLinesAndBumpsVersion(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	o := newOrder(t, "s1", time.Now(), 1)
	require.NoError(t, r.CreateOrder(ctx, o))

	got, err := r.UpdateOrder(ctx, o.ID, true, func(cur *models.Order) error {
		l := cur.Lines[0]
		require.NoError(t, domain.SetQuantity(&l.Snapshot, 4))
		extra := l
		extra.ID = ""
		cur.Lines = []models.OrderLine{l, extra}
		cur.TotalPriceSnapshot = domain.LinesTotal(cur.Lines)
		cur.CustomerName = "changed"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)

	reloaded, err := r.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", reloaded.CustomerName)
	require.Len(t, reloaded.Lines, 2)
	assert.Equal(t, o.Lines[0].ID, reloaded.Lines[0].ID)
	assert.EqualValues(t, 8000, reloaded.TotalPriceSnapshot)
	assert.Equal(t, 1, reloaded.Version)

	_, err = r.UpdateOrder(ctx, o.ID, false, func(*models.Order) error { return domain.ErrEditWindowExpired })
	require.ErrorIs(t, err, domain.ErrEditWindowExpired)

	_, err = r.UpdateOrder(ctx, "missing", false, func(*models.Order) error { return nil })
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveOrder_StaleVersionConflicts(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	o := newOrder(t, "s1", time.Now(), 1)
	require.NoError(t, r.CreateOrder(ctx, o))

	first, err := r.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	second, err := r.GetOrder(ctx, o.ID)
	require.NoError(t, err)

	first.Status = models.OrderStatusCanceled
	require.NoError(t, r.SaveOrder(ctx, first, 0, false))

	second.CustomerName = "late"
	err = r.SaveOrder(ctx, second, 0, false)
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := r.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCanceled, got.Status)
	assert.Equal(t, "n", got.CustomerName)
	require.Len(t, got.Lines, 1)
}

func TestPlaceOrderFromCart(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	for i, name := range []string{"a", "b"} {
		require.NoError(t, r.AddCartLine(ctx, &models.CartLine{StoreID: "s1", Snapshot: models.Snapshot{
			ItemID: name, ItemSnapshot: name, UnitPriceSnapshot: 100, Quantity: i + 1, LineTotal: int64(100 * (i + 1)),
		}}))
	}
	require.NoError(t, r.AddCartLine(ctx, &models.CartLine{StoreID: "s2", Snapshot: models.Snapshot{
		ItemID: "x", UnitPriceSnapshot: 1, Quantity: 1, LineTotal: 1,
	}}))

	o, err := r.PlaceOrderFromCart(ctx, "s1", func(lines []models.CartLine) (*models.Order, error) {
		require.Len(t, lines, 2)
		assert.Equal(t, "a", lines[0].ItemID)
		out := make([]models.OrderLine, 0, len(lines))
		for _, l := range lines {
			out = append(out, models.OrderLine{Snapshot: l.Snapshot})
		}
		return domain.NewOrder(domain.PlaceOrder{
			StoreID: "s1",
			CustomerFields: domain.CustomerFields{
				CustomerName: "n", CustomerPhone: "p", DeliveryAddress: "a", DeliveryDate: "d",
			},
			Lines: out,
		}, time.Now(), nil)
	})
	require.NoError(t, err)
	assert.EqualValues(t, 300, o.TotalPriceSnapshot)

	left, err := r.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, left)
	other, err := r.GetCart(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, other, 1)

	// An empty cart rolls back without creating anything.
	_, err = r.PlaceOrderFromCart(ctx, "s1", func(lines []models.CartLine) (*models.Order, error) {
		return nil, domain.ErrEmptyCart
	})
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	orders, err := r.ListOrders(ctx, []string{"s1"})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCartLines(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	line := &models.CartLine{StoreID: "s1", Snapshot: models.Snapshot{
		ItemID: "a", UnitPriceSnapshot: 250, Quantity: 2, LineTotal: 500,
	}}
	require.NoError(t, r.AddCartLine(ctx, line))
	second := &models.CartLine{StoreID: "s1", Snapshot: models.Snapshot{ItemID: "b", UnitPriceSnapshot: 1, Quantity: 1, LineTotal: 1}}
	require.NoError(t, r.AddCartLine(ctx, second))
	assert.Equal(t, 0, line.Position)
	assert.Equal(t, 1, second.Position)

	got, err := r.ChangeCartLineQuantity(ctx, "s1", line.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
	assert.EqualValues(t, 250, got.LineTotal)

	_, err = r.ChangeCartLineQuantity(ctx, "s2", line.ID, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, r.RemoveCartLine(ctx, "s2", line.ID), domain.ErrNotFound)
	require.NoError(t, r.RemoveCartLine(ctx, "s1", line.ID))

	require.NoError(t, r.ClearCart(ctx, "s1"))
	lines, err := r.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
