package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furniture_supply/internal/models"
)

func order(id, store string, ts time.Time, lines ...models.OrderLine) models.Order {
	return models.Order{
		ID:                 id,
		StoreID:            store,
		StoreName:          store,
		Timestamp:          ts,
		Lines:              lines,
		TotalPriceSnapshot: LinesTotal(lines),
		Status:             models.OrderStatusNew,
	}
}

func snapLine(itemID, cat, item string, price int64, qty int) models.OrderLine {
	return models.OrderLine{Snapshot: models.Snapshot{
		ItemID:            itemID,
		CategorySnapshot:  cat,
		ItemSnapshot:      item,
		UnitPriceSnapshot: price,
		Quantity:          qty,
		LineTotal:         price * int64(qty),
	}}
}

func TestParseReportFilter(t *testing.T) {
	loc := time.FixedZone("IRST", 3*3600+1800)
	f, err := ParseReportFilter("2024-01-02", "2024-01-02", []string{"a", " "}, "", "", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, loc), f.Start)
	assert.Equal(t, time.Date(2024, 1, 2, 23, 59, 59, int(999*time.Millisecond), loc), f.End)
	assert.Equal(t, []string{"a"}, f.StoreIDs)
	assert.Equal(t, SortByDate, f.SortBy)
	assert.Equal(t, ReportSales, f.Type)

	for _, bad := range [][4]string{
		{"02-01-2024", "", "", ""},
		{"", "tomorrow", "", ""},
		{"", "", "price", ""},
		{"", "", "", "stores"},
	} {
		_, err := ParseReportFilter(bad[0], bad[1], nil, bad[2], bad[3], loc)
		require.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestParseReportFilter_EndOfDayAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 is 23 hours long there, 2024-11-03 is 25.
	for _, day := range []string{"2024-03-10", "2024-11-03"} {
		f, err := ParseReportFilter("", day, nil, "", "", loc)
		require.NoError(t, err)
		d, _ := time.ParseInLocation("2006-01-02", day, loc)
		want := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
		assert.True(t, want.Equal(f.End), "%s: got %s", day, f.End)
	}
}

func TestSalesReport_DateRange(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 1, 2, 23, 30, 0, 0, time.UTC)
	t3 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	orders := []models.Order{
		order("o1", "s1", t1, snapLine("i", "c", "n", 100, 1)),
		order("o2", "s2", t2, snapLine("i", "c", "n", 300, 1)),
		order("o3", "s1", t3, snapLine("i", "c", "n", 200, 1)),
	}

	f, err := ParseReportFilter("2024-01-02", "2024-01-02", nil, "", "", time.UTC)
	require.NoError(t, err)
	rep := BuildSalesReport(orders, f)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "o2", rep.Rows[0].OrderID)
	assert.EqualValues(t, 300, rep.TotalAmount)

	f, err = ParseReportFilter("2024-01-02", "", nil, "", "", time.UTC)
	require.NoError(t, err)
	rep = BuildSalesReport(orders, f)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "o3", rep.Rows[0].OrderID)
	assert.Equal(t, "o2", rep.Rows[1].OrderID)

	f, err = ParseReportFilter("", "", nil, "", "", time.UTC)
	require.NoError(t, err)
	rep = BuildSalesReport(orders, f)
	require.Len(t, rep.Rows, 3)
	assert.Equal(t, []string{"o3", "o2", "o1"}, []string{rep.Rows[0].OrderID, rep.Rows[1].OrderID, rep.Rows[2].OrderID})
	assert.EqualValues(t, 600, rep.TotalAmount)
	assert.Equal(t, 3, rep.OrderCount)

	f.SortBy = SortByAmount
	rep = BuildSalesReport(orders, f)
	assert.Equal(t, "o2", rep.Rows[0].OrderID)
	assert.Equal(t, "o3", rep.Rows[1].OrderID)

	f.StoreIDs = []string{"s1"}
	rep = BuildSalesReport(orders, f)
	require.Len(t, rep.Rows, 2)
	assert.EqualValues(t, 300, rep.TotalAmount)
}

func TestProductReport(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		order("o1", "s1", ts, snapLine("x", "مدل ماتینا", "مبل", 1000, 2)),
		order("o2", "s1", ts,
			snapLine("x", "مدل جدید", "مبل renamed", 1200, 3),
			snapLine("y", "مدل چستر", "ست", 10000, 1),
		),
	}

	f := ReportFilter{SortBy: SortByDate}
	rep := BuildProductReport(orders, f)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, ProductStat{ItemID: "x", Name: "مدل ماتینا - مبل", Quantity: 5, Total: 5600}, rep.Rows[0])
	assert.Equal(t, ProductStat{ItemID: "y", Name: "مدل چستر - ست", Quantity: 1, Total: 10000}, rep.Rows[1])
	assert.Equal(t, 6, rep.TotalQuantity)
	assert.EqualValues(t, 15600, rep.TotalAmount)

	f.SortBy = SortByAmount
	rep = BuildProductReport(orders, f)
	assert.Equal(t, "y", rep.Rows[0].ItemID)
	// o2 is the larger order, so its line names item x.
	assert.Equal(t, ProductStat{ItemID: "x", Name: "مدل جدید - مبل renamed", Quantity: 5, Total: 5600}, rep.Rows[1])

	empty := BuildProductReport(nil, f)
	assert.NotNil(t, empty.Rows)
	assert.Empty(t, empty.Rows)
}

func TestTotalFollowsQuantityChange(t *testing.T) {
	cat := models.ModelCategory{ID: "c", Name: "cat"}
	a := models.ModelItem{ID: "a", Name: "A", BasePrice: 1000000}
	b := models.ModelItem{ID: "b", Name: "B", BasePrice: 500000}

	var c Cart
	first, err := c.AddLine(cat, a, 2, "", "")
	require.NoError(t, err)
	_, err = c.AddLine(cat, b, 1, "", "")
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	o, err := NewOrder(PlaceOrder{CustomerFields: customer(), Lines: c.Lines}, start, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2500000, o.TotalPriceSnapshot)

	require.True(t, c.ChangeLineQuantity(first.ID, 1))
	require.NoError(t, ApplyStoreEdit(o, StoreEdit{CustomerFields: customer(), Lines: c.Lines}, start.Add(time.Minute)))
	assert.EqualValues(t, 3500000, o.TotalPriceSnapshot)
	assert.Equal(t, 3, o.Lines[0].Quantity)

	// A later catalog price change does not reach the placed order.
	a.BasePrice = 9000000
	assert.EqualValues(t, 1000000, o.Lines[0].UnitPriceSnapshot)
}
