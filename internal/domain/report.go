package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Skotchmaster/furniture_supply/internal/models"
)

type SortBy string

const (
	SortByDate   SortBy = "date"
	SortByAmount SortBy = "amount"
)

type ReportType string

const (
	ReportSales    ReportType = "sales"
	ReportProducts ReportType = "products"
)

const reportDateLayout = "2006-01-02"

// ReportFilter bounds are inclusive. A zero bound is open.
type ReportFilter struct {
	Start    time.Time
	End      time.Time
	StoreIDs []string
	SortBy   SortBy
	Type     ReportType
}

// ParseReportFilter reads calendar days in loc. The end day is widened to its
// last millisecond.
func ParseReportFilter(start, end string, storeIDs []string, sortBy, reportType string, loc *time.Location) (ReportFilter, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := ReportFilter{SortBy: SortByDate, Type: ReportSales}
	if s := strings.TrimSpace(start); s != "" {
		t, err := time.ParseInLocation(reportDateLayout, s, loc)
		if err != nil {
			return ReportFilter{}, fmt.Errorf("%w: bad start date %q", ErrValidation, s)
		}
		f.Start = t
	}
	if s := strings.TrimSpace(end); s != "" {
		t, err := time.ParseInLocation(reportDateLayout, s, loc)
		if err != nil {
			return ReportFilter{}, fmt.Errorf("%w: bad end date %q", ErrValidation, s)
		}
		f.End = t.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	switch SortBy(sortBy) {
	case "":
	case SortByDate, SortByAmount:
		f.SortBy = SortBy(sortBy)
	default:
		return ReportFilter{}, fmt.Errorf("%w: bad sort %q", ErrValidation, sortBy)
	}
	switch ReportType(reportType) {
	case "":
	case ReportSales, ReportProducts:
		f.Type = ReportType(reportType)
	default:
		return ReportFilter{}, fmt.Errorf("%w: bad report type %q", ErrValidation, reportType)
	}
	for _, id := range storeIDs {
		if id = strings.TrimSpace(id); id != "" {
			f.StoreIDs = append(f.StoreIDs, id)
		}
	}
	return f, nil
}

func (f ReportFilter) Match(o *models.Order) bool {
	if !f.Start.IsZero() && o.Timestamp.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && o.Timestamp.After(f.End) {
		return false
	}
	if len(f.StoreIDs) == 0 {
		return true
	}
	for _, id := range f.StoreIDs {
		if id == o.StoreID {
			return true
		}
	}
	return false
}

func FilterOrders(orders []models.Order, f ReportFilter) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for i := range orders {
		if f.Match(&orders[i]) {
			out = append(out, orders[i])
		}
	}
	return out
}

type SalesRow struct {
	OrderID            string             `json:"order_id"`
	Code               string             `json:"code"`
	CreatedAt          string             `json:"created_at"`
	Timestamp          time.Time          `json:"timestamp"`
	StoreName          string             `json:"store_name"`
	CustomerName       string             `json:"customer_name"`
	CustomerPhone      string             `json:"customer_phone"`
	TotalPriceSnapshot int64              `json:"total_price_snapshot"`
	Status             models.OrderStatus `json:"status"`
}

type SalesReport struct {
	Rows        []SalesRow `json:"rows"`
	OrderCount  int        `json:"order_count"`
	TotalAmount int64      `json:"total_amount"`
}

func BuildSalesReport(orders []models.Order, f ReportFilter) SalesReport {
	matched := sortedMatches(orders, f)
	rep := SalesReport{Rows: make([]SalesRow, 0, len(matched)), OrderCount: len(matched)}
	for _, o := range matched {
		rep.TotalAmount += o.TotalPriceSnapshot
		rep.Rows = append(rep.Rows, SalesRow{
			OrderID:            o.ID,
			Code:               o.Code,
			CreatedAt:          o.CreatedAtDisplay,
			Timestamp:          o.Timestamp,
			StoreName:          o.StoreName,
			CustomerName:       o.CustomerName,
			CustomerPhone:      o.CustomerPhone,
			TotalPriceSnapshot: o.TotalPriceSnapshot,
			Status:             o.Status,
		})
	}
	return rep
}

// sortedMatches filters orders and sorts them newest first, or by amount
// descending.
func sortedMatches(orders []models.Order, f ReportFilter) []models.Order {
	matched := FilterOrders(orders, f)
	if f.SortBy == SortByAmount {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].TotalPriceSnapshot > matched[j].TotalPriceSnapshot
		})
	} else {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		})
	}
	return matched
}

type ProductStat struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Total    int64  `json:"total"`
}

type ProductReport struct {
	Rows          []ProductStat `json:"rows"`
	TotalQuantity int           `json:"total_quantity"`
	TotalAmount   int64         `json:"total_amount"`
}

// BuildProductReport groups lines of the matched orders by item id, walking
// orders in the same order as the sales view. The label comes from the first
// line seen for an item.
func BuildProductReport(orders []models.Order, f ReportFilter) ProductReport {
	matched := sortedMatches(orders, f)
	idx := map[string]int{}
	var rows []ProductStat
	for _, o := range matched {
		for _, l := range o.Lines {
			i, ok := idx[l.ItemID]
			if !ok {
				i = len(rows)
				idx[l.ItemID] = i
				rows = append(rows, ProductStat{
					ItemID: l.ItemID,
					Name:   l.CategorySnapshot + " - " + l.ItemSnapshot,
				})
			}
			rows[i].Quantity += l.Quantity
			rows[i].Total += l.LineTotal
		}
	}
	if f.SortBy == SortByAmount {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })
	} else {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Quantity > rows[j].Quantity })
	}
	rep := ProductReport{Rows: rows}
	if rep.Rows == nil {
		rep.Rows = []ProductStat{}
	}
	for _, r := range rows {
		rep.TotalQuantity += r.Quantity
		rep.TotalAmount += r.Total
	}
	return rep
}
