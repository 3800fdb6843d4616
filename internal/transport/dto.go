package transport

import (
	"time"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/models"
)

type StoreLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SupplierLoginRequest struct {
	Password string `json:"password"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type CreateItemRequest struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	BasePrice  int64  `json:"base_price"`
	IsActive   *bool  `json:"is_active"`
}

type UpdateItemRequest struct {
	Name      string `json:"name"`
	BasePrice int64  `json:"base_price"`
	IsActive  bool   `json:"is_active"`
}

// BatchItemsRequest accepts either a multi-line text or explicit lines.
type BatchItemsRequest struct {
	Text  string   `json:"text"`
	Lines []string `json:"lines"`
}

type BulkActiveRequest struct {
	IDs      []string `json:"ids"`
	IsActive bool     `json:"is_active"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type AddCartLineRequest struct {
	ItemID      string `json:"item_id"`
	Quantity    int    `json:"quantity"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

type CustomerRequest struct {
	CustomerName     string `json:"customer_name"`
	CustomerPhone    string `json:"customer_phone"`
	DeliveryAddress  string `json:"delivery_address"`
	DeliveryDate     string `json:"delivery_date"`
	OrderDescription string `json:"order_description"`
}

func (r CustomerRequest) Fields() domain.CustomerFields {
	return domain.CustomerFields{
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		DeliveryAddress: r.DeliveryAddress,
		DeliveryDate:    r.DeliveryDate,
	}
}

type LineRequest struct {
	LineID      string  `json:"line_id"`
	ItemID      string  `json:"item_id"`
	Quantity    int     `json:"quantity"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

func (r LineRequest) Edit() domain.LineEdit {
	return domain.LineEdit{
		LineID:      r.LineID,
		ItemID:      r.ItemID,
		Quantity:    r.Quantity,
		Color:       r.Color,
		Description: r.Description,
	}
}

// PlaceOrderRequest places the cart when Lines is empty.
type PlaceOrderRequest struct {
	CustomerRequest
	Lines []LineRequest `json:"lines"`
}

type UpdateOrderRequest struct {
	CustomerRequest
	Lines []LineRequest `json:"lines"`
}

func LineEdits(in []LineRequest) []domain.LineEdit {
	out := make([]domain.LineEdit, 0, len(in))
	for _, l := range in {
		out = append(out, l.Edit())
	}
	return out
}

type CorrectionRequest struct {
	CustomerName    *string `json:"customer_name"`
	CustomerPhone   *string `json:"customer_phone"`
	DeliveryAddress *string `json:"delivery_address"`
	DeliveryDate    *string `json:"delivery_date"`
}

func (r CorrectionRequest) Correction() domain.Correction {
	return domain.Correction{
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		DeliveryAddress: r.DeliveryAddress,
		DeliveryDate:    r.DeliveryDate,
	}
}

type StatusRequest struct {
	Status string `json:"status"`
}

type StoreRequest struct {
	Name          string `json:"name"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	OwnerName     string `json:"owner_name"`
	OwnerLastName string `json:"owner_last_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	IsActive      *bool  `json:"is_active"`
}

type LogoRequest struct {
	Logo string `json:"logo"`
}

type AnalyticsRequest struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	StoreIDs  []string `json:"store_ids"`
}

// OrderView adds the edit countdown and allowed moves to an order.
type OrderView struct {
	*models.Order
	Editable        bool                 `json:"editable"`
	EditRemainingMS int64                `json:"edit_remaining_ms"`
	NextStatuses    []models.OrderStatus `json:"next_statuses"`
}

func NewOrderView(o *models.Order, now time.Time) OrderView {
	next := domain.NextStatuses(o, now)
	if next == nil {
		next = []models.OrderStatus{}
	}
	return OrderView{
		Order:           o,
		Editable:        domain.IsEditable(o, now),
		EditRemainingMS: domain.RemainingEditTime(o, now).Milliseconds(),
		NextStatuses:    next,
	}
}

func NewOrderViews(orders []models.Order, now time.Time) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderView(&orders[i], now))
	}
	return out
}
