package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusNew          OrderStatus = "NEW"
	OrderStatusConfirmed    OrderStatus = "CONFIRMED"
	OrderStatusInProduction OrderStatus = "IN_PRODUCTION"
	OrderStatusReady        OrderStatus = "READY"
	OrderStatusDelivered    OrderStatus = "DELIVERED"
	OrderStatusCanceled     OrderStatus = "CANCELED"
)

type ModelCategory struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null"           json:"name"`
	IsActive  bool      `gorm:"not null"           json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type ModelItem struct {
	ID         string    `gorm:"primaryKey;size:36"             json:"id"`
	CategoryID string    `gorm:"size:36;index;not null"         json:"category_id"`
	Name       string    `gorm:"not null"                       json:"name"`
	BasePrice  int64     `gorm:"not null;check:base_price >= 0" json:"base_price"`
	IsActive   bool      `gorm:"not null"                       json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Snapshot holds catalog values copied by value when a line is created.
// Nothing in it is ever re-read from the catalog.
type Snapshot struct {
	CategorySnapshot  string `gorm:"not null"                    json:"category_snapshot"`
	ItemSnapshot      string `gorm:"not null"                    json:"item_snapshot"`
	ItemID            string `gorm:"size:36;index"               json:"item_id"`
	UnitPriceSnapshot int64  `gorm:"not null"                    json:"unit_price_snapshot"`
	Quantity          int    `gorm:"not null;check:quantity > 0" json:"quantity"`
	LineTotal         int64  `gorm:"not null"                    json:"line_total"`
	Color             string `json:"color,omitempty"`
	Description       string `json:"description,omitempty"`
}

type OrderLine struct {
	ID       string `gorm:"primaryKey;size:36"      json:"id"`
	OrderID  string `gorm:"size:36;index;not null"  json:"-"`
	Position int    `gorm:"not null"                json:"-"`
	Snapshot
}

type CartLine struct {
	ID       string `gorm:"primaryKey;size:36"      json:"id"`
	StoreID  string `gorm:"size:36;index;not null"  json:"-"`
	Position int    `gorm:"not null"                json:"-"`
	Snapshot
}

type Order struct {
	ID                 string      `gorm:"primaryKey;size:36"          json:"id"`
	Code               string      `gorm:"size:6;index"                json:"code"`
	StoreID            string      `gorm:"size:36;index;not null"      json:"store_id"`
	StoreName          string      `gorm:"not null"                    json:"store_name"`
	CustomerName       string      `gorm:"not null"                    json:"customer_name"`
	CustomerPhone      string      `gorm:"not null"                    json:"customer_phone"`
	DeliveryAddress    string      `gorm:"not null"                    json:"delivery_address"`
	DeliveryDate       string      `gorm:"not null"                    json:"delivery_date"`
	OrderDescription   string      `json:"order_description,omitempty"`
	Status             OrderStatus `gorm:"size:16;index;not null"      json:"status"`
	Lines              []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	TotalPriceSnapshot int64       `gorm:"not null"                    json:"total_price_snapshot"`
	CreatedAtDisplay   string      `gorm:"column:created_at_display"   json:"created_at"`
	Timestamp          time.Time   `gorm:"not null;index"              json:"timestamp"`
	Version            int         `gorm:"not null"                    json:"version"`
}

type StoreAccount struct {
	ID            string `gorm:"primaryKey;size:36"        json:"id"`
	Name          string `gorm:"not null"                  json:"name"`
	Username      string `gorm:"uniqueIndex;not null"      json:"username"`
	PasswordHash  string `gorm:"not null"                  json:"-"`
	OwnerName     string `json:"owner_name"`
	OwnerLastName string `json:"owner_last_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	IsActive      bool   `gorm:"not null"                  json:"is_active"`
}

type Setting struct {
	Key   string `gorm:"primaryKey;size:64"  json:"key"`
	Value string `gorm:"type:text"           json:"value"`
}

const SettingLogo = "logo"

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (c *ModelCategory) BeforeCreate(tx *gorm.DB) error { newID(&c.ID); return nil }
func (i *ModelItem) BeforeCreate(tx *gorm.DB) error     { newID(&i.ID); return nil }
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error     { newID(&l.ID); return nil }
func (l *CartLine) BeforeCreate(tx *gorm.DB) error      { newID(&l.ID); return nil }
func (o *Order) BeforeCreate(tx *gorm.DB) error         { newID(&o.ID); return nil }
func (s *StoreAccount) BeforeCreate(tx *gorm.DB) error  { newID(&s.ID); return nil }

// All lists every persisted model for AutoMigrate.
func All() []any {
	return []any{
		&ModelCategory{},
		&ModelItem{},
		&Order{},
		&OrderLine{},
		&CartLine{},
		&StoreAccount{},
		&Setting{},
	}
}
