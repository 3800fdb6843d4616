package domain

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/furniture_supply/internal/models"
)

// EditWindow is how long a store may edit an order after placing it.
const EditWindow = 5 * time.Minute

// DateFormatter renders an order's display creation date.
type DateFormatter func(time.Time) string

func DefaultDateFormatter(loc *time.Location) DateFormatter {
	if loc == nil {
		loc = time.UTC
	}
	return func(t time.Time) string { return t.In(loc).Format("2006/01/02 15:04") }
}

// NewOrderCode returns the short human-facing order number.
func NewOrderCode() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}

type CustomerFields struct {
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	DeliveryDate    string
}

func (f CustomerFields) trimmed() CustomerFields {
	return CustomerFields{
		CustomerName:    strings.TrimSpace(f.CustomerName),
		CustomerPhone:   strings.TrimSpace(f.CustomerPhone),
		DeliveryAddress: strings.TrimSpace(f.DeliveryAddress),
		DeliveryDate:    strings.TrimSpace(f.DeliveryDate),
	}
}

func (f CustomerFields) Validate() error {
	f = f.trimmed()
	switch {
	case f.CustomerName == "":
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	case f.CustomerPhone == "":
		return fmt.Errorf("%w: customer phone is required", ErrValidation)
	case f.DeliveryAddress == "":
		return fmt.Errorf("%w: delivery address is required", ErrValidation)
	case f.DeliveryDate == "":
		return fmt.Errorf("%w: delivery date is required", ErrValidation)
	}
	return nil
}

type PlaceOrder struct {
	StoreID   string
	StoreName string
	CustomerFields
	OrderDescription string
	Lines            []models.OrderLine
}

// NewOrder builds a NEW order placed at now. Callers supply snapshotted lines.
func NewOrder(in PlaceOrder, now time.Time, format DateFormatter) (*models.Order, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := in.CustomerFields.Validate(); err != nil {
		return nil, err
	}
	if format == nil {
		format = DefaultDateFormatter(time.UTC)
	}
	id := uuid.NewString()
	lines, err := normalizeLines(id, in.Lines)
	if err != nil {
		return nil, err
	}
	f := in.CustomerFields.trimmed()
	return &models.Order{
		ID:                 id,
		Code:               NewOrderCode(),
		StoreID:            in.StoreID,
		StoreName:          in.StoreName,
		CustomerName:       f.CustomerName,
		CustomerPhone:      f.CustomerPhone,
		DeliveryAddress:    f.DeliveryAddress,
		DeliveryDate:       f.DeliveryDate,
		OrderDescription:   strings.TrimSpace(in.OrderDescription),
		Status:             models.OrderStatusNew,
		Lines:              lines,
		TotalPriceSnapshot: LinesTotal(lines),
		CreatedAtDisplay:   format(now),
		Timestamp:          now,
	}, nil
}

func IsEditable(o *models.Order, now time.Time) bool {
	return now.Sub(o.Timestamp) < EditWindow
}

// RemainingEditTime is the countdown shown to stores; zero once locked.
func RemainingEditTime(o *models.Order, now time.Time) time.Duration {
	d := EditWindow - now.Sub(o.Timestamp)
	if d < 0 {
		return 0
	}
	return d
}

type StoreEdit struct {
	CustomerFields
	OrderDescription string
	Lines            []models.OrderLine
}

// ApplyStoreEdit replaces the editable fields and lines of o. The window is
// checked against now, the moment of submission.
func ApplyStoreEdit(o *models.Order, edit StoreEdit, now time.Time) error {
	if !IsEditable(o, now) {
		return ErrEditWindowExpired
	}
	if len(edit.Lines) == 0 {
		return ErrEmptyCart
	}
	if err := edit.CustomerFields.Validate(); err != nil {
		return err
	}
	lines, err := normalizeLines(o.ID, edit.Lines)
	if err != nil {
		return err
	}
	f := edit.CustomerFields.trimmed()
	o.CustomerName = f.CustomerName
	o.CustomerPhone = f.CustomerPhone
	o.DeliveryAddress = f.DeliveryAddress
	o.DeliveryDate = f.DeliveryDate
	o.OrderDescription = strings.TrimSpace(edit.OrderDescription)
	o.Lines = lines
	o.TotalPriceSnapshot = LinesTotal(lines)
	return nil
}

// LineEdit is one line of a store edit. With LineID set it refers to a line
// already on the order and keeps its snapshot; otherwise ItemID names a
// catalog item to snapshot now.
type LineEdit struct {
	LineID      string
	ItemID      string
	Quantity    int
	Color       *string
	Description *string
}

// CatalogLookup resolves a catalog item and its category.
type CatalogLookup func(itemID string) (models.ModelCategory, models.ModelItem, error)

func BuildEditedLines(current []models.OrderLine, edits []LineEdit, lookup CatalogLookup) ([]models.OrderLine, error) {
	byID := make(map[string]models.OrderLine, len(current))
	for _, l := range current {
		byID[l.ID] = l
	}
	out := make([]models.OrderLine, 0, len(edits))
	seen := make(map[string]bool, len(edits))
	for _, e := range edits {
		if e.LineID != "" {
			l, ok := byID[e.LineID]
			if !ok || seen[e.LineID] {
				return nil, fmt.Errorf("%w: unknown line %s", ErrValidation, e.LineID)
			}
			seen[e.LineID] = true
			if e.Quantity != 0 {
				if err := SetQuantity(&l.Snapshot, e.Quantity); err != nil {
					return nil, err
				}
			}
			if e.Color != nil {
				l.Color = *e.Color
			}
			if e.Description != nil {
				l.Description = *e.Description
			}
			out = append(out, l)
			continue
		}
		if e.ItemID == "" {
			return nil, fmt.Errorf("%w: line needs line_id or item_id", ErrValidation)
		}
		cat, item, err := lookup(e.ItemID)
		if err != nil {
			return nil, err
		}
		var color, desc string
		if e.Color != nil {
			color = *e.Color
		}
		if e.Description != nil {
			desc = *e.Description
		}
		l, err := NewLine(cat, item, e.Quantity, color, desc)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Correction holds the logistics fields a supplier may change. Nil fields
// are left as they are.
type Correction struct {
	CustomerName    *string
	CustomerPhone   *string
	DeliveryAddress *string
	DeliveryDate    *string
}

func ApplySupplierCorrection(o *models.Order, c Correction) error {
	set := func(dst *string, src *string, field string) error {
		if src == nil {
			return nil
		}
		v := strings.TrimSpace(*src)
		if v == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, field)
		}
		*dst = v
		return nil
	}
	next := *o
	if err := set(&next.CustomerName, c.CustomerName, "customer name"); err != nil {
		return err
	}
	if err := set(&next.CustomerPhone, c.CustomerPhone, "customer phone"); err != nil {
		return err
	}
	if err := set(&next.DeliveryAddress, c.DeliveryAddress, "delivery address"); err != nil {
		return err
	}
	if err := set(&next.DeliveryDate, c.DeliveryDate, "delivery date"); err != nil {
		return err
	}
	o.CustomerName = next.CustomerName
	o.CustomerPhone = next.CustomerPhone
	o.DeliveryAddress = next.DeliveryAddress
	o.DeliveryDate = next.DeliveryDate
	return nil
}
