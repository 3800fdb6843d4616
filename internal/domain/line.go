package domain

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/furniture_supply/internal/models"
)

// NewSnapshot copies the current catalog values of cat and item into a line
// snapshot.
func NewSnapshot(cat models.ModelCategory, item models.ModelItem, quantity int, color, description string) (models.Snapshot, error) {
	if quantity < 1 {
		return models.Snapshot{}, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	return models.Snapshot{
		CategorySnapshot:  cat.Name,
		ItemSnapshot:      item.Name,
		ItemID:            item.ID,
		UnitPriceSnapshot: item.BasePrice,
		Quantity:          quantity,
		LineTotal:         item.BasePrice * int64(quantity),
		Color:             color,
		Description:       description,
	}, nil
}

// NewLine builds an order line with a fresh id.
func NewLine(cat models.ModelCategory, item models.ModelItem, quantity int, color, description string) (models.OrderLine, error) {
	s, err := NewSnapshot(cat, item, quantity, color, description)
	if err != nil {
		return models.OrderLine{}, err
	}
	return models.OrderLine{ID: uuid.NewString(), Snapshot: s}, nil
}

// SetQuantity replaces the quantity and recomputes the line total.
func SetQuantity(s *models.Snapshot, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	s.Quantity = quantity
	s.LineTotal = s.UnitPriceSnapshot * int64(quantity)
	return nil
}

// AdjustQuantity adds delta to the quantity, never going below 1.
func AdjustQuantity(s *models.Snapshot, delta int) {
	q := s.Quantity + delta
	if q < 1 {
		q = 1
	}
	s.Quantity = q
	s.LineTotal = s.UnitPriceSnapshot * int64(q)
}

func LinesTotal(lines []models.OrderLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.LineTotal
	}
	return sum
}

// normalizeLines re-derives line totals and positions, and binds the lines to orderID.
func normalizeLines(orderID string, lines []models.OrderLine) ([]models.OrderLine, error) {
	out := make([]models.OrderLine, 0, len(lines))
	for i, l := range lines {
		if l.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
		if l.UnitPriceSnapshot < 0 {
			return nil, fmt.Errorf("%w: negative unit price", ErrValidation)
		}
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		l.OrderID = orderID
		l.Position = i
		l.LineTotal = l.UnitPriceSnapshot * int64(l.Quantity)
		out = append(out, l)
	}
	return out, nil
}
