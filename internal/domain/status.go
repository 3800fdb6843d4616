package domain

import (
	"fmt"
	"time"

	"github.com/Skotchmaster/furniture_supply/internal/models"
)

var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusNew:          {models.OrderStatusConfirmed, models.OrderStatusCanceled},
	models.OrderStatusConfirmed:    {models.OrderStatusInProduction, models.OrderStatusCanceled},
	models.OrderStatusInProduction: {models.OrderStatusReady},
	models.OrderStatusReady:        {models.OrderStatusDelivered},
}

func ParseStatus(s string) (models.OrderStatus, bool) {
	switch st := models.OrderStatus(s); st {
	case models.OrderStatusNew, models.OrderStatusConfirmed, models.OrderStatusInProduction,
		models.OrderStatusReady, models.OrderStatusDelivered, models.OrderStatusCanceled:
		return st, true
	}
	return "", false
}

// CanTransition checks the static table only, not the edit-window guard.
func CanTransition(from, to models.OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(s models.OrderStatus) bool {
	return s == models.OrderStatusDelivered || s == models.OrderStatusCanceled
}

// NextStatuses lists the statuses o may move to at now.
func NextStatuses(o *models.Order, now time.Time) []models.OrderStatus {
	var out []models.OrderStatus
	for _, s := range transitions[o.Status] {
		if o.Status == models.OrderStatusNew && s == models.OrderStatusConfirmed && IsEditable(o, now) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ChangeStatus moves o to the target status. Confirming is refused while the
// store can still edit the order.
func ChangeStatus(o *models.Order, to models.OrderStatus, now time.Time) error {
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, to)
	}
	if o.Status == models.OrderStatusNew && to == models.OrderStatusConfirmed && IsEditable(o, now) {
		return fmt.Errorf("%w: order is still editable by the store", ErrInvalidStatusTransition)
	}
	o.Status = to
	return nil
}

// StatusCounts tallies orders per status. Every status is present, zero or not.
func StatusCounts(orders []models.Order) map[models.OrderStatus]int {
	counts := map[models.OrderStatus]int{
		models.OrderStatusNew:          0,
		models.OrderStatusConfirmed:    0,
		models.OrderStatusInProduction: 0,
		models.OrderStatusReady:        0,
		models.OrderStatusDelivered:    0,
		models.OrderStatusCanceled:     0,
	}
	for i := range orders {
		counts[orders[i].Status]++
	}
	return counts
}
