package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/models"
)

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

// PlaceOrderFromCart builds an order from the store's cart and empties the
// cart in the same transaction.
func (r *GormRepo) PlaceOrderFromCart(ctx context.Context, storeID string, build func([]models.CartLine) (*models.Order, error)) (*models.Order, error) {
	var order *models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []models.CartLine
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("store_id = ?", storeID).Order("position ASC").Find(&lines).Error; err != nil {
			return err
		}
		o, err := build(lines)
		if err != nil {
			return err
		}
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", storeID).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := r.DB.WithContext(ctx).Preload("Lines", preloadLines).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

// ListOrders returns orders newest first. Empty storeIDs means every store.
func (r *GormRepo) ListOrders(ctx context.Context, storeIDs []string) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Preload("Lines", preloadLines)
	if len(storeIDs) > 0 {
		q = q.Where("store_id IN ?", storeIDs)
	}
	var orders []models.Order
	if err := q.Order("timestamp DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrder loads the order under a row lock, applies mutate and writes it
// back guarded by its version.
func (r *GormRepo) UpdateOrder(ctx context.Context, id string, replaceLines bool, mutate func(*models.Order) error) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Lines", preloadLines).Where("id = ?", id).First(&o).Error; err != nil {
			return notFound(err)
		}
		version := o.Version
		if err := mutate(&o); err != nil {
			return err
		}
		o.ID = id
		return saveOrder(tx, &o, version, replaceLines)
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// SaveOrder writes o if its stored version still equals expectedVersion.
func (r *GormRepo) SaveOrder(ctx context.Context, o *models.Order, expectedVersion int, replaceLines bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveOrder(tx, o, expectedVersion, replaceLines)
	})
}

func saveOrder(tx *gorm.DB, o *models.Order, expectedVersion int, replaceLines bool) error {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND version = ?", o.ID, expectedVersion).
		Updates(map[string]any{
			"customer_name":        o.CustomerName,
			"customer_phone":       o.CustomerPhone,
			"delivery_address":     o.DeliveryAddress,
			"delivery_date":        o.DeliveryDate,
			"order_description":    o.OrderDescription,
			"status":               o.Status,
			"total_price_snapshot": o.TotalPriceSnapshot,
			"version":              expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConflict
	}
	o.Version = expectedVersion + 1
	if !replaceLines {
		return nil
	}
	if err := tx.Where("order_id = ?", o.ID).Delete(&models.OrderLine{}).Error; err != nil {
		return err
	}
	for i := range o.Lines {
		o.Lines[i].OrderID = o.ID
		o.Lines[i].Position = i
	}
	if len(o.Lines) == 0 {
		return nil
	}
	return tx.Create(&o.Lines).Error
}
