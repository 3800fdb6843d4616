package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, storeID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := r.DB.WithContext(ctx).Where("store_id = ?", storeID).Order("position ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// AddCartLine appends line to the end of the store's cart.
func (r *GormRepo) AddCartLine(ctx context.Context, line *models.CartLine) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&models.CartLine{}).Where("store_id = ?", line.StoreID).
			Select("COALESCE(MAX(position), -1)").Scan(&last).Error; err != nil {
			return err
		}
		line.Position = last + 1
		return tx.Create(line).Error
	})
}

func (r *GormRepo) ChangeCartLineQuantity(ctx context.Context, storeID, lineID string, delta int) (*models.CartLine, error) {
	var line models.CartLine
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND store_id = ?", lineID, storeID).First(&line).Error; err != nil {
			return notFound(err)
		}
		domain.AdjustQuantity(&line.Snapshot, delta)
		return tx.Model(&models.CartLine{}).Where("id = ?", line.ID).Updates(map[string]any{
			"quantity":   line.Quantity,
			"line_total": line.LineTotal,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *GormRepo) RemoveCartLine(ctx context.Context, storeID, lineID string) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND store_id = ?", lineID, storeID).Delete(&models.CartLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, storeID string) error {
	return r.DB.WithContext(ctx).Where("store_id = ?", storeID).Delete(&models.CartLine{}).Error
}
