package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/models"
)

func (r *GormRepo) ListStores(ctx context.Context) ([]models.StoreAccount, error) {
	var stores []models.StoreAccount
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *GormRepo) GetStore(ctx context.Context, id string) (*models.StoreAccount, error) {
	var s models.StoreAccount
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *GormRepo) GetStoreByUsername(ctx context.Context, username string) (*models.StoreAccount, error) {
	var s models.StoreAccount
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// SaveStore creates the account when its id is empty or unknown and replaces
// it otherwise. An empty PasswordHash keeps the stored one.
func (r *GormRepo) SaveStore(ctx context.Context, s *models.StoreAccount) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.StoreAccount{}).
			Where("username = ? AND id <> ?", s.Username, s.ID).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return domain.ErrConflict
		}

		var existing models.StoreAccount
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", s.ID).First(&existing).Error
		switch {
		case s.ID != "" && err == nil:
			if s.PasswordHash == "" {
				s.PasswordHash = existing.PasswordHash
			}
			return tx.Model(&models.StoreAccount{}).Where("id = ?", s.ID).Updates(map[string]any{
				"name":            s.Name,
				"username":        s.Username,
				"password_hash":   s.PasswordHash,
				"owner_name":      s.OwnerName,
				"owner_last_name": s.OwnerLastName,
				"phone":           s.Phone,
				"address":         s.Address,
				"is_active":       s.IsActive,
			}).Error
		case s.ID == "" || errors.Is(err, gorm.ErrRecordNotFound):
			if s.PasswordHash == "" {
				return fmt.Errorf("%w: password is required", domain.ErrValidation)
			}
			return tx.Create(s).Error
		default:
			return err
		}
	})
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *GormRepo) DeleteStore(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.StoreAccount{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
