package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/models"
)

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.ModelCategory) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *GormRepo) GetCategory(ctx context.Context, id string) (*models.ModelCategory, error) {
	var cat models.ModelCategory
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&cat).Error; err != nil {
		return nil, notFound(err)
	}
	return &cat, nil
}

func (r *GormRepo) ListCategories(ctx context.Context, activeOnly bool) ([]models.ModelCategory, error) {
	q := r.DB.WithContext(ctx).Model(&models.ModelCategory{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var cats []models.ModelCategory
	if err := q.Order("created_at ASC").Order("id ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// RenameCategory renames the category and rewrites the names of its items
// that contain the old name. It returns the items whose name changed.
func (r *GormRepo) RenameCategory(ctx context.Context, id, newName string) (*models.ModelCategory, []models.ModelItem, error) {
	var (
		cat     models.ModelCategory
		renamed []models.ModelItem
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&cat).Error; err != nil {
			return notFound(err)
		}
		oldName := cat.Name
		if err := tx.Model(&cat).Update("name", newName).Error; err != nil {
			return err
		}
		cat.Name = newName

		var items []models.ModelItem
		if err := tx.Where("category_id = ?", id).Order("created_at ASC").Find(&items).Error; err != nil {
			return err
		}
		for _, it := range items {
			name, ok := domain.RenamedItemName(it.Name, oldName, newName)
			if !ok {
				continue
			}
			if err := tx.Model(&models.ModelItem{}).Where("id = ?", it.ID).Update("name", name).Error; err != nil {
				return err
			}
			it.Name = name
			renamed = append(renamed, it)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &cat, renamed, nil
}

func (r *GormRepo) ToggleCategory(ctx context.Context, id string) (*models.ModelCategory, error) {
	var cat models.ModelCategory
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&cat).Error; err != nil {
			return notFound(err)
		}
		cat.IsActive = !cat.IsActive
		return tx.Model(&models.ModelCategory{}).Where("id = ?", id).Update("is_active", cat.IsActive).Error
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes the category and every item in it. Order lines
// keep their snapshots.
func (r *GormRepo) DeleteCategory(ctx context.Context, id string) ([]string, error) {
	var itemIDs []string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.ModelCategory{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Model(&models.ModelItem{}).Where("category_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		return tx.Where("category_id = ?", id).Delete(&models.ModelItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return itemIDs, nil
}

func (r *GormRepo) CreateItem(ctx context.Context, item *models.ModelItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

// CreateItems inserts items in one statement, keeping their order.
func (r *GormRepo) CreateItems(ctx context.Context, items []models.ModelItem) error {
	if len(items) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range items {
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		}
	}
	return r.DB.WithContext(ctx).Create(&items).Error
}

func (r *GormRepo) GetItem(ctx context.Context, id string) (*models.ModelItem, error) {
	var item models.ModelItem
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *GormRepo) GetItemsByIDs(ctx context.Context, ids []string) ([]models.ModelItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.ModelItem
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListItems lists items of categoryID, or of every category when it is empty.
func (r *GormRepo) ListItems(ctx context.Context, categoryID string, activeOnly bool) ([]models.ModelItem, error) {
	q := r.DB.WithContext(ctx).Model(&models.ModelItem{})
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var items []models.ModelItem
	if err := q.Order("created_at ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem replaces name, base price and active flag.
func (r *GormRepo) UpdateItem(ctx context.Context, item *models.ModelItem) (*models.ModelItem, error) {
	var out models.ModelItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ModelItem{}).Where("id = ?", item.ID).Updates(map[string]any{
			"name":       item.Name,
			"base_price": item.BasePrice,
			"is_active":  item.IsActive,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("id = ?", item.ID).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GormRepo) DeleteItem(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.ModelItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetItemsActive ignores ids that do not exist.
func (r *GormRepo) SetItemsActive(ctx context.Context, ids []string, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).Model(&models.ModelItem{}).Where("id IN ?", ids).Update("is_active", active)
	return res.RowsAffected, res.Error
}

func (r *GormRepo) DeleteItems(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).Where("id IN ?", ids).Delete(&models.ModelItem{})
	return res.RowsAffected, res.Error
}

// SearchItems is a case-insensitive substring match on item names. With
// activeOnly set, items of inactive categories are left out too.
func (r *GormRepo) SearchItems(ctx context.Context, query string, activeOnly bool, offset, limit int) (int64, []models.ModelItem, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	base := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&models.ModelItem{}).Where("LOWER(name) LIKE ?", pattern)
		if activeOnly {
			active := r.DB.Model(&models.ModelCategory{}).Select("id").Where("is_active = ?", true)
			q = q.Where("is_active = ?", true).Where("category_id IN (?)", active)
		}
		return q
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var items []models.ModelItem
	if err := base().Order("created_at ASC").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}
