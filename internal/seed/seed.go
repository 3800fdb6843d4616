// Package seed loads the demo stores and catalog into an empty database.
package seed

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/furniture_supply/internal/logging"
	"github.com/Skotchmaster/furniture_supply/internal/models"
	"github.com/Skotchmaster/furniture_supply/internal/repo"
	"github.com/Skotchmaster/furniture_supply/internal/service"
)

var stores = []service.StoreInput{
	{ID: "1", Name: "گالری مبل ولیعصر", Username: "mobl1", Password: "123", OwnerName: "محمد", OwnerLastName: "احمدی", Phone: "09121111111", Address: "تهران، ولیعصر", IsActive: true},
	{ID: "2", Name: "دکوراسیون مدرن افق", Username: "decor2", Password: "123", OwnerName: "علی", OwnerLastName: "رضایی", Phone: "09122222222", Address: "کرج، عظیمیه", IsActive: true},
}

var categories = []models.ModelCategory{
	{ID: "cat_1", Name: "مدل ماتینا", IsActive: true},
	{ID: "cat_2", Name: "مدل چستر", IsActive: true},
}

var items = []models.ModelItem{
	{ID: "item_1", CategoryID: "cat_1", Name: "مبل تک نفره مدل ماتینا", BasePrice: 15_000_000, IsActive: true},
	{ID: "item_2", CategoryID: "cat_1", Name: "کاناپه ۳ نفره مدل ماتینا", BasePrice: 45_000_000, IsActive: true},
	{ID: "item_3", CategoryID: "cat_2", Name: "ست کامل ۷ نفره مدل چستر", BasePrice: 120_000_000, IsActive: true},
}

// Demo inserts the demo data when there are no stores and no categories.
// It reports whether anything was written.
func Demo(ctx context.Context, r *repo.GormRepo) (bool, error) {
	l := logging.FromContext(ctx).With("op", "seed.demo")

	existingStores, err := r.ListStores(ctx)
	if err != nil {
		return false, err
	}
	existingCats, err := r.ListCategories(ctx, false)
	if err != nil {
		return false, err
	}
	if len(existingStores) > 0 || len(existingCats) > 0 {
		l.Debug("seed_skipped", "stores", len(existingStores), "categories", len(existingCats))
		return false, nil
	}

	svc := &service.StoreService{Repo: r}
	for _, s := range stores {
		if _, err := svc.Save(ctx, s); err != nil {
			return false, fmt.Errorf("seed store %s: %w", s.Username, err)
		}
	}
	for _, c := range categories {
		if err := r.CreateCategory(ctx, &c); err != nil {
			return false, fmt.Errorf("seed category %s: %w", c.ID, err)
		}
	}
	batch := append([]models.ModelItem(nil), items...)
	if err := r.CreateItems(ctx, batch); err != nil {
		return false, fmt.Errorf("seed items: %w", err)
	}

	l.Info("seed_success", "stores", len(stores), "categories", len(categories), "items", len(batch))
	return true, nil
}
