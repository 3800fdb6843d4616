package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/events"
	"github.com/Skotchmaster/furniture_supply/internal/logging"
	"github.com/Skotchmaster/furniture_supply/internal/models"
	"github.com/Skotchmaster/furniture_supply/internal/repo"
	"github.com/Skotchmaster/furniture_supply/internal/search"
)

// CatalogService owns categories and items. Index may be nil, in which case
// search runs against storage.
type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Index  search.Index
}

func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]models.ModelCategory, error) {
	return s.Repo.ListCategories(ctx, activeOnly)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.ModelCategory, error) {
	name, err := domain.ValidateName(name)
	if err != nil {
		return nil, err
	}
	cat := &models.ModelCategory{Name: name, IsActive: true}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicCatalog, cat.ID, map[string]any{
		"type": "category_created", "category_id": cat.ID, "name": cat.Name,
	})
	return cat, nil
}

// RenameCategory also rewrites the names of matching items in the category.
func (s *CatalogService) RenameCategory(ctx context.Context, id, name string) (*models.ModelCategory, []models.ModelItem, error) {
	name, err := domain.ValidateName(name)
	if err != nil {
		return nil, nil, err
	}
	cat, renamed, err := s.Repo.RenameCategory(ctx, id, name)
	if err != nil {
		return nil, nil, err
	}
	logging.FromContext(ctx).Info("category_renamed", "category_id", id, "renamed_items", len(renamed))
	publish(ctx, s.Events, events.TopicCatalog, id, map[string]any{
		"type": "category_renamed", "category_id": id, "name": name, "renamed_items": len(renamed),
	})
	s.reindexCategory(ctx, cat)
	return cat, renamed, nil
}

func (s *CatalogService) ToggleCategory(ctx context.Context, id string) (*models.ModelCategory, error) {
	cat, err := s.Repo.ToggleCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicCatalog, id, map[string]any{
		"type": "category_toggled", "category_id": id, "is_active": cat.IsActive,
	})
	s.reindexCategory(ctx, cat)
	return cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	itemIDs, err := s.Repo.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	publish(ctx, s.Events, events.TopicCatalog, id, map[string]any{
		"type": "category_deleted", "category_id": id, "item_ids": itemIDs,
	})
	for _, itemID := range itemIDs {
		s.unindex(ctx, itemID)
	}
	return nil
}

// ListItems with activeOnly hides an inactive category as if it did not exist.
func (s *CatalogService) ListItems(ctx context.Context, categoryID string, activeOnly bool) ([]models.ModelItem, error) {
	if activeOnly && categoryID != "" {
		cat, err := s.Repo.GetCategory(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if !cat.IsActive {
			return nil, domain.ErrNotFound
		}
	}
	return s.Repo.ListItems(ctx, categoryID, activeOnly)
}

type CreateItem struct {
	CategoryID string
	Name       string
	BasePrice  int64
	IsActive   *bool
}

// CreateItem does not check that the category exists.
func (s *CatalogService) CreateItem(ctx context.Context, in CreateItem) (*models.ModelItem, error) {
	name, err := domain.ValidateName(in.Name)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePrice(in.BasePrice); err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	item := &models.ModelItem{CategoryID: in.CategoryID, Name: name, BasePrice: in.BasePrice, IsActive: active}
	if err := s.Repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.itemEvent(ctx, "item_created", item)
	s.reindexItem(ctx, item)
	return item, nil
}

// BatchCreateItems creates one zero-priced item per non-blank line, named
// "<line> <category name>".
func (s *CatalogService) BatchCreateItems(ctx context.Context, categoryID string, lines []string) ([]models.ModelItem, error) {
	var catName string
	cat, err := s.Repo.GetCategory(ctx, categoryID)
	switch {
	case err == nil:
		catName = cat.Name
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	names := domain.BatchItemNames(lines, catName)
	items := make([]models.ModelItem, 0, len(names))
	for _, n := range names {
		items = append(items, models.ModelItem{CategoryID: categoryID, Name: n, IsActive: true})
	}
	if err := s.Repo.CreateItems(ctx, items); err != nil {
		return nil, err
	}
	for i := range items {
		s.itemEvent(ctx, "item_created", &items[i])
		s.reindexItem(ctx, &items[i])
	}
	return items, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, item models.ModelItem) (*models.ModelItem, error) {
	name, err := domain.ValidateName(item.Name)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePrice(item.BasePrice); err != nil {
		return nil, err
	}
	item.Name = name
	out, err := s.Repo.UpdateItem(ctx, &item)
	if err != nil {
		return nil, err
	}
	s.itemEvent(ctx, "item_updated", out)
	s.reindexItem(ctx, out)
	return out, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	if err := s.Repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.Events, events.TopicCatalog, id, map[string]any{"type": "item_deleted", "item_id": id})
	s.unindex(ctx, id)
	return nil
}

func (s *CatalogService) SetActiveForMany(ctx context.Context, ids []string, active bool) (int64, error) {
	n, err := s.Repo.SetItemsActive(ctx, ids, active)
	if err != nil {
		return 0, err
	}
	publish(ctx, s.Events, events.TopicCatalog, "bulk", map[string]any{
		"type": "items_active_set", "item_ids": ids, "is_active": active, "affected": n,
	})
	if s.Index != nil {
		items, err := s.Repo.GetItemsByIDs(ctx, ids)
		if err != nil {
			logging.FromContext(ctx).Warn("reindex_failed", "error", err)
		}
		for i := range items {
			s.reindexItem(ctx, &items[i])
		}
	}
	return n, nil
}

func (s *CatalogService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	n, err := s.Repo.DeleteItems(ctx, ids)
	if err != nil {
		return 0, err
	}
	publish(ctx, s.Events, events.TopicCatalog, "bulk", map[string]any{
		"type": "items_deleted", "item_ids": ids, "affected": n,
	})
	for _, id := range ids {
		s.unindex(ctx, id)
	}
	return n, nil
}

type SearchResult struct {
	Total int64              `json:"total"`
	Items []models.ModelItem `json:"items"`
}

// SearchItems prefers the search index and falls back to storage when the
// index is absent or failing.
func (s *CatalogService) SearchItems(ctx context.Context, query string, activeOnly bool, page, size int) (*SearchResult, error) {
	from, limit := search.Page(page, size)
	if s.Index != nil && query != "" {
		total, ids, err := s.Index.SearchItems(ctx, query, activeOnly, from, limit)
		if err == nil {
			items, err := s.hydrate(ctx, ids, activeOnly)
			if err != nil {
				return nil, err
			}
			return &SearchResult{Total: total, Items: items}, nil
		}
		logging.FromContext(ctx).Warn("search_index_failed", "query", query, "error", err)
	}
	total, items, err := s.Repo.SearchItems(ctx, query, activeOnly, from, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ModelItem{}
	}
	return &SearchResult{Total: total, Items: items}, nil
}

// hydrate loads the current rows for index hits, keeping hit order.
func (s *CatalogService) hydrate(ctx context.Context, ids []string, activeOnly bool) ([]models.ModelItem, error) {
	items, err := s.Repo.GetItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.ModelItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	out := make([]models.ModelItem, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok || (activeOnly && !it.IsActive) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// Resolve returns the category and item a store may order right now.
func (s *CatalogService) Resolve(ctx context.Context, itemID string) (models.ModelCategory, models.ModelItem, error) {
	item, err := s.Repo.GetItem(ctx, itemID)
	if err != nil {
		return models.ModelCategory{}, models.ModelItem{}, err
	}
	cat, err := s.Repo.GetCategory(ctx, item.CategoryID)
	if err != nil {
		return models.ModelCategory{}, models.ModelItem{}, err
	}
	if !item.IsActive || !cat.IsActive {
		return models.ModelCategory{}, models.ModelItem{}, domain.ErrNotFound
	}
	return *cat, *item, nil
}

func (s *CatalogService) itemEvent(ctx context.Context, typ string, item *models.ModelItem) {
	publish(ctx, s.Events, events.TopicCatalog, item.ID, map[string]any{
		"type":        typ,
		"item_id":     item.ID,
		"category_id": item.CategoryID,
		"name":        item.Name,
		"base_price":  item.BasePrice,
		"is_active":   item.IsActive,
	})
}

func (s *CatalogService) reindexItem(ctx context.Context, item *models.ModelItem) {
	if s.Index == nil {
		return
	}
	var cat models.ModelCategory
	if c, err := s.Repo.GetCategory(ctx, item.CategoryID); err == nil {
		cat = *c
	}
	if err := s.Index.IndexItem(ctx, *item, cat); err != nil {
		logging.FromContext(ctx).Warn("index_item_failed", "item_id", item.ID, "error", err)
	}
}

func (s *CatalogService) reindexCategory(ctx context.Context, cat *models.ModelCategory) {
	if s.Index == nil {
		return
	}
	items, err := s.Repo.ListItems(ctx, cat.ID, false)
	if err != nil {
		logging.FromContext(ctx).Warn("reindex_failed", "category_id", cat.ID, "error", err)
		return
	}
	for _, it := range items {
		if err := s.Index.IndexItem(ctx, it, *cat); err != nil {
			logging.FromContext(ctx).Warn("index_item_failed", "item_id", it.ID, "error", err)
		}
	}
}

func (s *CatalogService) unindex(ctx context.Context, id string) {
	if s.Index == nil {
		return
	}
	if err := s.Index.DeleteItem(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("unindex_item_failed", "item_id", id, "error", err)
	}
}
