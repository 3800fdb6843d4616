package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/logging"
	"github.com/Skotchmaster/furniture_supply/internal/models"
	"github.com/Skotchmaster/furniture_supply/internal/search"
	"github.com/Skotchmaster/furniture_supply/internal/service"
	"github.com/Skotchmaster/furniture_supply/internal/transport"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

// Store-facing reads see active categories and items only.

func (h *CatalogHTTP) StoreCategories(c echo.Context) error {
	return h.listCategories(c, true, "catalog.store_categories")
}

func (h *CatalogHTTP) StoreItems(c echo.Context) error {
	return h.listItems(c, true, "catalog.store_items")
}

func (h *CatalogHTTP) StoreSearch(c echo.Context) error {
	return h.search(c, true, "catalog.store_search")
}

func (h *CatalogHTTP) Categories(c echo.Context) error {
	return h.listCategories(c, false, "catalog.categories")
}

func (h *CatalogHTTP) CategoryItems(c echo.Context) error {
	return h.listItems(c, false, "catalog.category_items")
}

// Items lists every item, optionally filtered by ?q=.
func (h *CatalogHTTP) Items(c echo.Context) error {
	return h.search(c, false, "catalog.items")
}

func (h *CatalogHTTP) listCategories(c echo.Context, activeOnly bool, name string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", name)

	cats, err := h.Svc.ListCategories(ctx, activeOnly)
	if err != nil {
		return fail(l, "list_categories_failed", err)
	}
	if cats == nil {
		cats = []models.ModelCategory{}
	}
	return c.JSON(http.StatusOK, map[string]any{"data": cats})
}

func (h *CatalogHTTP) listItems(c echo.Context, activeOnly bool, name string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", name)

	items, err := h.Svc.ListItems(ctx, c.Param("id"), activeOnly)
	if err != nil {
		return fail(l, "list_items_failed", err)
	}
	if items == nil {
		items = []models.ModelItem{}
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

func (h *CatalogHTTP) search(c echo.Context, activeOnly bool, name string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", name)

	q := strings.TrimSpace(c.QueryParam("q"))
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), search.DefaultPageSize)

	res, err := h.Svc.SearchItems(ctx, q, activeOnly, page, size)
	if err != nil {
		return fail(l, "search_items_failed", err)
	}
	_, limit := search.Page(page, size)

	l.Info("search_items_success", "query", q, "total", res.Total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": res.Items,
		"meta": pageMeta(page, limit, res.Total),
	})
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_category")

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_category_failed", err)
	}
	cat, err := h.Svc.CreateCategory(ctx, req.Name)
	if err != nil {
		return fail(l, "create_category_failed", err)
	}

	l.Info("create_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

// RenameCategory also renames the items whose names embed the old name.
func (h *CatalogHTTP) RenameCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.rename_category")

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "rename_category_failed", err)
	}
	cat, renamed, err := h.Svc.RenameCategory(ctx, c.Param("id"), req.Name)
	if err != nil {
		return fail(l, "rename_category_failed", err)
	}
	if renamed == nil {
		renamed = []models.ModelItem{}
	}

	l.Info("rename_category_success", "category_id", cat.ID, "renamed_items", len(renamed))
	return c.JSON(http.StatusOK, map[string]any{"category": cat, "renamed_items": renamed})
}

func (h *CatalogHTTP) ToggleCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.toggle_category")

	cat, err := h.Svc.ToggleCategory(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "toggle_category_failed", err)
	}

	l.Info("toggle_category_success", "category_id", cat.ID, "is_active", cat.IsActive)
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_category")

	if err := h.Svc.DeleteCategory(ctx, c.Param("id")); err != nil {
		return fail(l, "delete_category_failed", err)
	}

	l.Info("delete_category_success", "category_id", c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) BatchCreateItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.batch_create_items")

	var req transport.BatchItemsRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "batch_create_items_failed", err)
	}
	lines := req.Lines
	if req.Text != "" {
		lines = append(lines, domain.SplitLines(req.Text)...)
	}
	items, err := h.Svc.BatchCreateItems(ctx, c.Param("id"), lines)
	if err != nil {
		return fail(l, "batch_create_items_failed", err)
	}

	l.Info("batch_create_items_success", "category_id", c.Param("id"), "created", len(items))
	return c.JSON(http.StatusCreated, map[string]any{"data": items})
}

func (h *CatalogHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_item")

	var req transport.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_item_failed", err)
	}
	item, err := h.Svc.CreateItem(ctx, service.CreateItem{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		BasePrice:  req.BasePrice,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return fail(l, "create_item_failed", err)
	}

	l.Info("create_item_success", "item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CatalogHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_item")

	var req transport.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_item_failed", err)
	}
	item, err := h.Svc.UpdateItem(ctx, models.ModelItem{
		ID:        c.Param("id"),
		Name:      req.Name,
		BasePrice: req.BasePrice,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return fail(l, "update_item_failed", err)
	}

	l.Info("update_item_success", "item_id", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_item")

	if err := h.Svc.DeleteItem(ctx, c.Param("id")); err != nil {
		return fail(l, "delete_item_failed", err)
	}

	l.Info("delete_item_success", "item_id", c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) BulkActive(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.bulk_active")

	var req transport.BulkActiveRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "bulk_active_failed", err)
	}
	n, err := h.Svc.SetActiveForMany(ctx, req.IDs, req.IsActive)
	if err != nil {
		return fail(l, "bulk_active_failed", err)
	}

	l.Info("bulk_active_success", "affected", n)
	return c.JSON(http.StatusOK, map[string]any{"affected": n})
}

func (h *CatalogHTTP) BulkDelete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.bulk_delete")

	var req transport.BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "bulk_delete_failed", err)
	}
	n, err := h.Svc.DeleteMany(ctx, req.IDs)
	if err != nil {
		return fail(l, "bulk_delete_failed", err)
	}

	l.Info("bulk_delete_success", "affected", n)
	return c.JSON(http.StatusOK, map[string]any{"affected": n})
}
