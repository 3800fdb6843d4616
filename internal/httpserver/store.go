package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furniture_supply/internal/logging"
	"github.com/Skotchmaster/furniture_supply/internal/models"
	"github.com/Skotchmaster/furniture_supply/internal/service"
	"github.com/Skotchmaster/furniture_supply/internal/transport"
)

type StoreHTTP struct {
	Svc *service.StoreService
}

func (h *StoreHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.list")

	stores, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_stores_failed", err)
	}
	if stores == nil {
		stores = []models.StoreAccount{}
	}
	return c.JSON(http.StatusOK, map[string]any{"data": stores})
}

func (h *StoreHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.get")

	st, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "get_store_failed", err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *StoreHTTP) Create(c echo.Context) error {
	return h.save(c, "", http.StatusCreated, "store.create")
}

func (h *StoreHTTP) Update(c echo.Context) error {
	return h.save(c, c.Param("id"), http.StatusOK, "store.update")
}

func (h *StoreHTTP) save(c echo.Context, id string, code int, name string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", name)

	var req transport.StoreRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "save_store_failed", err)
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	st, err := h.Svc.Save(ctx, service.StoreInput{
		ID:            id,
		Name:          req.Name,
		Username:      req.Username,
		Password:      req.Password,
		OwnerName:     req.OwnerName,
		OwnerLastName: req.OwnerLastName,
		Phone:         req.Phone,
		Address:       req.Address,
		IsActive:      active,
	})
	if err != nil {
		return fail(l, "save_store_failed", err)
	}

	l.Info("save_store_success", "store_id", st.ID)
	return c.JSON(code, st)
}

func (h *StoreHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return fail(l, "delete_store_failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}
