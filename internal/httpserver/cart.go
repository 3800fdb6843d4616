package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furniture_supply/internal/logging"
	mw "github.com/Skotchmaster/furniture_supply/internal/middleware/auth"
	"github.com/Skotchmaster/furniture_supply/internal/service"
	"github.com/Skotchmaster/furniture_supply/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	cart, err := h.Svc.Get(ctx, mw.StoreID(c))
	if err != nil {
		return fail(l, "get_cart_failed", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_line")

	var req transport.AddCartLineRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "add_cart_line_failed", err)
	}
	line, err := h.Svc.Add(ctx, mw.StoreID(c), service.AddToCart{
		ItemID:      req.ItemID,
		Quantity:    req.Quantity,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		return fail(l, "add_cart_line_failed", err)
	}

	l.Info("add_cart_line_success", "line_id", line.ID)
	return c.JSON(http.StatusCreated, line)
}

func (h *CartHTTP) ChangeQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.change_quantity")

	var req transport.ChangeQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "change_quantity_failed", err)
	}
	line, err := h.Svc.ChangeQuantity(ctx, mw.StoreID(c), c.Param("id"), req.Delta)
	if err != nil {
		return fail(l, "change_quantity_failed", err)
	}
	return c.JSON(http.StatusOK, line)
}

func (h *CartHTTP) RemoveLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_line")

	if err := h.Svc.Remove(ctx, mw.StoreID(c), c.Param("id")); err != nil {
		return fail(l, "remove_cart_line_failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Svc.Clear(ctx, mw.StoreID(c)); err != nil {
		return fail(l, "clear_cart_failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}
