package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furniture_supply/internal/config"
	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/logging"
	mw "github.com/Skotchmaster/furniture_supply/internal/middleware/auth"
	"github.com/Skotchmaster/furniture_supply/internal/models"
	"github.com/Skotchmaster/furniture_supply/internal/service"
	"github.com/Skotchmaster/furniture_supply/internal/transport"
)

type OrderHTTP struct {
	Svc     *service.OrderService
	Printer *service.PrintService
}

// Place submits the cart, or the given lines when the body carries any.
func (h *OrderHTTP) Place(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "place_order_failed", err)
	}
	in := service.OrderInput{CustomerFields: req.Fields(), OrderDescription: req.OrderDescription}
	storeID, storeName := mw.StoreID(c), mw.StoreName(c)

	var (
		o   *models.Order
		err error
	)
	if len(req.Lines) > 0 {
		o, err = h.Svc.Place(ctx, storeID, storeName, in, transport.LineEdits(req.Lines))
	} else {
		o, err = h.Svc.PlaceFromCart(ctx, storeID, storeName, in)
	}
	if err != nil {
		return fail(l, "place_order_failed", err)
	}

	l.Info("place_order_success", "order_id", o.ID, "code", o.Code)
	return c.JSON(http.StatusCreated, transport.NewOrderView(o, h.Svc.Now()))
}

func (h *OrderHTTP) StoreList(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.store_list")

	orders, err := h.Svc.List(ctx, []string{mw.StoreID(c)})
	if err != nil {
		return fail(l, "list_orders_failed", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": transport.NewOrderViews(orders, h.Svc.Now())})
}

func (h *OrderHTTP) StoreGet(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.store_get")

	o, err := h.Svc.GetForStore(ctx, mw.StoreID(c), c.Param("id"))
	if err != nil {
		return fail(l, "get_order_failed", err)
	}
	return c.JSON(http.StatusOK, transport.NewOrderView(o, h.Svc.Now()))
}

func (h *OrderHTTP) StoreUpdate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.store_update")

	var req transport.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_order_failed", err)
	}
	o, err := h.Svc.UpdateByStore(ctx, mw.StoreID(c), c.Param("id"), service.StoreEditInput{
		OrderInput: service.OrderInput{CustomerFields: req.Fields(), OrderDescription: req.OrderDescription},
		Lines:      transport.LineEdits(req.Lines),
	})
	if err != nil {
		return fail(l, "update_order_failed", err)
	}

	l.Info("update_order_success", "order_id", o.ID, "total", o.TotalPriceSnapshot)
	return c.JSON(http.StatusOK, transport.NewOrderView(o, h.Svc.Now()))
}

// List accepts ?store_ids=a,b to narrow the supplier's view. The response
// carries per-status counts for the dashboard.
func (h *OrderHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	orders, err := h.Svc.List(ctx, config.CSV(c.QueryParam("store_ids")))
	if err != nil {
		return fail(l, "list_orders_failed", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":   transport.NewOrderViews(orders, h.Svc.Now()),
		"counts": domain.StatusCounts(orders),
	})
}

func (h *OrderHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	o, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "get_order_failed", err)
	}
	return c.JSON(http.StatusOK, transport.NewOrderView(o, h.Svc.Now()))
}

func (h *OrderHTTP) Correct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.correct")

	var req transport.CorrectionRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "correct_order_failed", err)
	}
	o, err := h.Svc.CorrectBySupplier(ctx, c.Param("id"), req.Correction())
	if err != nil {
		return fail(l, "correct_order_failed", err)
	}

	l.Info("correct_order_success", "order_id", o.ID)
	return c.JSON(http.StatusOK, transport.NewOrderView(o, h.Svc.Now()))
}

func (h *OrderHTTP) ChangeStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.change_status")

	var req transport.StatusRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "change_status_failed", err)
	}
	o, err := h.Svc.ChangeStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return fail(l, "change_status_failed", err)
	}
	return c.JSON(http.StatusOK, transport.NewOrderView(o, h.Svc.Now()))
}

const printPlaceholder = `<!doctype html><html lang="fa" dir="rtl"><body><p>چاپ فاکتور در حال حاضر ممکن نیست.</p></body></html>`

// Print renders the invoice. A renderer failure still answers with a
// placeholder page.
func (h *OrderHTTP) Print(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.print")

	body, err := h.Printer.Invoice(ctx, c.Param("id"))
	if err != nil {
		code := statusOf(err)
		if code == http.StatusBadGateway {
			l.Error("print_order_failed", "status", code, "error", err)
			return c.HTML(code, printPlaceholder)
		}
		return fail(l, "print_order_failed", err)
	}
	return c.HTMLBlob(http.StatusOK, body)
}
