package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furniture_supply/internal/config"
	"github.com/Skotchmaster/furniture_supply/internal/logging"
	mw "github.com/Skotchmaster/furniture_supply/internal/middleware/auth"
	"github.com/Skotchmaster/furniture_supply/internal/service"
	"github.com/Skotchmaster/furniture_supply/internal/transport"
)

type ReportHTTP struct {
	Svc       *service.ReportService
	Analytics *service.AnalyticsService
}

func reportQuery(c echo.Context) service.ReportQuery {
	return service.ReportQuery{
		StartDate:  c.QueryParam("start_date"),
		EndDate:    c.QueryParam("end_date"),
		StoreIDs:   config.CSV(c.QueryParam("store_ids")),
		SortBy:     c.QueryParam("sort_by"),
		ReportType: c.QueryParam("report_type"),
	}
}

func (h *ReportHTTP) Supplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "report.supplier")

	rep, err := h.Svc.Run(ctx, reportQuery(c))
	if err != nil {
		return fail(l, "report_failed", err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *ReportHTTP) Store(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "report.store")

	rep, err := h.Svc.RunForStore(ctx, mw.StoreID(c), reportQuery(c))
	if err != nil {
		return fail(l, "report_failed", err)
	}
	return c.JSON(http.StatusOK, rep)
}

// Analyze always answers 200 unless the filter itself is invalid.
func (h *ReportHTTP) Analyze(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "report.analyze")

	var req transport.AnalyticsRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "analyze_failed", err)
	}
	text, err := h.Analytics.Analyze(ctx, service.ReportQuery{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		StoreIDs:  req.StoreIDs,
	})
	if err != nil {
		return fail(l, "analyze_failed", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"analysis": text})
}
