package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furniture_supply/internal/logging"
	"github.com/Skotchmaster/furniture_supply/internal/service"
	"github.com/Skotchmaster/furniture_supply/internal/transport"
)

type SettingHTTP struct {
	Svc *service.PrintService
}

func (h *SettingHTTP) GetLogo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "setting.get_logo")

	logo, err := h.Svc.Logo(ctx)
	if err != nil {
		return fail(l, "get_logo_failed", err)
	}
	return c.JSON(http.StatusOK, transport.LogoRequest{Logo: logo})
}

func (h *SettingHTTP) PutLogo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "setting.put_logo")

	var req transport.LogoRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "put_logo_failed", err)
	}
	if err := h.Svc.SetLogo(ctx, req.Logo); err != nil {
		return fail(l, "put_logo_failed", err)
	}

	l.Info("put_logo_success")
	return c.NoContent(http.StatusNoContent)
}
