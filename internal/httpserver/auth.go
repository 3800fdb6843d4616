package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furniture_supply/internal/auth"
	"github.com/Skotchmaster/furniture_supply/internal/logging"
	"github.com/Skotchmaster/furniture_supply/internal/transport"
)

type AuthHTTP struct {
	Svc *auth.Service
}

func (h *AuthHTTP) LoginStore(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login_store")

	var req transport.StoreLoginRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "login_store_failed", err)
	}
	sess, err := h.Svc.LoginStore(ctx, req.Username, req.Password)
	if err != nil {
		return fail(l, "login_store_failed", err)
	}
	h.setCookie(c, sess)

	l.Info("login_store_success", "store_id", sess.StoreID)
	return c.JSON(http.StatusOK, sess)
}

func (h *AuthHTTP) LoginSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login_supplier")

	var req transport.SupplierLoginRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "login_supplier_failed", err)
	}
	sess, err := h.Svc.LoginSupplier(ctx, req.Password)
	if err != nil {
		return fail(l, "login_supplier_failed", err)
	}
	h.setCookie(c, sess)

	l.Info("login_supplier_success")
	return c.JSON(http.StatusOK, sess)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(auth.DeleteCookie(auth.AccessCookie, "/"))
	logging.FromContext(c.Request().Context()).Info("logout_success", "handler", "auth.logout")
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) setCookie(c echo.Context, sess *auth.Session) {
	c.SetCookie(auth.CreateCookie(auth.AccessCookie, sess.Token, "/", time.Unix(sess.ExpiresAt, 0)))
}
