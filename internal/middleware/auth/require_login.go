package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furniture_supply/internal/auth"
	"github.com/Skotchmaster/furniture_supply/internal/clock"
)

type Middleware struct {
	Secret []byte
	Clock  clock.Clock
}

func New(secret []byte, clk clock.Clock) *Middleware {
	if clk == nil {
		clk = clock.System{}
	}
	return &Middleware{Secret: secret, Clock: clk}
}

func (m *Middleware) RequireStore(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(auth.RoleStore, next)
}

func (m *Middleware) RequireSupplier(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(auth.RoleSupplier, next)
}

func (m *Middleware) require(role auth.Role, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}
		claims, err := auth.ClaimsFromToken(raw, m.Secret, m.Clock.Now())
		if err != nil {
			c.SetCookie(auth.DeleteCookie(auth.AccessCookie, "/"))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}
		if claims.Role != role {
			return echo.NewHTTPError(http.StatusForbidden, string(role)+" access required")
		}
		setUserContext(c, claims)
		return next(c)
	}
}

// tokenFromRequest prefers the cookie over an Authorization bearer header.
func tokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(auth.AccessCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if v, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
