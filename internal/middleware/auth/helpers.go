package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furniture_supply/internal/auth"
)

const (
	KeyStoreID   = "store_id"
	KeyStoreName = "store_name"
	KeyRole      = "role"
)

func setUserContext(c echo.Context, claims *auth.Claims) {
	c.Set(KeyRole, claims.Role)
	if claims.Role == auth.RoleStore {
		c.Set(KeyStoreID, claims.Subject)
		c.Set(KeyStoreName, claims.StoreName)
	}
}

func StoreID(c echo.Context) string {
	v, _ := c.Get(KeyStoreID).(string)
	return v
}

func StoreName(c echo.Context) string {
	v, _ := c.Get(KeyStoreName).(string)
	return v
}

func Role(c echo.Context) auth.Role {
	v, _ := c.Get(KeyRole).(auth.Role)
	return v
}
