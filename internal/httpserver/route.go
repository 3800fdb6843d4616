package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/furniture_supply/internal/auth"
	"github.com/Skotchmaster/furniture_supply/internal/clock"
	mw "github.com/Skotchmaster/furniture_supply/internal/middleware/auth"
	"github.com/Skotchmaster/furniture_supply/internal/middleware/csrf"
)

type Deps struct {
	DB        *gorm.DB
	JWTSecret []byte
	Clock     clock.Clock

	Auth    *AuthHTTP
	Catalog *CatalogHTTP
	Cart    *CartHTTP
	Orders  *OrderHTTP
	Reports *ReportHTTP
	Stores  *StoreHTTP
	Setting *SettingHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", d.ready)

	authMW := mw.New(d.JWTSecret, d.Clock)
	api := e.Group("/api/v1", csrf.Middleware(csrf.Config{
		AuthCookie: auth.AccessCookie,
		SkipPaths: []string{
			"/api/v1/auth/store/login",
			"/api/v1/auth/supplier/login",
			"/api/v1/auth/logout",
		},
	}))

	login := api.Group("/auth")
	login.POST("/store/login", d.Auth.LoginStore)
	login.POST("/supplier/login", d.Auth.LoginSupplier)
	login.POST("/logout", d.Auth.Logout)

	store := api.Group("/store", authMW.RequireStore)
	store.GET("/categories", d.Catalog.StoreCategories)
	store.GET("/categories/:id/items", d.Catalog.StoreItems)
	store.GET("/items/search", d.Catalog.StoreSearch)
	store.GET("/cart", d.Cart.Get)
	store.POST("/cart/lines", d.Cart.AddLine)
	store.PATCH("/cart/lines/:id", d.Cart.ChangeQuantity)
	store.DELETE("/cart/lines/:id", d.Cart.RemoveLine)
	store.DELETE("/cart", d.Cart.Clear)
	store.POST("/orders", d.Orders.Place)
	store.GET("/orders", d.Orders.StoreList)
	store.GET("/orders/:id", d.Orders.StoreGet)
	store.PUT("/orders/:id", d.Orders.StoreUpdate)
	store.GET("/reports", d.Reports.Store)

	sup := api.Group("/supplier", authMW.RequireSupplier)
	sup.GET("/categories", d.Catalog.Categories)
	sup.POST("/categories", d.Catalog.CreateCategory)
	sup.GET("/categories/:id/items", d.Catalog.CategoryItems)
	sup.PATCH("/categories/:id", d.Catalog.RenameCategory)
	sup.POST("/categories/:id/toggle", d.Catalog.ToggleCategory)
	sup.DELETE("/categories/:id", d.Catalog.DeleteCategory)
	sup.POST("/categories/:id/items/batch", d.Catalog.BatchCreateItems)
	sup.GET("/items", d.Catalog.Items)
	sup.POST("/items", d.Catalog.CreateItem)
	sup.PUT("/items/:id", d.Catalog.UpdateItem)
	sup.DELETE("/items/:id", d.Catalog.DeleteItem)
	sup.POST("/items/bulk/active", d.Catalog.BulkActive)
	sup.POST("/items/bulk/delete", d.Catalog.BulkDelete)

	sup.GET("/orders", d.Orders.List)
	sup.GET("/orders/:id", d.Orders.Get)
	sup.PATCH("/orders/:id", d.Orders.Correct)
	sup.POST("/orders/:id/status", d.Orders.ChangeStatus)
	sup.GET("/orders/:id/print", d.Orders.Print)

	sup.GET("/reports", d.Reports.Supplier)
	sup.POST("/analytics", d.Reports.Analyze)

	sup.GET("/stores", d.Stores.List)
	sup.POST("/stores", d.Stores.Create)
	sup.GET("/stores/:id", d.Stores.Get)
	sup.PUT("/stores/:id", d.Stores.Update)
	sup.DELETE("/stores/:id", d.Stores.Delete)

	sup.GET("/logo", d.Setting.GetLogo)
	sup.PUT("/logo", d.Setting.PutLogo)
}

func (d *Deps) ready(c echo.Context) error {
	if d.DB == nil {
		return c.NoContent(http.StatusOK)
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}
