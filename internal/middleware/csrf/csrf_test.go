package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newServer() *echo.Echo {
	e := echo.New()
	e.Use(Middleware(Config{AuthCookie: "accessToken", SkipPaths: []string{"/login"}}))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/orders", ok)
	e.POST("/orders", ok)
	e.POST("/login", ok)
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCSRF(t *testing.T) {
	e := newServer()
	session := &http.Cookie{Name: "accessToken", Value: "jwt"}

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Header().Get("X-CSRF-Token")
	require.NotEmpty(t, token)
	xsrf := &http.Cookie{Name: "XSRF-TOKEN", Value: token}

	t.Run("cookie session without header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.AddCookie(session)
		req.AddCookie(xsrf)
		require.Equal(t, http.StatusForbidden, serve(e, req).Code)
	})

	t.Run("cookie session with matching header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.AddCookie(session)
		req.AddCookie(xsrf)
		req.Header.Set("X-CSRF-Token", token)
		require.Equal(t, http.StatusOK, serve(e, req).Code)
	})

	t.Run("bearer client", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer jwt")
		require.Equal(t, http.StatusOK, serve(e, req).Code)
	})

	t.Run("skipped path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.AddCookie(session)
		require.Equal(t, http.StatusOK, serve(e, req).Code)
	})
}
