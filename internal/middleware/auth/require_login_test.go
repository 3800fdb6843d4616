package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furniture_supply/internal/auth"
	"github.com/Skotchmaster/furniture_supply/internal/clock"
)

func TestRequireStoreSetsContext(t *testing.T) {
	secret := []byte("s")
	tok, _, err := auth.IssueToken(secret, auth.RoleStore, "1", "مبل یک", time.Now())
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: tok})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID, gotName string
	h := New(secret, nil).RequireStore(func(c echo.Context) error {
		gotID, gotName = StoreID(c), StoreName(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	require.Equal(t, "1", gotID)
	require.Equal(t, "مبل یک", gotName)
	require.Equal(t, auth.RoleStore, Role(c))
}

func TestRequireRejects(t *testing.T) {
	secret := []byte("s")
	supplier, _, err := auth.IssueToken(secret, auth.RoleSupplier, auth.SupplierSubject, "", time.Now())
	require.NoError(t, err)
	foreign, _, err := auth.IssueToken([]byte("other"), auth.RoleStore, "1", "x", time.Now())
	require.NoError(t, err)
	expired, _, err := auth.IssueToken(secret, auth.RoleStore, "1", "x", time.Now().Add(-2*auth.AccessTTL))
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong role", "Bearer " + supplier, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			err := New(secret, nil).RequireStore(func(echo.Context) error { return nil })(c)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			require.Equal(t, tc.want, he.Code)
		})
	}
}

func TestRequireUsesInjectedClock(t *testing.T) {
	secret := []byte("s")
	clk := clock.NewManual(time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC))
	tok, _, err := auth.IssueToken(secret, auth.RoleSupplier, auth.SupplierSubject, "", clk.Now())
	require.NoError(t, err)

	call := func(m *Middleware) int {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
		rec := httptest.NewRecorder()
		err := m.RequireSupplier(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(e.NewContext(req, rec))
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he.Code
		}
		require.NoError(t, err)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, call(New(secret, clk)))
	require.Equal(t, http.StatusUnauthorized, call(New(secret, nil)), "wall clock is past the token expiry")

	clk.Advance(auth.AccessTTL + time.Second)
	require.Equal(t, http.StatusUnauthorized, call(New(secret, clk)))
}
