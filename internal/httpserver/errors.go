package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
)

// statusOf maps domain errors to HTTP codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrEditWindowExpired):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err under event and converts it into an echo error. Client errors
// carry the domain message, server errors a generic one.
func fail(l *slog.Logger, event string, err error) error {
	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		l.Error(event, "status", code, "error", err)
		if code == http.StatusBadGateway {
			return echo.NewHTTPError(code, "external service unavailable")
		}
		return echo.NewHTTPError(code, "internal error")
	}
	l.Warn(event, "status", code, "reason", err.Error())
	return echo.NewHTTPError(code, err.Error())
}

func badBody(l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
}

func parseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func pageMeta(page, size int, total int64) map[string]any {
	if page < 1 {
		page = 1
	}
	return map[string]any{
		"page":        page,
		"size":        size,
		"total":       total,
		"total_pages": (total + int64(size) - 1) / int64(size),
		"has_prev":    page > 1,
		"has_next":    int64(page*size) < total,
	}
}
