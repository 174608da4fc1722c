package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/seejoshsphotos/backend/internal/middleware"
	"github.com/seejoshsphotos/backend/pkg/apperrors"
)

// getUserIDFromContext returns the authenticated user's ID, or "" for an
// anonymous viewer.
func getUserIDFromContext(c echo.Context) string {
	if userID, ok := c.Get(middleware.ContextUserIDKey).(string); ok {
		return userID
	}
	return ""
}

// toHTTPError maps the service error taxonomy onto HTTP status codes.
// Transient store failures come back as 503 with a retry hint; consistency
// warnings never reach here, they are logged inside the ledger.
func toHTTPError(err error) error {
	switch {
	case apperrors.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperrors.IsInvalidArgument(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperrors.IsTransient(err):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Temporary store failure, please retry")
	case err == apperrors.ErrUnauthorized:
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
