package middleware

import (
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/repositories"
)

// ContextUserIDKey is the echo context key under which the authenticated
// user's ID is stored. Absent or empty means an anonymous viewer.
const ContextUserIDKey = "userID"

// RequireAuth verifies the Firebase ID token and rejects requests without a
// valid one. On success the UID is stored in the context and the profile row
// is ensured.
func RequireAuth(authClient *auth.Client, users repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := resolveUser(c, authClient, users)
			if err != nil {
				return err
			}
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}
			c.Set(ContextUserIDKey, userID)
			return next(c)
		}
	}
}

// OptionalAuth verifies the Firebase ID token when present but lets
// anonymous requests through with no user in context. A present-but-invalid
// token is still rejected.
func OptionalAuth(authClient *auth.Client, users repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := resolveUser(c, authClient, users)
			if err != nil {
				return err
			}
			c.Set(ContextUserIDKey, userID)
			return next(c)
		}
	}
}

// resolveUser extracts and verifies the bearer token, returning the UID or
// "" when no Authorization header is present.
func resolveUser(c echo.Context, authClient *auth.Client, users repositories.UserRepository) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", nil
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
	}

	token, err := authClient.VerifyIDToken(c.Request().Context(), tokenParts[1])
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
	}

	user := &models.User{ID: token.UID, CreatedAt: time.Now()}
	if name, ok := token.Claims["name"].(string); ok {
		user.DisplayName = name
	}
	if err := users.EnsureUser(user); err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve user profile")
	}

	return token.UID, nil
}

// RequireAdminKey gates administrative routes (moderation, ingest,
// announcements) behind a static key supplied by the external collaborator.
func RequireAdminKey(adminKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if adminKey == "" || c.Request().Header.Get("X-Admin-Key") != adminKey {
				return echo.NewHTTPError(http.StatusUnauthorized, "Admin key required")
			}
			return next(c)
		}
	}
}
