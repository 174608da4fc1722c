package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/repositories"
)

// UserHandler handles profile HTTP requests for the authenticated user.
type UserHandler struct {
	users repositories.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{users: userRepo}
}

// RegisterProfileRoutes registers profile routes on an authenticated group.
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/me", h.GetMe)
	g.PATCH("/me", h.UpdateMe)
}

// GetMe returns the caller's profile.
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.users.GetUserByID(getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe updates the caller's profile attributes.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.GetUserByID(getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}

	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.PublicProfile != nil {
		user.PublicProfile = *req.PublicProfile
	}

	if err := h.users.UpdateUser(user); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}
