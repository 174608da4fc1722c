package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/services"
)

const defaultGuestBookLimit = 50

// GuestBookHandler handles guest-book HTTP requests.
type GuestBookHandler struct {
	guestBook *services.GuestBook
}

// NewGuestBookHandler creates a new GuestBookHandler.
func NewGuestBookHandler(guestBook *services.GuestBook) *GuestBookHandler {
	return &GuestBookHandler{guestBook: guestBook}
}

// RegisterGuestBookRoutes registers the public guest-book routes.
func (h *GuestBookHandler) RegisterGuestBookRoutes(public, authed *echo.Group) {
	public.GET("/guest-book", h.ListApproved)
	authed.POST("/guest-book", h.Create)
}

// RegisterModerationRoutes registers the moderation route on the admin group.
func (h *GuestBookHandler) RegisterModerationRoutes(admin *echo.Group) {
	admin.POST("/guest-book/:id/approve", h.Approve)
}

// Create appends a new pending guest-book post for the caller.
func (h *GuestBookHandler) Create(c echo.Context) error {
	authorID := getUserIDFromContext(c)

	var req models.CreateGuestPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.guestBook.Create(c.Request().Context(), authorID, req.Message, req.PhotoRef, req.CollectionRef)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// ListApproved returns approved posts, newest first, optionally scoped to a
// collection.
func (h *GuestBookHandler) ListApproved(c echo.Context) error {
	limit := defaultGuestBookLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = parsed
	}

	posts, err := h.guestBook.ListApproved(limit, c.QueryParam("collection"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}

// Approve transitions a post to approved. Idempotent.
func (h *GuestBookHandler) Approve(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post id")
	}

	post, approveErr := h.guestBook.Approve(uint(id))
	if approveErr != nil {
		return toHTTPError(approveErr)
	}
	return c.JSON(http.StatusOK, post)
}
