package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/services"
)

// EngagementHandler handles reaction and save toggles.
type EngagementHandler struct {
	ledger *services.Ledger
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(ledger *services.Ledger) *EngagementHandler {
	return &EngagementHandler{ledger: ledger}
}

// RegisterEngagementRoutes registers engagement routes on an authenticated group.
func (h *EngagementHandler) RegisterEngagementRoutes(g *echo.Group) {
	g.POST("/photos/:id/reactions", h.React)
	g.DELETE("/photos/:id/reactions", h.Unreact)
	g.POST("/photos/:id/save", h.Save)
	g.DELETE("/photos/:id/save", h.Unsave)
	g.GET("/photos/:id/engagement", h.GetEngagement)
}

// React sets or replaces the caller's reaction on a photo. Repeating the
// same reaction is a no-op, not a conflict.
func (h *EngagementHandler) React(c echo.Context) error {
	userID := getUserIDFromContext(c)
	photoID := c.Param("id")

	var req models.CreateReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	record, err := h.ledger.React(c.Request().Context(), userID, photoID, req.Kind)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, record)
}

// Unreact removes the caller's reaction. Removing a reaction that does not
// exist is a no-op.
func (h *EngagementHandler) Unreact(c echo.Context) error {
	userID := getUserIDFromContext(c)
	photoID := c.Param("id")

	if err := h.ledger.Unreact(c.Request().Context(), userID, photoID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Save bookmarks a photo for the caller. Saving twice is a no-op.
func (h *EngagementHandler) Save(c echo.Context) error {
	userID := getUserIDFromContext(c)
	photoID := c.Param("id")

	if err := h.ledger.Save(c.Request().Context(), userID, photoID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": true})
}

// Unsave removes the caller's bookmark. Unsaving twice is a no-op.
func (h *EngagementHandler) Unsave(c echo.Context) error {
	userID := getUserIDFromContext(c)
	photoID := c.Param("id")

	if err := h.ledger.Unsave(c.Request().Context(), userID, photoID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": false})
}

// GetEngagement returns the caller's state on a photo. This is the
// authoritative answer the client reconciles its optimistic UI against.
func (h *EngagementHandler) GetEngagement(c echo.Context) error {
	userID := getUserIDFromContext(c)
	photoID := c.Param("id")
	ctx := c.Request().Context()

	kind, err := h.ledger.ReactionState(ctx, userID, photoID)
	if err != nil {
		return toHTTPError(err)
	}
	saved, err := h.ledger.SaveState(ctx, userID, photoID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, models.EngagementState{ReactionKind: kind, Saved: saved})
}
