package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/repositories"
)

const defaultAnnouncementLimit = 20

// AnnouncementHandler handles site announcement HTTP requests.
type AnnouncementHandler struct {
	announcements repositories.AnnouncementRepository
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(announcementRepo repositories.AnnouncementRepository) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcementRepo}
}

// RegisterAnnouncementRoutes registers the public listing route.
func (h *AnnouncementHandler) RegisterAnnouncementRoutes(g *echo.Group) {
	g.GET("/announcements", h.ListAnnouncements)
}

// RegisterPublishRoutes registers the publish route on the admin group.
func (h *AnnouncementHandler) RegisterPublishRoutes(admin *echo.Group) {
	admin.POST("/announcements", h.CreateAnnouncement)
}

// ListAnnouncements returns announcements, newest first.
func (h *AnnouncementHandler) ListAnnouncements(c echo.Context) error {
	limit := defaultAnnouncementLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = parsed
	}

	announcements, err := h.announcements.ListAnnouncements(limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"announcements": announcements})
}

// CreateAnnouncement publishes a new announcement.
func (h *AnnouncementHandler) CreateAnnouncement(c echo.Context) error {
	var req models.CreateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	announcement := &models.Announcement{
		Type:         req.Type,
		Title:        req.Title,
		Body:         req.Body,
		PhotoID:      req.PhotoID,
		CollectionID: req.CollectionID,
		CreatedAt:    time.Now(),
	}
	if err := h.announcements.CreateAnnouncement(announcement); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, announcement)
}
