package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/seejoshsphotos/backend/internal/services"
)

const defaultFeedLimit = 50

// FeedHandler handles feed and search HTTP requests.
type FeedHandler struct {
	feed *services.Feed
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feed *services.Feed) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed routes on an optionally-authenticated group.
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/collections/:id/photos", h.GetCollectionFeed)
	g.GET("/search", h.Search)
}

// GetFeed returns the recency feed annotated for the current viewer.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewerID := getUserIDFromContext(c)

	limit := int64(defaultFeedLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = parsed
	}

	items, err := h.feed.Recent(c.Request().Context(), viewerID, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"photos": items})
}

// GetCollectionFeed returns one collection's photos, shot date descending.
func (h *FeedHandler) GetCollectionFeed(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	collectionID := c.Param("id")

	items, err := h.feed.ByCollection(c.Request().Context(), viewerID, collectionID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"photos": items})
}

// Search returns photos matching any of the query tags; the free keyword is
// folded into the tag set.
func (h *FeedHandler) Search(c echo.Context) error {
	viewerID := getUserIDFromContext(c)

	var tags []string
	if raw := c.QueryParam("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}
	keyword := c.QueryParam("q")

	items, err := h.feed.ByTags(c.Request().Context(), viewerID, tags, keyword)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"photos": items})
}
