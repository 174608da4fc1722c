package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/repositories"
	"github.com/seejoshsphotos/backend/internal/services"
	"github.com/seejoshsphotos/backend/pkg/cloudinary"
)

// PhotoHandler handles photo detail reads and administrative ingest.
type PhotoHandler struct {
	photos  repositories.PhotoRepository
	catalog *services.Catalog
	ledger  *services.Ledger
	assets  *cloudinary.Builder
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photoRepo repositories.PhotoRepository, catalog *services.Catalog, ledger *services.Ledger, assets *cloudinary.Builder) *PhotoHandler {
	return &PhotoHandler{photos: photoRepo, catalog: catalog, ledger: ledger, assets: assets}
}

// RegisterPhotoRoutes registers the public photo routes.
func (h *PhotoHandler) RegisterPhotoRoutes(g *echo.Group) {
	g.GET("/photos/:id", h.GetPhoto)
}

// RegisterIngestRoutes registers the ingest route on the admin group.
func (h *PhotoHandler) RegisterIngestRoutes(admin *echo.Group) {
	admin.POST("/photos", h.IngestPhoto)
}

// GetPhoto returns one photo with the viewer's engagement state and
// resolved asset URLs.
func (h *PhotoHandler) GetPhoto(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	ctx := c.Request().Context()

	photo, err := h.photos.GetPhotoByID(ctx, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	kind, err := h.ledger.ReactionState(ctx, viewerID, photo.ID)
	if err != nil {
		return toHTTPError(err)
	}
	saved, err := h.ledger.SaveState(ctx, viewerID, photo.ID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, services.FeedItem{
		Photo:        *photo,
		Viewer:       models.EngagementState{ReactionKind: kind, Saved: saved},
		ThumbnailURL: h.assets.FeedThumbnail(photo.CloudinaryID),
		FullURL:      h.assets.FeedFullscreen(photo.CloudinaryID),
	})
}

// IngestPhoto creates a new photo in the catalog.
func (h *PhotoHandler) IngestPhoto(c echo.Context) error {
	var req models.CreatePhotoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	photo, err := h.catalog.Ingest(c.Request().Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, photo)
}
