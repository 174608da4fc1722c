package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/seejoshsphotos/backend/internal/repositories"
	"github.com/seejoshsphotos/backend/pkg/cloudinary"
)

// CollectionHandler handles collection metadata HTTP requests. Collections
// are curated externally; this surface is read-only.
type CollectionHandler struct {
	collections repositories.CollectionRepository
	photos      repositories.PhotoRepository
	assets      *cloudinary.Builder
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collectionRepo repositories.CollectionRepository, photoRepo repositories.PhotoRepository, assets *cloudinary.Builder) *CollectionHandler {
	return &CollectionHandler{collections: collectionRepo, photos: photoRepo, assets: assets}
}

// RegisterCollectionRoutes registers collection routes.
func (h *CollectionHandler) RegisterCollectionRoutes(g *echo.Group) {
	g.GET("/collections", h.ListCollections)
	g.GET("/collections/:id", h.GetCollection)
}

// ListCollections returns all collections ordered by display order, each
// with a resolved cover URL when a cover photo is set.
func (h *CollectionHandler) ListCollections(c echo.Context) error {
	ctx := c.Request().Context()
	collections, err := h.collections.ListCollections(ctx)
	if err != nil {
		return toHTTPError(err)
	}

	type collectionView struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		Theme        string `json:"theme"`
		Description  string `json:"description"`
		PhotoCount   int    `json:"photo_count"`
		CoverURL     string `json:"cover_url,omitempty"`
		DisplayOrder int    `json:"display_order"`
	}

	views := make([]collectionView, len(collections))
	for i, col := range collections {
		views[i] = collectionView{
			ID:           col.ID,
			Title:        col.Title,
			Theme:        col.Theme,
			Description:  col.Description,
			PhotoCount:   len(col.PhotoIDs),
			DisplayOrder: col.Order,
		}
		if col.CoverPhotoID != "" {
			if cover, err := h.photos.GetPhotoByID(ctx, col.CoverPhotoID); err == nil {
				views[i].CoverURL = h.assets.CollectionCover(cover.CloudinaryID)
			}
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"collections": views})
}

// GetCollection returns one collection's metadata.
func (h *CollectionHandler) GetCollection(c echo.Context) error {
	col, err := h.collections.GetCollectionByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, col)
}
