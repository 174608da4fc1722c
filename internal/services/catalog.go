package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/seejoshsphotos/backend/internal/cache"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/repositories"
	"github.com/seejoshsphotos/backend/pkg/apperrors"
)

// Catalog handles administrative photo ingest. Descriptive metadata is
// immutable after ingest and counters start at zero.
type Catalog struct {
	photos      repositories.PhotoRepository
	collections repositories.CollectionRepository
	pageCache   *cache.FeedCache
	log         zerolog.Logger
}

// NewCatalog creates a new Catalog service. pageCache may be nil.
func NewCatalog(
	photoRepo repositories.PhotoRepository,
	collectionRepo repositories.CollectionRepository,
	pageCache *cache.FeedCache,
	log zerolog.Logger,
) *Catalog {
	return &Catalog{
		photos:      photoRepo,
		collections: collectionRepo,
		pageCache:   pageCache,
		log:         log,
	}
}

// Ingest creates a new photo with a minted ID. Tags are case-folded and
// deduplicated; the referenced collection must exist.
func (c *Catalog) Ingest(ctx context.Context, req *models.CreatePhotoRequest) (*models.Photo, error) {
	exists, err := c.collections.CollectionExists(ctx, req.CollectionID)
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	if !exists {
		return nil, apperrors.NotFound("collection", req.CollectionID)
	}

	now := time.Now()
	shotDate := req.ShotDate
	if shotDate.IsZero() {
		shotDate = now
	}

	photo := &models.Photo{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Tags:         foldTags(req.Tags),
		Location:     req.Location,
		CollectionID: req.CollectionID,
		CloudinaryID: req.CloudinaryID,
		ShotDate:     shotDate,
		CreatedAt:    now,
	}
	if err := c.photos.CreatePhoto(ctx, photo); err != nil {
		return nil, apperrors.Transient(err)
	}

	c.pageCache.Invalidate(ctx, cache.CollectionKey(req.CollectionID))
	c.log.Info().Str("photo_id", photo.ID).Str("collection_id", photo.CollectionID).Msg("photo ingested")
	return photo, nil
}

// foldTags lowercases, trims and deduplicates a tag set, preserving first
// occurrence order.
func foldTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	folded := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		folded = append(folded, t)
	}
	return folded
}
