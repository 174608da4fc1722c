package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/seejoshsphotos/backend/internal/cache"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/repositories"
	"github.com/seejoshsphotos/backend/pkg/apperrors"
	"github.com/seejoshsphotos/backend/pkg/cloudinary"
)

// FeedItem is a photo joined with the viewer's engagement state and its
// resolved asset URLs.
type FeedItem struct {
	models.Photo
	Viewer       models.EngagementState `json:"viewer"`
	ThumbnailURL string                 `json:"thumbnail_url"`
	FullURL      string                 `json:"full_url"`
}

// Feed composes ordered, filterable pages over the photo catalog, joined
// with the viewer's own engagement state. Composition is read-only; it never
// mutates the ledger.
type Feed struct {
	photos      repositories.PhotoRepository
	collections repositories.CollectionRepository
	ledger      *Ledger
	pageCache   *cache.FeedCache
	assets      *cloudinary.Builder
	log         zerolog.Logger
}

// NewFeed creates a new Feed composer. pageCache may be nil.
func NewFeed(
	photoRepo repositories.PhotoRepository,
	collectionRepo repositories.CollectionRepository,
	ledger *Ledger,
	pageCache *cache.FeedCache,
	assets *cloudinary.Builder,
	log zerolog.Logger,
) *Feed {
	return &Feed{
		photos:      photoRepo,
		collections: collectionRepo,
		ledger:      ledger,
		pageCache:   pageCache,
		assets:      assets,
		log:         log,
	}
}

// Recent returns up to limit photos ordered by creation time descending,
// ties broken by ID. A limit of zero returns an empty page without error.
func (f *Feed) Recent(ctx context.Context, viewerID string, limit int64) ([]FeedItem, error) {
	if limit <= 0 {
		return []FeedItem{}, nil
	}
	f.ledger.RepairPending(ctx)

	key := cache.RecentKey(limit)
	photos, ok := f.pageCache.Get(ctx, key)
	if !ok {
		var err error
		photos, err = f.photos.ListRecent(ctx, limit)
		if err != nil {
			return nil, err
		}
		f.pageCache.Set(ctx, key, photos)
	}
	return f.annotate(ctx, viewerID, photos)
}

// ByCollection returns a collection's photos ordered by shot date
// descending. An unknown collection is NotFound, distinct from a known
// collection with no photos.
func (f *Feed) ByCollection(ctx context.Context, viewerID, collectionID string) ([]FeedItem, error) {
	exists, err := f.collections.CollectionExists(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("collection", collectionID)
	}
	f.ledger.RepairPending(ctx)

	key := cache.CollectionKey(collectionID)
	photos, ok := f.pageCache.Get(ctx, key)
	if !ok {
		photos, err = f.photos.ListByCollection(ctx, collectionID)
		if err != nil {
			return nil, err
		}
		f.pageCache.Set(ctx, key, photos)
	}
	return f.annotate(ctx, viewerID, photos)
}

// ByTags returns photos whose tag set intersects the query, newest first.
// Tags and the free keyword are case-folded; the keyword counts as one more
// tag in the query set. An empty query set yields an empty result.
func (f *Feed) ByTags(ctx context.Context, viewerID string, tags []string, keyword string) ([]FeedItem, error) {
	query := foldTagQuery(tags, keyword)
	if len(query) == 0 {
		return []FeedItem{}, nil
	}
	f.ledger.RepairPending(ctx)

	photos, err := f.photos.ListByTags(ctx, query)
	if err != nil {
		return nil, err
	}
	return f.annotate(ctx, viewerID, photos)
}

// annotate joins the viewer's engagement state and asset URLs onto a page.
// Anonymous viewers get absent state on every item.
func (f *Feed) annotate(ctx context.Context, viewerID string, photos []models.Photo) ([]FeedItem, error) {
	photoIDs := make([]string, len(photos))
	for i, p := range photos {
		photoIDs[i] = p.ID
	}

	states, err := f.ledger.States(ctx, viewerID, photoIDs)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, len(photos))
	for i, p := range photos {
		items[i] = FeedItem{
			Photo:        p,
			Viewer:       states[p.ID],
			ThumbnailURL: f.assets.FeedThumbnail(p.CloudinaryID),
			FullURL:      f.assets.FeedFullscreen(p.CloudinaryID),
		}
	}
	return items, nil
}

// foldTagQuery case-folds, trims and deduplicates the tag query, appending
// the free keyword as one more tag.
func foldTagQuery(tags []string, keyword string) []string {
	seen := make(map[string]bool, len(tags)+1)
	query := make([]string, 0, len(tags)+1)
	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		query = append(query, tag)
	}
	for _, t := range tags {
		add(t)
	}
	add(keyword)
	return query
}
