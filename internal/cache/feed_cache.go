package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/seejoshsphotos/backend/internal/models"
)

// FeedCache caches un-annotated feed pages in Redis for a short TTL. Only
// the photo list is cached; viewer engagement state is always joined fresh,
// so cached pages are viewer-independent. A nil *FeedCache is a valid no-op
// cache.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewFeedCache creates a FeedCache. Returns nil when client is nil, which
// disables caching.
func NewFeedCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *FeedCache {
	if client == nil {
		return nil
	}
	return &FeedCache{client: client, ttl: ttl, log: log}
}

// RecentKey is the cache key for the recency feed at a given page size.
func RecentKey(limit int64) string {
	return fmt.Sprintf("feed:recent:%d", limit)
}

// CollectionKey is the cache key for a collection-scoped feed.
func CollectionKey(collectionID string) string {
	return "feed:collection:" + collectionID
}

// Get returns the cached page for key, or (nil, false) on a miss. Cache
// errors are treated as misses.
func (c *FeedCache) Get(ctx context.Context, key string) ([]models.Photo, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Str("key", key).Err(err).Msg("feed cache read failed")
		}
		return nil, false
	}
	var photos []models.Photo
	if err := json.Unmarshal([]byte(data), &photos); err != nil {
		return nil, false
	}
	return photos, true
}

// Set stores a page under key. Failures are logged and otherwise ignored;
// the cache is an optimization, not a source of truth.
func (c *FeedCache) Set(ctx context.Context, key string, photos []models.Photo) {
	if c == nil {
		return
	}
	data, err := json.Marshal(photos)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Debug().Str("key", key).Err(err).Msg("feed cache write failed")
	}
}

// Invalidate drops cached pages, used after a photo ingest.
func (c *FeedCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	pipe := c.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Debug().Err(err).Msg("feed cache invalidation failed")
	}
}
