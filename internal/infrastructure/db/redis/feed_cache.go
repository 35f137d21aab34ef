package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/memberhub/community-api/internal/core/domain"
)

const (
	feedKey = "feed:announcements"
	feedTTL = 30 * time.Second
)

// FeedCache is a short-TTL read-through cache for the public announcement
// feed. Storage stays the source of truth; the cache only absorbs repeated
// full-feed reads.
type FeedCache struct {
	client *redis.Client
}

// NewFeedCache creates a FeedCache wrapping the given Redis client.
func NewFeedCache(client *redis.Client) *FeedCache {
	return &FeedCache{client: client}
}

// Get returns the cached feed and whether a cache entry was present.
func (f *FeedCache) Get(ctx context.Context) ([]domain.Announcement, bool, error) {
	raw, err := f.client.Get(ctx, feedKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("feed cache get: %w", err)
	}

	var feed []domain.Announcement
	if err := json.Unmarshal(raw, &feed); err != nil {
		return nil, false, fmt.Errorf("feed cache decode: %w", err)
	}
	return feed, true, nil
}

// Set stores the feed with a short expiry.
func (f *FeedCache) Set(ctx context.Context, feed []domain.Announcement) error {
	raw, err := json.Marshal(feed)
	if err != nil {
		return fmt.Errorf("feed cache encode: %w", err)
	}
	return f.client.Set(ctx, feedKey, raw, feedTTL).Err()
}

// Invalidate drops the cached feed after a new announcement is posted.
func (f *FeedCache) Invalidate(ctx context.Context) error {
	return f.client.Del(ctx, feedKey).Err()
}
