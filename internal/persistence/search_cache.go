package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const searchCachePrefix = "cache:search:"

// SearchCache stores serialized search results in Redis with a TTL. Misses
// and Redis outages both surface as cache misses so a flaky cache never
// fails a search.
type SearchCache struct {
	redis  *Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewSearchCache builds a cache over the shared Redis connection.
func NewSearchCache(r *Redis, ttl time.Duration, logger *zap.Logger) *SearchCache {
	return &SearchCache{redis: r, ttl: ttl, logger: logger}
}

// Get returns the cached payload for the key, if present.
func (c *SearchCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.redis == nil || c.redis.Client == nil || c.ttl <= 0 {
		return nil, false
	}
	payload, err := c.redis.Client.Get(ctx, searchCachePrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("search cache read failed", zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

// Set stores the payload under the key for the configured TTL.
func (c *SearchCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.redis == nil || c.redis.Client == nil || c.ttl <= 0 {
		return
	}
	if err := c.redis.Client.Set(ctx, searchCachePrefix+key, payload, c.ttl).Err(); err != nil {
		c.logger.Debug("search cache write failed", zap.Error(err))
	}
}

// Invalidate drops every cached search result. Called when the catalog
// changes.
func (c *SearchCache) Invalidate(ctx context.Context) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	iter := c.redis.Client.Scan(ctx, 0, searchCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.redis.Client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Debug("search cache invalidate failed", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Debug("search cache scan failed", zap.Error(err))
	}
}
