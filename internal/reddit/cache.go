package reddit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"reelhub/pkg/config"
	"reelhub/pkg/logger"
)

// ListingCache caches raw listing pages in Redis. Cache errors are logged
// and swallowed: a dead cache degrades to direct upstream calls.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache connects to Redis. Returns nil (cache disabled) when the
// server is unreachable, so startup never depends on Redis.
func NewListingCache(cfg config.RedisConfig) *ListingCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf("Redis unavailable, listing cache disabled: %v", err)
		return nil
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &ListingCache{client: client, ttl: ttl}
}

// Get returns a cached page if present.
func (c *ListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warnf("Listing cache get failed: %v", err)
		return nil, false
	}
	return body, true
}

// Set stores a page with the configured TTL.
func (c *ListingCache) Set(ctx context.Context, key string, body []byte) {
	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		logger.Warnf("Listing cache set failed: %v", err)
	}
}

// Close releases the Redis connection.
func (c *ListingCache) Close() error {
	return c.client.Close()
}
