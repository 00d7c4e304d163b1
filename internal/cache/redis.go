// Package cache stores successful scrape results in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/job-assistant/internal/types"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a cached posting stays valid.
const DefaultTTL = 24 * time.Hour

const keyPrefix = "job-assistant:posting:"

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// RedisCache caches JobPosting values keyed by URL.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache wraps client. A non-positive ttl uses DefaultTTL.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Key returns the Redis key for url.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached posting for url. A miss returns (nil, false, nil).
func (c *RedisCache) Get(ctx context.Context, url string) (*types.JobPosting, bool, error) {
	data, err := c.client.Get(ctx, Key(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	posting, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return posting, true, nil
}

// Set stores posting under its URL. Failed postings are not cached.
func (c *RedisCache) Set(ctx context.Context, posting *types.JobPosting) error {
	if posting == nil || !posting.Success {
		return nil
	}

	data, err := json.Marshal(posting)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, Key(posting.URL), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete drops the cached posting for url.
func (c *RedisCache) Delete(ctx context.Context, url string) error {
	if err := c.client.Del(ctx, Key(url)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func decode(data []byte) (*types.JobPosting, error) {
	var posting types.JobPosting
	if err := json.Unmarshal(data, &posting); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	if !posting.Success {
		return nil, fmt.Errorf("cache decode: stored posting is not successful")
	}
	return &posting, nil
}
