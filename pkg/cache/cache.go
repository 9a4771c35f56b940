package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL constants
const (
	TTLFeed        = 30 * time.Second // anonymous feed pages (refreshed often)
	TTLTags        = 5 * time.Minute  // approved tag list (changes rarely)
	TTLDefault     = 5 * time.Minute
	TTLIdempotency = 10 * time.Minute // duplicate-submission window
)

// Cache key prefixes
const (
	PrefixFeed = "feed:"
	PrefixTags = "tags:"
	PrefixIdem = "idem:"
)

// Service is the Redis cache service interface
type Service interface {
	// Basic operations
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Feed cache (anonymous, unfiltered pages only)
	GetFeedPage(ctx context.Context, key string) ([]byte, error)
	SetFeedPage(ctx context.Context, key string, data interface{}) error
	InvalidateFeed(ctx context.Context) error

	// Idempotency dedupe: first claim of (actorID, key) wins, replays fail
	// until the TTL expires.
	ClaimIdempotencyKey(ctx context.Context, actorID, key string) (bool, error)

	// Utilities
	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no redis, skip silently
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

// ========================================
// Feed cache
// ========================================

func (c *redisCache) feedKey(key string) string {
	return PrefixFeed + key
}

func (c *redisCache) GetFeedPage(ctx context.Context, key string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.feedKey(key)).Bytes()
}

func (c *redisCache) SetFeedPage(ctx context.Context, key string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.feedKey(key), jsonData, TTLFeed).Err()
}

func (c *redisCache) InvalidateFeed(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixFeed+"*")
}

// ========================================
// Idempotency dedupe
// ========================================

func (c *redisCache) ClaimIdempotencyKey(ctx context.Context, actorID, key string) (bool, error) {
	if c.client == nil {
		// no redis: every claim wins, duplicates are tolerated
		return true, nil
	}
	return c.client.SetNX(ctx, PrefixIdem+actorID+":"+key, 1, TTLIdempotency).Result()
}

// ========================================
// Internal utilities
// ========================================

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
