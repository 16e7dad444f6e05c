// Package cache provides an optional Redis-backed cache for normalized
// upstream results. A nil *Cache is valid and disables caching entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores serialized results keyed by service and input text.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a Redis-backed cache and verifies the connection.
func New(redisURL, redisPassword string, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if redisPassword != "" {
		opt.Password = redisPassword
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "result_cache"),
	}, nil
}

// Key builds the cache key for one service/text pair. The text is hashed so
// arbitrary input never leaks into key space.
func Key(service, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("result:%s:%s", service, hex.EncodeToString(sum[:]))
}

// Get fetches a cached serialized result. A miss (or nil cache) returns
// (nil, nil); only transport failures return an error.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis GET failed: %w", err)
	}

	c.logger.Debug("cache_hit", "key", key)
	return b, nil
}

// Set stores a serialized result with the configured TTL. Failures are logged
// and swallowed: the cache is advisory and never fails a request.
func (c *Cache) Set(ctx context.Context, key string, value []byte) {
	if c == nil {
		return
	}

	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("cache_write_failed", "key", key, "error", err)
	}
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
