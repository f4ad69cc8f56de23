// Package redis implements the domain.Cache port on go-redis.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache provides key-value storage with TTL support and prefix-based
// namespacing. The discovery service uses it for trending result pages,
// which the fixed lookback window makes safe to cache.
type Cache struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
}

// NewCache creates a new Redis cache instance. keyPrefix namespaces all keys
// so several applications can share one Redis.
func NewCache(client *redis.Client, logger *zap.Logger, keyPrefix string) *Cache {
	return &Cache{
		client:    client,
		logger:    logger,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a value by key. A missing key returns nil, nil.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.buildKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.logger.Error("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	c.logger.Debug("cache hit", zap.String("key", key), zap.Int("bytes", len(data)))

	return data, nil
}

// Set stores a value with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.buildKey(key), value, ttl).Err(); err != nil {
		c.logger.Error("cache set failed",
			zap.String("key", key),
			zap.Duration("ttl", ttl),
			zap.Error(err),
		)

		return err
	}

	c.logger.Debug("cache set",
		zap.String("key", key),
		zap.Int("bytes", len(value)),
		zap.Duration("ttl", ttl),
	)

	return nil
}

// Delete removes a value by key. Deleting a missing key is a no-op.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.buildKey(key)).Err(); err != nil {
		c.logger.Error("cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

// Clear removes all cached values under the keyPrefix. Uses SCAN rather than
// KEYS so the operation stays non-blocking on a busy instance.
func (c *Cache) Clear(ctx context.Context) error {
	pattern := c.keyPrefix + ":*"

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Error("cache clear scan failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("cache clear delete failed", zap.Int("key_count", len(keys)), zap.Error(err))
		return err
	}

	c.logger.Info("cache cleared", zap.Int("key_count", len(keys)))

	return nil
}

func (c *Cache) buildKey(key string) string {
	return c.keyPrefix + ":" + key
}
