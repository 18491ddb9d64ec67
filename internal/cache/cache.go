package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"igreja_backend/internal/logger"
)

// Cache is the Redis facade in front of read-heavy statistics endpoints.
type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get returns the raw cached value and whether the key was present.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores value as JSON under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Del removes the given keys.
func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache del: %w", err)
	}
	return nil
}

// Invalidate removes every key matching pattern. Normal write paths go
// through the registered key index instead (InvalidateEntity); the SCAN walk
// stays available for ad-hoc patterns.
func (c *Cache) Invalidate(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache del %s: %w", pattern, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// InvalidateEntity drops every cache key registered for the entity. It is
// best-effort: failures are logged and never surfaced, so a lost invalidation
// cannot mask the success of the underlying write.
func (c *Cache) InvalidateEntity(ctx context.Context, entity string) {
	keys := KeysFor(entity)
	if len(keys) == 0 {
		return
	}
	if err := c.Del(ctx, keys...); err != nil {
		logger.Get(ctx).Warn().Err(err).Str("entity", entity).Msg("falha ao invalidar cache")
	}
}

// HealthCheck reports whether Redis answers a ping.
func (c *Cache) HealthCheck(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}

// Remember implements the read-through contract: cached value verbatim on a
// hit; on a miss compute, store with ttl and return.
func Remember[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	var zero T

	data, hit, err := c.Get(ctx, key)
	if err != nil {
		// Cache trouble must not take the endpoint down; fall through to the
		// store and log.
		logger.Get(ctx).Warn().Err(err).Str("key", key).Msg("cache indisponível, lendo do banco")
	} else if hit {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		logger.Get(ctx).Warn().Str("key", key).Msg("valor em cache corrompido, recalculando")
	}

	value, err := compute()
	if err != nil {
		return zero, err
	}
	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.Get(ctx).Warn().Err(err).Str("key", key).Msg("falha ao gravar cache")
	}
	return value, nil
}
