// Package cache provides Redis and in-memory caches for per-plaza billing
// settings. Settings are read on every bill creation and on each cron run,
// so reads dominate writes by orders of magnitude.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultSettingsTTL bounds staleness after an out-of-band settings change
const DefaultSettingsTTL = 5 * time.Minute

// RedisSettingsCache caches billing settings in Redis so multiple
// instances share a single invalidation point
type RedisSettingsCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisSettingsCacheOption is a functional option for configuring the cache
type RedisSettingsCacheOption func(*RedisSettingsCache)

// WithSettingsTTL sets the cache entry TTL
func WithSettingsTTL(ttl time.Duration) RedisSettingsCacheOption {
	return func(c *RedisSettingsCache) {
		c.ttl = ttl
	}
}

// WithSettingsLogger sets the logger for the cache
func WithSettingsLogger(logger *zap.Logger) RedisSettingsCacheOption {
	return func(c *RedisSettingsCache) {
		c.logger = logger
	}
}

// NewRedisSettingsCache creates a new Redis-backed settings cache
func NewRedisSettingsCache(addr, password string, db int, opts ...RedisSettingsCacheOption) (*RedisSettingsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisSettingsCache{
		client:     client,
		ownsClient: true,
		ttl:        DefaultSettingsTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisSettingsCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisSettingsCacheWithClient(client *redis.Client, opts ...RedisSettingsCacheOption) *RedisSettingsCache {
	cache := &RedisSettingsCache{
		client:     client,
		ownsClient: false,
		ttl:        DefaultSettingsTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func settingsKey(plazaID uuid.UUID) string {
	return fmt.Sprintf("billing:settings:%s", plazaID.String())
}

// Get retrieves cached settings for a plaza. A Redis failure is treated as
// a miss so the caller falls through to the database.
func (c *RedisSettingsCache) Get(ctx context.Context, plazaID uuid.UUID) (*billing.Settings, bool) {
	data, err := c.client.Get(ctx, settingsKey(plazaID)).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for billing settings", zap.String("plaza_id", plazaID.String()))
		return nil, false
	}
	if err != nil {
		c.logger.Error("Failed to get billing settings from cache",
			zap.String("plaza_id", plazaID.String()),
			zap.Error(err))
		return nil, false
	}

	var settings billing.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		c.logger.Error("Failed to unmarshal cached billing settings",
			zap.String("plaza_id", plazaID.String()),
			zap.Error(err))
		_ = c.client.Del(ctx, settingsKey(plazaID))
		return nil, false
	}

	c.logger.Debug("Cache hit for billing settings", zap.String("plaza_id", plazaID.String()))
	return &settings, true
}

// Set stores settings for a plaza. Failures are logged and swallowed,
// caching is best effort.
func (c *RedisSettingsCache) Set(ctx context.Context, plazaID uuid.UUID, settings *billing.Settings) {
	if settings == nil {
		return
	}

	data, err := json.Marshal(settings)
	if err != nil {
		c.logger.Error("Failed to marshal billing settings",
			zap.String("plaza_id", plazaID.String()),
			zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, settingsKey(plazaID), data, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to cache billing settings",
			zap.String("plaza_id", plazaID.String()),
			zap.Error(err))
	}
}

// Invalidate drops the cached settings for a plaza
func (c *RedisSettingsCache) Invalidate(ctx context.Context, plazaID uuid.UUID) {
	if err := c.client.Del(ctx, settingsKey(plazaID)).Err(); err != nil {
		c.logger.Error("Failed to invalidate billing settings cache",
			zap.String("plaza_id", plazaID.String()),
			zap.Error(err))
	}
}

// Close closes the Redis client if this cache owns it
func (c *RedisSettingsCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisSettingsCache) GetClient() *redis.Client {
	return c.client
}
