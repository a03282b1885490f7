package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/billing"
	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemorySettingsCache caches billing settings in process memory.
// Suitable for single-instance deployments and as the fallback when
// Redis is disabled.
type InMemorySettingsCache struct {
	entries sync.Map // map[uuid.UUID]*settingsEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

type settingsEntry struct {
	value     *billing.Settings
	expiresAt time.Time
}

func (e *settingsEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemorySettingsCacheOption is a functional option for configuring the cache
type InMemorySettingsCacheOption func(*InMemorySettingsCache)

// WithInMemoryTTL sets the cache entry TTL
func WithInMemoryTTL(ttl time.Duration) InMemorySettingsCacheOption {
	return func(c *InMemorySettingsCache) {
		c.ttl = ttl
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemorySettingsCacheOption {
	return func(c *InMemorySettingsCache) {
		c.logger = logger
	}
}

// NewInMemorySettingsCache creates a new in-memory settings cache
func NewInMemorySettingsCache(opts ...InMemorySettingsCacheOption) *InMemorySettingsCache {
	cache := &InMemorySettingsCache{
		ttl:    DefaultSettingsTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves cached settings for a plaza
func (c *InMemorySettingsCache) Get(ctx context.Context, plazaID uuid.UUID) (*billing.Settings, bool) {
	if value, ok := c.entries.Load(plazaID); ok {
		entry := value.(*settingsEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			return entry.value, true
		}
		c.entries.Delete(plazaID)
	}

	atomic.AddInt64(&c.misses, 1)
	return nil, false
}

// Set stores settings for a plaza
func (c *InMemorySettingsCache) Set(ctx context.Context, plazaID uuid.UUID, settings *billing.Settings) {
	if settings == nil {
		return
	}

	c.entries.Store(plazaID, &settingsEntry{
		value:     settings,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Invalidate drops the cached settings for a plaza
func (c *InMemorySettingsCache) Invalidate(ctx context.Context, plazaID uuid.UUID) {
	c.entries.Delete(plazaID)
}

// Stats returns cache hit/miss counters
func (c *InMemorySettingsCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Close stops the cleanup goroutine
func (c *InMemorySettingsCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// cleanupExpired periodically removes expired entries
func (c *InMemorySettingsCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*settingsEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}
