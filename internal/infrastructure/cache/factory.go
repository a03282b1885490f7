package cache

import (
	"github.com/plazafl/backend/internal/application/billing"
	"github.com/plazafl/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SettingsCacheFactory creates settings caches based on configuration
type SettingsCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SettingsCacheFactoryOption is a functional option for configuring the factory
type SettingsCacheFactoryOption func(*SettingsCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SettingsCacheFactoryOption {
	return func(f *SettingsCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) SettingsCacheFactoryOption {
	return func(f *SettingsCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSettingsCacheFactory creates a new factory
func NewSettingsCacheFactory(cfg config.RedisConfig, opts ...SettingsCacheFactoryOption) *SettingsCacheFactory {
	f := &SettingsCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCache creates a settings cache. When Redis is enabled it tries Redis
// first; on connection failure it falls back to the in-memory cache if the
// fallback is allowed. In-memory caches do not share invalidation across
// instances, so multi-instance deployments should run with Redis enabled.
func (f *SettingsCacheFactory) CreateCache() (billing.SettingsCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory settings cache")
		return NewInMemorySettingsCache(WithInMemoryLogger(f.logger)), nil
	}

	cache, err := NewRedisSettingsCache(
		f.redisConfig.Addr(),
		f.redisConfig.Password,
		f.redisConfig.DB,
		WithSettingsLogger(f.logger),
	)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, err
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory settings cache",
			zap.Error(err))
		return NewInMemorySettingsCache(WithInMemoryLogger(f.logger)), nil
	}

	f.logger.Info("Using Redis settings cache",
		zap.String("addr", f.redisConfig.Addr()))
	return cache, nil
}
