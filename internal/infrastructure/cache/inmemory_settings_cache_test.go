package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySettingsCache_GetSet(t *testing.T) {
	cache := NewInMemorySettingsCache()
	defer cache.Close()

	ctx := context.Background()

	t.Run("misses on unknown plaza", func(t *testing.T) {
		_, ok := cache.Get(ctx, uuid.New())
		assert.False(t, ok)
	})

	t.Run("returns cached settings", func(t *testing.T) {
		plazaID := uuid.New()
		settings := billing.NewSettings(plazaID)
		settings.RentGenerationDay = 5

		cache.Set(ctx, plazaID, settings)

		cached, ok := cache.Get(ctx, plazaID)
		require.True(t, ok)
		assert.Equal(t, 5, cached.RentGenerationDay)
		assert.Equal(t, plazaID, cached.PlazaID)
	})

	t.Run("ignores nil settings", func(t *testing.T) {
		plazaID := uuid.New()
		cache.Set(ctx, plazaID, nil)

		_, ok := cache.Get(ctx, plazaID)
		assert.False(t, ok)
	})
}

func TestInMemorySettingsCache_Expiration(t *testing.T) {
	cache := NewInMemorySettingsCache(WithInMemoryTTL(10 * time.Millisecond))
	defer cache.Close()

	ctx := context.Background()
	plazaID := uuid.New()

	cache.Set(ctx, plazaID, billing.NewSettings(plazaID))

	_, ok := cache.Get(ctx, plazaID)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = cache.Get(ctx, plazaID)
	assert.False(t, ok, "expired entry should miss")
}

func TestInMemorySettingsCache_Invalidate(t *testing.T) {
	cache := NewInMemorySettingsCache()
	defer cache.Close()

	ctx := context.Background()
	plazaID := uuid.New()

	cache.Set(ctx, plazaID, billing.NewSettings(plazaID))
	cache.Invalidate(ctx, plazaID)

	_, ok := cache.Get(ctx, plazaID)
	assert.False(t, ok)
}

func TestInMemorySettingsCache_Stats(t *testing.T) {
	cache := NewInMemorySettingsCache()
	defer cache.Close()

	ctx := context.Background()
	plazaID := uuid.New()

	cache.Set(ctx, plazaID, billing.NewSettings(plazaID))

	_, _ = cache.Get(ctx, plazaID)
	_, _ = cache.Get(ctx, uuid.New())

	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestInMemorySettingsCache_CloseIsIdempotent(t *testing.T) {
	cache := NewInMemorySettingsCache()

	require.NoError(t, cache.Close())
	require.NoError(t, cache.Close())
}
