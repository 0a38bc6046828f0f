package geocoding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/gestor/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testGeocodingConfig(cache string) config.GeocodingConfig {
	return config.GeocodingConfig{
		Provider:  ProviderNominatim,
		BaseURL:   "https://nominatim.openstreetmap.org",
		UserAgent: "gestor-backend-test/1.0",
		Timeout:   2 * time.Second,
		CacheTTL:  time.Minute,
		Cache:     cache,
	}
}

func redisTestConfig() config.RedisConfig {
	return config.RedisConfig{Host: "localhost", Port: 6379}
}

// stubGeocoder counts provider calls and returns a canned response
type stubGeocoder struct {
	calls  int
	result *geo.GeocodingResult
	err    error
}

func (s *stubGeocoder) Geocode(ctx context.Context, address string) (*geo.GeocodingResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// failingStore always errors to exercise the degrade path
type failingStore struct{}

func (failingStore) Get(ctx context.Context, address string) (*geo.GeocodingResult, error) {
	return nil, errors.New("store down")
}

func (failingStore) Set(ctx context.Context, address string, result *geo.GeocodingResult, ttl time.Duration) error {
	return errors.New("store down")
}

func (failingStore) Close() error { return nil }

func TestCachedGeocoder(t *testing.T) {
	ctx := context.Background()

	t.Run("second lookup is served from the cache", func(t *testing.T) {
		provider := &stubGeocoder{result: sampleResult()}
		store := NewMemoryGeocodeStore()
		defer store.Close()

		cached := NewCachedGeocoder(provider, store, time.Minute, zap.NewNop())

		first, err := cached.Geocode(ctx, "Av. Brasil, 1234")
		require.NoError(t, err)

		second, err := cached.Geocode(ctx, "Av. Brasil, 1234")
		require.NoError(t, err)

		assert.Equal(t, 1, provider.calls)
		assert.Equal(t, first.DisplayName, second.DisplayName)
	})

	t.Run("failed lookups are not cached", func(t *testing.T) {
		provider := &stubGeocoder{err: geo.ErrAddressNotFound}
		store := NewMemoryGeocodeStore()
		defer store.Close()

		cached := NewCachedGeocoder(provider, store, time.Minute, zap.NewNop())

		_, err := cached.Geocode(ctx, "Rua Inexistente, 999")
		assert.ErrorIs(t, err, geo.ErrAddressNotFound)

		_, err = cached.Geocode(ctx, "Rua Inexistente, 999")
		assert.ErrorIs(t, err, geo.ErrAddressNotFound)

		assert.Equal(t, 2, provider.calls)
		assert.Equal(t, 0, store.Size())
	})

	t.Run("cache failure degrades to a provider call", func(t *testing.T) {
		provider := &stubGeocoder{result: sampleResult()}
		cached := NewCachedGeocoder(provider, failingStore{}, time.Minute, zap.NewNop())

		result, err := cached.Geocode(ctx, "Av. Brasil, 1234")
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, 1, provider.calls)
	})
}

func TestNewGeocoder(t *testing.T) {
	t.Run("memory cache backend", func(t *testing.T) {
		geocoder, store, err := NewGeocoder(testGeocodingConfig("memory"), redisTestConfig(), zap.NewNop())
		require.NoError(t, err)
		require.NotNil(t, store)
		defer store.Close()

		_, ok := geocoder.(*CachedGeocoder)
		assert.True(t, ok)
	})

	t.Run("cache disabled returns the bare provider", func(t *testing.T) {
		geocoder, store, err := NewGeocoder(testGeocodingConfig("none"), redisTestConfig(), zap.NewNop())
		require.NoError(t, err)
		assert.Nil(t, store)

		_, ok := geocoder.(*NominatimGeocoder)
		assert.True(t, ok)
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		cfg := testGeocodingConfig("memory")
		cfg.Provider = "google"

		_, _, err := NewGeocoder(cfg, redisTestConfig(), zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown geocoding provider")
	})

	t.Run("unknown cache backend is rejected", func(t *testing.T) {
		_, _, err := NewGeocoder(testGeocodingConfig("memcached"), redisTestConfig(), zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown geocoding cache backend")
	})
}
