package geocoding

import (
	"context"
	"testing"
	"time"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *geo.GeocodingResult {
	return &geo.GeocodingResult{
		Coordinate:  geo.Coordinate{Lat: -25.5400, Lng: -54.5820},
		DisplayName: "Avenida Brasil, Centro, Foz do Iguaçu, Paraná, Brasil",
		Provider:    ProviderNominatim,
	}
}

func TestMemoryGeocodeStore(t *testing.T) {
	ctx := context.Background()

	t.Run("miss returns nil without error", func(t *testing.T) {
		store := NewMemoryGeocodeStore()
		defer store.Close()

		result, err := store.Get(ctx, "Av. Brasil, 1234")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		store := NewMemoryGeocodeStore()
		defer store.Close()

		require.NoError(t, store.Set(ctx, "Av. Brasil, 1234", sampleResult(), time.Minute))

		result, err := store.Get(ctx, "Av. Brasil, 1234")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.Coordinate.Equals(geo.Coordinate{Lat: -25.5400, Lng: -54.5820}))
		assert.Equal(t, ProviderNominatim, result.Provider)
	})

	t.Run("lookup is normalized for case and whitespace", func(t *testing.T) {
		store := NewMemoryGeocodeStore()
		defer store.Close()

		require.NoError(t, store.Set(ctx, "Av. Brasil, 1234", sampleResult(), time.Minute))

		result, err := store.Get(ctx, "  av. brasil,   1234 ")
		require.NoError(t, err)
		assert.NotNil(t, result)
	})

	t.Run("expired entries are misses", func(t *testing.T) {
		store := NewMemoryGeocodeStore()
		defer store.Close()

		require.NoError(t, store.Set(ctx, "Av. Brasil, 1234", sampleResult(), -time.Second))

		result, err := store.Get(ctx, "Av. Brasil, 1234")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("cleanup removes expired entries", func(t *testing.T) {
		store := NewMemoryGeocodeStore()
		defer store.Close()

		require.NoError(t, store.Set(ctx, "expired", sampleResult(), -time.Second))
		require.NoError(t, store.Set(ctx, "live", sampleResult(), time.Minute))
		require.Equal(t, 2, store.Size())

		store.cleanup()
		assert.Equal(t, 1, store.Size())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		store := NewMemoryGeocodeStore()
		assert.NoError(t, store.Close())
		assert.NoError(t, store.Close())
	})
}
