package geo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegion(t *testing.T) {
	t.Run("creates region with null center", func(t *testing.T) {
		region, err := NewRegion("Região Norte")

		require.NoError(t, err)
		assert.Equal(t, "Região Norte", region.Name)
		_, hasCenter := region.Center()
		assert.False(t, hasCenter)
		assert.Equal(t, "[]", region.Neighborhoods)
		assert.Len(t, region.GetDomainEvents(), 1)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		region, err := NewRegion("   ")

		assert.Error(t, err)
		assert.Nil(t, region)
	})

	t.Run("fails with overlong name", func(t *testing.T) {
		region, err := NewRegion(strings.Repeat("x", 121))

		assert.Error(t, err)
		assert.Nil(t, region)
	})
}

func TestRegionSetCenter(t *testing.T) {
	t.Run("commits a coordinate", func(t *testing.T) {
		region, err := NewRegion("Centro")
		require.NoError(t, err)
		before := region.GetVersion()

		err = region.SetCenter(Coordinate{Lat: -25.54, Lng: -54.58})

		require.NoError(t, err)
		center, ok := region.Center()
		require.True(t, ok)
		assert.Equal(t, -25.54, center.Lat)
		assert.Equal(t, -54.58, center.Lng)
		assert.Equal(t, before+1, region.GetVersion())
	})

	t.Run("rejects out-of-range coordinate", func(t *testing.T) {
		region, err := NewRegion("Centro")
		require.NoError(t, err)

		err = region.SetCenter(Coordinate{Lat: 91, Lng: 0})

		assert.Error(t, err)
		_, ok := region.Center()
		assert.False(t, ok)
	})
}

func TestRegionNeighborhoods(t *testing.T) {
	region, err := NewRegion("Vila A")
	require.NoError(t, err)

	require.NoError(t, region.SetNeighborhoods([]string{"Vila A", "Vila B"}))
	assert.Equal(t, []string{"Vila A", "Vila B"}, region.NeighborhoodNames())

	require.NoError(t, region.SetNeighborhoods(nil))
	assert.Empty(t, region.NeighborhoodNames())
}

func TestRegionIsCatalogBacked(t *testing.T) {
	t.Run("catalog name is protected", func(t *testing.T) {
		region, err := NewRegion("Centro")
		require.NoError(t, err)

		assert.True(t, region.IsCatalogBacked())
	})

	t.Run("orphan name is not", func(t *testing.T) {
		region, err := NewRegion("Região Fantasma")
		require.NoError(t, err)

		assert.False(t, region.IsCatalogBacked())
	})
}
