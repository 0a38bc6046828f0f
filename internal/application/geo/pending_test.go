package geo

import (
	"testing"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCoord(t *testing.T, lat, lng float64) geo.Coordinate {
	t.Helper()
	coord, err := geo.NewCoordinate(lat, lng)
	require.NoError(t, err)
	return coord
}

func TestPendingTracker_SetGetClear(t *testing.T) {
	tracker := NewPendingTracker()
	regionID := uuid.New()

	_, ok := tracker.Get(regionID)
	assert.False(t, ok)

	coord := mustCoord(t, -25.5163, -54.5854)
	tracker.Set(regionID, coord)

	got, ok := tracker.Get(regionID)
	require.True(t, ok)
	assert.True(t, got.Equals(coord))
	assert.Equal(t, 1, tracker.Len())

	tracker.Clear(regionID)
	_, ok = tracker.Get(regionID)
	assert.False(t, ok)
	assert.Equal(t, 0, tracker.Len())
}

func TestPendingTracker_SetReplacesPriorValue(t *testing.T) {
	tracker := NewPendingTracker()
	regionID := uuid.New()

	tracker.Set(regionID, mustCoord(t, -25.51, -54.58))
	newer := mustCoord(t, -25.52, -54.59)
	tracker.Set(regionID, newer)

	got, ok := tracker.Get(regionID)
	require.True(t, ok)
	assert.True(t, got.Equals(newer))
	assert.Equal(t, 1, tracker.Len())
}

func TestPendingTracker_CompareAndClear(t *testing.T) {
	t.Run("clears when value matches", func(t *testing.T) {
		tracker := NewPendingTracker()
		regionID := uuid.New()
		coord := mustCoord(t, -25.51, -54.58)
		tracker.Set(regionID, coord)

		assert.True(t, tracker.CompareAndClear(regionID, coord))
		_, ok := tracker.Get(regionID)
		assert.False(t, ok)
	})

	t.Run("keeps an edit staged after the compared value", func(t *testing.T) {
		// A save dispatched with the older coordinate must not wipe the
		// newer edit staged while the save was in flight.
		tracker := NewPendingTracker()
		regionID := uuid.New()
		older := mustCoord(t, -25.51, -54.58)
		tracker.Set(regionID, older)

		newer := mustCoord(t, -25.53, -54.60)
		tracker.Set(regionID, newer)

		assert.False(t, tracker.CompareAndClear(regionID, older))

		got, ok := tracker.Get(regionID)
		require.True(t, ok)
		assert.True(t, got.Equals(newer))
	})

	t.Run("no-op when nothing is staged", func(t *testing.T) {
		tracker := NewPendingTracker()
		assert.False(t, tracker.CompareAndClear(uuid.New(), mustCoord(t, -25.51, -54.58)))
	})
}

func TestPendingTracker_AllReturnsSnapshot(t *testing.T) {
	tracker := NewPendingTracker()
	first := uuid.New()
	second := uuid.New()
	tracker.Set(first, mustCoord(t, -25.51, -54.58))
	tracker.Set(second, mustCoord(t, -25.52, -54.59))

	snapshot := tracker.All()
	assert.Len(t, snapshot, 2)

	// Mutating the snapshot must not affect the tracker
	delete(snapshot, first)
	_, ok := tracker.Get(first)
	assert.True(t, ok)
}
