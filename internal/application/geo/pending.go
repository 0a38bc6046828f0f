package geo

import (
	"sync"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/google/uuid"
)

// PendingTracker holds not-yet-persisted center edits, keyed by region id.
// It is process-local state shared by every consumer that resolves effective
// coordinates; entries survive until an explicit commit or discard. A set for
// a region replaces any prior pending value (last writer wins).
type PendingTracker struct {
	mu    sync.RWMutex
	edits map[uuid.UUID]geo.Coordinate
}

// NewPendingTracker creates an empty tracker
func NewPendingTracker() *PendingTracker {
	return &PendingTracker{
		edits: make(map[uuid.UUID]geo.Coordinate),
	}
}

// Set stages a pending coordinate for the region
func (t *PendingTracker) Set(regionID uuid.UUID, coord geo.Coordinate) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.edits[regionID] = coord
}

// Get returns the pending coordinate for the region, if any
func (t *PendingTracker) Get(regionID uuid.UUID) (geo.Coordinate, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	coord, ok := t.edits[regionID]
	return coord, ok
}

// Clear discards the pending coordinate for the region
func (t *PendingTracker) Clear(regionID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.edits, regionID)
}

// CompareAndClear discards the region's pending entry only if it still equals
// the given coordinate. The save path uses this so a save dispatched with an
// older value never wipes an edit staged while the save was in flight.
// It reports whether the entry was cleared.
func (t *PendingTracker) CompareAndClear(regionID uuid.UUID, coord geo.Coordinate) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	current, ok := t.edits[regionID]
	if !ok || !current.Equals(coord) {
		return false
	}
	delete(t.edits, regionID)
	return true
}

// All returns a snapshot copy of every pending edit
func (t *PendingTracker) All() map[uuid.UUID]geo.Coordinate {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[uuid.UUID]geo.Coordinate, len(t.edits))
	for id, coord := range t.edits {
		out[id] = coord
	}
	return out
}

// Len returns the number of staged edits
func (t *PendingTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.edits)
}
