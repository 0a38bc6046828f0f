package geo

import (
	"github.com/gestor/backend/internal/domain/shared"
)

// Event types for the region aggregate
const (
	EventRegionCreated       = "geo.region.created"
	EventRegionUpdated       = "geo.region.updated"
	EventRegionCenterChanged = "geo.region.center_changed"
	EventRegionDeleted       = "geo.region.deleted"
)

// RegionCreatedEvent is emitted when a region row is created (usually during
// catalog reconciliation)
type RegionCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewRegionCreatedEvent creates a new RegionCreatedEvent
func NewRegionCreatedEvent(region *Region) *RegionCreatedEvent {
	return &RegionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRegionCreated, region.ID, "Region"),
		Name:            region.Name,
	}
}

// RegionUpdatedEvent is emitted when region metadata changes
type RegionUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewRegionUpdatedEvent creates a new RegionUpdatedEvent
func NewRegionUpdatedEvent(region *Region) *RegionUpdatedEvent {
	return &RegionUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRegionUpdated, region.ID, "Region"),
		Name:            region.Name,
	}
}

// RegionCenterChangedEvent is emitted when a center coordinate is committed
type RegionCenterChangedEvent struct {
	shared.BaseDomainEvent
	Name   string     `json:"name"`
	Center Coordinate `json:"center"`
}

// NewRegionCenterChangedEvent creates a new RegionCenterChangedEvent
func NewRegionCenterChangedEvent(region *Region, center Coordinate) *RegionCenterChangedEvent {
	return &RegionCenterChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRegionCenterChanged, region.ID, "Region"),
		Name:            region.Name,
		Center:          center,
	}
}
