package geo

import (
	"github.com/gestor/backend/internal/domain/shared"
)

// Event types for the market point aggregate
const (
	EventMarketPointCreated = "geo.market_point.created"
	EventMarketPointUpdated = "geo.market_point.updated"
	EventMarketPointDeleted = "geo.market_point.deleted"
)

// MarketPointCreatedEvent is emitted when a market point is placed
type MarketPointCreatedEvent struct {
	shared.BaseDomainEvent
	Name   string     `json:"name"`
	Coord  Coordinate `json:"coordinate"`
	Region string     `json:"region_id,omitempty"`
}

// NewMarketPointCreatedEvent creates a new MarketPointCreatedEvent
func NewMarketPointCreatedEvent(point *MarketPoint) *MarketPointCreatedEvent {
	e := &MarketPointCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventMarketPointCreated, point.ID, "MarketPoint"),
		Name:            point.Name,
		Coord:           point.Coordinate(),
	}
	if point.RegionID != nil {
		e.Region = point.RegionID.String()
	}
	return e
}

// MarketPointUpdatedEvent is emitted when a market point changes
type MarketPointUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewMarketPointUpdatedEvent creates a new MarketPointUpdatedEvent
func NewMarketPointUpdatedEvent(point *MarketPoint) *MarketPointUpdatedEvent {
	return &MarketPointUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventMarketPointUpdated, point.ID, "MarketPoint"),
		Name:            point.Name,
	}
}
