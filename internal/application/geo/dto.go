package geo

import (
	"github.com/gestor/backend/internal/domain/geo"
	"github.com/google/uuid"
)

// CenterSource tells which tier of the fallback chain produced an effective
// center: a staged edit, the persisted row, or the static catalog default.
type CenterSource string

const (
	CenterSourcePending   CenterSource = "pending"
	CenterSourcePersisted CenterSource = "persisted"
	CenterSourceDefault   CenterSource = "default"
	CenterSourceNone      CenterSource = "none" // orphan rows without any coordinate
)

// RegionView is the merged read model of one region: catalog taxonomy and
// geometry folded together with the persisted row and any pending edit.
// Consumers must read EffectiveCenter, never the persisted coordinate.
type RegionView struct {
	ID              uuid.UUID        `json:"id"`
	Code            string           `json:"code,omitempty"`
	Name            string           `json:"name"`
	Color           string           `json:"color,omitempty"`
	EffectiveCenter *geo.Coordinate  `json:"effective_center,omitempty"`
	CenterSource    CenterSource     `json:"center_source"`
	HasPendingEdit  bool             `json:"has_pending_edit"`
	Boundary        []geo.Coordinate `json:"boundary,omitempty"`
	Neighborhoods   []string         `json:"neighborhoods"`
	CatalogBacked   bool             `json:"catalog_backed"`
}

// MarketPointView is the read model of a market/reference point
type MarketPointView struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	RegionID         *uuid.UUID     `json:"region_id,omitempty"`
	NeighborhoodName string         `json:"neighborhood_name,omitempty"`
	Coordinate       geo.Coordinate `json:"coordinate"`
}

// ToMarketPointView maps a market point aggregate to its read model
func ToMarketPointView(point *geo.MarketPoint) MarketPointView {
	return MarketPointView{
		ID:               point.ID,
		Name:             point.Name,
		RegionID:         point.RegionID,
		NeighborhoodName: point.NeighborhoodName,
		Coordinate:       point.Coordinate(),
	}
}

// ReconcileResult is the full merged view produced by a reconciliation pass
type ReconcileResult struct {
	Regions      []RegionView      `json:"regions"`
	MarketPoints []MarketPointView `json:"market_points"`
}

// RegionSuggestion carries a containment-based region pre-selection. The
// final assignment is always the user's explicit choice.
type RegionSuggestion struct {
	RegionID uuid.UUID `json:"region_id"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
}

// AddressInput is a partially structured address used by geocode-to-place
type AddressInput struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// CreateMarketPointInput carries the fields to place a point directly,
// outside an assignment session
type CreateMarketPointInput struct {
	Name             string
	NeighborhoodName string
	Coordinate       geo.Coordinate
	RegionID         *uuid.UUID
}

// UpdateMarketPointInput is a partial patch for a market point
type UpdateMarketPointInput struct {
	Name             *string
	NeighborhoodName *string
	Coordinate       *geo.Coordinate
	RegionID         *uuid.UUID
	ClearRegion      bool
}
