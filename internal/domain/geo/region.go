package geo

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gestor/backend/internal/domain/shared"
)

// Region is the persisted, mutable side of a service region. The static
// catalog owns taxonomy and geometry; this aggregate carries only what users
// edit: the center coordinate and the denormalized neighborhood cache.
// Name joins a row to its catalog entry by exact string equality.
// It is the aggregate root for region-related operations.
type Region struct {
	shared.BaseAggregateRoot
	Name          string   `gorm:"type:varchar(120);not null;uniqueIndex"`
	CenterLat     *float64 `gorm:"type:double precision"`
	CenterLng     *float64 `gorm:"type:double precision"`
	Neighborhoods string   `gorm:"type:jsonb;not null;default:'[]'"` // JSON array of names, display-only cache
}

// TableName returns the table name for GORM
func (Region) TableName() string {
	return "regions"
}

// NewRegion creates a persisted region row for the given catalog name.
// The center starts null; it only gets a value on first explicit save.
func NewRegion(name string) (*Region, error) {
	if err := validateRegionName(name); err != nil {
		return nil, err
	}

	region := &Region{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Neighborhoods:     "[]",
	}

	region.AddDomainEvent(NewRegionCreatedEvent(region))

	return region, nil
}

// Center returns the persisted center coordinate, if one has been saved
func (r *Region) Center() (Coordinate, bool) {
	if r.CenterLat == nil || r.CenterLng == nil {
		return Coordinate{}, false
	}
	return Coordinate{Lat: *r.CenterLat, Lng: *r.CenterLng}, true
}

// SetCenter commits a center coordinate to the aggregate
func (r *Region) SetCenter(coord Coordinate) error {
	if err := ValidateCoordinate(coord.Lat, coord.Lng); err != nil {
		return err
	}

	lat, lng := coord.Lat, coord.Lng
	r.CenterLat = &lat
	r.CenterLng = &lng
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRegionCenterChangedEvent(r, coord))

	return nil
}

// Rename changes the region's display name
func (r *Region) Rename(name string) error {
	if err := validateRegionName(name); err != nil {
		return err
	}

	r.Name = name
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRegionUpdatedEvent(r))

	return nil
}

// SetNeighborhoods replaces the denormalized neighborhood cache
func (r *Region) SetNeighborhoods(names []string) error {
	if names == nil {
		names = []string{}
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		return shared.NewDomainError("INVALID_NEIGHBORHOODS", "Neighborhood list cannot be encoded")
	}

	r.Neighborhoods = string(encoded)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// NeighborhoodNames decodes the cached neighborhood list
func (r *Region) NeighborhoodNames() []string {
	var names []string
	if err := json.Unmarshal([]byte(r.Neighborhoods), &names); err != nil {
		return []string{}
	}
	return names
}

// IsCatalogBacked reports whether this row corresponds to a catalog entry.
// Catalog-backed regions are protected from deletion and renaming; rows whose
// name matches no catalog entry are tolerated orphans.
func (r *Region) IsCatalogBacked() bool {
	_, ok := FindStaticByName(r.Name)
	return ok
}

func validateRegionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Region name cannot be empty")
	}
	if len(name) > 120 {
		return shared.NewDomainError("INVALID_NAME", "Region name cannot exceed 120 characters")
	}
	return nil
}
