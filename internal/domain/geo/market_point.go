package geo

import (
	"strings"
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MarketPoint is a user-placed reference point tied to a neighborhood and,
// once the user confirms, to a region. Its lifetime is independent of the
// region lifecycle except for the nullable foreign key.
type MarketPoint struct {
	shared.BaseAggregateRoot
	Name             string     `gorm:"type:varchar(200);not null"`
	RegionID         *uuid.UUID `gorm:"type:uuid;index"`
	NeighborhoodName string     `gorm:"type:varchar(120)"`
	Lat              float64    `gorm:"type:double precision;not null"`
	Lng              float64    `gorm:"type:double precision;not null"`
}

// TableName returns the table name for GORM
func (MarketPoint) TableName() string {
	return "market_points"
}

// NewMarketPoint creates a market point at the given coordinate.
// The region assignment is optional and always an explicit user choice.
func NewMarketPoint(name, neighborhoodName string, coord Coordinate, regionID *uuid.UUID) (*MarketPoint, error) {
	if err := validateMarketPointName(name); err != nil {
		return nil, err
	}
	if err := ValidateCoordinate(coord.Lat, coord.Lng); err != nil {
		return nil, err
	}
	if len(neighborhoodName) > 120 {
		return nil, shared.NewDomainError("INVALID_NEIGHBORHOOD", "Neighborhood name cannot exceed 120 characters")
	}

	point := &MarketPoint{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		RegionID:          regionID,
		NeighborhoodName:  neighborhoodName,
		Lat:               coord.Lat,
		Lng:               coord.Lng,
	}

	point.AddDomainEvent(NewMarketPointCreatedEvent(point))

	return point, nil
}

// Coordinate returns the point's location
func (p *MarketPoint) Coordinate() Coordinate {
	return Coordinate{Lat: p.Lat, Lng: p.Lng}
}

// Move relocates the point
func (p *MarketPoint) Move(coord Coordinate) error {
	if err := ValidateCoordinate(coord.Lat, coord.Lng); err != nil {
		return err
	}

	p.Lat = coord.Lat
	p.Lng = coord.Lng
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewMarketPointUpdatedEvent(p))

	return nil
}

// AssignRegion sets or clears the region foreign key
func (p *MarketPoint) AssignRegion(regionID *uuid.UUID) {
	p.RegionID = regionID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewMarketPointUpdatedEvent(p))
}

// Rename changes the point's display name
func (p *MarketPoint) Rename(name string) error {
	if err := validateMarketPointName(name); err != nil {
		return err
	}

	p.Name = name
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewMarketPointUpdatedEvent(p))

	return nil
}

// SetNeighborhood changes the source neighborhood name
func (p *MarketPoint) SetNeighborhood(name string) error {
	if len(name) > 120 {
		return shared.NewDomainError("INVALID_NEIGHBORHOOD", "Neighborhood name cannot exceed 120 characters")
	}

	p.NeighborhoodName = name
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

func validateMarketPointName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Market point name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Market point name cannot exceed 200 characters")
	}
	return nil
}
