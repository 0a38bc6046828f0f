package geo

import (
	"math"

	"github.com/gestor/backend/internal/domain/shared"
)

// Coordinate is an immutable latitude/longitude pair in decimal degrees.
// Malformed values (NaN, infinity, out-of-range) are rejected here, at the
// boundary, so the geometry code never has to deal with them.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewCoordinate creates a validated coordinate
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	if err := ValidateCoordinate(lat, lng); err != nil {
		return Coordinate{}, err
	}
	return Coordinate{Lat: lat, Lng: lng}, nil
}

// ValidateCoordinate checks that a latitude/longitude pair is well-formed
func ValidateCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return shared.NewDomainError("INVALID_COORDINATE", "Coordinate must be a finite number")
	}
	if lat < -90 || lat > 90 {
		return shared.NewDomainError("INVALID_COORDINATE", "Latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return shared.NewDomainError("INVALID_COORDINATE", "Longitude must be between -180 and 180")
	}
	return nil
}

// Equals reports whether two coordinates are exactly the same pair
func (c Coordinate) Equals(other Coordinate) bool {
	return c.Lat == other.Lat && c.Lng == other.Lng
}
