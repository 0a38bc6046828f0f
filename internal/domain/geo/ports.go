package geo

import (
	"context"

	"github.com/gestor/backend/internal/domain/shared"
)

// ErrAddressNotFound is returned by geocoders when the provider resolved the
// request but found no match for the address. Provider/transport failures are
// returned as ordinary wrapped errors instead.
var ErrAddressNotFound = shared.NewDomainError("GEOCODE_FAILED", "Address could not be located")

// GeocodingResult is a forward-geocoding hit from any provider
type GeocodingResult struct {
	Coordinate  Coordinate
	DisplayName string
	Provider    string
}

// Geocoder resolves a free-form address string to a coordinate
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodingResult, error)
}

// CustomerAddressSource exposes the only thing the region engine needs from
// the client record store: the neighborhood names currently present on
// customer addresses. The store itself lives outside this core.
type CustomerAddressSource interface {
	ListNeighborhoodNames(ctx context.Context) ([]string, error)
}
