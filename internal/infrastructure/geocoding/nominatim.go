package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/gestor/backend/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the provider (1MB)
const maxResponseSize = 1 * 1024 * 1024

// ProviderNominatim identifies results resolved by the Nominatim adapter
const ProviderNominatim = "nominatim"

// NominatimGeocoder implements geo.Geocoder against the OSM Nominatim search
// API. Nominatim's usage policy requires an identifying User-Agent and at most
// one request per second; callers are expected to put a cache in front.
type NominatimGeocoder struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimGeocoder creates a Nominatim adapter from configuration
func NewNominatimGeocoder(cfg config.GeocodingConfig) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// nominatimResult is one hit from the /search endpoint. Nominatim returns
// coordinates as JSON strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-form address to a coordinate. A provider response
// with no hits returns geo.ErrAddressNotFound; transport and decoding
// failures are returned as wrapped errors.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (*geo.GeocodingResult, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	endpoint := g.baseURL + "/search?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: build request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("nominatim: read response: %w", err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("nominatim: decode response: %w", err)
	}

	if len(results) == 0 {
		return nil, geo.ErrAddressNotFound
	}

	hit := results[0]
	lat, err := strconv.ParseFloat(hit.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: invalid latitude %q: %w", hit.Lat, err)
	}
	lng, err := strconv.ParseFloat(hit.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: invalid longitude %q: %w", hit.Lon, err)
	}

	if err := geo.ValidateCoordinate(lat, lng); err != nil {
		return nil, fmt.Errorf("nominatim: out-of-range coordinate: %w", err)
	}

	return &geo.GeocodingResult{
		Coordinate:  geo.Coordinate{Lat: lat, Lng: lng},
		DisplayName: hit.DisplayName,
		Provider:    ProviderNominatim,
	}, nil
}

// Ensure NominatimGeocoder implements the interface
var _ geo.Geocoder = (*NominatimGeocoder)(nil)
