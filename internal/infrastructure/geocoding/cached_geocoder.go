package geocoding

import (
	"context"
	"fmt"
	"time"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/gestor/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// CachedGeocoder decorates a geo.Geocoder with a GeocodeStore. Cache failures
// never fail the lookup; they degrade to a provider call with a warning.
// Failed lookups are not cached, so a transient provider error does not pin a
// negative result for the TTL.
type CachedGeocoder struct {
	next   geo.Geocoder
	store  GeocodeStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedGeocoder wraps a geocoder with a cache
func NewCachedGeocoder(next geo.Geocoder, store GeocodeStore, ttl time.Duration, logger *zap.Logger) *CachedGeocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGeocoder{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// Geocode resolves an address, serving from the cache when possible
func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (*geo.GeocodingResult, error) {
	cached, err := g.store.Get(ctx, address)
	if err != nil {
		g.logger.Warn("geocode cache read failed, falling through to provider",
			zap.Error(err),
		)
	} else if cached != nil {
		return cached, nil
	}

	result, err := g.next.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	if err := g.store.Set(ctx, address, result, g.ttl); err != nil {
		g.logger.Warn("geocode cache write failed",
			zap.Error(err),
		)
	}

	return result, nil
}

// Ensure CachedGeocoder implements the interface
var _ geo.Geocoder = (*CachedGeocoder)(nil)

// NewGeocoder assembles the configured provider with the configured cache
// backend. When Redis is requested but unreachable, it falls back to the
// in-memory store with a warning rather than failing startup.
func NewGeocoder(cfg config.GeocodingConfig, redisCfg config.RedisConfig, logger *zap.Logger) (geo.Geocoder, GeocodeStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var provider geo.Geocoder
	switch cfg.Provider {
	case ProviderNominatim:
		provider = NewNominatimGeocoder(cfg)
	default:
		return nil, nil, fmt.Errorf("unknown geocoding provider %q", cfg.Provider)
	}

	var store GeocodeStore
	switch cfg.Cache {
	case "none":
		return provider, nil, nil
	case "memory":
		store = NewMemoryGeocodeStore()
	case "redis":
		redisStore, err := NewRedisGeocodeStore(redisCfg.Addr(), redisCfg.Password, redisCfg.DB)
		if err != nil {
			logger.Warn("Redis unavailable, falling back to in-memory geocode cache",
				zap.Error(err),
			)
			store = NewMemoryGeocodeStore()
		} else {
			store = redisStore
		}
	default:
		return nil, nil, fmt.Errorf("unknown geocoding cache backend %q", cfg.Cache)
	}

	return NewCachedGeocoder(provider, store, cfg.CacheTTL, logger), store, nil
}
