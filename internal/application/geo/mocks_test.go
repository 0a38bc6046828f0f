package geo

import (
	"context"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockRegionRepository is a mock implementation of RegionRepository
type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) FindByID(ctx context.Context, id uuid.UUID) (*geo.Region, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Region), args.Error(1)
}

func (m *MockRegionRepository) FindByName(ctx context.Context, name string) (*geo.Region, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Region), args.Error(1)
}

func (m *MockRegionRepository) FindAll(ctx context.Context) ([]geo.Region, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]geo.Region), args.Error(1)
}

func (m *MockRegionRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegionRepository) Save(ctx context.Context, region *geo.Region) error {
	args := m.Called(ctx, region)
	return args.Error(0)
}

func (m *MockRegionRepository) SaveBatch(ctx context.Context, regions []*geo.Region) error {
	args := m.Called(ctx, regions)
	return args.Error(0)
}

func (m *MockRegionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMarketPointRepository is a mock implementation of MarketPointRepository
type MockMarketPointRepository struct {
	mock.Mock
}

func (m *MockMarketPointRepository) FindByID(ctx context.Context, id uuid.UUID) (*geo.MarketPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.MarketPoint), args.Error(1)
}

func (m *MockMarketPointRepository) FindAll(ctx context.Context) ([]geo.MarketPoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]geo.MarketPoint), args.Error(1)
}

func (m *MockMarketPointRepository) FindByRegion(ctx context.Context, regionID uuid.UUID) ([]geo.MarketPoint, error) {
	args := m.Called(ctx, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]geo.MarketPoint), args.Error(1)
}

func (m *MockMarketPointRepository) CountByRegion(ctx context.Context, regionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, regionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMarketPointRepository) Save(ctx context.Context, point *geo.MarketPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockMarketPointRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// Mock Adapters
// =============================================================================

// MockGeocoder is a mock implementation of the Geocoder port
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*geo.GeocodingResult, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.GeocodingResult), args.Error(1)
}

// MockCustomerAddressSource is a mock implementation of CustomerAddressSource
type MockCustomerAddressSource struct {
	mock.Mock
}

func (m *MockCustomerAddressSource) ListNeighborhoodNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
