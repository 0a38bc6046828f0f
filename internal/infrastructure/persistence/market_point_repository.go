package persistence

import (
	"context"
	"errors"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MarketPointRepository implements the geo.MarketPointRepository interface using GORM
type MarketPointRepository struct {
	db *gorm.DB
}

// NewMarketPointRepository creates a new market point repository
func NewMarketPointRepository(db *gorm.DB) *MarketPointRepository {
	return &MarketPointRepository{db: db}
}

// FindByID retrieves a market point by its ID
func (r *MarketPointRepository) FindByID(ctx context.Context, id uuid.UUID) (*geo.MarketPoint, error) {
	var point geo.MarketPoint
	if err := r.db.WithContext(ctx).First(&point, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &point, nil
}

// FindAll retrieves all market points ordered by name
func (r *MarketPointRepository) FindAll(ctx context.Context) ([]geo.MarketPoint, error) {
	var points []geo.MarketPoint
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

// FindByRegion retrieves all market points assigned to a region
func (r *MarketPointRepository) FindByRegion(ctx context.Context, regionID uuid.UUID) ([]geo.MarketPoint, error) {
	var points []geo.MarketPoint
	err := r.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		Order("name ASC").
		Find(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

// CountByRegion counts the market points assigned to a region
func (r *MarketPointRepository) CountByRegion(ctx context.Context, regionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&geo.MarketPoint{}).
		Where("region_id = ?", regionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a market point (create or update)
func (r *MarketPointRepository) Save(ctx context.Context, point *geo.MarketPoint) error {
	return r.db.WithContext(ctx).Save(point).Error
}

// Delete removes a market point by its ID
func (r *MarketPointRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&geo.MarketPoint{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure MarketPointRepository implements the interface
var _ geo.MarketPointRepository = (*MarketPointRepository)(nil)
