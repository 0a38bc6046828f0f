package persistence

import (
	"context"
	"errors"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegionRepository implements the geo.RegionRepository interface using GORM
type RegionRepository struct {
	db *gorm.DB
}

// NewRegionRepository creates a new region repository
func NewRegionRepository(db *gorm.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

// FindByID retrieves a region by its ID
func (r *RegionRepository) FindByID(ctx context.Context, id uuid.UUID) (*geo.Region, error) {
	var region geo.Region
	if err := r.db.WithContext(ctx).First(&region, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &region, nil
}

// FindByName retrieves a region by its exact name
func (r *RegionRepository) FindByName(ctx context.Context, name string) (*geo.Region, error) {
	var region geo.Region
	if err := r.db.WithContext(ctx).First(&region, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &region, nil
}

// FindAll retrieves all regions ordered by name
func (r *RegionRepository) FindAll(ctx context.Context) ([]geo.Region, error) {
	var regions []geo.Region
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&regions).Error; err != nil {
		return nil, err
	}
	return regions, nil
}

// ExistsByName checks whether a region with the exact name exists
func (r *RegionRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&geo.Region{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists a region (create or update)
func (r *RegionRepository) Save(ctx context.Context, region *geo.Region) error {
	return r.db.WithContext(ctx).Save(region).Error
}

// SaveBatch persists multiple regions in a single transaction
func (r *RegionRepository) SaveBatch(ctx context.Context, regions []*geo.Region) error {
	if len(regions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, region := range regions {
			if err := tx.Save(region).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a region by its ID
func (r *RegionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&geo.Region{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure RegionRepository implements the interface
var _ geo.RegionRepository = (*RegionRepository)(nil)
