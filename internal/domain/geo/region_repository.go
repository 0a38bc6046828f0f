package geo

import (
	"context"

	"github.com/google/uuid"
)

// RegionRepository is the persistence boundary for region rows
type RegionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Region, error)
	FindByName(ctx context.Context, name string) (*Region, error)
	FindAll(ctx context.Context) ([]Region, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, region *Region) error
	SaveBatch(ctx context.Context, regions []*Region) error
	Delete(ctx context.Context, id uuid.UUID) error
}
