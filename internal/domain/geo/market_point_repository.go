package geo

import (
	"context"

	"github.com/google/uuid"
)

// MarketPointRepository is the persistence boundary for market points
type MarketPointRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MarketPoint, error)
	FindAll(ctx context.Context) ([]MarketPoint, error)
	FindByRegion(ctx context.Context, regionID uuid.UUID) ([]MarketPoint, error)
	CountByRegion(ctx context.Context, regionID uuid.UUID) (int64, error)
	Save(ctx context.Context, point *MarketPoint) error
	Delete(ctx context.Context, id uuid.UUID) error
}
