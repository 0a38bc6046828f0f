package geo

import (
	"context"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/gestor/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MarketPointService handles direct market-point CRUD outside the assignment
// workflow: seeding known points, fixing a misplaced one, or detaching a point
// from a region before the region is deleted.
type MarketPointService struct {
	points  geo.MarketPointRepository
	regions geo.RegionRepository
	logger  *zap.Logger
}

// NewMarketPointService creates a new MarketPointService
func NewMarketPointService(
	points geo.MarketPointRepository,
	regions geo.RegionRepository,
	logger *zap.Logger,
) *MarketPointService {
	return &MarketPointService{
		points:  points,
		regions: regions,
		logger:  logger,
	}
}

// Create places a market point directly from already-known data
func (s *MarketPointService) Create(ctx context.Context, input CreateMarketPointInput) (MarketPointView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "geo.market_point", "create")
	defer span.End()

	if input.RegionID != nil {
		if _, err := s.regions.FindByID(ctx, *input.RegionID); err != nil {
			return MarketPointView{}, err
		}
	}

	point, err := geo.NewMarketPoint(input.Name, input.NeighborhoodName, input.Coordinate, input.RegionID)
	if err != nil {
		return MarketPointView{}, err
	}
	if err := s.points.Save(ctx, point); err != nil {
		telemetry.RecordError(span, err)
		return MarketPointView{}, ErrSaveFailed
	}
	return ToMarketPointView(point), nil
}

// Get loads a single market point
func (s *MarketPointService) Get(ctx context.Context, id uuid.UUID) (MarketPointView, error) {
	point, err := s.points.FindByID(ctx, id)
	if err != nil {
		return MarketPointView{}, err
	}
	return ToMarketPointView(point), nil
}

// List returns every market point, optionally filtered by region
func (s *MarketPointService) List(ctx context.Context, regionID *uuid.UUID) ([]MarketPointView, error) {
	var (
		points []geo.MarketPoint
		err    error
	)
	if regionID != nil {
		points, err = s.points.FindByRegion(ctx, *regionID)
	} else {
		points, err = s.points.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	views := make([]MarketPointView, 0, len(points))
	for i := range points {
		views = append(views, ToMarketPointView(&points[i]))
	}
	return views, nil
}

// Update applies a partial patch to a market point. ClearRegion detaches the
// point; otherwise a non-nil RegionID reassigns it after an existence check.
func (s *MarketPointService) Update(ctx context.Context, id uuid.UUID, input UpdateMarketPointInput) (MarketPointView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "geo.market_point", "update")
	defer span.End()

	point, err := s.points.FindByID(ctx, id)
	if err != nil {
		return MarketPointView{}, err
	}

	if input.Name != nil {
		if err := point.Rename(*input.Name); err != nil {
			return MarketPointView{}, err
		}
	}
	if input.NeighborhoodName != nil {
		point.SetNeighborhood(*input.NeighborhoodName)
	}
	if input.Coordinate != nil {
		if err := point.Move(*input.Coordinate); err != nil {
			return MarketPointView{}, err
		}
	}
	switch {
	case input.ClearRegion:
		point.AssignRegion(nil)
	case input.RegionID != nil:
		if _, err := s.regions.FindByID(ctx, *input.RegionID); err != nil {
			return MarketPointView{}, err
		}
		point.AssignRegion(input.RegionID)
	}

	if err := s.points.Save(ctx, point); err != nil {
		telemetry.RecordError(span, err)
		return MarketPointView{}, ErrSaveFailed
	}
	return ToMarketPointView(point), nil
}

// Delete removes a market point
func (s *MarketPointService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "geo.market_point", "delete")
	defer span.End()

	if _, err := s.points.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.points.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	s.logger.Info("market point deleted", zap.String("point_id", id.String()))
	return nil
}
