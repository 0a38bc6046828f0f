package geo

import (
	"context"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrReconciliationFailed is surfaced when the store cannot be read or the
// missing rows cannot be created. Rendering must not proceed on a partial
// region set, so the whole pass aborts.
var ErrReconciliationFailed = shared.NewDomainError("RECONCILE_FAILED", "Region catalog could not be synchronized with the store")

// ReconciliationService keeps the persisted region store in step with the
// static catalog and produces the merged read model every consumer renders
// from. Matching is by exact, case-sensitive name equality.
type ReconciliationService struct {
	regions geo.RegionRepository
	points  geo.MarketPointRepository
	pending *PendingTracker
	logger  *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	regions geo.RegionRepository,
	points geo.MarketPointRepository,
	pending *PendingTracker,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		regions: regions,
		points:  points,
		pending: pending,
		logger:  logger,
	}
}

// Reconcile ensures every catalog region has exactly one persisted row
// (creating missing rows in a single batch, never duplicating or deleting),
// then returns the merged view with the three-tier center fallback applied.
// Idempotent: a second call with no catalog change performs zero writes.
func (s *ReconciliationService) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "geo.reconciliation", "reconcile")
	defer span.End()

	persisted, err := s.regions.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("reconciliation aborted: region store unreachable", zap.Error(err))
		return nil, ErrReconciliationFailed
	}

	byName := make(map[string]*geo.Region, len(persisted))
	for i := range persisted {
		region := &persisted[i]
		if prev, dup := byName[region.Name]; dup {
			// Should not happen under the unique index; keep the first row and
			// report the anomaly instead of guessing.
			s.logger.Warn("duplicate persisted region name",
				zap.String("name", region.Name),
				zap.String("kept_id", prev.ID.String()),
				zap.String("duplicate_id", region.ID.String()),
			)
			continue
		}
		byName[region.Name] = region
	}

	var missing []*geo.Region
	for _, static := range geo.Catalog() {
		if _, ok := byName[static.Name]; ok {
			continue
		}
		region, err := geo.NewRegion(static.Name)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		missing = append(missing, region)
	}

	if len(missing) > 0 {
		if err := s.regions.SaveBatch(ctx, missing); err != nil {
			telemetry.RecordError(span, err)
			s.logger.Error("reconciliation aborted: could not create missing regions",
				zap.Int("missing", len(missing)), zap.Error(err))
			return nil, ErrReconciliationFailed
		}
		s.logger.Info("created missing region rows", zap.Int("count", len(missing)))
		for _, region := range missing {
			byName[region.Name] = region
		}
	}

	catalogIndex := geo.CatalogByName()

	views := make([]RegionView, 0, len(byName))
	for _, static := range geo.Catalog() {
		views = append(views, s.regionView(byName[static.Name], &static))
	}
	for i := range persisted {
		region := &persisted[i]
		if _, ok := catalogIndex[region.Name]; ok {
			continue
		}
		// Orphan rows are an observable anomaly: kept read-only, never
		// created or deleted by this pass.
		s.logger.Warn("persisted region matches no catalog entry",
			zap.String("id", region.ID.String()),
			zap.String("name", region.Name),
		)
		views = append(views, s.regionView(region, nil))
	}

	points, err := s.points.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("reconciliation aborted: market point store unreachable", zap.Error(err))
		return nil, ErrReconciliationFailed
	}

	pointViews := make([]MarketPointView, 0, len(points))
	for i := range points {
		pointViews = append(pointViews, ToMarketPointView(&points[i]))
	}

	return &ReconcileResult{Regions: views, MarketPoints: pointViews}, nil
}

// EffectiveCenter resolves a region's center through the fallback chain:
// pending edit, then persisted coordinate, then static default. Every
// consumer goes through here; nothing reads the persisted coordinate raw.
func (s *ReconciliationService) EffectiveCenter(region *geo.Region, static *geo.StaticRegion) (*geo.Coordinate, CenterSource) {
	if coord, ok := s.pending.Get(region.ID); ok {
		return &coord, CenterSourcePending
	}
	if coord, ok := region.Center(); ok {
		return &coord, CenterSourcePersisted
	}
	if static != nil {
		center := static.DefaultCenter
		return &center, CenterSourceDefault
	}
	return nil, CenterSourceNone
}

// View builds the merged read model for a single region, resolving its
// catalog entry by name.
func (s *ReconciliationService) View(region *geo.Region) RegionView {
	var static *geo.StaticRegion
	if sr, ok := geo.FindStaticByName(region.Name); ok {
		static = &sr
	}
	return s.regionView(region, static)
}

func (s *ReconciliationService) regionView(region *geo.Region, static *geo.StaticRegion) RegionView {
	center, source := s.EffectiveCenter(region, static)

	view := RegionView{
		ID:              region.ID,
		Name:            region.Name,
		EffectiveCenter: center,
		CenterSource:    source,
		HasPendingEdit:  source == CenterSourcePending,
		Neighborhoods:   region.NeighborhoodNames(),
		CatalogBacked:   static != nil,
	}
	if static != nil {
		view.Code = static.Code
		view.Color = static.Color
		view.Boundary = static.Boundary
		view.Neighborhoods = static.Neighborhoods
	}
	return view
}
