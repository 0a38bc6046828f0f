package geo

import (
	"context"
	"sort"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Region service errors
var (
	// ErrNoPendingEdit is returned by CommitCenter when nothing is staged
	ErrNoPendingEdit = shared.NewDomainError("NO_PENDING_EDIT", "Region has no pending center edit to save")
	// ErrRegionProtected guards catalog-backed regions from delete/rename
	ErrRegionProtected = shared.NewDomainError("REGION_PROTECTED", "Catalog-backed regions cannot be deleted or renamed")
	// ErrRegionInUse refuses deleting a region that market points still reference
	ErrRegionInUse = shared.NewDomainError("REGION_IN_USE", "Region still has market points assigned to it")
	// ErrSaveFailed is surfaced when the store rejects a write; the pending
	// edit survives so the user can retry
	ErrSaveFailed = shared.NewDomainError("SAVE_FAILED", "Region could not be saved; the unsaved edit was kept")
)

// RegionService handles region center edits, the commit path, region
// lifecycle guards, and pending-neighborhood detection.
type RegionService struct {
	regions   geo.RegionRepository
	points    geo.MarketPointRepository
	pending   *PendingTracker
	customers geo.CustomerAddressSource
	logger    *zap.Logger
}

// NewRegionService creates a new RegionService
func NewRegionService(
	regions geo.RegionRepository,
	points geo.MarketPointRepository,
	pending *PendingTracker,
	customers geo.CustomerAddressSource,
	logger *zap.Logger,
) *RegionService {
	return &RegionService{
		regions:   regions,
		points:    points,
		pending:   pending,
		customers: customers,
		logger:    logger,
	}
}

// StageCenter records an optimistic, local-only center edit for the region.
// Both drag gestures and manual field edits land here; nothing is persisted
// until CommitCenter.
func (s *RegionService) StageCenter(regionID uuid.UUID, lat, lng float64) error {
	coord, err := geo.NewCoordinate(lat, lng)
	if err != nil {
		return err
	}
	s.pending.Set(regionID, coord)
	return nil
}

// StagedCenter returns the region's pending coordinate, if any
func (s *RegionService) StagedCenter(regionID uuid.UUID) (geo.Coordinate, bool) {
	return s.pending.Get(regionID)
}

// DiscardStagedCenter drops the region's pending edit without saving
func (s *RegionService) DiscardStagedCenter(regionID uuid.UUID) {
	s.pending.Clear(regionID)
}

// CommitCenter persists the region's staged coordinate. The pending entry is
// cleared only after the store confirms the write, and only if it still holds
// the value this commit was dispatched with; an edit staged while the write
// was in flight survives. On store failure the pending edit is kept.
func (s *RegionService) CommitCenter(ctx context.Context, regionID uuid.UUID) (*geo.Region, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "geo.region", "commit_center")
	defer span.End()

	staged, ok := s.pending.Get(regionID)
	if !ok {
		return nil, ErrNoPendingEdit
	}

	region, err := s.regions.FindByID(ctx, regionID)
	if err != nil {
		return nil, err
	}

	if err := region.SetCenter(staged); err != nil {
		return nil, err
	}

	if err := s.regions.Save(ctx, region); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("region center save rejected; pending edit kept",
			zap.String("region_id", regionID.String()), zap.Error(err))
		return nil, ErrSaveFailed
	}

	s.pending.CompareAndClear(regionID, staged)
	return region, nil
}

// GetByID loads a single region row
func (s *RegionService) GetByID(ctx context.Context, regionID uuid.UUID) (*geo.Region, error) {
	return s.regions.FindByID(ctx, regionID)
}

// Rename changes an orphan region's display name. Catalog-backed rows are
// refused: renaming one would orphan it on the next reconciliation.
func (s *RegionService) Rename(ctx context.Context, regionID uuid.UUID, name string) (*geo.Region, error) {
	region, err := s.regions.FindByID(ctx, regionID)
	if err != nil {
		return nil, err
	}

	if region.IsCatalogBacked() {
		return nil, ErrRegionProtected
	}
	if _, ok := geo.FindStaticByName(name); ok {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A catalog region already uses this name")
	}
	if exists, err := s.regions.ExistsByName(ctx, name); err != nil {
		return nil, err
	} else if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A region with this name already exists")
	}

	if err := region.Rename(name); err != nil {
		return nil, err
	}
	if err := s.regions.Save(ctx, region); err != nil {
		return nil, ErrSaveFailed
	}
	return region, nil
}

// Delete removes a region row. Catalog-backed regions and regions still
// referenced by market points are refused before any store call.
func (s *RegionService) Delete(ctx context.Context, regionID uuid.UUID) error {
	region, err := s.regions.FindByID(ctx, regionID)
	if err != nil {
		return err
	}

	if region.IsCatalogBacked() {
		return ErrRegionProtected
	}

	count, err := s.points.CountByRegion(ctx, regionID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrRegionInUse
	}

	if err := s.regions.Delete(ctx, regionID); err != nil {
		return err
	}

	s.pending.Clear(regionID)
	s.logger.Info("region deleted", zap.String("region_id", regionID.String()), zap.String("name", region.Name))
	return nil
}

// PendingNeighborhoods returns the neighborhood names present on customer
// addresses that resolve to no catalog region, deduplicated and sorted.
// Matching normalizes case and diacritics; computed on demand, never stored.
func (s *RegionService) PendingNeighborhoods(ctx context.Context) ([]string, error) {
	names, err := s.customers.ListNeighborhoodNames(ctx)
	if err != nil {
		return nil, err
	}

	index := geo.NormalizedNeighborhoodIndex()
	seen := make(map[string]bool)
	var pending []string
	for _, name := range names {
		key := geo.NormalizeName(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if _, assigned := index[key]; !assigned {
			pending = append(pending, name)
		}
	}
	sort.Strings(pending)
	return pending, nil
}
