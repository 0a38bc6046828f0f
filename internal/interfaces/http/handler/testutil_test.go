package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	appgeo "github.com/gestor/backend/internal/application/geo"
	"github.com/gestor/backend/internal/domain/geo"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memRegionRepo is an in-memory geo.RegionRepository for handler tests
type memRegionRepo struct {
	mu      sync.Mutex
	regions map[uuid.UUID]*geo.Region
	saveErr error
}

func newMemRegionRepo() *memRegionRepo {
	return &memRegionRepo{regions: make(map[uuid.UUID]*geo.Region)}
}

func (r *memRegionRepo) FindByID(_ context.Context, id uuid.UUID) (*geo.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if region, ok := r.regions[id]; ok {
		clone := *region
		return &clone, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memRegionRepo) FindByName(_ context.Context, name string) (*geo.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, region := range r.regions {
		if region.Name == name {
			clone := *region
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memRegionRepo) FindAll(_ context.Context) ([]geo.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]geo.Region, 0, len(r.regions))
	for _, region := range r.regions {
		out = append(out, *region)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memRegionRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, region := range r.regions {
		if region.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRegionRepo) Save(_ context.Context, region *geo.Region) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *region
	r.regions[region.ID] = &clone
	return nil
}

func (r *memRegionRepo) SaveBatch(ctx context.Context, regions []*geo.Region) error {
	for _, region := range regions {
		if err := r.Save(ctx, region); err != nil {
			return err
		}
	}
	return nil
}

func (r *memRegionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.regions[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.regions, id)
	return nil
}

// memPointRepo is an in-memory geo.MarketPointRepository for handler tests
type memPointRepo struct {
	mu      sync.Mutex
	points  map[uuid.UUID]*geo.MarketPoint
	saveErr error
}

func newMemPointRepo() *memPointRepo {
	return &memPointRepo{points: make(map[uuid.UUID]*geo.MarketPoint)}
}

func (r *memPointRepo) FindByID(_ context.Context, id uuid.UUID) (*geo.MarketPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if point, ok := r.points[id]; ok {
		clone := *point
		return &clone, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memPointRepo) FindAll(_ context.Context) ([]geo.MarketPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]geo.MarketPoint, 0, len(r.points))
	for _, point := range r.points {
		out = append(out, *point)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memPointRepo) FindByRegion(_ context.Context, regionID uuid.UUID) ([]geo.MarketPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]geo.MarketPoint, 0)
	for _, point := range r.points {
		if point.RegionID != nil && *point.RegionID == regionID {
			out = append(out, *point)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memPointRepo) CountByRegion(_ context.Context, regionID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, point := range r.points {
		if point.RegionID != nil && *point.RegionID == regionID {
			count++
		}
	}
	return count, nil
}

func (r *memPointRepo) Save(_ context.Context, point *geo.MarketPoint) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *point
	r.points[point.ID] = &clone
	return nil
}

func (r *memPointRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.points[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.points, id)
	return nil
}

// stubGeocoder returns a canned result or error
type stubGeocoder struct {
	result *geo.GeocodingResult
	err    error
}

func (g *stubGeocoder) Geocode(_ context.Context, _ string) (*geo.GeocodingResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

// stubCustomerSource returns a fixed list of neighborhood names
type stubCustomerSource struct {
	names []string
}

func (s *stubCustomerSource) ListNeighborhoodNames(_ context.Context) ([]string, error) {
	return s.names, nil
}

// testEnv bundles the services and fakes behind a mounted test router
type testEnv struct {
	router    *gin.Engine
	regions   *memRegionRepo
	points    *memPointRepo
	geocoder  *stubGeocoder
	customers *stubCustomerSource
	pending   *appgeo.PendingTracker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		regions:   newMemRegionRepo(),
		points:    newMemPointRepo(),
		geocoder:  &stubGeocoder{},
		customers: &stubCustomerSource{},
		pending:   appgeo.NewPendingTracker(),
	}

	logger := zap.NewNop()
	reconciler := appgeo.NewReconciliationService(env.regions, env.points, env.pending, logger)
	regionService := appgeo.NewRegionService(env.regions, env.points, env.pending, env.customers, logger)
	pointService := appgeo.NewMarketPointService(env.points, env.regions, logger)
	assignmentService := appgeo.NewAssignmentService(env.geocoder, env.regions, env.points, logger)

	r := gin.New()
	api := r.Group("/api/v1")
	NewRegionHandler(regionService, reconciler).RegisterRoutes(api)
	NewMarketPointHandler(pointService).RegisterRoutes(api)
	NewAssignmentHandler(assignmentService).RegisterRoutes(api)
	NewLayerHandler(reconciler).RegisterRoutes(api)
	NewSystemHandler(nil).RegisterRoutes(api)

	env.router = r
	return env
}

// reconcile seeds the persisted rows from the catalog via the HTTP surface
func (e *testEnv) reconcile(t *testing.T) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/geo/regions/reconcile", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

// regionIDByName resolves a persisted region's ID after a reconcile pass
func (e *testEnv) regionIDByName(t *testing.T, name string) uuid.UUID {
	t.Helper()
	region, err := e.regions.FindByName(context.Background(), name)
	require.NoError(t, err)
	return region.ID
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the "data" member of the response envelope into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// errorCode extracts the error code from the response envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Success bool `json:"success"`
		Error   *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error.Code
}
