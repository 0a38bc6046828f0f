package geo

import (
	"context"
	"strings"
	"sync"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionState is the state of one assignment session
type SessionState string

// Assignment session states. Locating covers an adapter call in flight;
// AwaitingMapClick is the parallel mode entered explicitly from Idle.
const (
	SessionIdle          SessionState = "idle"
	SessionAwaitingClick SessionState = "awaiting_map_click"
	SessionLocating      SessionState = "locating"
	SessionLocated       SessionState = "located"
	SessionLocateFailed  SessionState = "locate_failed"
	SessionCommitted     SessionState = "committed"
)

// Address fallback constants: when the structured address collapses to
// nothing, geocoding targets "<name>, <locality>, <country>".
const (
	addressSeparator = ", "
	defaultLocality  = "Foz do Iguaçu"
	defaultCountry   = "Brasil"
)

// Assignment workflow errors
var (
	ErrSessionNotFound = shared.NewDomainError("SESSION_NOT_FOUND", "Assignment session does not exist or was closed")
	ErrSessionState    = shared.NewDomainError("INVALID_STATE", "Operation not allowed in the session's current state")
	ErrGeocodeFailed   = shared.NewDomainError("GEOCODE_FAILED", "Address could not be located; no coordinate was assumed")
)

// SessionView is a consistent snapshot of one assignment session
type SessionView struct {
	ID          uuid.UUID         `json:"id"`
	State       SessionState      `json:"state"`
	Point       *geo.Coordinate   `json:"point,omitempty"`
	DisplayName string            `json:"display_name,omitempty"`
	Suggestion  *RegionSuggestion `json:"suggestion,omitempty"`
}

// ConfirmInput carries the user's final, explicit choice for a new point.
// RegionID overrides the containment suggestion when set.
type ConfirmInput struct {
	Name             string
	NeighborhoodName string
	RegionID         *uuid.UUID
	UseSuggestion    bool
}

type assignmentSession struct {
	id          uuid.UUID
	state       SessionState
	point       *geo.Coordinate
	displayName string
	suggestion  *RegionSuggestion
	// generation fences async geocode results: bumped on every cancel/close
	// so a stale result never lands on a reused or disposed session.
	generation int
}

// view snapshots the session; caller holds the service mutex.
func (s *assignmentSession) view() SessionView {
	view := SessionView{
		ID:          s.id,
		State:       s.state,
		DisplayName: s.displayName,
	}
	if s.point != nil {
		point := *s.point
		view.Point = &point
	}
	if s.suggestion != nil {
		suggestion := *s.suggestion
		view.Suggestion = &suggestion
	}
	return view
}

// AssignmentService orchestrates placing market points: click-to-place with a
// containment suggestion, and geocode-to-place with the graduated address
// fallback. It owns the session registry; closing a session discards its
// state and any in-flight geocode result.
type AssignmentService struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*assignmentSession

	geocoder geo.Geocoder
	regions  geo.RegionRepository
	points   geo.MarketPointRepository
	logger   *zap.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	geocoder geo.Geocoder,
	regions geo.RegionRepository,
	points geo.MarketPointRepository,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		sessions: make(map[uuid.UUID]*assignmentSession),
		geocoder: geocoder,
		regions:  regions,
		points:   points,
		logger:   logger,
	}
}

// Open starts a new assignment session in the Idle state
func (s *AssignmentService) Open() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &assignmentSession{
		id:    uuid.New(),
		state: SessionIdle,
	}
	s.sessions[session.id] = session
	return session.view()
}

// Get returns a snapshot of the session
func (s *AssignmentService) Get(sessionID uuid.UUID) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	return session.view(), nil
}

// Close disposes the session. Any in-flight geocode result for it is
// discarded when it arrives; unsaved state is lost.
func (s *AssignmentService) Close(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[sessionID]; ok {
		session.generation++
		delete(s.sessions, sessionID)
	}
}

// ArmMapClick enters the map-click mode from Idle (or after a previous
// locate), so the next renderer click event establishes the point
func (s *AssignmentService) ArmMapClick(sessionID uuid.UUID) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	switch session.state {
	case SessionIdle, SessionLocated, SessionLocateFailed:
		session.state = SessionAwaitingClick
		return session.view(), nil
	default:
		return SessionView{}, ErrSessionState
	}
}

// CancelMapClick leaves the map-click mode and returns to Idle
func (s *AssignmentService) CancelMapClick(sessionID uuid.UUID) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	if session.state != SessionAwaitingClick {
		return SessionView{}, ErrSessionState
	}
	session.state = SessionIdle
	session.generation++
	return session.view(), nil
}

// MapClick is the renderer's click callback: the clicked coordinate becomes
// the point of interest with a containment suggestion attached
func (s *AssignmentService) MapClick(ctx context.Context, sessionID uuid.UUID, lat, lng float64) (SessionView, error) {
	coord, err := geo.NewCoordinate(lat, lng)
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return SessionView{}, ErrSessionNotFound
	}
	if session.state != SessionAwaitingClick {
		s.mu.Unlock()
		return SessionView{}, ErrSessionState
	}
	s.mu.Unlock()

	suggestion := s.suggestRegion(ctx, coord)

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok = s.sessions[sessionID]
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	session.point = &coord
	session.displayName = ""
	session.suggestion = suggestion
	session.state = SessionLocated
	return session.view(), nil
}

// Geocode locates a structured address through the geocoding adapter. On
// success the returned coordinate becomes the point of interest; on failure
// the session moves to LocateFailed and no coordinate is assumed. A result
// arriving after the session was closed or cancelled is discarded.
func (s *AssignmentService) Geocode(ctx context.Context, sessionID uuid.UUID, addr AddressInput, entityName string) (SessionView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "geo.assignment", "geocode")
	defer span.End()

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return SessionView{}, ErrSessionNotFound
	}
	switch session.state {
	case SessionIdle, SessionLocated, SessionLocateFailed:
		// retry from a failed or completed locate is allowed
	default:
		s.mu.Unlock()
		return SessionView{}, ErrSessionState
	}
	session.state = SessionLocating
	generation := session.generation
	s.mu.Unlock()

	candidate := BuildCandidateAddress(addr, entityName)
	result, geocodeErr := s.geocoder.Geocode(ctx, candidate)

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok = s.sessions[sessionID]
	if !ok || session.generation != generation {
		// Session disposed while the adapter call was in flight; the result
		// is no longer relevant.
		s.logger.Debug("discarding stale geocode result", zap.String("session_id", sessionID.String()))
		return SessionView{}, ErrSessionNotFound
	}

	if geocodeErr != nil {
		telemetry.RecordError(span, geocodeErr)
		session.state = SessionLocateFailed
		session.point = nil
		session.suggestion = nil
		s.logger.Warn("geocode failed",
			zap.String("session_id", sessionID.String()),
			zap.String("address", candidate),
			zap.Error(geocodeErr),
		)
		return session.view(), ErrGeocodeFailed
	}

	coord := result.Coordinate
	session.point = &coord
	session.displayName = result.DisplayName
	session.suggestion = s.suggestRegion(ctx, coord)
	session.state = SessionLocated
	return session.view(), nil
}

// Confirm records the market point with the user's explicit region choice
// and moves the session to Committed
func (s *AssignmentService) Confirm(ctx context.Context, sessionID uuid.UUID, input ConfirmInput) (MarketPointView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "geo.assignment", "confirm")
	defer span.End()

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return MarketPointView{}, ErrSessionNotFound
	}
	if session.state != SessionLocated || session.point == nil {
		s.mu.Unlock()
		return MarketPointView{}, ErrSessionState
	}
	coord := *session.point
	suggestion := session.suggestion
	s.mu.Unlock()

	regionID := input.RegionID
	if regionID == nil && input.UseSuggestion && suggestion != nil {
		id := suggestion.RegionID
		regionID = &id
	}

	point, err := geo.NewMarketPoint(input.Name, input.NeighborhoodName, coord, regionID)
	if err != nil {
		return MarketPointView{}, err
	}
	if err := s.points.Save(ctx, point); err != nil {
		telemetry.RecordError(span, err)
		return MarketPointView{}, ErrSaveFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		session.state = SessionCommitted
	}
	return ToMarketPointView(point), nil
}

// suggestRegion resolves a containment suggestion for the coordinate against
// the catalog boundaries, mapped onto the persisted row of the matching
// region. A missing row (store drift) degrades to no suggestion.
func (s *AssignmentService) suggestRegion(ctx context.Context, coord geo.Coordinate) *RegionSuggestion {
	code, ok := geo.ResolveContainment(coord, geo.CatalogAreas())
	if !ok {
		return nil
	}

	var static geo.StaticRegion
	for _, entry := range geo.Catalog() {
		if entry.Code == code {
			static = entry
			break
		}
	}

	region, err := s.regions.FindByName(ctx, static.Name)
	if err != nil {
		s.logger.Warn("containment matched a catalog region with no persisted row",
			zap.String("code", code), zap.String("name", static.Name), zap.Error(err))
		return nil
	}

	return &RegionSuggestion{
		RegionID: region.ID,
		Code:     static.Code,
		Name:     static.Name,
	}
}

// BuildCandidateAddress concatenates street, number, neighborhood, city and
// state in that order, skipping empty fields. When everything is blank the
// candidate degrades to "<neighborhood or entity name>, Foz do Iguaçu,
// Brasil" so the provider still has something regional to anchor on.
func BuildCandidateAddress(addr AddressInput, entityName string) string {
	parts := make([]string, 0, 5)
	for _, field := range []string{addr.Street, addr.Number, addr.Neighborhood, addr.City, addr.State} {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, addressSeparator)
	}

	name := strings.TrimSpace(addr.Neighborhood)
	if name == "" {
		name = strings.TrimSpace(entityName)
	}
	return strings.Join([]string{name, defaultLocality, defaultCountry}, addressSeparator)
}
