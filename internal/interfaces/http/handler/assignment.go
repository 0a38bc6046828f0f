package handler

import (
	appgeo "github.com/gestor/backend/internal/application/geo"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssignmentHandler drives the point-placement workflow: open a session,
// click or geocode to establish a coordinate, confirm to create the point.
type AssignmentHandler struct {
	BaseHandler
	assignments *appgeo.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler
func NewAssignmentHandler(assignments *appgeo.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// MapClickRequest carries the coordinate of a map click
type MapClickRequest struct {
	Lat *float64 `json:"lat" binding:"required,latitude"`
	Lng *float64 `json:"lng" binding:"required,longitude"`
}

// GeocodeRequest locates a partially structured address. EntityName feeds the
// fallback when every address field is blank.
type GeocodeRequest struct {
	Street       string `json:"street" binding:"max=200"`
	Number       string `json:"number" binding:"max=20"`
	Neighborhood string `json:"neighborhood" binding:"max=120"`
	City         string `json:"city" binding:"max=120"`
	State        string `json:"state" binding:"max=60"`
	EntityName   string `json:"entity_name" binding:"max=200"`
}

// ConfirmRequest finalizes the session into a market point. RegionID is the
// user's explicit choice; UseSuggestion accepts the containment suggestion.
type ConfirmRequest struct {
	Name             string  `json:"name" binding:"required,max=200"`
	NeighborhoodName string  `json:"neighborhood_name" binding:"max=120"`
	RegionID         *string `json:"region_id" binding:"omitempty,uuid"`
	UseSuggestion    bool    `json:"use_suggestion"`
}

// Open starts a new assignment session
func (h *AssignmentHandler) Open(c *gin.Context) {
	h.Created(c, h.assignments.Open())
}

// Get returns a snapshot of the session
func (h *AssignmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	view, err := h.assignments.Get(id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Close disposes the session and any in-flight geocode result
func (h *AssignmentHandler) Close(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	h.assignments.Close(id)
	h.NoContent(c)
}

// ArmMapClick puts the session into the awaiting-map-click mode
func (h *AssignmentHandler) ArmMapClick(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	view, err := h.assignments.ArmMapClick(id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// CancelMapClick leaves the awaiting-map-click mode without a coordinate
func (h *AssignmentHandler) CancelMapClick(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	view, err := h.assignments.CancelMapClick(id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// MapClick establishes the session coordinate from a map click and attaches
// a containment-based region suggestion
func (h *AssignmentHandler) MapClick(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var req MapClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.assignments.MapClick(c.Request.Context(), id, *req.Lat, *req.Lng)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Geocode resolves the candidate address and, on success, establishes the
// session coordinate. Failure leaves the session without a coordinate.
func (h *AssignmentHandler) Geocode(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var req GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	addr := appgeo.AddressInput{
		Street:       req.Street,
		Number:       req.Number,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
	}

	view, err := h.assignments.Geocode(c.Request.Context(), id, addr, req.EntityName)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Confirm creates the market point from the located session
func (h *AssignmentHandler) Confirm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := appgeo.ConfirmInput{
		Name:             req.Name,
		NeighborhoodName: req.NeighborhoodName,
		UseSuggestion:    req.UseSuggestion,
	}
	if req.RegionID != nil {
		regionID, err := uuid.Parse(*req.RegionID)
		if err != nil {
			h.BadRequest(c, "Invalid region_id")
			return
		}
		input.RegionID = &regionID
	}

	view, err := h.assignments.Confirm(c.Request.Context(), id, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, view)
}

// RegisterRoutes registers all assignment session routes
func (h *AssignmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/geo/assignments")
	{
		sessions.POST("", h.Open)
		sessions.GET("/:id", h.Get)
		sessions.DELETE("/:id", h.Close)
		sessions.POST("/:id/arm-click", h.ArmMapClick)
		sessions.POST("/:id/cancel-click", h.CancelMapClick)
		sessions.POST("/:id/click", h.MapClick)
		sessions.POST("/:id/geocode", h.Geocode)
		sessions.POST("/:id/confirm", h.Confirm)
	}
}
