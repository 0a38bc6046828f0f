package handler

import (
	appgeo "github.com/gestor/backend/internal/application/geo"
	"github.com/gestor/backend/internal/domain/geo"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MarketPointHandler handles direct market-point CRUD outside the assignment
// workflow
type MarketPointHandler struct {
	BaseHandler
	points *appgeo.MarketPointService
}

// NewMarketPointHandler creates a new MarketPointHandler
func NewMarketPointHandler(points *appgeo.MarketPointService) *MarketPointHandler {
	return &MarketPointHandler{points: points}
}

// CreateMarketPointRequest places a point from already-known data
type CreateMarketPointRequest struct {
	Name             string   `json:"name" binding:"required,max=200"`
	NeighborhoodName string   `json:"neighborhood_name" binding:"max=120"`
	Lat              *float64 `json:"lat" binding:"required,latitude"`
	Lng              *float64 `json:"lng" binding:"required,longitude"`
	RegionID         *string  `json:"region_id" binding:"omitempty,uuid"`
}

// UpdateMarketPointRequest is a partial patch; absent fields are untouched.
// ClearRegion detaches the point from its region.
type UpdateMarketPointRequest struct {
	Name             *string  `json:"name" binding:"omitempty,max=200"`
	NeighborhoodName *string  `json:"neighborhood_name" binding:"omitempty,max=120"`
	Lat              *float64 `json:"lat" binding:"omitempty,latitude"`
	Lng              *float64 `json:"lng" binding:"omitempty,longitude"`
	RegionID         *string  `json:"region_id" binding:"omitempty,uuid"`
	ClearRegion      bool     `json:"clear_region"`
}

// List returns market points, optionally filtered by ?region_id
func (h *MarketPointHandler) List(c *gin.Context) {
	var regionID *uuid.UUID
	if raw := c.Query("region_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid region_id filter")
			return
		}
		regionID = &id
	}

	views, err := h.points.List(c.Request.Context(), regionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, views)
}

// Get returns one market point
func (h *MarketPointHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid market point ID")
		return
	}

	view, err := h.points.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Create places a market point directly
func (h *MarketPointHandler) Create(c *gin.Context) {
	var req CreateMarketPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	coord, err := geo.NewCoordinate(*req.Lat, *req.Lng)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	input := appgeo.CreateMarketPointInput{
		Name:             req.Name,
		NeighborhoodName: req.NeighborhoodName,
		Coordinate:       coord,
	}
	if req.RegionID != nil {
		regionID, err := uuid.Parse(*req.RegionID)
		if err != nil {
			h.BadRequest(c, "Invalid region_id")
			return
		}
		input.RegionID = &regionID
	}

	view, err := h.points.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, view)
}

// Update applies a partial patch to a market point
func (h *MarketPointHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid market point ID")
		return
	}

	var req UpdateMarketPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if (req.Lat == nil) != (req.Lng == nil) {
		h.BadRequest(c, "lat and lng must be provided together")
		return
	}

	input := appgeo.UpdateMarketPointInput{
		Name:             req.Name,
		NeighborhoodName: req.NeighborhoodName,
		ClearRegion:      req.ClearRegion,
	}
	if req.Lat != nil {
		coord, err := geo.NewCoordinate(*req.Lat, *req.Lng)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		input.Coordinate = &coord
	}
	if req.RegionID != nil {
		regionID, err := uuid.Parse(*req.RegionID)
		if err != nil {
			h.BadRequest(c, "Invalid region_id")
			return
		}
		input.RegionID = &regionID
	}

	view, err := h.points.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Delete removes a market point
func (h *MarketPointHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid market point ID")
		return
	}

	if err := h.points.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all market point routes
func (h *MarketPointHandler) RegisterRoutes(rg *gin.RouterGroup) {
	points := rg.Group("/geo/market-points")
	{
		points.GET("", h.List)
		points.GET("/:id", h.Get)
		points.POST("", h.Create)
		points.PUT("/:id", h.Update)
		points.DELETE("/:id", h.Delete)
	}
}
