package handler

import (
	appgeo "github.com/gestor/backend/internal/application/geo"
	"github.com/gin-gonic/gin"
)

// RegionHandler exposes the reconciled region view and the center edit
// workflow: stage, discard, commit.
type RegionHandler struct {
	BaseHandler
	regions    *appgeo.RegionService
	reconciler *appgeo.ReconciliationService
}

// NewRegionHandler creates a new RegionHandler
func NewRegionHandler(regions *appgeo.RegionService, reconciler *appgeo.ReconciliationService) *RegionHandler {
	return &RegionHandler{
		regions:    regions,
		reconciler: reconciler,
	}
}

// StageCenterRequest carries an optimistic, not-yet-persisted center edit.
// Pointers distinguish an absent field from a legitimate zero coordinate.
type StageCenterRequest struct {
	Lat *float64 `json:"lat" binding:"required,latitude"`
	Lng *float64 `json:"lng" binding:"required,longitude"`
}

// RenameRegionRequest renames a non-catalog region
type RenameRegionRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

// List returns the merged region and market-point view. Every read runs a
// reconciliation pass first, so missing catalog rows are created on demand.
func (h *RegionHandler) List(c *gin.Context) {
	result, err := h.reconciler.Reconcile(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Reconcile forces a reconciliation pass and returns the merged view
func (h *RegionHandler) Reconcile(c *gin.Context) {
	result, err := h.reconciler.Reconcile(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Get returns one region's merged view
func (h *RegionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid region ID")
		return
	}

	region, err := h.regions.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, h.reconciler.View(region))
}

// StageCenter records a pending center edit for the region. Nothing touches
// the store until Commit.
func (h *RegionHandler) StageCenter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid region ID")
		return
	}

	var req StageCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.regions.StageCenter(id, *req.Lat, *req.Lng); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// DiscardCenter drops the pending center edit, if any
func (h *RegionHandler) DiscardCenter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid region ID")
		return
	}

	h.regions.DiscardStagedCenter(id)
	h.NoContent(c)
}

// CommitCenter persists the pending center edit. On success the pending edit
// is cleared only if no newer edit raced in; on failure it survives for retry.
func (h *RegionHandler) CommitCenter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid region ID")
		return
	}

	region, err := h.regions.CommitCenter(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, h.reconciler.View(region))
}

// Rename changes a region's name. Catalog-backed regions are protected.
func (h *RegionHandler) Rename(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid region ID")
		return
	}

	var req RenameRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	region, err := h.regions.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, h.reconciler.View(region))
}

// Delete removes a region. Catalog-backed regions and regions that market
// points still reference are refused.
func (h *RegionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid region ID")
		return
	}

	if err := h.regions.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// PendingNeighborhoods lists neighborhoods seen on customer addresses that
// match no catalog region after normalization
func (h *RegionHandler) PendingNeighborhoods(c *gin.Context) {
	names, err := h.regions.PendingNeighborhoods(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"neighborhoods": names})
}

// RegisterRoutes registers all region routes
func (h *RegionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	regions := rg.Group("/geo/regions")
	{
		regions.GET("", h.List)
		regions.POST("/reconcile", h.Reconcile)
		regions.GET("/:id", h.Get)
		regions.PUT("/:id", h.Rename)
		regions.DELETE("/:id", h.Delete)
		regions.PUT("/:id/center/pending", h.StageCenter)
		regions.DELETE("/:id/center/pending", h.DiscardCenter)
		regions.POST("/:id/center/commit", h.CommitCenter)
	}

	rg.GET("/geo/neighborhoods/pending", h.PendingNeighborhoods)
}
