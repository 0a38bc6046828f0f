package handler

import (
	"encoding/json"

	appgeo "github.com/gestor/backend/internal/application/geo"
	"github.com/gestor/backend/internal/domain/geo"
	"github.com/gin-gonic/gin"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// geoJSONContentType is the media type registered for GeoJSON (RFC 7946)
const geoJSONContentType = "application/geo+json"

// LayerHandler exports the merged region view as a GeoJSON FeatureCollection
// for the external map renderer: boundary polygons, effective centers, and
// market points.
type LayerHandler struct {
	BaseHandler
	reconciler *appgeo.ReconciliationService
}

// NewLayerHandler creates a new LayerHandler
func NewLayerHandler(reconciler *appgeo.ReconciliationService) *LayerHandler {
	return &LayerHandler{reconciler: reconciler}
}

// GetLayer returns the full map layer. The view is reconciled first so the
// renderer never sees a partial region set.
func (h *LayerHandler) GetLayer(c *gin.Context) {
	result, err := h.reconciler.Reconcile(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	fc, err := buildLayerCollection(result)
	if err != nil {
		h.InternalError(c, "Failed to encode map layer")
		return
	}

	payload, err := json.Marshal(fc)
	if err != nil {
		h.InternalError(c, "Failed to encode map layer")
		return
	}

	c.Data(200, geoJSONContentType, payload)
}

// buildLayerCollection folds the reconciled view into GeoJSON features
func buildLayerCollection(result *appgeo.ReconcileResult) (*geojson.FeatureCollection, error) {
	features := make([]*geojson.Feature, 0, 2*len(result.Regions)+len(result.MarketPoints))

	for _, region := range result.Regions {
		if len(region.Boundary) >= 3 {
			polygon, err := boundaryPolygon(region.Boundary)
			if err != nil {
				return nil, err
			}
			features = append(features, &geojson.Feature{
				ID:       region.ID.String() + ":boundary",
				Geometry: polygon,
				Properties: map[string]interface{}{
					"kind":  "region_boundary",
					"code":  region.Code,
					"name":  region.Name,
					"color": region.Color,
				},
			})
		}

		if region.EffectiveCenter != nil {
			features = append(features, &geojson.Feature{
				ID:       region.ID.String() + ":center",
				Geometry: pointGeometry(*region.EffectiveCenter),
				Properties: map[string]interface{}{
					"kind":          "region_center",
					"name":          region.Name,
					"color":         region.Color,
					"center_source": string(region.CenterSource),
				},
			})
		}
	}

	for _, point := range result.MarketPoints {
		props := map[string]interface{}{
			"kind":         "market_point",
			"name":         point.Name,
			"neighborhood": point.NeighborhoodName,
		}
		if point.RegionID != nil {
			props["region_id"] = point.RegionID.String()
		}
		features = append(features, &geojson.Feature{
			ID:         point.ID.String(),
			Geometry:   pointGeometry(point.Coordinate),
			Properties: props,
		})
	}

	return &geojson.FeatureCollection{Features: features}, nil
}

// boundaryPolygon converts a boundary ring to a GeoJSON polygon, closing the
// ring if the catalog stores it open
func boundaryPolygon(boundary []geo.Coordinate) (*geom.Polygon, error) {
	ring := make([]geom.Coord, 0, len(boundary)+1)
	for _, coord := range boundary {
		ring = append(ring, geom.Coord{coord.Lng, coord.Lat})
	}
	if len(ring) > 0 && !ring[0].Equal(geom.XY, ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}

	polygon := geom.NewPolygon(geom.XY)
	if _, err := polygon.SetCoords([][]geom.Coord{ring}); err != nil {
		return nil, err
	}
	return polygon, nil
}

func pointGeometry(coord geo.Coordinate) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{coord.Lng, coord.Lat})
}

// RegisterRoutes registers the map layer route
func (h *LayerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/geo/layer", h.GetLayer)
}
