package geo

// BoundedArea pairs a region code with its boundary ring for containment
// resolution. The ring is an ordered vertex list; it does not need to repeat
// the first vertex at the end.
type BoundedArea struct {
	Code     string
	Boundary []Coordinate
}

// ResolveContainment returns the code of the first area whose polygon contains
// the point, scanning in slice order. Areas with fewer than three vertices are
// skipped (an unmapped region can never match). When polygons overlap the
// earlier area wins; callers pass areas in catalog order to make the tie-break
// deterministic. Pure function: no I/O, no shared state.
func ResolveContainment(point Coordinate, areas []BoundedArea) (string, bool) {
	for _, area := range areas {
		if len(area.Boundary) < 3 {
			continue
		}
		if polygonContains(point, area.Boundary) {
			return area.Code, true
		}
	}
	return "", false
}

// polygonContains implements the even-odd (ray casting) rule: a point is
// inside when a ray cast to the east crosses the ring an odd number of times.
func polygonContains(p Coordinate, ring []Coordinate) bool {
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		a, b := ring[i], ring[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			crossLng := (b.Lng-a.Lng)*(p.Lat-a.Lat)/(b.Lat-a.Lat) + a.Lng
			if p.Lng < crossLng {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
