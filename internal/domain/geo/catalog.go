package geo

// StaticRegion is one entry of the immutable, code-defined region catalog.
// The catalog is the source of truth for region taxonomy and geometry; the
// persisted store only carries what users may edit (center coordinates).
// Name is the reconciliation join key and must be unique.
type StaticRegion struct {
	Code          string
	Name          string
	Color         string
	DefaultCenter Coordinate
	Neighborhoods []string
	Boundary      []Coordinate
}

// IsMapped reports whether the region has a usable boundary polygon
func (r StaticRegion) IsMapped() bool {
	return len(r.Boundary) >= 3
}

// regionCatalog is the seed definition of the Foz do Iguaçu service regions.
// Boundaries are coarse operational polygons, not official city limits.
// Never mutated at runtime.
var regionCatalog = []StaticRegion{
	{
		Code:          "R01",
		Name:          "Região Norte",
		Color:         "#2563EB",
		DefaultCenter: Coordinate{Lat: -25.4830, Lng: -54.5630},
		Neighborhoods: []string{"Porto Belo", "Jardim Jupira", "Vila Miranda", "Três Lagoas"},
		Boundary: []Coordinate{
			{Lat: -25.4550, Lng: -54.5900},
			{Lat: -25.4550, Lng: -54.5350},
			{Lat: -25.5050, Lng: -54.5350},
			{Lat: -25.5050, Lng: -54.5900},
		},
	},
	{
		Code:          "R02",
		Name:          "Centro",
		Color:         "#DC2626",
		DefaultCenter: Coordinate{Lat: -25.5400, Lng: -54.5820},
		Neighborhoods: []string{"Centro", "Vila Yolanda", "Jardim Central", "Maracanã"},
		Boundary: []Coordinate{
			{Lat: -25.5200, Lng: -54.6000},
			{Lat: -25.5200, Lng: -54.5600},
			{Lat: -25.5600, Lng: -54.5600},
			{Lat: -25.5600, Lng: -54.6000},
		},
	},
	{
		Code:          "R03",
		Name:          "Vila A",
		Color:         "#16A34A",
		DefaultCenter: Coordinate{Lat: -25.5070, Lng: -54.5550},
		Neighborhoods: []string{"Vila A", "Vila B", "Vila C Nova", "Cidade Nova"},
		Boundary: []Coordinate{
			{Lat: -25.4900, Lng: -54.5700},
			{Lat: -25.4900, Lng: -54.5400},
			{Lat: -25.5250, Lng: -54.5400},
			{Lat: -25.5250, Lng: -54.5700},
		},
	},
	{
		Code:          "R04",
		Name:          "Região Leste",
		Color:         "#D97706",
		DefaultCenter: Coordinate{Lat: -25.5320, Lng: -54.5280},
		Neighborhoods: []string{"Jardim São Paulo", "Morumbi", "Portal da Foz", "Jardim Lancaster"},
		Boundary: []Coordinate{
			{Lat: -25.5100, Lng: -54.5450},
			{Lat: -25.5100, Lng: -54.5050},
			{Lat: -25.5550, Lng: -54.5050},
			{Lat: -25.5550, Lng: -54.5450},
		},
	},
	{
		Code:          "R05",
		Name:          "Região Sul",
		Color:         "#7C3AED",
		DefaultCenter: Coordinate{Lat: -25.5760, Lng: -54.5560},
		Neighborhoods: []string{"Porto Meira", "Bourbon", "Jardim das Flores", "Profilurb"},
		Boundary: []Coordinate{
			{Lat: -25.5550, Lng: -54.5850},
			{Lat: -25.5550, Lng: -54.5250},
			{Lat: -25.6000, Lng: -54.5250},
			{Lat: -25.6000, Lng: -54.5850},
		},
	},
	{
		// Rural belt has no surveyed polygon yet; containment never matches it.
		Code:          "R06",
		Name:          "Zona Rural",
		Color:         "#64748B",
		DefaultCenter: Coordinate{Lat: -25.4600, Lng: -54.4700},
		Neighborhoods: []string{"Alto da Boa Vista", "Remanso Grande"},
		Boundary:      nil,
	},
}

// Catalog returns the static region catalog in canonical order.
// The returned slice is a copy; callers may not mutate catalog entries.
func Catalog() []StaticRegion {
	out := make([]StaticRegion, len(regionCatalog))
	copy(out, regionCatalog)
	return out
}

// CatalogByName returns the catalog indexed by exact display name
func CatalogByName() map[string]StaticRegion {
	out := make(map[string]StaticRegion, len(regionCatalog))
	for _, r := range regionCatalog {
		out[r.Name] = r
	}
	return out
}

// FindStaticByName looks up a catalog entry by exact, case-sensitive name
func FindStaticByName(name string) (StaticRegion, bool) {
	for _, r := range regionCatalog {
		if r.Name == name {
			return r, true
		}
	}
	return StaticRegion{}, false
}

// CatalogAreas returns the catalog boundaries in catalog order, shaped for the
// containment resolver
func CatalogAreas() []BoundedArea {
	out := make([]BoundedArea, 0, len(regionCatalog))
	for _, r := range regionCatalog {
		out = append(out, BoundedArea{Code: r.Code, Boundary: r.Boundary})
	}
	return out
}
