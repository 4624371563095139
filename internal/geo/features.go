package geo

import (
	"strings"
	"unicode"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/rotisserie/eris"
)

// Category is the closed set of campus feature categories
type Category int

const (
	CategoryDining Category = iota
	CategoryResidential
	CategoryLibraries
	CategoryAcademic
	CategoryStudentLife

	// NumCategories is the number of known categories
	NumCategories
)

// Categories returns every category in layer order
func Categories() []Category {
	return []Category{
		CategoryDining,
		CategoryResidential,
		CategoryLibraries,
		CategoryAcademic,
		CategoryStudentLife,
	}
}

// String returns the canonical category identifier
func (c Category) String() string {
	switch c {
	case CategoryDining:
		return "dining"
	case CategoryResidential:
		return "residential"
	case CategoryLibraries:
		return "libraries"
	case CategoryAcademic:
		return "academic"
	case CategoryStudentLife:
		return "student-life"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	return c >= 0 && c < NumCategories
}

// ParseCategory maps a raw category string to a Category.
// Matching ignores case, and spaces or underscores count as dashes, so the
// source spelling "student life" resolves to CategoryStudentLife.
func ParseCategory(raw string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "-", "_", "-").Replace(key)
	for _, c := range Categories() {
		if c.String() == key {
			return c, nil
		}
	}
	return 0, eris.Errorf("geo: unknown category %q", raw)
}

// GeometryKind is the geometry shape of a feature
type GeometryKind int

const (
	KindUnsupported GeometryKind = iota
	KindPoint
	KindPolygon
)

// String returns a string representation of the geometry kind
func (k GeometryKind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindPolygon:
		return "Polygon"
	default:
		return "Unsupported"
	}
}

// KindOf classifies an orb geometry
func KindOf(g orb.Geometry) GeometryKind {
	switch g.(type) {
	case orb.Point:
		return KindPoint
	case orb.Polygon:
		return KindPolygon
	default:
		return KindUnsupported
	}
}

// LatLon represents a geographic coordinate
type LatLon struct {
	Lat float64
	Lon float64
}

func latLonOf(p orb.Point) LatLon {
	return LatLon{Lat: p.Lat(), Lon: p.Lon()}
}

func (ll LatLon) point() orb.Point {
	return orb.Point{ll.Lon, ll.Lat}
}

// FeatureID identifies a feature within one dataset
type FeatureID string

// NewFeatureID derives an identifier from a display name
func NewFeatureID(name string) FeatureID {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return FeatureID(strings.TrimSuffix(b.String(), "-"))
}

// Feature is one campus site. Features are immutable once loaded.
type Feature struct {
	ID          FeatureID
	Category    Category
	Kind        GeometryKind
	Geometry    orb.Geometry
	Name        string
	Description string
	ImageURL    string
	Link        string
	Index       int // position in the source file
}

// IsPoint returns true if this is a point feature
func (f *Feature) IsPoint() bool {
	return f.Kind == KindPoint
}

// IsPolygon returns true if this is a polygon feature
func (f *Feature) IsPolygon() bool {
	return f.Kind == KindPolygon
}

// Anchor returns the representative coordinate used for popups and
// recentering: the point itself, or the area centroid of a polygon.
func (f *Feature) Anchor() LatLon {
	switch g := f.Geometry.(type) {
	case orb.Point:
		return latLonOf(g)
	case orb.Polygon:
		c, area := planar.CentroidArea(g)
		if area == 0 {
			return latLonOf(g.Bound().Center())
		}
		return latLonOf(c)
	case nil:
		return LatLon{}
	default:
		return latLonOf(g.Bound().Center())
	}
}

// Contains reports whether a polygon feature covers the coordinate.
// Point features never contain anything.
func (f *Feature) Contains(ll LatLon) bool {
	poly, ok := f.Geometry.(orb.Polygon)
	if !ok {
		return false
	}
	if !poly.Bound().Contains(ll.point()) {
		return false
	}
	return planar.PolygonContains(poly, ll.point())
}

// Bounds returns the geographic bounding box of the feature
func (f *Feature) Bounds() Bounds {
	if f.Geometry == nil {
		return Bounds{}
	}
	b := f.Geometry.Bound()
	return Bounds{MinLat: b.Min.Lat(), MaxLat: b.Max.Lat(), MinLon: b.Min.Lon(), MaxLon: b.Max.Lon()}
}
