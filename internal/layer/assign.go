package layer

import (
	"go.uber.org/zap"

	"campusmap/internal/geo"
	"campusmap/internal/style"
)

// Set is the full layer arrangement of one dataset
type Set struct {
	registry  *style.Registry
	layers    [geo.NumCategories]*Layer
	aggregate *Aggregate
	dropped   map[geo.FeatureID]*geo.Feature
	Dropped   []*geo.Feature
}

// NewSet creates empty layers for every category
func NewSet(reg *style.Registry) *Set {
	s := &Set{
		registry:  reg,
		aggregate: &Aggregate{byID: make(map[geo.FeatureID]*geo.Feature)},
		dropped:   make(map[geo.FeatureID]*geo.Feature),
	}
	for _, c := range geo.Categories() {
		s.layers[c] = newLayer(reg.LayerFor(c))
	}
	return s
}

// Assign builds a Set from features
func Assign(features []*geo.Feature, reg *style.Registry) *Set {
	s := NewSet(reg)
	s.Assign(features)
	return s
}

// Assign adds every Point or Polygon feature to its category layer and to
// the aggregate. Features with unsupported geometry are dropped with a
// warning. Assigning a feature that is already placed is a no-op, so
// re-running on the same features leaves membership unchanged.
func (s *Set) Assign(features []*geo.Feature) {
	log := zap.L().With(zap.String("component", "layer.assign"))

	for _, f := range features {
		if f == nil {
			continue
		}
		if (f.Kind != geo.KindPoint && f.Kind != geo.KindPolygon) || !f.Category.Valid() {
			if _, seen := s.dropped[f.ID]; !seen {
				s.dropped[f.ID] = f
				s.Dropped = append(s.Dropped, f)
				log.Warn("dropping feature",
					zap.String("feature", string(f.ID)),
					zap.String("kind", f.Kind.String()),
					zap.String("category", f.Category.String()))
			}
			continue
		}

		if !s.layers[f.Category].add(f) {
			continue
		}
		s.aggregate.members = append(s.aggregate.members, f)
		s.aggregate.byID[f.ID] = f
	}

	log.Debug("layers assigned",
		zap.Int("features", s.aggregate.Len()),
		zap.Int("dropped", len(s.Dropped)))
}

// Registry returns the registry the set was built with
func (s *Set) Registry() *style.Registry { return s.registry }

// Layers returns the category layers in selector order
func (s *Set) Layers() []*Layer {
	out := make([]*Layer, 0, len(s.layers))
	for _, c := range geo.Categories() {
		out = append(out, s.layers[c])
	}
	return out
}

// Layer returns the layer of a category
func (s *Set) Layer(c geo.Category) (*Layer, bool) {
	if !c.Valid() {
		return nil, false
	}
	return s.layers[c], true
}

// Aggregate returns the search union
func (s *Set) Aggregate() *Aggregate { return s.aggregate }

// Lookup finds an assigned feature by id
func (s *Set) Lookup(id geo.FeatureID) (*geo.Feature, bool) {
	return s.aggregate.Lookup(id)
}

// Visible reports whether a category layer is shown
func (s *Set) Visible(c geo.Category) bool {
	l, ok := s.Layer(c)
	return ok && l.visible
}

// SetVisible shows or hides a category layer
func (s *Set) SetVisible(c geo.Category, visible bool) {
	if l, ok := s.Layer(c); ok {
		l.visible = visible
	}
}

// Toggle flips a layer's visibility and returns the new value
func (s *Set) Toggle(c geo.Category) bool {
	l, ok := s.Layer(c)
	if !ok {
		return false
	}
	l.visible = !l.visible
	return l.visible
}

// VisibleFeatures returns the members of shown layers, polygons before
// points so points draw on top.
func (s *Set) VisibleFeatures() []*geo.Feature {
	var polygons, points []*geo.Feature
	for _, f := range s.aggregate.members {
		if !s.Visible(f.Category) {
			continue
		}
		if f.IsPoint() {
			points = append(points, f)
		} else {
			polygons = append(polygons, f)
		}
	}
	return append(polygons, points...)
}
