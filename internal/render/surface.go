package render

import (
	"campusmap/internal/geo"
	"campusmap/internal/interact"
	"campusmap/internal/style"
)

// Popup is one open info surface
type Popup struct {
	Feature *geo.Feature
	Info    interact.Info
}

// Surface records what the interaction machine asks to be shown so the
// renderer can draw it on the next frame
type Surface struct {
	projection *geo.Projection
	styles     map[geo.FeatureID]style.Style
	infos      map[geo.FeatureID]Popup
	order      []geo.FeatureID // open order, last on top
	recentered bool
}

// NewSurface creates a surface drawing through projection
func NewSurface(projection *geo.Projection) *Surface {
	return &Surface{
		projection: projection,
		styles:     make(map[geo.FeatureID]style.Style),
		infos:      make(map[geo.FeatureID]Popup),
	}
}

// SetStyle records the style a feature is drawn with
func (s *Surface) SetStyle(f *geo.Feature, st style.Style) {
	s.styles[f.ID] = st
}

// OpenInfo shows info for f, replacing anything already open for it
func (s *Surface) OpenInfo(f *geo.Feature, info interact.Info) {
	s.removeOrder(f.ID)
	s.infos[f.ID] = Popup{Feature: f, Info: info}
	s.order = append(s.order, f.ID)
}

// CloseInfo hides the info of f
func (s *Surface) CloseInfo(f *geo.Feature) {
	if _, ok := s.infos[f.ID]; !ok {
		return
	}
	delete(s.infos, f.ID)
	s.removeOrder(f.ID)
}

func (s *Surface) removeOrder(id geo.FeatureID) {
	for i, open := range s.order {
		if open == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Recenter moves the view
func (s *Surface) Recenter(center geo.LatLon, zoom float64) {
	s.projection.Recenter(center, zoom)
	s.recentered = true
}

// StyleOf returns the style recorded for a feature
func (s *Surface) StyleOf(id geo.FeatureID) (style.Style, bool) {
	st, ok := s.styles[id]
	return st, ok
}

// Raised reports whether a feature has open info and draws above its peers
func (s *Surface) Raised(id geo.FeatureID) bool {
	_, ok := s.infos[id]
	return ok
}

// Popups returns the open info surfaces, oldest first
func (s *Surface) Popups() []Popup {
	out := make([]Popup, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.infos[id])
	}
	return out
}

// Info returns the open info of a feature
func (s *Surface) Info(id geo.FeatureID) (interact.Info, bool) {
	p, ok := s.infos[id]
	return p.Info, ok
}

// TakeRecentered reports whether Recenter ran since the last call
func (s *Surface) TakeRecentered() bool {
	r := s.recentered
	s.recentered = false
	return r
}

// Projection returns the projection the surface recenters
func (s *Surface) Projection() *geo.Projection {
	return s.projection
}
