// Package interact holds the per-feature interaction state machine and the
// single global selection.
package interact

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"campusmap/internal/geo"
	"campusmap/internal/layer"
	"campusmap/internal/style"
)

// ErrUnknownFeature is returned for events naming a feature that is in no layer
var ErrUnknownFeature = eris.New("interact: unknown feature")

// State is the interaction state of one feature
type State int

const (
	StateDefault State = iota
	StateHover
	StateSelected
)

// String returns a string representation of the state
func (s State) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StateHover:
		return "hover"
	case StateSelected:
		return "selected"
	default:
		return "unknown"
	}
}

func (s State) variant() style.Variant {
	switch s {
	case StateHover:
		return style.VariantHover
	case StateSelected:
		return style.VariantSelected
	default:
		return style.VariantDefault
	}
}

// Surface is what the machine drives on the renderer
type Surface interface {
	SetStyle(f *geo.Feature, s style.Style)
	OpenInfo(f *geo.Feature, info Info)
	CloseInfo(f *geo.Feature)
	Recenter(center geo.LatLon, zoom float64)
}

// session is the interaction state of one feature. The hover fields only
// mean something between a PointerEnter and the matching PointerLeave.
type session struct {
	feature           *geo.Feature
	state             State
	hovering          bool
	clickedSinceEnter bool
}

// Machine applies events to feature sessions. It is not safe for concurrent
// use: events must arrive one at a time from a single event loop, which is
// what makes each Dispatch atomic to the events after it.
type Machine struct {
	registry *style.Registry
	surface  Surface
	mode     DetailMode
	sessions map[geo.FeatureID]*session
	current  *session // the selected feature, if any
	hovered  *session // the feature under the pointer, if any
	log      *zap.Logger
}

// NewMachine creates a session in the default state for every feature of
// the aggregate layer and paints its default style.
func NewMachine(set *layer.Set, surface Surface, mode DetailMode) *Machine {
	m := &Machine{
		registry: set.Registry(),
		surface:  surface,
		mode:     mode,
		sessions: make(map[geo.FeatureID]*session),
		log:      zap.L().With(zap.String("component", "interact")),
	}

	for _, f := range set.Aggregate().Features() {
		s := &session{feature: f}
		m.sessions[f.ID] = s
		m.paint(s)
	}
	return m
}

// Dispatch applies one event. Events for unknown features change nothing
// and return ErrUnknownFeature.
func (m *Machine) Dispatch(ev Event) error {
	s, ok := m.sessions[ev.Target()]
	if !ok {
		return eris.Wrapf(ErrUnknownFeature, "%s %q", ev.Kind(), ev.Target())
	}

	switch e := ev.(type) {
	case PointerEnter:
		m.enter(s)
	case PointerLeave:
		m.leave(s)
	case Click:
		m.selectFeature(s)
	case SearchSelect:
		m.surface.Recenter(e.Center, e.Zoom)
		m.selectFeature(s)
	default:
		return eris.Errorf("interact: unsupported event %T", ev)
	}

	m.log.Debug("event applied",
		zap.String("event", ev.Kind()),
		zap.String("feature", string(s.feature.ID)),
		zap.String("state", s.state.String()))
	return nil
}

func (m *Machine) enter(s *session) {
	if s.hovering {
		return
	}
	// A single pointer hovers one feature; close out a session whose leave
	// never arrived.
	if m.hovered != nil && m.hovered != s {
		m.leave(m.hovered)
	}

	s.hovering = true
	s.clickedSinceEnter = false
	m.hovered = s

	if s.state == StateSelected {
		return
	}
	s.state = StateHover
	m.paint(s)
	m.surface.OpenInfo(s.feature, ShortInfo(s.feature))
}

func (m *Machine) leave(s *session) {
	if !s.hovering {
		return
	}
	clicked := s.clickedSinceEnter

	s.hovering = false
	s.clickedSinceEnter = false
	if m.hovered == s {
		m.hovered = nil
	}

	// A click during this hover session keeps the expanded content open.
	if clicked || s.state == StateSelected {
		return
	}
	s.state = StateDefault
	m.paint(s)
	m.surface.CloseInfo(s.feature)
}

// selectFeature reverts the previous selection and selects s
func (m *Machine) selectFeature(s *session) {
	if s.hovering {
		s.clickedSinceEnter = true
	}

	if prev := m.current; prev != nil && prev != s {
		prev.state = StateDefault
		m.paint(prev)
		m.surface.CloseInfo(prev.feature)
	}

	m.current = s
	s.state = StateSelected
	m.paint(s)
	m.surface.OpenInfo(s.feature, ExpandedInfo(s.feature, m.mode))
}

func (m *Machine) paint(s *session) {
	m.surface.SetStyle(s.feature, m.registry.StyleFor(s.feature.Category, s.feature.Kind, s.state.variant()))
}

// State returns the state of a feature
func (m *Machine) State(id geo.FeatureID) (State, bool) {
	s, ok := m.sessions[id]
	if !ok {
		return StateDefault, false
	}
	return s.state, true
}

// Selected returns the selected feature, if any
func (m *Machine) Selected() (*geo.Feature, bool) {
	if m.current == nil {
		return nil, false
	}
	return m.current.feature, true
}

// Hovered returns the feature under the pointer, if any
func (m *Machine) Hovered() (*geo.Feature, bool) {
	if m.hovered == nil {
		return nil, false
	}
	return m.hovered.feature, true
}

// Count returns how many features are in state
func (m *Machine) Count(state State) int {
	n := 0
	for _, s := range m.sessions {
		if s.state == state {
			n++
		}
	}
	return n
}
