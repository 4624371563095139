package interact

import (
	"campusmap/internal/geo"
)

// Event is one pointer, click or search input for a single feature
type Event interface {
	Target() geo.FeatureID
	Kind() string
}

// PointerEnter fires when the pointer moves onto a feature
type PointerEnter struct{ ID geo.FeatureID }

// PointerLeave fires when the pointer moves off a feature
type PointerLeave struct{ ID geo.FeatureID }

// Click fires when a feature is clicked
type Click struct{ ID geo.FeatureID }

// SearchSelect selects a feature found by search and moves the view to it
type SearchSelect struct {
	ID     geo.FeatureID
	Center geo.LatLon
	Zoom   float64
}

func (e PointerEnter) Target() geo.FeatureID { return e.ID }
func (e PointerLeave) Target() geo.FeatureID { return e.ID }
func (e Click) Target() geo.FeatureID        { return e.ID }
func (e SearchSelect) Target() geo.FeatureID { return e.ID }

func (PointerEnter) Kind() string { return "pointer_enter" }
func (PointerLeave) Kind() string { return "pointer_leave" }
func (Click) Kind() string        { return "click" }
func (SearchSelect) Kind() string { return "search_select" }
