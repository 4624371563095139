// Package layer partitions features into per-category layers and one
// aggregate layer used for search.
package layer

import (
	"campusmap/internal/geo"
	"campusmap/internal/style"
)

// Layer is a toggle-visible group of the features of one category.
// Membership is fixed once assigned; only visibility changes.
type Layer struct {
	handle  style.LayerHandle
	members []*geo.Feature
	index   map[geo.FeatureID]struct{}
	visible bool
}

func newLayer(h style.LayerHandle) *Layer {
	return &Layer{handle: h, index: make(map[geo.FeatureID]struct{}), visible: true}
}

// Name returns the layer selector label
func (l *Layer) Name() string { return l.handle.Name }

// Category returns the layer's category
func (l *Layer) Category() geo.Category { return l.handle.Category }

// Visible reports whether the layer is shown
func (l *Layer) Visible() bool { return l.visible }

// Len returns the number of members
func (l *Layer) Len() int { return len(l.members) }

// Contains reports membership
func (l *Layer) Contains(id geo.FeatureID) bool {
	_, ok := l.index[id]
	return ok
}

// Features returns the members in assignment order
func (l *Layer) Features() []*geo.Feature {
	out := make([]*geo.Feature, len(l.members))
	copy(out, l.members)
	return out
}

func (l *Layer) add(f *geo.Feature) bool {
	if _, ok := l.index[f.ID]; ok {
		return false
	}
	l.index[f.ID] = struct{}{}
	l.members = append(l.members, f)
	return true
}

// Aggregate is the read-only union of every category layer
type Aggregate struct {
	members []*geo.Feature
	byID    map[geo.FeatureID]*geo.Feature
}

// Features returns every assigned feature in assignment order
func (a *Aggregate) Features() []*geo.Feature {
	out := make([]*geo.Feature, len(a.members))
	copy(out, a.members)
	return out
}

// Lookup finds an assigned feature by id
func (a *Aggregate) Lookup(id geo.FeatureID) (*geo.Feature, bool) {
	f, ok := a.byID[id]
	return f, ok
}

// Len returns the number of assigned features
func (a *Aggregate) Len() int { return len(a.members) }
