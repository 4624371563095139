// Package style binds campus categories to colors and layers and computes
// the style bundle of a feature in each interaction variant.
package style

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Variant selects which bundle of a category applies
type Variant int

const (
	VariantDefault Variant = iota
	VariantHover
	VariantSelected
)

// String returns a string representation of the variant
func (v Variant) String() string {
	switch v {
	case VariantDefault:
		return "default"
	case VariantHover:
		return "hover"
	case VariantSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// Style is a renderer-independent style bundle.
// Radius only applies to points; FillColor and FillOpacity apply to both.
type Style struct {
	Color       colorful.Color
	FillColor   colorful.Color
	Weight      float64
	Opacity     float64
	FillOpacity float64
	Radius      float64
}

// Bundle holds the numeric part of a style
type Bundle struct {
	Weight      float64
	Opacity     float64
	FillOpacity float64
	Radius      float64
}

// heavier reports whether b carries at least as much visual weight as o in
// every dimension and strictly more in one.
func (b Bundle) heavier(o Bundle) bool {
	if b.Weight < o.Weight || b.FillOpacity < o.FillOpacity || b.Radius < o.Radius {
		return false
	}
	return b.Weight > o.Weight || b.FillOpacity > o.FillOpacity || b.Radius > o.Radius
}
