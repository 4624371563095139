package style

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rotisserie/eris"

	"campusmap/internal/geo"
)

// LayerHandle names the layer a category renders into
type LayerHandle struct {
	Category geo.Category
	Name     string
}

type binding struct {
	color colorful.Color
	layer LayerHandle
}

// Registry holds the category bindings. It is built once and never mutated.
type Registry struct {
	bindings  [geo.NumCategories]binding
	stroke    colorful.Color
	highlight colorful.Color
	selected  float64

	polygon [VariantSelected]Bundle
	point   [VariantSelected]Bundle
}

// NewRegistry resolves every category binding and checks the palette keeps
// hover heavier than default and selection heavier still.
func NewRegistry(p Palette) (*Registry, error) {
	r := &Registry{selected: p.SelectedWeight}

	for _, c := range geo.Categories() {
		hex, ok := p.Colors[c]
		if !ok {
			return nil, eris.Errorf("style: no color for category %s", c)
		}
		color, err := colorful.Hex(hex)
		if err != nil {
			return nil, eris.Wrapf(err, "style: color for category %s", c)
		}
		r.bindings[c] = binding{color: color, layer: LayerHandle{Category: c, Name: layerNames[c]}}
	}

	var err error
	if r.stroke, err = colorful.Hex(p.PointStroke); err != nil {
		return nil, eris.Wrap(err, "style: point stroke color")
	}
	if r.highlight, err = colorful.Hex(p.Highlight); err != nil {
		return nil, eris.Wrap(err, "style: highlight color")
	}
	for _, c := range geo.Categories() {
		if r.bindings[c].color.AlmostEqualRgb(r.highlight) {
			return nil, eris.Errorf("style: highlight color matches category %s", c)
		}
	}

	if !p.PolygonHover.heavier(p.PolygonDefault) {
		return nil, eris.New("style: polygon hover must be heavier than default")
	}
	if !p.PointHover.heavier(p.PointDefault) {
		return nil, eris.New("style: point hover must be heavier than default")
	}
	if p.SelectedWeight <= p.PolygonDefault.Weight || p.SelectedWeight <= p.PointDefault.Weight {
		return nil, eris.New("style: selected weight must exceed default weight")
	}

	r.polygon = [VariantSelected]Bundle{p.PolygonDefault, p.PolygonHover}
	r.point = [VariantSelected]Bundle{p.PointDefault, p.PointHover}
	return r, nil
}

// MustDefault returns a registry for DefaultPalette
func MustDefault() *Registry {
	r, err := NewRegistry(DefaultPalette())
	if err != nil {
		panic(err)
	}
	return r
}

// StyleFor returns the style bundle of a category and geometry kind in a
// variant. The selected variant keeps the default shape and fill but
// overrides the stroke with the highlight color and selected weight.
func (r *Registry) StyleFor(c geo.Category, kind geo.GeometryKind, v Variant) Style {
	if !c.Valid() {
		return Style{}
	}
	b := r.bindings[c]

	bundles := r.polygon
	stroke := b.color
	if kind == geo.KindPoint {
		bundles = r.point
		stroke = r.stroke
	}

	bundle := bundles[VariantDefault]
	if v == VariantHover {
		bundle = bundles[VariantHover]
	}

	s := Style{
		Color:       stroke,
		FillColor:   b.color,
		Weight:      bundle.Weight,
		Opacity:     bundle.Opacity,
		FillOpacity: bundle.FillOpacity,
		Radius:      bundle.Radius,
	}
	if v == VariantSelected {
		s.Color = r.highlight
		s.Weight = r.selected
		s.Opacity = 1
	}
	return s
}

// LayerFor returns the layer a category renders into
func (r *Registry) LayerFor(c geo.Category) LayerHandle {
	if !c.Valid() {
		return LayerHandle{Category: c}
	}
	return r.bindings[c].layer
}

// Color returns the color token of a category
func (r *Registry) Color(c geo.Category) colorful.Color {
	if !c.Valid() {
		return colorful.Color{}
	}
	return r.bindings[c].color
}
