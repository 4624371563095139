package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"

	"campusmap/internal/geo"
	"campusmap/internal/style"
)

func TestColorOpacity(t *testing.T) {
	red := colorful.Color{R: 1, G: 0, B: 0}

	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), Color(red, 1))
	assert.Equal(t, tcell.ColorDefault, Color(red, 0))

	r, g, b := Color(red, 0.5).RGB()
	assert.InDelta(t, 128, r, 1)
	assert.Zero(t, g)
	assert.Zero(t, b)
}

func TestGlyphsFollowBundles(t *testing.T) {
	reg := style.MustDefault()

	polyDefault := reg.StyleFor(geo.CategoryDining, geo.KindPolygon, style.VariantDefault)
	polyHover := reg.StyleFor(geo.CategoryDining, geo.KindPolygon, style.VariantHover)
	assert.Equal(t, '▒', FillGlyph(polyDefault.FillOpacity))
	assert.Equal(t, '▓', FillGlyph(polyHover.FillOpacity))
	assert.Equal(t, '·', OutlineGlyph(polyDefault.Weight))
	assert.Equal(t, '█', OutlineGlyph(polyHover.Weight))

	pointDefault := reg.StyleFor(geo.CategoryLibraries, geo.KindPoint, style.VariantDefault)
	pointHover := reg.StyleFor(geo.CategoryLibraries, geo.KindPoint, style.VariantHover)
	assert.Equal(t, '●', PointGlyph(pointDefault.Radius))
	assert.Equal(t, '◉', PointGlyph(pointHover.Radius))

	assert.Equal(t, '░', FillGlyph(0.2))
	assert.Equal(t, ' ', FillGlyph(0))
}

func TestPointStyleShowsSelectionRing(t *testing.T) {
	reg := style.MustDefault()

	_, bg, _ := PointStyle(reg.StyleFor(geo.CategoryLibraries, geo.KindPoint, style.VariantDefault)).Decompose()
	assert.Equal(t, tcell.ColorDefault, bg)

	_, bg, _ = PointStyle(reg.StyleFor(geo.CategoryLibraries, geo.KindPoint, style.VariantSelected)).Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), bg)
}
