package style

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmap/internal/geo"
)

func hex(t *testing.T, s string) colorful.Color {
	t.Helper()
	c, err := colorful.Hex(s)
	require.NoError(t, err)
	return c
}

func TestStyleForPolygon(t *testing.T) {
	r := MustDefault()
	dining := hex(t, "#6A8AEE")

	def := r.StyleFor(geo.CategoryDining, geo.KindPolygon, VariantDefault)
	assert.Equal(t, Style{Color: dining, FillColor: dining, Weight: 2, Opacity: 0.9, FillOpacity: 0.7}, def)

	hover := r.StyleFor(geo.CategoryDining, geo.KindPolygon, VariantHover)
	assert.Equal(t, Style{Color: dining, FillColor: dining, Weight: 5, Opacity: 0.9, FillOpacity: 0.9}, hover)

	selected := r.StyleFor(geo.CategoryDining, geo.KindPolygon, VariantSelected)
	assert.Equal(t, hex(t, "#FF0000"), selected.Color)
	assert.Equal(t, dining, selected.FillColor)
	assert.Equal(t, 4.0, selected.Weight)
}

func TestStyleForPoint(t *testing.T) {
	r := MustDefault()
	libraries := hex(t, "#EE6AB4")
	white := hex(t, "#FFFFFF")

	def := r.StyleFor(geo.CategoryLibraries, geo.KindPoint, VariantDefault)
	assert.Equal(t, Style{Color: white, FillColor: libraries, Weight: 2, Opacity: 1, FillOpacity: 0.9, Radius: 8}, def)

	hover := r.StyleFor(geo.CategoryLibraries, geo.KindPoint, VariantHover)
	assert.Equal(t, Style{Color: white, FillColor: libraries, Weight: 2, Opacity: 0.9, FillOpacity: 1, Radius: 10}, hover)

	selected := r.StyleFor(geo.CategoryLibraries, geo.KindPoint, VariantSelected)
	assert.Equal(t, hex(t, "#FF0000"), selected.Color)
	assert.Equal(t, 8.0, selected.Radius)
}

func TestHoverAndSelectionAreHeavier(t *testing.T) {
	r := MustDefault()

	for _, c := range geo.Categories() {
		for _, kind := range []geo.GeometryKind{geo.KindPoint, geo.KindPolygon} {
			def := r.StyleFor(c, kind, VariantDefault)
			hover := r.StyleFor(c, kind, VariantHover)
			selected := r.StyleFor(c, kind, VariantSelected)

			assert.GreaterOrEqual(t, hover.Weight, def.Weight)
			assert.GreaterOrEqual(t, hover.FillOpacity, def.FillOpacity)
			assert.Greater(t, selected.Weight, def.Weight)
			assert.NotEqual(t, r.Color(c), selected.Color)
		}
	}
}

func TestLayerFor(t *testing.T) {
	r := MustDefault()

	names := map[geo.Category]string{
		geo.CategoryDining:      "Dining Buildings",
		geo.CategoryResidential: "Dormitories",
		geo.CategoryLibraries:   "Libraries",
		geo.CategoryAcademic:    "Classrooms",
		geo.CategoryStudentLife: "Student Life",
	}
	for c, name := range names {
		h := r.LayerFor(c)
		assert.Equal(t, c, h.Category)
		assert.Equal(t, name, h.Name)
	}
}

func TestNewRegistryRejectsBadPalettes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Palette)
	}{
		{name: "missing color", mutate: func(p *Palette) { delete(p.Colors, geo.CategoryAcademic) }},
		{name: "bad hex", mutate: func(p *Palette) { p.Colors[geo.CategoryDining] = "blue" }},
		{name: "bad highlight", mutate: func(p *Palette) { p.Highlight = "#GG0000" }},
		{name: "highlight equals category", mutate: func(p *Palette) { p.Highlight = "#47C963" }},
		{name: "flat polygon hover", mutate: func(p *Palette) { p.PolygonHover = p.PolygonDefault }},
		{name: "lighter point hover", mutate: func(p *Palette) { p.PointHover.FillOpacity = 0.5 }},
		{name: "light selection", mutate: func(p *Palette) { p.SelectedWeight = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPalette()
			tt.mutate(&p)
			_, err := NewRegistry(p)
			assert.Error(t, err)
		})
	}
}

func TestStyleForUnknownCategory(t *testing.T) {
	r := MustDefault()
	assert.Equal(t, Style{}, r.StyleFor(geo.NumCategories, geo.KindPoint, VariantDefault))
}
