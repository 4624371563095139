package render

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"campusmap/internal/geo"
	"campusmap/internal/layer"
	"campusmap/internal/style"
)

// MapRenderer draws the visible campus layers to a canvas and remembers
// which feature owns each cell for pointer hit testing
type MapRenderer struct {
	projection *geo.Projection
	layers     *layer.Set
	surface    *Surface
	canvas     *Canvas
	hits       [][]*geo.Feature
	labels     [][]bool
	log        *zap.Logger
}

// NewMapRenderer creates a new map renderer
func NewMapRenderer(projection *geo.Projection, layers *layer.Set, surface *Surface, canvas *Canvas) *MapRenderer {
	m := &MapRenderer{
		projection: projection,
		layers:     layers,
		surface:    surface,
		log:        zap.L().With(zap.String("component", "render")),
	}
	m.UpdateCanvas(canvas)
	return m
}

// RenderMap draws every feature of the visible layers. Polygons go first
// and points on top; within each group features with open info are raised.
func (m *MapRenderer) RenderMap() {
	m.canvas.Clear()
	m.resetHits()

	bounds := m.projection.Bounds()
	var visible []*geo.Feature
	for _, f := range m.layers.VisibleFeatures() {
		if bounds.Intersects(f.Bounds()) {
			visible = append(visible, f)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return m.rank(visible[i]) < m.rank(visible[j])
	})

	for _, f := range visible {
		m.RenderFeature(f)
	}
	for _, f := range visible {
		m.renderLabel(f)
	}

	m.log.Debug("map rendered",
		zap.Int("features", len(visible)),
		zap.Float64("zoom", m.projection.Zoom()))
}

func (m *MapRenderer) rank(f *geo.Feature) int {
	r := 0
	if f.IsPoint() {
		r += 2
	}
	if m.surface.Raised(f.ID) {
		r++
	}
	return r
}

// styleOf returns the style the interaction machine last set for f, or the
// default style if it never did
func (m *MapRenderer) styleOf(f *geo.Feature) style.Style {
	if st, ok := m.surface.StyleOf(f.ID); ok {
		return st
	}
	return m.layers.Registry().StyleFor(f.Category, f.Kind, style.VariantDefault)
}

// RenderFeature draws a single feature
func (m *MapRenderer) RenderFeature(f *geo.Feature) {
	st := m.styleOf(f)

	switch g := f.Geometry.(type) {
	case orb.Point:
		p := m.projection.Project(geo.LatLon{Lat: g.Lat(), Lon: g.Lon()})
		m.plot(p.X, p.Y, PointGlyph(st.Radius), PointStyle(st), f)

	case orb.Polygon:
		m.fillPolygon(f, st)
		edge := OutlineGlyph(st.Weight)
		stroke := StrokeStyle(st)
		for _, ring := range g {
			for i := 0; i+1 < len(ring); i++ {
				p1 := m.projection.Project(geo.LatLon{Lat: ring[i].Lat(), Lon: ring[i].Lon()})
				p2 := m.projection.Project(geo.LatLon{Lat: ring[i+1].Lat(), Lon: ring[i+1].Lon()})
				DrawLine(p1.X, p1.Y, p2.X, p2.Y, func(x, y int) {
					m.plot(x, y, edge, stroke, f)
				})
			}
		}
	}
}

// fillPolygon shades every cell whose center lies inside the polygon
func (m *MapRenderer) fillPolygon(f *geo.Feature, st style.Style) {
	b := f.Bounds()
	topLeft := m.projection.Project(geo.LatLon{Lat: b.MaxLat, Lon: b.MinLon})
	bottomRight := m.projection.Project(geo.LatLon{Lat: b.MinLat, Lon: b.MaxLon})

	glyph := FillGlyph(st.FillOpacity)
	fill := FillStyle(st)
	for y := max(topLeft.Y, 0); y <= min(bottomRight.Y, m.canvas.Height()-1); y++ {
		for x := max(topLeft.X, 0); x <= min(bottomRight.X, m.canvas.Width()-1); x++ {
			if f.Contains(m.projection.Unproject(x, y)) {
				m.plot(x, y, glyph, fill, f)
			}
		}
	}
}

// renderLabel writes the feature name beside a point or centered on a
// polygon's anchor, unless it would run into another label
func (m *MapRenderer) renderLabel(f *geo.Feature) {
	if f.Name == "" {
		return
	}
	anchor := m.projection.Project(f.Anchor())
	width := TextWidth(f.Name)

	x := anchor.X + 2
	if f.IsPolygon() {
		x = anchor.X - width/2
	}
	y := anchor.Y
	if y < 0 || y >= m.canvas.Height() || x < 0 || x+width > m.canvas.Width() {
		return
	}
	for i := x - 1; i <= x+width; i++ {
		if i >= 0 && i < m.canvas.Width() && m.labels[y][i] {
			return
		}
	}

	labelStyle := StyleLabel
	if m.surface.Raised(f.ID) {
		labelStyle = labelStyle.Bold(true)
	}
	used := m.canvas.DrawText(x, y, f.Name, labelStyle)
	for i := x; i < x+used; i++ {
		m.labels[y][i] = true
		m.hits[y][i] = f
	}
}

func (m *MapRenderer) plot(x, y int, char rune, st tcell.Style, f *geo.Feature) {
	if x < 0 || x >= m.canvas.Width() || y < 0 || y >= m.canvas.Height() {
		return
	}
	m.canvas.Set(x, y, char, st)
	m.hits[y][x] = f
}

// FeatureAt returns the topmost feature drawn at a cell
func (m *MapRenderer) FeatureAt(x, y int) (*geo.Feature, bool) {
	if y < 0 || y >= len(m.hits) || x < 0 || x >= len(m.hits[y]) {
		return nil, false
	}
	f := m.hits[y][x]
	return f, f != nil
}

func (m *MapRenderer) resetHits() {
	for y := range m.hits {
		for x := range m.hits[y] {
			m.hits[y][x] = nil
			m.labels[y][x] = false
		}
	}
}

// DrawLine implements Bresenham's line algorithm, calling plot for every cell
func DrawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}

	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy

	for {
		plot(x0, y0)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Canvas returns the canvas the renderer draws to
func (m *MapRenderer) Canvas() *Canvas {
	return m.canvas
}

// UpdateCanvas swaps the canvas, e.g. after a resize
func (m *MapRenderer) UpdateCanvas(canvas *Canvas) {
	m.canvas = canvas
	m.hits = make([][]*geo.Feature, canvas.Height())
	m.labels = make([][]bool, canvas.Height())
	for y := range m.hits {
		m.hits[y] = make([]*geo.Feature, canvas.Width())
		m.labels[y] = make([]bool, canvas.Width())
	}
}
