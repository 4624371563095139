package ui

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"campusmap/internal/geo"
	"campusmap/internal/layer"
	"campusmap/internal/render"
)

// MapView displays the campus layers
type MapView struct {
	renderer    *render.MapRenderer
	projection  *geo.Projection
	surface     *render.Surface
	canvas      *render.Canvas
	home        geo.LatLon
	homeZoom    float64
	width       int
	height      int
	aspectRatio float64
}

// NewMapView creates a new map view centered on home
func NewMapView(width, height int, layers *layer.Set, home geo.LatLon, zoom, aspectRatio float64) *MapView {
	projection := geo.NewProjection(home, zoom, width, height, aspectRatio)
	canvas := render.NewCanvas(width, height)
	surface := render.NewSurface(projection)
	renderer := render.NewMapRenderer(projection, layers, surface, canvas)

	return &MapView{
		renderer:    renderer,
		projection:  projection,
		surface:     surface,
		canvas:      canvas,
		home:        home,
		homeZoom:    zoom,
		width:       width,
		height:      height,
		aspectRatio: aspectRatio,
	}
}

// Draw renders the map view to the screen
func (m *MapView) Draw(screen tcell.Screen) {
	m.renderer.RenderMap()
	m.canvas.Blit(screen, 0, 0)
}

// FeatureAt returns the feature drawn at a screen cell in the last frame
func (m *MapView) FeatureAt(x, y int) (*geo.Feature, bool) {
	return m.renderer.FeatureAt(x, y)
}

// Surface returns the interaction surface the map draws from
func (m *MapView) Surface() *render.Surface {
	return m.surface
}

// Projection returns the current projection
func (m *MapView) Projection() *geo.Projection {
	return m.projection
}

// UpdateDimensions updates the view dimensions when the screen is resized
func (m *MapView) UpdateDimensions(width, height int) {
	m.width = width
	m.height = height

	m.projection.UpdateDimensions(width, height)

	m.canvas = render.NewCanvas(width, height)
	m.renderer.UpdateCanvas(m.canvas)
}

// ZoomIn steps one zoom level in
func (m *MapView) ZoomIn() {
	m.SetZoom(m.projection.Zoom() + 1)
}

// ZoomOut steps one zoom level out
func (m *MapView) ZoomOut() {
	m.SetZoom(m.projection.Zoom() - 1)
}

// SetZoom changes the zoom level around the current center
func (m *MapView) SetZoom(zoom float64) {
	m.projection.SetZoom(zoom)
	zap.L().Debug("map zoom changed", zap.String("component", "ui"), zap.Float64("zoom", m.projection.Zoom()))
}

// Pan moves the center by a number of cells
func (m *MapView) Pan(dx, dy int) {
	m.projection.UpdateCenter(m.projection.Unproject(m.width/2+dx, m.height/2+dy))
}

// Home returns to the initial center and zoom
func (m *MapView) Home() {
	m.projection.Recenter(m.home, m.homeZoom)
}
