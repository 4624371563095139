package geo

import (
	"math"
)

const (
	tileSize   = 256.0 // web map tile edge in pixels
	cellPixels = 8.0   // web map pixels covered by one terminal column

	MinZoom = 12.0
	MaxZoom = 22.0
)

// Point represents a screen coordinate
type Point struct {
	X int
	Y int
}

// Projection maps lat/lon to terminal cells around a center at a web-map
// style zoom level. It is a local equirectangular approximation, which is
// plenty for a campus-sized view.
type Projection struct {
	center       LatLon
	zoom         float64
	screenWidth  int
	screenHeight int
	aspectRatio  float64 // character height / width
	scaleX       float64 // columns per degree of longitude
	scaleY       float64 // rows per degree of latitude
}

// NewProjection creates a projection centered on center at zoom
func NewProjection(center LatLon, zoom float64, screenWidth, screenHeight int, aspectRatio float64) *Projection {
	if aspectRatio <= 0 {
		aspectRatio = 2.0
	}
	p := &Projection{
		center:       center,
		zoom:         clampZoom(zoom),
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		aspectRatio:  aspectRatio,
	}

	p.calculateScale()
	return p
}

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// calculateScale computes the cells-per-degree scaling factors
func (p *Projection) calculateScale() {
	cellsPerDegree := tileSize * math.Exp2(p.zoom) / 360.0 / cellPixels

	// A degree of latitude spans 1/cos(lat) times more map pixels than a
	// degree of longitude, and a row is aspectRatio times taller than a column.
	p.scaleX = cellsPerDegree
	p.scaleY = cellsPerDegree / math.Cos(p.center.Lat*math.Pi/180.0) / p.aspectRatio
}

// Project converts lat/lon to screen coordinates with (0, 0) at top-left
func (p *Projection) Project(ll LatLon) Point {
	deltaLat := ll.Lat - p.center.Lat
	deltaLon := ll.Lon - p.center.Lon

	x := int(math.Round(deltaLon * p.scaleX))
	y := int(math.Round(-deltaLat * p.scaleY)) // screen Y grows downward

	return Point{X: x + p.screenWidth/2, Y: y + p.screenHeight/2}
}

// Unproject converts screen coordinates back to lat/lon
func (p *Projection) Unproject(x, y int) LatLon {
	x -= p.screenWidth / 2
	y -= p.screenHeight / 2

	return LatLon{
		Lat: p.center.Lat - float64(y)/p.scaleY,
		Lon: p.center.Lon + float64(x)/p.scaleX,
	}
}

// Recenter moves the view to center at zoom
func (p *Projection) Recenter(center LatLon, zoom float64) {
	p.center = center
	p.zoom = clampZoom(zoom)
	p.calculateScale()
}

// UpdateCenter moves the view without changing zoom
func (p *Projection) UpdateCenter(center LatLon) {
	p.Recenter(center, p.zoom)
}

// SetZoom changes the zoom level around the current center
func (p *Projection) SetZoom(zoom float64) {
	p.Recenter(p.center, zoom)
}

// UpdateDimensions updates the screen dimensions
func (p *Projection) UpdateDimensions(width, height int) {
	p.screenWidth = width
	p.screenHeight = height
	p.calculateScale()
}

// Center returns the current center point
func (p *Projection) Center() LatLon {
	return p.center
}

// Zoom returns the current zoom level
func (p *Projection) Zoom() float64 {
	return p.zoom
}

// Bounds returns the geographic bounds visible on screen
func (p *Projection) Bounds() Bounds {
	topLeft := p.Unproject(0, 0)
	bottomRight := p.Unproject(p.screenWidth-1, p.screenHeight-1)

	return Bounds{
		MinLat: math.Min(topLeft.Lat, bottomRight.Lat),
		MaxLat: math.Max(topLeft.Lat, bottomRight.Lat),
		MinLon: math.Min(topLeft.Lon, bottomRight.Lon),
		MaxLon: math.Max(topLeft.Lon, bottomRight.Lon),
	}
}

// Bounds represents a geographic bounding box
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains checks if a point is within the bounds
func (b Bounds) Contains(ll LatLon) bool {
	return ll.Lat >= b.MinLat && ll.Lat <= b.MaxLat &&
		ll.Lon >= b.MinLon && ll.Lon <= b.MaxLon
}

// Intersects reports whether two boxes overlap
func (b Bounds) Intersects(o Bounds) bool {
	return b.MinLat <= o.MaxLat && o.MinLat <= b.MaxLat &&
		b.MinLon <= o.MaxLon && o.MinLon <= b.MaxLon
}
