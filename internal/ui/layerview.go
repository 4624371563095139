package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"campusmap/internal/geo"
	"campusmap/internal/layer"
	"campusmap/internal/render"
)

const legendTitle = "Select a Layer:"

// LayerView is the legend and layer selector. Each row shows a layer's
// toggle key, visibility, color and feature count.
type LayerView struct {
	bounds  rect
	visible bool
}

// NewLayerView creates a new layer selector
func NewLayerView(x, y, width int) *LayerView {
	return &LayerView{
		bounds:  rect{x: x, y: y, width: width, height: int(geo.NumCategories) + 2},
		visible: true,
	}
}

// Visible reports whether the legend is shown
func (l *LayerView) Visible() bool { return l.visible }

// SetVisible shows or hides the legend
func (l *LayerView) SetVisible(v bool) { l.visible = v }

// Contains reports whether a cell is covered by the legend
func (l *LayerView) Contains(x, y int) bool {
	return l.visible && l.bounds.contains(x, y)
}

// RowAt returns the category of the legend row at a cell
func (l *LayerView) RowAt(x, y int) (geo.Category, bool) {
	if !l.Contains(x, y) {
		return 0, false
	}
	row := y - l.bounds.y - 1
	if row < 0 || row >= int(geo.NumCategories) {
		return 0, false
	}
	return geo.Categories()[row], true
}

// Draw renders the layer selector to the screen
func (l *LayerView) Draw(screen tcell.Screen, layers *layer.Set) {
	if !l.visible {
		return
	}

	width := l.bounds.width
	panel := newPanel(l.bounds)
	panel.DrawTextClipped(2, 0, width-4, legendTitle, render.StyleTitle)

	reg := layers.Registry()
	inner := width - 2
	for i, lyr := range layers.Layers() {
		y := 1 + i
		x := 1

		mark := " "
		style := render.StyleDim
		if lyr.Visible() {
			mark = "x"
			style = render.StyleListItem
		}

		x += panel.DrawTextClipped(x, y, inner, fmt.Sprintf("%d [%s] ", i+1, mark), style)
		swatch := tcell.StyleDefault.Foreground(render.Color(reg.Color(lyr.Category()), 1))
		panel.Set(x, y, '■', swatch)
		x += 2

		count := fmt.Sprintf("%d", lyr.Len())
		nameWidth := width - 1 - x - len(count) - 1
		panel.DrawTextClipped(x, y, nameWidth, lyr.Name(), style)
		panel.DrawTextClipped(width-1-len(count), y, len(count), count, style)
	}
	panel.Blit(screen, l.bounds.x, l.bounds.y)
}

// UpdateDimensions moves the legend
func (l *LayerView) UpdateDimensions(x, y, width int) {
	l.bounds.x = x
	l.bounds.y = y
	l.bounds.width = width
}
