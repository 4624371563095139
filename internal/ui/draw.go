package ui

import (
	"github.com/gdamore/tcell/v2"

	"campusmap/internal/render"
)

// rect is a screen rectangle
type rect struct {
	x, y, width, height int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.width && y >= r.y && y < r.y+r.height
}

// newPanel returns an opaque bordered canvas the size of r. Callers draw in
// panel coordinates and blit it at r.
func newPanel(r rect) *render.Canvas {
	c := render.NewCanvas(r.width, r.height)
	c.DrawBox(0, 0, r.width, r.height, render.StyleBorder)
	return c
}

// newRow returns a one-line canvas filled with style
func newRow(width int, style tcell.Style) *render.Canvas {
	c := render.NewCanvas(width, 1)
	c.FillRect(0, 0, width, 1, ' ', style)
	return c
}
