package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"campusmap/internal/geo"
	"campusmap/internal/interact"
	"campusmap/internal/layer"
	"campusmap/internal/render"
)

const (
	popupWidth = 36
	panelWidth = 40
)

// InfoView draws the open info surfaces: popups anchored at their feature
// and the docked detail panel
type InfoView struct {
	rects []rect // drawn in the last frame, for pointer hit testing
}

// NewInfoView creates a new info view
func NewInfoView() *InfoView {
	return &InfoView{}
}

// Contains reports whether a cell is covered by an info surface
func (v *InfoView) Contains(x, y int) bool {
	for _, r := range v.rects {
		if r.contains(x, y) {
			return true
		}
	}
	return false
}

// Draw renders the popups of visible layers. width and height are the map
// area size.
func (v *InfoView) Draw(screen tcell.Screen, popups []render.Popup, layers *layer.Set, proj *geo.Projection, width, height int) {
	v.rects = v.rects[:0]
	for _, p := range popups {
		if !layers.Visible(p.Feature.Category) {
			continue
		}
		if p.Info.Placement == interact.PlacementPanel {
			v.drawPanel(screen, p, width, height)
			continue
		}
		v.drawPopup(screen, p, proj, width, height)
	}
}

func (v *InfoView) drawPopup(screen tcell.Screen, p render.Popup, proj *geo.Projection, width, height int) {
	w := min(popupWidth, width)
	lines := layoutInfo(p.Info, w-2)
	h := len(lines) + 2

	anchor := proj.Project(p.Feature.Anchor())
	x := min(max(anchor.X-w/2, 0), width-w)
	y := anchor.Y - h
	if y < 0 {
		y = anchor.Y + 1
	}
	if y+h > height {
		y = max(height-h, 0)
	}

	r := rect{x: x, y: y, width: w, height: h}
	v.drawBox(screen, r, lines)
}

func (v *InfoView) drawPanel(screen tcell.Screen, p render.Popup, width, height int) {
	w := min(panelWidth, width)
	r := rect{x: width - w, y: 0, width: w, height: height}
	lines := layoutInfo(p.Info, w-2)
	if len(lines) > height-2 {
		lines = lines[:max(height-2, 0)]
	}
	v.drawBox(screen, r, lines)
}

func (v *InfoView) drawBox(screen tcell.Screen, r rect, lines []styledLine) {
	panel := newPanel(r)
	for i, line := range lines {
		panel.DrawTextClipped(1, 1+i, r.width-2, line.text, line.style)
	}
	panel.Blit(screen, r.x, r.y)
	v.rects = append(v.rects, r)
}

type styledLine struct {
	text  string
	style tcell.Style
}

// layoutInfo wraps the info paragraphs to width, styling each by role
func layoutInfo(info interact.Info, width int) []styledLine {
	var out []styledLine
	for i, para := range info.Lines() {
		style := render.StyleLabel
		switch {
		case i == 0:
			style = render.StyleTitle
		case strings.HasPrefix(para, "For more information: "):
			style = render.StyleLink
		case strings.HasPrefix(para, "[image] "):
			style = render.StyleDim
		}
		for _, line := range render.Wrap(para, width) {
			out = append(out, styledLine{text: line, style: style})
		}
	}
	return out
}
