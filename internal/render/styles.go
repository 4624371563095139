package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"campusmap/internal/style"
)

// Chrome styles for panels and labels
var (
	StyleLabel        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleDim          = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StyleBorder       = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleTitle        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	StyleLink         = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan).Underline(true)
	StyleStatus       = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	StyleError        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed)
	StyleListItem     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// background is the color opacity blends toward
var background = colorful.Color{R: 0, G: 0, B: 0}

// Color converts a color drawn at opacity over a black terminal into a
// tcell color
func Color(c colorful.Color, opacity float64) tcell.Color {
	if opacity <= 0 {
		return tcell.ColorDefault
	}
	if opacity < 1 {
		c = background.BlendRgb(c, opacity)
	}
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// StrokeStyle returns the terminal style of a feature outline or point
func StrokeStyle(s style.Style) tcell.Style {
	st := tcell.StyleDefault.Foreground(Color(s.Color, s.Opacity))
	if s.Weight >= 4 {
		st = st.Bold(true)
	}
	return st
}

// FillStyle returns the terminal style of a polygon interior
func FillStyle(s style.Style) tcell.Style {
	return tcell.StyleDefault.Foreground(Color(s.FillColor, s.FillOpacity))
}

// PointStyle returns the terminal style of a point marker. The marker is
// drawn in the fill color; a heavy stroke shows as a background ring.
func PointStyle(s style.Style) tcell.Style {
	st := tcell.StyleDefault.Foreground(Color(s.FillColor, s.FillOpacity)).Bold(true)
	if s.Weight >= 3 {
		st = st.Background(Color(s.Color, s.Opacity))
	}
	return st
}

// FillGlyph picks a shade block for a fill opacity
func FillGlyph(fillOpacity float64) rune {
	switch {
	case fillOpacity >= 0.9:
		return '▓'
	case fillOpacity >= 0.5:
		return '▒'
	case fillOpacity > 0:
		return '░'
	default:
		return ' '
	}
}

// OutlineGlyph picks the polygon edge glyph for a stroke weight
func OutlineGlyph(weight float64) rune {
	switch {
	case weight >= 4:
		return '█'
	case weight > 0:
		return '·'
	default:
		return ' '
	}
}

// PointGlyph picks the marker glyph for a point radius
func PointGlyph(radius float64) rune {
	if radius >= 10 {
		return '◉'
	}
	return '●'
}
