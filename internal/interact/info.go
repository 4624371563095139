package interact

import (
	"strings"

	"github.com/rotisserie/eris"

	"campusmap/internal/geo"
)

// DetailMode chooses where expanded detail opens
type DetailMode int

const (
	// DetailPopup expands the popup in place at the feature
	DetailPopup DetailMode = iota
	// DetailPanel opens a docked side panel keyed by feature id
	DetailPanel
)

// String returns the config spelling of the mode
func (m DetailMode) String() string {
	if m == DetailPanel {
		return "panel"
	}
	return "popup"
}

// ParseDetailMode parses "popup" or "panel"
func ParseDetailMode(raw string) (DetailMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "popup":
		return DetailPopup, nil
	case "panel":
		return DetailPanel, nil
	default:
		return DetailPopup, eris.Errorf("interact: unknown detail mode %q", raw)
	}
}

// Placement is where an info surface is drawn
type Placement int

const (
	PlacementPopup Placement = iota
	PlacementPanel
)

// Info is the content of an info surface
type Info struct {
	Title     string
	Body      string
	ImageURL  string
	Link      string
	Expanded  bool
	Placement Placement
}

// ShortInfo is the hover content: name, description and image
func ShortInfo(f *geo.Feature) Info {
	return Info{
		Title:     f.Name,
		Body:      f.Description,
		ImageURL:  f.ImageURL,
		Placement: PlacementPopup,
	}
}

// ExpandedInfo is the selection content: name, description and link
func ExpandedInfo(f *geo.Feature, mode DetailMode) Info {
	info := Info{
		Title:     f.Name,
		Body:      f.Description,
		Link:      f.Link,
		Expanded:  true,
		Placement: PlacementPopup,
	}
	if mode == DetailPanel {
		info.Placement = PlacementPanel
	}
	return info
}

// Lines returns the info as display paragraphs, title first
func (i Info) Lines() []string {
	lines := []string{i.Title}
	if i.Body != "" {
		lines = append(lines, i.Body)
	}
	if !i.Expanded && i.ImageURL != "" {
		lines = append(lines, "[image] "+i.ImageURL)
	}
	if i.Expanded && i.Link != "" {
		lines = append(lines, "For more information: "+i.Link)
	}
	return lines
}
