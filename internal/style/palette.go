package style

import (
	"campusmap/internal/geo"
)

// Palette is the configurable policy behind a Registry
type Palette struct {
	Colors         map[geo.Category]string // hex color per category
	PointStroke    string
	Highlight      string
	SelectedWeight float64

	PolygonDefault Bundle
	PolygonHover   Bundle
	PointDefault   Bundle
	PointHover     Bundle
}

// DefaultPalette returns the stock campus palette
func DefaultPalette() Palette {
	return Palette{
		Colors: map[geo.Category]string{
			geo.CategoryDining:      "#6A8AEE",
			geo.CategoryResidential: "#FFAC7B",
			geo.CategoryLibraries:   "#EE6AB4",
			geo.CategoryAcademic:    "#98614D",
			geo.CategoryStudentLife: "#47C963",
		},
		PointStroke:    "#FFFFFF",
		Highlight:      "#FF0000",
		SelectedWeight: 4,

		PolygonDefault: Bundle{Weight: 2, Opacity: 0.9, FillOpacity: 0.7},
		PolygonHover:   Bundle{Weight: 5, Opacity: 0.9, FillOpacity: 0.9},
		PointDefault:   Bundle{Weight: 2, Opacity: 1, FillOpacity: 0.9, Radius: 8},
		PointHover:     Bundle{Weight: 2, Opacity: 0.9, FillOpacity: 1, Radius: 10},
	}
}

// layerNames are the layer selector labels
var layerNames = [geo.NumCategories]string{
	geo.CategoryDining:      "Dining Buildings",
	geo.CategoryResidential: "Dormitories",
	geo.CategoryLibraries:   "Libraries",
	geo.CategoryAcademic:    "Classrooms",
	geo.CategoryStudentLife: "Student Life",
}
