package geo

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// dBase field names are capped at 10 characters, so "description" usually
// arrives truncated.
var shapefileAttributes = map[string][]string{
	"name":        {"name"},
	"category":    {"category", "categ"},
	"description": {"description", "descriptio", "desc"},
	"image":       {"image", "img"},
	"link":        {"link", "url"},
}

// LoadShapefile reads a .shp/.dbf pair into a Store. Points map to Point
// features, polygons to Polygon features; polylines load with an
// unsupported geometry kind and are dropped at layer assignment.
func LoadShapefile(path string) (*Store, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fieldIdx := make(map[string]int)
	for i, field := range reader.Fields() {
		name := strings.TrimRight(string(field.Name[:]), "\x00 ")
		fieldIdx[strings.ToLower(name)] = i
	}

	columns := make(map[string]int)
	for attr, aliases := range shapefileAttributes {
		for _, alias := range aliases {
			if idx, ok := fieldIdx[alias]; ok {
				columns[attr] = idx
				break
			}
		}
	}
	for _, required := range []string{"name", "category"} {
		if _, ok := columns[required]; !ok {
			return nil, eris.Wrapf(ErrMalformed, "shapefile %s has no %s field", path, required)
		}
	}

	var records []Record
	for reader.Next() {
		n, shape := reader.Shape()

		props := make(map[string]any, len(columns))
		for attr, idx := range columns {
			val := strings.TrimSpace(strings.TrimRight(reader.ReadAttribute(n, idx), "\x00"))
			if val != "" {
				props[attr] = val
			}
		}

		records = append(records, Record{Index: n, Properties: props, Geometry: shapeGeometry(shape)})
	}

	zap.L().Debug("shapefile read",
		zap.String("component", "geo.shapefile"),
		zap.String("path", path),
		zap.Int("records", len(records)))

	return Build(records), nil
}

// shapeGeometry converts a go-shp shape into an orb geometry.
// Returns nil for empty or unknown shapes.
func shapeGeometry(shape shp.Shape) orb.Geometry {
	switch s := shape.(type) {
	case *shp.Point:
		return orb.Point{s.X, s.Y}

	case *shp.Polygon:
		rings := splitParts(s.Parts, s.Points)
		if len(rings) == 0 {
			return nil
		}
		poly := make(orb.Polygon, 0, len(rings))
		for _, r := range rings {
			poly = append(poly, orb.Ring(r))
		}
		return poly

	case *shp.PolyLine:
		lines := splitParts(s.Parts, s.Points)
		if len(lines) == 0 {
			return nil
		}
		mls := make(orb.MultiLineString, 0, len(lines))
		for _, l := range lines {
			mls = append(mls, orb.LineString(l))
		}
		return mls
	}
	return nil
}

// splitParts slices a flat shapefile point array into its parts
func splitParts(parts []int32, points []shp.Point) [][]orb.Point {
	var out [][]orb.Point
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start >= end || int(end) > len(points) {
			continue
		}
		part := make([]orb.Point, 0, end-start)
		for _, p := range points[start:end] {
			part = append(part, orb.Point{p.X, p.Y})
		}
		if len(part) > 1 {
			out = append(out, part)
		}
	}
	return out
}
