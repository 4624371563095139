package geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
)

// LoadCSV loads point features from a CSV with a header row.
// Required columns: name, category, latitude, longitude.
// Optional columns: description, image, link.
func LoadCSV(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrapf(ErrMalformed, "read csv header: %v", err)
	}

	colIndices := make(map[string]int)
	for i, col := range header {
		colIndices[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"name", "category", "latitude", "longitude"} {
		if _, ok := colIndices[col]; !ok {
			return nil, eris.Wrapf(ErrMalformed, "missing required column: %s", col)
		}
	}

	var records []Record
	for index := 0; ; index++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			records = append(records, Record{Index: index, Reject: fmt.Sprintf("read row: %v", err)})
			continue
		}

		cell := func(col string) string {
			i, ok := colIndices[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		props := make(map[string]any)
		for _, col := range []string{"name", "category", "description", "image", "link"} {
			if v := cell(col); v != "" {
				props[col] = v
			}
		}
		rec := Record{Index: index, Properties: props}

		lat, latErr := strconv.ParseFloat(cell("latitude"), 64)
		lon, lonErr := strconv.ParseFloat(cell("longitude"), 64)
		if latErr != nil || lonErr != nil {
			rec.Reject = "invalid coordinates"
		} else {
			rec.Geometry = orb.Point{lon, lat}
		}

		records = append(records, rec)
	}

	return Build(records), nil
}
