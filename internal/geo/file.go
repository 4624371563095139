package geo

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// LoadFile loads a local dataset, choosing the decoder by file extension
func LoadFile(path string) (*Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return LoadShapefile(path)

	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "geo: open %s", path)
		}
		defer func() { _ = file.Close() }()
		return LoadCSV(file)

	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "geo: read %s", path)
		}
		return Load(raw)
	}
}
