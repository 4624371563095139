// Package cache resolves a dataset source to a local file, downloading and
// unpacking remote bundles into a cache directory.
package cache

import (
	"archive/zip"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrNoDataset is returned when a downloaded bundle holds no loadable file
var ErrNoDataset = eris.New("cache: bundle contains no dataset file")

// datasetExts are the extensions a bundle is searched for, in preference order
var datasetExts = []string{".geojson", ".json", ".shp", ".csv"}

// Manager handles downloading and caching campus datasets
type Manager struct {
	cacheDir string
	client   *http.Client
	log      *zap.Logger
}

// NewManager creates a new cache manager
// If cacheDir is empty, uses ~/.campusmap/data
func NewManager(cacheDir string) (*Manager, error) {
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, eris.Wrap(err, "cache: home directory")
		}
		cacheDir = filepath.Join(home, ".campusmap", "data")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, eris.Wrapf(err, "cache: create %s", cacheDir)
	}

	return &Manager{
		cacheDir: cacheDir,
		client:   &http.Client{},
		log:      zap.L().With(zap.String("component", "cache")),
	}, nil
}

// IsRemote reports whether source is an http(s) URL
func IsRemote(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Resolve returns a local path for source. Local paths are returned as is
// once they are known to exist. URLs are downloaded into the cache on first
// use; zip bundles are extracted and the dataset file inside is returned.
func (m *Manager) Resolve(ctx context.Context, source string) (string, error) {
	if !IsRemote(source) {
		if _, err := os.Stat(source); err != nil {
			return "", eris.Wrapf(err, "cache: open %s", source)
		}
		return source, nil
	}

	name, err := cacheName(source)
	if err != nil {
		return "", err
	}
	target := filepath.Join(m.cacheDir, name)

	if strings.EqualFold(filepath.Ext(name), ".zip") {
		dir := strings.TrimSuffix(target, filepath.Ext(target))
		if found, err := findDataset(dir); err == nil {
			return found, nil
		}
		if err := m.download(ctx, source, target); err != nil {
			return "", err
		}
		defer os.Remove(target)
		if err := extractZip(target, dir); err != nil {
			// A partial extraction must not be mistaken for a cache hit later.
			_ = os.RemoveAll(dir)
			return "", eris.Wrapf(err, "cache: extract %s", name)
		}
		return findDataset(dir)
	}

	if _, err := os.Stat(target); err == nil {
		m.log.Debug("cache hit", zap.String("path", target))
		return target, nil
	}
	if err := m.download(ctx, source, target); err != nil {
		return "", err
	}
	return target, nil
}

// cacheName derives the cached file name from the last path element of a URL
func cacheName(source string) (string, error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", eris.Wrapf(err, "cache: parse %s", source)
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return "", eris.Errorf("cache: %s names no file", source)
	}
	return base, nil
}

// download fetches url into dest, writing through a temp file so an
// interrupted download never looks like a cache hit
func (m *Manager) download(ctx context.Context, source, dest string) error {
	m.log.Info("downloading dataset", zap.String("url", source))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return eris.Wrap(err, "cache: create request")
	}
	req.Header.Set("User-Agent", "campusmap/1.0")

	resp, err := m.client.Do(req)
	if err != nil {
		return eris.Wrapf(err, "cache: download %s", source)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("cache: download %s: status %s", source, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return eris.Wrap(err, "cache: create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return eris.Wrap(err, "cache: save download")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "cache: save download")
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return eris.Wrap(err, "cache: move download")
	}

	m.log.Info("dataset cached", zap.String("path", dest))
	return nil
}

// extractZip flattens every regular file of the archive into destDir
func extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		rc, err := f.Open()
		if err != nil {
			return err
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

// findDataset returns the preferred dataset file in dir
func findDataset(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", eris.Wrapf(err, "cache: read %s", dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, ext := range datasetExts {
		for _, name := range names {
			if strings.EqualFold(filepath.Ext(name), ext) {
				return filepath.Join(dir, name), nil
			}
		}
	}
	return "", eris.Wrapf(ErrNoDataset, "in %s", dir)
}

// CacheDir returns the cache directory
func (m *Manager) CacheDir() string {
	return m.cacheDir
}
