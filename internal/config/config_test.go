package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campusmap/internal/geo"
	"campusmap/internal/style"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "campus.geojson", cfg.Data.Source)
	assert.InDelta(t, 43.7044, cfg.View.CenterLat, 1e-9)
	assert.InDelta(t, -72.2887, cfg.View.CenterLon, 1e-9)
	assert.Equal(t, 18.0, cfg.View.Zoom)
	assert.Equal(t, 2.0, cfg.View.AspectRatio)
	assert.True(t, cfg.View.Legend)
	assert.Equal(t, "popup", cfg.Interaction.Detail)
	assert.Equal(t, "exact", cfg.Search.Match)
	assert.Equal(t, 5, cfg.Search.SuggestLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "campusmap.log", cfg.Log.File)
	assert.Empty(t, cfg.Metrics.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultPaletteRoundTrips(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	p, err := cfg.Style.Palette()
	require.NoError(t, err)
	assert.Equal(t, style.DefaultPalette(), p)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
data:
  source: https://example.edu/campus.zip
view:
  zoom: 17
interaction:
  detail: panel
search:
  match: fold
style:
  colors:
    dining: "#112233"
  point_hover:
    radius: 12
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campusmap.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.edu/campus.zip", cfg.Data.Source)
	assert.Equal(t, 17.0, cfg.View.Zoom)
	assert.Equal(t, "panel", cfg.Interaction.Detail)
	assert.Equal(t, "fold", cfg.Search.Match)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, 2.0, cfg.View.AspectRatio)

	p, err := cfg.Style.Palette()
	require.NoError(t, err)
	assert.Equal(t, "#112233", p.Colors[geo.CategoryDining])
	assert.Equal(t, "#47C963", p.Colors[geo.CategoryStudentLife])
	assert.Equal(t, 12.0, p.PointHover.Radius)
	assert.Equal(t, 1.0, p.PointHover.FillOpacity)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
data:
  source: campus.shp
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campusmap.yaml"), []byte(yaml), 0644))

	t.Setenv("CAMPUSMAP_DATA_SOURCE", "campus.csv")
	t.Setenv("CAMPUSMAP_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "campus.csv", cfg.Data.Source)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadBadYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campusmap.yaml"), []byte("view: [unclosed"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestPaletteUnknownCategory(t *testing.T) {
	s := StyleConfig{Colors: map[string]string{"parking": "#000000"}}
	_, err := s.Palette()
	assert.Error(t, err)
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Data.Source = "campus.geojson"
	cfg.View.CenterLat = 43.7044
	cfg.View.CenterLon = -72.2887
	cfg.View.Zoom = 18
	cfg.View.AspectRatio = 2
	cfg.Interaction.Detail = "popup"
	cfg.Search.Match = "exact"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"no source", func(c *Config) { c.Data.Source = "" }, "data.source is required"},
		{"zoom too far out", func(c *Config) { c.View.Zoom = 3 }, "view.zoom"},
		{"aspect ratio", func(c *Config) { c.View.AspectRatio = 5 }, "view.aspect_ratio"},
		{"latitude", func(c *Config) { c.View.CenterLat = 91 }, "view.center_lat"},
		{"detail mode", func(c *Config) { c.Interaction.Detail = "sidebar" }, "interaction.detail"},
		{"match mode", func(c *Config) { c.Search.Match = "fuzzy" }, "search.match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campusmap.log")
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json", File: path}))

	zap.L().Info("hello")
	_ = zap.L().Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
