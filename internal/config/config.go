// Package config loads campusmap settings from campusmap.yaml and the
// environment, and sets up the global logger.
package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"campusmap/internal/geo"
	"campusmap/internal/interact"
	"campusmap/internal/search"
	"campusmap/internal/style"
)

// Config holds the full application configuration.
type Config struct {
	Data        DataConfig        `yaml:"data" mapstructure:"data"`
	View        ViewConfig        `yaml:"view" mapstructure:"view"`
	Interaction InteractionConfig `yaml:"interaction" mapstructure:"interaction"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	Style       StyleConfig       `yaml:"style" mapstructure:"style"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	Metrics     MetricsConfig     `yaml:"metrics" mapstructure:"metrics"`
}

// DataConfig locates the feature dataset.
type DataConfig struct {
	Source   string `yaml:"source" mapstructure:"source"`       // local path or http(s) URL
	CacheDir string `yaml:"cache_dir" mapstructure:"cache_dir"` // empty uses ~/.campusmap/data
}

// ViewConfig is the initial map view.
type ViewConfig struct {
	CenterLat   float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLon   float64 `yaml:"center_lon" mapstructure:"center_lon"`
	Zoom        float64 `yaml:"zoom" mapstructure:"zoom"`
	AspectRatio float64 `yaml:"aspect_ratio" mapstructure:"aspect_ratio"`
	Legend      bool    `yaml:"legend" mapstructure:"legend"`
}

// Center returns the initial center coordinate
func (v ViewConfig) Center() geo.LatLon {
	return geo.LatLon{Lat: v.CenterLat, Lon: v.CenterLon}
}

// InteractionConfig configures the interaction machine.
type InteractionConfig struct {
	Detail string `yaml:"detail" mapstructure:"detail"` // popup or panel
}

// SearchConfig configures name search.
type SearchConfig struct {
	Match        string `yaml:"match" mapstructure:"match"` // exact or fold
	SuggestLimit int    `yaml:"suggest_limit" mapstructure:"suggest_limit"`
}

// BundleConfig is one numeric style bundle.
type BundleConfig struct {
	Weight      float64 `yaml:"weight" mapstructure:"weight"`
	Opacity     float64 `yaml:"opacity" mapstructure:"opacity"`
	FillOpacity float64 `yaml:"fill_opacity" mapstructure:"fill_opacity"`
	Radius      float64 `yaml:"radius" mapstructure:"radius"`
}

func (b BundleConfig) bundle() style.Bundle {
	return style.Bundle{Weight: b.Weight, Opacity: b.Opacity, FillOpacity: b.FillOpacity, Radius: b.Radius}
}

// StyleConfig overrides the category palette.
type StyleConfig struct {
	Colors         map[string]string `yaml:"colors" mapstructure:"colors"` // category -> hex
	PointStroke    string            `yaml:"point_stroke" mapstructure:"point_stroke"`
	Highlight      string            `yaml:"highlight" mapstructure:"highlight"`
	SelectedWeight float64           `yaml:"selected_weight" mapstructure:"selected_weight"`
	PolygonDefault BundleConfig      `yaml:"polygon_default" mapstructure:"polygon_default"`
	PolygonHover   BundleConfig      `yaml:"polygon_hover" mapstructure:"polygon_hover"`
	PointDefault   BundleConfig      `yaml:"point_default" mapstructure:"point_default"`
	PointHover     BundleConfig      `yaml:"point_hover" mapstructure:"point_hover"`
}

// Palette converts the style settings into a registry palette
func (s StyleConfig) Palette() (style.Palette, error) {
	p := style.Palette{
		Colors:         make(map[geo.Category]string, geo.NumCategories),
		PointStroke:    s.PointStroke,
		Highlight:      s.Highlight,
		SelectedWeight: s.SelectedWeight,
		PolygonDefault: s.PolygonDefault.bundle(),
		PolygonHover:   s.PolygonHover.bundle(),
		PointDefault:   s.PointDefault.bundle(),
		PointHover:     s.PointHover.bundle(),
	}
	for key, hex := range s.Colors {
		c, err := geo.ParseCategory(key)
		if err != nil {
			return style.Palette{}, eris.Wrapf(err, "config: style.colors.%s", key)
		}
		p.Colors[c] = hex
	}
	return p, nil
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"` // empty logs to stderr
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"` // empty disables the endpoint
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("campusmap")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CAMPUSMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.source", "campus.geojson")
	v.SetDefault("data.cache_dir", "")
	v.SetDefault("view.center_lat", 43.7044)
	v.SetDefault("view.center_lon", -72.2887)
	v.SetDefault("view.zoom", 18)
	v.SetDefault("view.aspect_ratio", 2.0)
	v.SetDefault("view.legend", true)
	v.SetDefault("interaction.detail", "popup")
	v.SetDefault("search.match", "exact")
	v.SetDefault("search.suggest_limit", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "campusmap.log")
	v.SetDefault("metrics.addr", "")

	p := style.DefaultPalette()
	for c, hex := range p.Colors {
		v.SetDefault("style.colors."+strings.ReplaceAll(c.String(), "-", "_"), hex)
	}
	v.SetDefault("style.point_stroke", p.PointStroke)
	v.SetDefault("style.highlight", p.Highlight)
	v.SetDefault("style.selected_weight", p.SelectedWeight)
	bundleDefaults(v, "style.polygon_default", p.PolygonDefault)
	bundleDefaults(v, "style.polygon_hover", p.PolygonHover)
	bundleDefaults(v, "style.point_default", p.PointDefault)
	bundleDefaults(v, "style.point_hover", p.PointHover)
}

func bundleDefaults(v *viper.Viper, prefix string, b style.Bundle) {
	v.SetDefault(prefix+".weight", b.Weight)
	v.SetDefault(prefix+".opacity", b.Opacity)
	v.SetDefault(prefix+".fill_opacity", b.FillOpacity)
	v.SetDefault(prefix+".radius", b.Radius)
}

// Validate checks the settings the viewer cannot run without.
func (c *Config) Validate() error {
	var errs []string

	if c.Data.Source == "" {
		errs = append(errs, "data.source is required")
	}
	if c.View.CenterLat < -90 || c.View.CenterLat > 90 {
		errs = append(errs, fmt.Sprintf("view.center_lat %v out of range", c.View.CenterLat))
	}
	if c.View.CenterLon < -180 || c.View.CenterLon > 180 {
		errs = append(errs, fmt.Sprintf("view.center_lon %v out of range", c.View.CenterLon))
	}
	if c.View.Zoom < geo.MinZoom || c.View.Zoom > geo.MaxZoom {
		errs = append(errs, fmt.Sprintf("view.zoom must be between %v and %v", geo.MinZoom, geo.MaxZoom))
	}
	if c.View.AspectRatio < 1.0 || c.View.AspectRatio > 4.0 {
		errs = append(errs, "view.aspect_ratio must be between 1.0 and 4.0")
	}
	if _, err := interact.ParseDetailMode(c.Interaction.Detail); err != nil {
		errs = append(errs, fmt.Sprintf("interaction.detail %q must be popup or panel", c.Interaction.Detail))
	}
	if _, err := search.ParseMatchMode(c.Search.Match); err != nil {
		errs = append(errs, fmt.Sprintf("search.match %q must be exact or fold", c.Search.Match))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	// The viewer owns the terminal, so logs go to a file while it runs.
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	} else {
		zapCfg.OutputPaths = []string{"stderr"}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
