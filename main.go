package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"campusmap/internal/config"
	"campusmap/internal/geo"
	"campusmap/internal/interact"
	"campusmap/internal/layer"
	"campusmap/internal/metrics"
	"campusmap/internal/search"
	"campusmap/internal/style"
	"campusmap/internal/ui"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "campusmap",
	Short: "Interactive terminal campus map",
	Long: "Draws campus buildings, dining halls, dormitories, libraries, classrooms and student-life sites " +
		"as togglable layers on a terminal map, with hover and click details and search by name.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		applyFlags(cmd, c)
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		// Only the viewer owns the terminal; other commands log to stderr.
		logCfg := cfg.Log
		if cmd != cmd.Root() {
			logCfg.File = ""
		}
		if err := config.InitLogger(logCfg); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "dataset path or http(s) URL (.geojson, .shp, .csv or .zip)")
	rootCmd.PersistentFlags().String("cache-dir", "", "download cache directory (default ~/.campusmap/data)")
	rootCmd.Flags().String("detail", "", "where selection details open: popup or panel")
	rootCmd.Flags().String("match", "", "search matching: exact or fold")
	rootCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address")
	rootCmd.Flags().Float64("zoom", 0, "initial zoom level")

	rootCmd.AddCommand(validateCmd)
}

// applyFlags lays explicitly set flags over the loaded config
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data") {
		c.Data.Source, _ = flags.GetString("data")
	}
	if flags.Changed("cache-dir") {
		c.Data.CacheDir, _ = flags.GetString("cache-dir")
	}
	if flags.Changed("detail") {
		c.Interaction.Detail, _ = flags.GetString("detail")
	}
	if flags.Changed("match") {
		c.Search.Match, _ = flags.GetString("match")
	}
	if flags.Changed("metrics-addr") {
		c.Metrics.Addr, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("zoom") {
		c.View.Zoom, _ = flags.GetFloat64("zoom")
	}
}

// newRegistry builds the style registry from the configured palette
func newRegistry(c *config.Config) (*style.Registry, error) {
	palette, err := c.Style.Palette()
	if err != nil {
		return nil, err
	}
	reg, err := style.NewRegistry(palette)
	if err != nil {
		return nil, eris.Wrap(err, "build style registry")
	}
	return reg, nil
}

func runView(ctx context.Context, c *config.Config) error {
	log := zap.L().With(zap.String("component", "main"))

	reg, err := newRegistry(c)
	if err != nil {
		return err
	}
	detail, _ := interact.ParseDetailMode(c.Interaction.Detail)
	match, _ := search.ParseMatchMode(c.Search.Match)

	var collector *metrics.Collector
	if c.Metrics.Addr != "" {
		collector, err = metrics.NewCollector(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		stop := serveMetrics(c.Metrics.Addr, collector)
		defer stop()
	}

	// A failed load still opens the map, empty, with the error in the status bar.
	var features []*geo.Feature
	store, loadErr := loadDataset(ctx, c)
	if loadErr != nil {
		log.Error("dataset load failed", zap.String("source", c.Data.Source), zap.Error(loadErr))
	} else {
		features = store.Features()
		log.Info("dataset loaded",
			zap.String("source", c.Data.Source),
			zap.Int("features", store.Len()),
			zap.Int("skipped", len(store.Skipped)))
	}
	set := layer.Assign(features, reg)
	collector.ObserveLoad(store, set, loadErr)

	screen, err := tcell.NewScreen()
	if err != nil {
		return eris.Wrap(err, "create screen")
	}
	app, err := ui.NewApp(screen, set, ui.Options{
		Center:       c.View.Center(),
		Zoom:         c.View.Zoom,
		AspectRatio:  c.View.AspectRatio,
		Detail:       detail,
		Match:        match,
		SuggestLimit: c.Search.SuggestLimit,
		ShowLegend:   c.View.Legend,
		LoadErr:      loadErr,
		Metrics:      collector,
	})
	if err != nil {
		return err
	}
	return app.Run()
}

// serveMetrics starts the metrics endpoint and returns a function that
// shuts it down
func serveMetrics(addr string, collector *metrics.Collector) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
