// Package metrics exposes Prometheus counters for dataset loads, map
// interaction and search.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"

	"campusmap/internal/geo"
	"campusmap/internal/interact"
	"campusmap/internal/layer"
)

// Collector bundles the campusmap metrics. A nil *Collector is valid and
// records nothing, so callers never need to check whether metrics are on.
type Collector struct {
	gatherer prometheus.Gatherer

	FeaturesLoaded  prometheus.Gauge
	FeaturesSkipped prometheus.Gauge
	FeaturesDropped prometheus.Gauge
	LoadFailures    prometheus.Counter
	LayerFeatures   *prometheus.GaugeVec
	Events          *prometheus.CounterVec
	Searches        *prometheus.CounterVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// Prometheus registry when nil
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		gatherer: gatherer,
		FeaturesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "campusmap_features_loaded",
			Help: "Valid features in the loaded dataset.",
		}),
		FeaturesSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "campusmap_features_skipped",
			Help: "Records rejected while loading the dataset.",
		}),
		FeaturesDropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "campusmap_features_dropped",
			Help: "Valid features left out of every layer.",
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campusmap_load_failures_total",
			Help: "Dataset loads that failed outright.",
		}),
		LayerFeatures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "campusmap_layer_features",
			Help: "Features per category layer.",
		}, []string{"layer"}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campusmap_events_total",
			Help: "Interaction events dispatched, labeled by kind and outcome.",
		}, []string{"kind", "outcome"}),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campusmap_searches_total",
			Help: "Searches run, labeled by result.",
		}, []string{"result"}),
	}

	for _, col := range []prometheus.Collector{
		c.FeaturesLoaded, c.FeaturesSkipped, c.FeaturesDropped, c.LoadFailures,
		c.LayerFeatures, c.Events, c.Searches,
	} {
		if err := reg.Register(col); err != nil {
			return nil, eris.Wrap(err, "metrics: register collector")
		}
	}
	return c, nil
}

// ObserveLoad records the outcome of loading and assigning a dataset
func (c *Collector) ObserveLoad(store *geo.Store, set *layer.Set, err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.LoadFailures.Inc()
	}
	if store != nil {
		c.FeaturesLoaded.Set(float64(store.Len()))
		c.FeaturesSkipped.Set(float64(len(store.Skipped)))
	}
	if set != nil {
		c.FeaturesDropped.Set(float64(len(set.Dropped)))
		for _, l := range set.Layers() {
			c.LayerFeatures.WithLabelValues(l.Category().String()).Set(float64(l.Len()))
		}
	}
}

// ObserveEvent counts one dispatched interaction event
func (c *Collector) ObserveEvent(kind string, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	switch {
	case eris.Is(err, interact.ErrUnknownFeature):
		outcome = "unknown_feature"
	case err != nil:
		outcome = "error"
	}
	c.Events.WithLabelValues(kind, outcome).Inc()
}

// ObserveSearch counts one search
func (c *Collector) ObserveSearch(found bool) {
	if c == nil {
		return
	}
	result := "miss"
	if found {
		result = "hit"
	}
	c.Searches.WithLabelValues(result).Inc()
}

// Handler exposes a ready-to-use /metrics handler
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
