package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmap/internal/geo"
	"campusmap/internal/interact"
	"campusmap/internal/layer"
	"campusmap/internal/style"
)

func TestObserveLoad(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	raw, err := os.ReadFile("../geo/testdata/campus.geojson")
	require.NoError(t, err)
	store, err := geo.Load(raw)
	require.NoError(t, err)
	set := layer.Assign(store.Features(), style.MustDefault())

	c.ObserveLoad(store, set, nil)

	assert.Equal(t, 4.0, testutil.ToFloat64(c.FeaturesLoaded))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.FeaturesSkipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.FeaturesDropped))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.LayerFeatures.WithLabelValues("libraries")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.LayerFeatures.WithLabelValues("academic")))
	assert.Zero(t, testutil.ToFloat64(c.LoadFailures))

	c.ObserveLoad(nil, nil, geo.ErrMalformed)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.LoadFailures))
}

func TestObserveEventOutcomes(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	c.ObserveEvent("click", nil)
	c.ObserveEvent("click", eris.Wrap(interact.ErrUnknownFeature, "click \"x\""))
	c.ObserveEvent("pointer_enter", eris.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Events.WithLabelValues("click", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Events.WithLabelValues("click", "unknown_feature")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Events.WithLabelValues("pointer_enter", "error")))
}

func TestObserveSearch(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	c.ObserveSearch(true)
	c.ObserveSearch(false)
	c.ObserveSearch(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Searches.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Searches.WithLabelValues("miss")))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveLoad(nil, nil, geo.ErrMalformed)
		c.ObserveEvent("click", nil)
		c.ObserveSearch(true)
	})
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)
	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestHandlerExposesMetrics(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	c.ObserveSearch(true)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `campusmap_searches_total{result="hit"} 1`)
	assert.Contains(t, string(body), "campusmap_features_loaded 0")
}
