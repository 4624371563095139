package search

import (
	"go.uber.org/zap"

	"campusmap/internal/geo"
	"campusmap/internal/interact"
	"campusmap/internal/layer"
)

// Dispatcher receives the selection a successful search produces
type Dispatcher interface {
	Dispatch(ev interact.Event) error
}

// Coordinator turns a free-text query into a recenter plus selection
type Coordinator struct {
	index      *Index
	layers     *layer.Set
	dispatcher Dispatcher
	zoom       float64
	log        *zap.Logger
}

// NewCoordinator indexes the aggregate layer of set. zoom is the level a
// match is shown at, normally the initial view zoom.
func NewCoordinator(set *layer.Set, dispatcher Dispatcher, mode MatchMode, zoom float64) *Coordinator {
	return &Coordinator{
		index:      NewIndex(set.Aggregate().Features(), mode),
		layers:     set,
		dispatcher: dispatcher,
		zoom:       zoom,
		log:        zap.L().With(zap.String("component", "search")),
	}
}

// Search looks up query. On a match the feature's layer is shown if it was
// hidden, the view recenters on the feature and it becomes the selection.
// On no match nothing changes.
func (c *Coordinator) Search(query string) (*geo.Feature, bool) {
	f, ok := c.index.Lookup(query)
	if !ok {
		c.log.Debug("no match", zap.String("query", query))
		return nil, false
	}

	ev := interact.SearchSelect{ID: f.ID, Center: f.Anchor(), Zoom: c.zoom}
	if err := c.dispatcher.Dispatch(ev); err != nil {
		c.log.Warn("search selection rejected", zap.String("feature", string(f.ID)), zap.Error(err))
		return nil, false
	}
	if !c.layers.Visible(f.Category) {
		c.layers.SetVisible(f.Category, true)
	}

	c.log.Debug("match", zap.String("query", query), zap.String("feature", string(f.ID)))
	return f, true
}

// Suggest returns autocomplete candidates for a partial query
func (c *Coordinator) Suggest(prefix string, limit int) []string {
	return c.index.Suggest(prefix, limit)
}
