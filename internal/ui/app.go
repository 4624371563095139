// Package ui runs the interactive terminal map: the tcell event loop,
// pointer hit testing, the layer selector, the search bar and info views.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"campusmap/internal/geo"
	"campusmap/internal/interact"
	"campusmap/internal/layer"
	"campusmap/internal/metrics"
	"campusmap/internal/render"
	"campusmap/internal/search"
)

const (
	legendWidth = 30
	panStep     = 4
	helpText    = "/ search  1-5 layers  +/- zoom  arrows pan  c center  l legend  q quit"
)

// Options configures the viewer
type Options struct {
	Center       geo.LatLon
	Zoom         float64
	AspectRatio  float64
	Detail       interact.DetailMode
	Match        search.MatchMode
	SuggestLimit int
	ShowLegend   bool
	LoadErr      error // shown in the status bar when the dataset failed to load
	Metrics      *metrics.Collector
}

// App is the main application controller
type App struct {
	screen    tcell.Screen
	layers    *layer.Set
	machine   *interact.Machine
	search    *search.Coordinator
	mapView   *MapView
	layerView *LayerView
	infoView  *InfoView
	searchBar *SearchBar
	metrics   *metrics.Collector
	log       *zap.Logger

	hovered geo.FeatureID
	buttons tcell.ButtonMask
	status  string
	loadErr error
}

// NewApp wires the map, interaction machine and search around screen.
// The screen is initialized here and finalized when Run returns.
func NewApp(screen tcell.Screen, layers *layer.Set, opts Options) (*App, error) {
	if err := screen.Init(); err != nil {
		return nil, eris.Wrap(err, "ui: initialize screen")
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	if opts.SuggestLimit <= 0 {
		opts.SuggestLimit = 5
	}

	width, height := screen.Size()
	mapView := NewMapView(width, height-1, layers, opts.Center, opts.Zoom, opts.AspectRatio)

	a := &App{
		screen:    screen,
		layers:    layers,
		mapView:   mapView,
		layerView: NewLayerView(0, 0, legendWidth),
		infoView:  NewInfoView(),
		metrics:   opts.Metrics,
		loadErr:   opts.LoadErr,
		log:       zap.L().With(zap.String("component", "ui")),
	}
	a.layerView.SetVisible(opts.ShowLegend)
	a.machine = interact.NewMachine(layers, mapView.Surface(), opts.Detail)
	a.search = search.NewCoordinator(layers, a, opts.Match, opts.Zoom)
	a.searchBar = NewSearchBar(a.search.Suggest, opts.SuggestLimit)

	return a, nil
}

// Machine returns the interaction state machine
func (a *App) Machine() *interact.Machine { return a.machine }

// Dispatch applies one interaction event and records it. Unknown feature
// ids are expected after a failed load and are only logged at debug level.
func (a *App) Dispatch(ev interact.Event) error {
	err := a.machine.Dispatch(ev)
	a.metrics.ObserveEvent(ev.Kind(), err)
	switch {
	case eris.Is(err, interact.ErrUnknownFeature):
		a.log.Debug("event for unknown feature", zap.String("event", ev.Kind()), zap.String("feature", string(ev.Target())))
	case err != nil:
		a.log.Warn("event failed", zap.String("event", ev.Kind()), zap.Error(err))
	}
	return err
}

// Run starts the application main loop. It returns when the user quits.
// A panic inside the loop is returned as an error after the terminal is
// restored.
func (a *App) Run() (err error) {
	defer a.cleanup()
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("ui: panic: %v", r)
		}
	}()

	for {
		a.draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.handleEvent(ev) {
			return nil
		}
	}
}

// draw renders one frame
func (a *App) draw() {
	a.screen.Clear()
	a.screen.HideCursor()

	width, height := a.screen.Size()
	mapHeight := height - 1

	a.mapView.Draw(a.screen)
	a.layerView.Draw(a.screen, a.layers)
	a.infoView.Draw(a.screen, a.mapView.Surface().Popups(), a.layers, a.mapView.Projection(), width, mapHeight)

	if a.searchBar.Active() {
		a.searchBar.Draw(a.screen, mapHeight, width)
	} else {
		a.drawStatus(mapHeight, width)
	}

	a.screen.Show()
}

func (a *App) drawStatus(y, width int) {
	style, text := render.StyleStatus, helpText
	switch {
	case a.loadErr != nil:
		style, text = render.StyleError, "Load failed: "+a.loadErr.Error()
	case a.status != "":
		text = a.status
	}
	bar := newRow(width, style)
	bar.DrawTextClipped(0, 0, width, text, style)
	bar.Blit(a.screen, 0, y)
}

// handleEvent processes one terminal event and reports whether to keep running
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		a.handleMouse(ev)

	case *tcell.EventResize:
		a.handleResize()
	}

	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.searchBar.Active() {
		action, query := a.searchBar.HandleKey(ev)
		if action == SearchSubmit {
			a.runSearch(query)
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.mapView.Pan(0, -panStep)
	case tcell.KeyDown:
		a.mapView.Pan(0, panStep)
	case tcell.KeyLeft:
		a.mapView.Pan(-2*panStep, 0)
	case tcell.KeyRight:
		a.mapView.Pan(2*panStep, 0)

	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			return false

		case '/':
			a.status = ""
			a.searchBar.Open()

		case '1', '2', '3', '4', '5':
			a.toggleLayer(geo.Categories()[r-'1'])

		case '+', '=':
			a.mapView.ZoomIn()

		case '-', '_':
			a.mapView.ZoomOut()

		case 'c', 'C':
			a.mapView.Home()

		case 'l', 'L':
			a.layerView.SetVisible(!a.layerView.Visible())

		case 'r', 'R':
			a.screen.Sync()
		}
	}
	return true
}

func (a *App) runSearch(query string) {
	f, ok := a.search.Search(query)
	a.metrics.ObserveSearch(ok)
	if !ok {
		a.status = fmt.Sprintf("No match for %q", query)
		return
	}
	a.status = "Selected " + f.Name
}

func (a *App) toggleLayer(c geo.Category) {
	l, ok := a.layers.Layer(c)
	if !ok {
		return
	}
	shown := a.layers.Toggle(c)
	a.log.Debug("layer toggled", zap.String("layer", l.Name()), zap.Bool("visible", shown))
}

// handleMouse turns pointer motion into enter/leave events and a button 1
// press into a click
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && a.buttons&tcell.Button1 == 0
	a.buttons = buttons

	// Info surfaces draw above the legend, which draws above the map.
	if a.infoView.Contains(x, y) {
		a.pointerOver(nil)
		return
	}
	if c, ok := a.layerView.RowAt(x, y); ok {
		a.pointerOver(nil)
		if pressed {
			a.toggleLayer(c)
		}
		return
	}
	if a.layerView.Contains(x, y) {
		a.pointerOver(nil)
		return
	}

	f, _ := a.mapView.FeatureAt(x, y)
	a.pointerOver(f)
	if pressed && f != nil {
		_ = a.Dispatch(interact.Click{ID: f.ID})
	}
}

// pointerOver moves the pointer onto f, or off every feature when f is nil
func (a *App) pointerOver(f *geo.Feature) {
	var id geo.FeatureID
	if f != nil {
		id = f.ID
	}
	if id == a.hovered {
		return
	}
	if a.hovered != "" {
		_ = a.Dispatch(interact.PointerLeave{ID: a.hovered})
	}
	a.hovered = id
	if id != "" {
		_ = a.Dispatch(interact.PointerEnter{ID: id})
	}
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()
	a.mapView.UpdateDimensions(width, height-1)
	a.layerView.UpdateDimensions(0, 0, min(legendWidth, width))
}

// cleanup restores the terminal
func (a *App) cleanup() {
	if a.screen != nil {
		a.screen.Fini()
	}
}
