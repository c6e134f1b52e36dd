package viz

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netcanvas/pkg/adjacency"
	"github.com/matzehuels/netcanvas/pkg/canvas"
	"github.com/matzehuels/netcanvas/pkg/errors"
	"github.com/matzehuels/netcanvas/pkg/interact"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/overlay"
	"github.com/matzehuels/netcanvas/pkg/render"
	"github.com/matzehuels/netcanvas/pkg/scale"
	"github.com/matzehuels/netcanvas/pkg/state"
)

// Visualization is the lifecycle of an embedded visualization.
type Visualization interface {
	// Init computes scales and indices and draws the first frame.
	Init() error
	// Render redraws the current state.
	Render()
	// Destroy removes overlays, drops listeners and clears the surface.
	Destroy()
}

// Options toggles the interactive capabilities.
type Options struct {
	Brush    bool `toml:"brush" json:"brush"`
	Tooltips bool `toml:"tooltips" json:"tooltips"`
	Zoom     bool `toml:"zoom" json:"zoom"`
}

// DefaultOptions enables every capability.
func DefaultOptions() Options {
	return Options{Brush: true, Tooltips: true, Zoom: true}
}

// Option configures a [Graph].
type Option func(*Graph)

// WithOptions sets the capability toggles.
func WithOptions(o Options) Option { return func(g *Graph) { g.opts = o } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option { return func(g *Graph) { g.logger = l } }

// WithHitTester replaces the default nearest-point hit test.
func WithHitTester(h interact.HitTester) Option { return func(g *Graph) { g.hit = h } }

// WithPresenter replaces the default tooltip, which draws onto the surface.
func WithPresenter(p overlay.Presenter) Option { return func(g *Graph) { g.presenter = p } }

// WithMargin sets the plot margin of the default tooltip.
func WithMargin(m overlay.Margin) Option { return func(g *Graph) { g.margin = m } }

// Graph is the default [Visualization].
type Graph struct {
	mu sync.Mutex

	net     *network.Network
	surface canvas.Context
	opts    Options
	logger  *log.Logger
	hit     interact.HitTester
	margin  overlay.Margin

	presenter overlay.Presenter
	host      *overlay.Container

	domains      scale.Domains
	baseX, baseY scale.Linear
	index        *adjacency.Index
	state        state.Interaction
	ctrl         *interact.Controller
	renderer     *render.Renderer
	hovers       []func(network.Node)

	ready bool
}

// New returns an uninitialized visualization of net drawing onto surface.
func New(net *network.Network, surface canvas.Context, opts ...Option) *Graph {
	g := &Graph{
		net:     net,
		surface: surface,
		opts:    DefaultOptions(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return g
}

// Init computes domains, scales and the adjacency index, wires the
// controller and draws the first frame.
func (g *Graph) Init() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.net == nil {
		return errors.New(errors.ErrCodeInvalidDataset, "no network")
	}
	if g.surface == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no drawing surface")
	}
	width, height := g.surface.Size()
	if err := errors.ValidateDimensions(width, height); err != nil {
		return err
	}

	g.domains = scale.ComputeDomains(g.net.Nodes)
	g.baseX, g.baseY = scale.CreateScales(g.domains, width, height)
	g.index = adjacency.New(g.net.NodeCount(), g.net.Links)

	if g.presenter == nil {
		g.host = overlay.NewContainer()
		g.presenter = overlay.NewTooltip(g.host, width, height, overlay.WithMargin(g.margin))
	}
	g.renderer = render.NewRenderer(g.surface,
		render.WithPresenter(g.presenter),
		render.WithTooltips(g.opts.Tooltips),
	)

	ctrlOpts := []interact.Option{
		interact.WithPresenter(g.presenter),
		interact.WithRedraw(g.draw),
		interact.WithHover(g.notify),
		interact.WithBrush(g.opts.Brush),
		interact.WithZoom(g.opts.Zoom),
	}
	if g.hit != nil {
		ctrlOpts = append(ctrlOpts, interact.WithHitTester(g.hit))
	}
	g.state = state.Interaction{}
	g.ctrl = interact.NewController(&g.state, g.net, g.baseX, g.baseY, ctrlOpts...)
	g.ready = true

	g.logger.Debug("visualization initialized",
		"nodes", g.net.NodeCount(), "links", g.net.LinkCount(),
		"width", width, "height", height,
		"x", g.domains.X, "y", g.domains.Y)

	g.draw()
	return nil
}

// Render redraws the current state.
func (g *Graph) Render() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.draw()
}

// Handle applies one input event and redraws. Events are serialized, so
// concurrent hosts may call Handle freely.
func (g *Graph) Handle(ev interact.Event) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.ready {
		return errors.New(errors.ErrCodeInvalidInput, "visualization not initialized")
	}
	if err := g.ctrl.Handle(ev); err != nil {
		return err
	}
	g.logger.Debug("event", "type", ev.Type, "x", ev.X, "y", ev.Y, "mode", g.ctrl.Mode())
	return nil
}

// HandleAll applies events in order and stops at the first error.
func (g *Graph) HandleAll(events []interact.Event) error {
	for i, ev := range events {
		if err := g.Handle(ev); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "event %d", i)
		}
	}
	return nil
}

// OnHover registers a listener notified with the node a click highlights.
// Listeners run while the graph is locked and must not call back into it.
func (g *Graph) OnHover(fn func(network.Node)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hovers = append(g.hovers, fn)
}

// SetTransform replaces the zoom transform and redraws.
func (g *Graph) SetTransform(t scale.Transform) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ready {
		g.ctrl.SetTransform(t)
	}
}

// Destroy removes the tooltip, drops hover listeners and clears the surface.
// The graph must be initialized again before further use.
func (g *Graph) Destroy() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.renderer != nil {
		g.renderer.Clear()
	} else if g.surface != nil {
		g.surface.Clear()
	}
	g.hovers = nil
	g.ready = false
}

// Network returns the visualized network.
func (g *Graph) Network() *network.Network {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.net
}

// Surface returns the drawing surface.
func (g *Graph) Surface() canvas.Context {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.surface
}

// Options returns the capability toggles.
func (g *Graph) Options() Options {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.opts
}

// Domains returns the data domains computed by Init.
func (g *Graph) Domains() scale.Domains {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.domains
}

// Scales returns the current view scales.
func (g *Graph) Scales() (x, y scale.Linear) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.ready {
		return g.baseX, g.baseY
	}
	return g.ctrl.Scales()
}

// Overlay returns the default tooltip host, nil when a custom presenter
// was supplied.
func (g *Graph) Overlay() *overlay.Container {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.host
}

// RenderTo draws the current state, tooltip included, onto another
// surface of the same size, such as an SVG recorder for export. It does not
// count as a frame of the visualization.
func (g *Graph) RenderTo(surface canvas.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.ready {
		surface.Clear()
		return
	}
	render.Draw(surface, g.frame())
	if g.host != nil {
		g.host.Paint(surface)
	}
}

func (g *Graph) frame() render.Frame {
	x, y := g.ctrl.Scales()
	return render.Frame{
		Network: g.net,
		Index:   g.index,
		X:       x,
		Y:       y,
		State:   &g.state,
		Brush:   g.ctrl.Brush(),
	}
}

// draw must be called with mu held.
func (g *Graph) draw() {
	if !g.ready {
		return
	}
	g.renderer.Render(g.frame())
	if g.host != nil {
		g.host.Paint(g.surface)
	}
}

func (g *Graph) notify(n network.Node) {
	for _, fn := range g.hovers {
		fn(n)
	}
}

var _ Visualization = (*Graph)(nil)
