package render

import (
	"time"

	"github.com/matzehuels/netcanvas/pkg/canvas"
	"github.com/matzehuels/netcanvas/pkg/observability"
	"github.com/matzehuels/netcanvas/pkg/overlay"
)

// Option configures a [Renderer].
type Option func(*Renderer)

// WithPresenter sets the tooltip presenter used for the highlighted node.
func WithPresenter(p overlay.Presenter) Option { return func(r *Renderer) { r.presenter = p } }

// WithTooltips enables or disables tooltip presentation. Enabled by default.
func WithTooltips(on bool) Option { return func(r *Renderer) { r.tooltips = on } }

// Renderer redraws frames onto one surface and shows the tooltip of the
// highlighted node after each draw.
type Renderer struct {
	surface   canvas.Context
	presenter overlay.Presenter
	tooltips  bool
	frames    int
}

// NewRenderer returns a renderer drawing onto surface.
func NewRenderer(surface canvas.Context, opts ...Option) *Renderer {
	r := &Renderer{surface: surface, tooltips: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Surface returns the drawing surface.
func (r *Renderer) Surface() canvas.Context { return r.surface }

// Frames returns the number of frames drawn so far.
func (r *Renderer) Frames() int { return r.frames }

// Render draws f and, when tooltips are enabled and a node is highlighted,
// presents that node's tooltip under the frame's scales.
func (r *Renderer) Render(f Frame) {
	start := time.Now()
	Draw(r.surface, f)
	r.frames++

	var nodes, links int
	if f.Network != nil {
		nodes, links = f.Network.NodeCount(), f.Network.LinkCount()
	}
	observability.Render().OnFrame(nodes, links, time.Since(start))

	if !r.tooltips || r.presenter == nil || f.State == nil || f.Network == nil {
		return
	}
	h, ok := f.State.Highlight.Get()
	if !ok {
		return
	}
	n, ok := f.Network.Node(h)
	if !ok {
		return
	}
	r.presenter.Show(n, f.X, f.Y)
	observability.Render().OnTooltip(h)
}

// Clear erases the surface and removes any tooltip.
func (r *Renderer) Clear() {
	r.surface.Clear()
	if r.presenter != nil {
		r.presenter.Remove()
	}
}
