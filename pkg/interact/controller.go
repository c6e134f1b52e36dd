package interact

import (
	"math"

	"github.com/matzehuels/netcanvas/pkg/errors"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/observability"
	"github.com/matzehuels/netcanvas/pkg/overlay"
	"github.com/matzehuels/netcanvas/pkg/render"
	"github.com/matzehuels/netcanvas/pkg/scale"
	"github.com/matzehuels/netcanvas/pkg/state"
)

// Mode is the gesture currently in progress.
type Mode int

const (
	Idle Mode = iota
	Panning
	Brushing
)

func (m Mode) String() string {
	switch m {
	case Panning:
		return "panning"
	case Brushing:
		return "brushing"
	default:
		return "idle"
	}
}

// wheelStep converts wheel delta units into a base-2 zoom exponent.
const wheelStep = 0.002

// WheelFactor returns the zoom factor applied for a wheel delta. Positive
// deltas (scrolling down) zoom out.
func WheelFactor(delta float64) float64 {
	return math.Pow(2, -delta*wheelStep)
}

// Option configures a [Controller].
type Option func(*Controller)

// WithHitTester replaces the default NearestPoint hit test.
func WithHitTester(h HitTester) Option { return func(c *Controller) { c.hit = h } }

// WithPresenter sets the overlay presenter removed on misses and brushes.
func WithPresenter(p overlay.Presenter) Option { return func(c *Controller) { c.presenter = p } }

// WithRedraw sets the callback invoked after every state change.
func WithRedraw(fn func()) Option { return func(c *Controller) { c.redraw = fn } }

// WithHover sets the callback notified with the node a click landed on.
func WithHover(fn func(network.Node)) Option { return func(c *Controller) { c.hover = fn } }

// WithBrush enables or disables modifier-key brushing. Enabled by default.
func WithBrush(on bool) Option { return func(c *Controller) { c.brushing = on } }

// WithZoom enables or disables wheel zoom and drag panning. Enabled by default.
func WithZoom(on bool) Option { return func(c *Controller) { c.zooming = on } }

// Controller applies input events to an interaction state.
type Controller struct {
	state        *state.Interaction
	net          *network.Network
	baseX, baseY scale.Linear
	transform    scale.Transform

	hit       HitTester
	presenter overlay.Presenter
	redraw    func()
	hover     func(network.Node)
	brushing  bool
	zooming   bool

	mode         Mode
	down         bool
	moved        bool
	lastX, lastY float64
	anchorX      float64
	anchorY      float64
	brush        *render.Rect
}

// NewController returns a controller mutating st for net, with x and y the
// base scales computed at setup.
func NewController(st *state.Interaction, net *network.Network, x, y scale.Linear, opts ...Option) *Controller {
	c := &Controller{
		state:     st,
		net:       net,
		baseX:     x,
		baseY:     y,
		transform: scale.Identity(),
		hit:       NearestPoint{Tolerance: DefaultTolerance},
		brushing:  true,
		zooming:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns the gesture in progress.
func (c *Controller) Mode() Mode { return c.mode }

// Transform returns the current zoom transform.
func (c *Controller) Transform() scale.Transform { return c.transform }

// SetTransform replaces the zoom transform and redraws.
func (c *Controller) SetTransform(t scale.Transform) {
	c.transform = t
	c.changed()
}

// Scales returns the view scales: the base scales under the zoom transform.
func (c *Controller) Scales() (x, y scale.Linear) {
	return c.transform.RescaleX(c.baseX), c.transform.RescaleY(c.baseY)
}

// Brush returns the visual brush rectangle, nil outside a brush gesture.
func (c *Controller) Brush() *render.Rect {
	if c.brush == nil {
		return nil
	}
	r := *c.brush
	return &r
}

// Handle applies ev and redraws. Unknown event kinds are rejected without
// touching the state.
func (c *Controller) Handle(ev Event) error {
	if !ev.Type.Valid() {
		return errors.New(errors.ErrCodeInvalidEvent, "unknown event type %q", ev.Type)
	}
	observability.Interaction().OnEvent(string(ev.Type))

	switch ev.Type {
	case KeyDown:
		if ev.Shift {
			c.state.Modifier = true
		}
	case KeyUp:
		c.state.Modifier = false
	case PointerDown:
		c.pointerDown(ev.X, ev.Y)
	case PointerMove:
		c.pointerMove(ev.X, ev.Y)
	case PointerUp:
		c.pointerUp(ev.X, ev.Y)
	case Click:
		if c.brushing && (ev.Shift || c.state.Modifier) {
			c.brushStart(ev.X, ev.Y)
			c.brushEnd()
		} else {
			c.click(ev.X, ev.Y)
		}
	case Wheel:
		c.wheel(ev.X, ev.Y, ev.Delta)
	case DoubleClick:
		// Double-click zoom is not supported.
	}
	return nil
}

func (c *Controller) pointerDown(px, py float64) {
	c.down, c.moved = true, false
	c.lastX, c.lastY = px, py

	switch {
	case c.brushing && c.state.Modifier:
		c.brushStart(px, py)
	case c.zooming:
		c.mode = Panning
	}
}

func (c *Controller) pointerMove(px, py float64) {
	if !c.down {
		return
	}
	dx, dy := px-c.lastX, py-c.lastY
	c.lastX, c.lastY = px, py
	if dx != 0 || dy != 0 {
		c.moved = true
	}

	switch c.mode {
	case Panning:
		c.transform = c.transform.Pan(dx, dy)
		observability.Interaction().OnZoom(c.transform.K)
		c.changed()
	case Brushing:
		c.brushMove(px, py)
	}
}

func (c *Controller) pointerUp(px, py float64) {
	if !c.down {
		return
	}
	c.down = false

	switch c.mode {
	case Brushing:
		c.brushEnd()
		return
	case Panning:
		c.mode = Idle
	}
	if !c.moved {
		c.click(px, py)
	}
}

// click highlights the node under the pointer, or clears highlight and
// selection when there is none.
func (c *Controller) click(px, py float64) {
	x, y := c.Scales()
	if i, ok := c.hit.Hit(c.net.Nodes, x, y, px, py); ok {
		c.state.Highlight.Set(i)
		observability.Interaction().OnHover(i)
		if c.hover != nil {
			if n, ok := c.net.Node(i); ok {
				c.hover(n)
			}
		}
	} else {
		c.state.Highlight.Clear()
		c.state.Selection.Clear()
		c.removeOverlay()
		observability.Interaction().OnSelection(0)
	}
	c.changed()
}

func (c *Controller) wheel(px, py, delta float64) {
	if !c.zooming {
		return
	}
	c.transform = c.transform.ZoomAt(px, py, WheelFactor(delta))
	observability.Interaction().OnZoom(c.transform.K)
	c.changed()
}

// brushStart clears the highlight and toggles the node under the pointer.
func (c *Controller) brushStart(px, py float64) {
	c.mode = Brushing
	c.anchorX, c.anchorY = px, py
	c.brush = &render.Rect{X0: px, Y0: py, X1: px, Y1: py}

	c.state.Highlight.Clear()
	c.removeOverlay()

	x, y := c.Scales()
	if i, ok := c.hit.Hit(c.net.Nodes, x, y, px, py); ok {
		c.state.Selection.Toggle(i)
		observability.Interaction().OnSelection(c.state.Selection.Len())
	}
	c.changed()
}

// brushMove replaces the selection with the nodes strictly inside the
// rectangle spanned by the anchor and the pointer.
func (c *Controller) brushMove(px, py float64) {
	c.brush = &render.Rect{X0: c.anchorX, Y0: c.anchorY, X1: px, Y1: py}
	if c.anchorX == px || c.anchorY == py {
		c.changed()
		return
	}

	x, y := c.Scales()
	x0, x1 := ordered(x.Invert(c.anchorX), x.Invert(px))
	y0, y1 := ordered(y.Invert(c.anchorY), y.Invert(py))
	c.state.Selection.Replace(Within(c.net.Nodes, x0, y0, x1, y1))
	observability.Interaction().OnSelection(c.state.Selection.Len())
	c.changed()
}

func (c *Controller) brushEnd() {
	c.mode = Idle
	c.brush = nil
	c.changed()
}

func (c *Controller) removeOverlay() {
	if c.presenter != nil {
		c.presenter.Remove()
	}
}

func (c *Controller) changed() {
	if c.redraw != nil {
		c.redraw()
	}
}

// Within returns the indices of nodes strictly inside the data-space
// rectangle x0 < x < x1, y0 < y < y1.
func Within(nodes []network.Node, x0, y0, x1, y1 float64) []int {
	var out []int
	for _, n := range nodes {
		if x0 < n.X && n.X < x1 && y0 < n.Y && n.Y < y1 {
			out = append(out, n.Index)
		}
	}
	return out
}

func ordered(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}
