// Package overlay presents a floating label for the highlighted node.
//
// The render loop only talks to a [Presenter]; where the label ends up is
// decided by the [Host] the presenter attaches elements to. [Container] is
// the in-process host used for exported frames: it remembers attached
// elements and paints them on top of a finished frame.
package overlay

import (
	"image/color"
	"slices"

	"github.com/matzehuels/netcanvas/pkg/canvas"
	"github.com/matzehuels/netcanvas/pkg/fonts"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/scale"
)

// Presenter shows and hides the tooltip of a node.
type Presenter interface {
	// Show builds the tooltip for n under the current view scales and
	// attaches it. Calling Show repeatedly replaces the previous tooltip.
	Show(n network.Node, x, y scale.Linear)
	// Remove detaches the current tooltip. It is safe to call when none exists.
	Remove()
}

// Host is the container tooltips are attached to.
type Host interface {
	Attach(e *Element)
	Detach(e *Element)
}

// Element is a positioned tooltip. Left and Bottom are pixel offsets from
// the left and bottom edges of the host, matching the inverted y axis.
type Element struct {
	Text   string
	Left   float64
	Bottom float64
	Width  float64
	Height float64
	Node   int
}

// Tooltip appearance.
var (
	tooltipBackground = color.NRGBA{0, 0, 0, 166}
	tooltipForeground = color.NRGBA{255, 255, 255, 255}
)

const (
	tooltipWidth    = 100
	tooltipPadding  = 5
	tooltipRadius   = 4
	tooltipGap      = 5
	tooltipFontSize = fonts.DefaultSize
)

// Label converts e into a drawable box for a host of the given height.
func (e *Element) Label(hostHeight float64) canvas.Label {
	return canvas.Label{
		Text:       e.Text,
		Left:       e.Left,
		Top:        hostHeight - e.Bottom - e.Height,
		Width:      e.Width,
		Height:     e.Height,
		Radius:     tooltipRadius,
		FontSize:   tooltipFontSize,
		Background: tooltipBackground,
		Foreground: tooltipForeground,
	}
}

// Margin is the inset of the plot area inside the host.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Tooltip is the default [Presenter].
type Tooltip struct {
	host          Host
	width, height float64
	margin        Margin

	el       *Element
	attached bool
}

// Option configures a Tooltip.
type Option func(*Tooltip)

// WithMargin sets the plot margin. The default is zero on all sides.
func WithMargin(m Margin) Option { return func(t *Tooltip) { t.margin = m } }

// NewTooltip creates a presenter for a width×height plot attached to host.
func NewTooltip(host Host, width, height float64, opts ...Option) *Tooltip {
	t := &Tooltip{host: host, width: width, height: height}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Build replaces the current tooltip with one for n. Nodes positioned
// outside the visible plot get no tooltip.
func (t *Tooltip) Build(n network.Node, x, y scale.Linear) {
	t.Remove()

	cx, cy := x.Map(n.X), y.Map(n.Y)
	if cx < 0 || cx > t.width-t.margin.Left-t.margin.Right {
		return
	}
	if cy < 0 || cy > t.height-t.margin.Top-t.margin.Bottom {
		return
	}

	t.el = &Element{
		Text:   n.DisplayLabel(),
		Left:   cx + t.margin.Left - tooltipWidth/2,
		Bottom: t.height - cy + n.Size + tooltipGap,
		Width:  tooltipWidth,
		Height: tooltipFontSize*1.2 + 2*tooltipPadding,
		Node:   n.Index,
	}
}

// Render attaches the built tooltip to the host if it is not attached yet.
func (t *Tooltip) Render() {
	if t.el == nil || t.attached || t.host == nil {
		return
	}
	t.host.Attach(t.el)
	t.attached = true
}

// Show is Build followed by Render.
func (t *Tooltip) Show(n network.Node, x, y scale.Linear) {
	t.Build(n, x, y)
	t.Render()
}

// Remove detaches and forgets the current tooltip.
func (t *Tooltip) Remove() {
	if t.el == nil {
		return
	}
	if t.attached && t.host != nil {
		t.host.Detach(t.el)
	}
	t.el, t.attached = nil, false
}

// Current returns the built tooltip, if any.
func (t *Tooltip) Current() (*Element, bool) {
	return t.el, t.el != nil
}

// Container is an in-memory [Host].
type Container struct {
	elements []*Element
}

// NewContainer returns an empty host.
func NewContainer() *Container { return &Container{} }

// Attach adds e unless it is already attached.
func (c *Container) Attach(e *Element) {
	if !slices.Contains(c.elements, e) {
		c.elements = append(c.elements, e)
	}
}

// Detach removes e if attached.
func (c *Container) Detach(e *Element) {
	c.elements = slices.DeleteFunc(c.elements, func(x *Element) bool { return x == e })
}

// Elements returns the attached elements in attachment order.
func (c *Container) Elements() []*Element {
	return slices.Clone(c.elements)
}

// Paint draws every attached element onto ctx when it supports labels.
func (c *Container) Paint(ctx canvas.Context) {
	l, ok := ctx.(canvas.Labeler)
	if !ok {
		return
	}
	_, h := ctx.Size()
	for _, e := range c.elements {
		l.DrawLabel(e.Label(h))
	}
}

var (
	_ Presenter = (*Tooltip)(nil)
	_ Host      = (*Container)(nil)
)
