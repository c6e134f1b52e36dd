package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/netcanvas/pkg/adjacency"
	"github.com/matzehuels/netcanvas/pkg/canvas"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/scale"
	"github.com/matzehuels/netcanvas/pkg/state"
)

// Arrowhead geometry in pixels.
const (
	ArrowLength    = 20
	ArrowTipOffset = 6
	ArrowWing      = math.Pi / 12
)

// Brush outline appearance.
var (
	brushFill   = network.MustColor("#777777")
	brushStroke = network.MustColor("#ffffff")
)

const (
	brushFillAlpha = 0.3
	brushWidth     = 1
)

// Frame is everything a single draw reads. X and Y are the current view
// scales, already rescaled by any zoom transform.
type Frame struct {
	Network *network.Network
	Index   *adjacency.Index
	X, Y    scale.Linear
	State   *state.Interaction

	// Brush is the visual brush rectangle in pixels, nil when no brush
	// gesture is in progress.
	Brush *Rect
}

// Rect is an axis-aligned pixel rectangle with corners in any order.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Draw clears ctx and paints f: links first, then nodes, then the brush
// rectangle. It reads f and never mutates it.
func Draw(ctx canvas.Context, f Frame) {
	ctx.Clear()
	if f.Network == nil {
		return
	}
	st := f.State
	if st == nil {
		st = &state.Interaction{}
	}

	linkColor := LinkColor(f.Network.Colored).Color
	drawLinks(ctx, f, st, linkColor)
	drawNodes(ctx, f, st, linkColor)

	if f.Brush != nil {
		drawBrush(ctx, *f.Brush)
	}
}

func drawLinks(ctx canvas.Context, f Frame, st *state.Interaction, c colorful.Color) {
	count := len(f.Network.Links)
	for _, l := range f.Network.Links {
		src, okS := f.Network.Node(l.Source)
		dst, okT := f.Network.Node(l.Target)
		if !okS || !okT {
			continue
		}
		alpha := LinkAlpha(l, st, count)
		col := canvas.RGBA(c, alpha)

		from := r2.Vec{X: f.X.Map(src.X), Y: f.Y.Map(src.Y)}
		to := r2.Vec{X: f.X.Map(dst.X), Y: f.Y.Map(dst.Y)}

		ctx.SetStrokeColor(col)
		ctx.SetFillColor(col)
		ctx.SetLineWidth(math.Sqrt(l.Weight))
		ctx.SetLineJoin(canvas.JoinRound)
		ctx.BeginPath()
		ctx.MoveTo(from.X, from.Y)
		ctx.LineTo(to.X, to.Y)

		tip, left, right := Arrowhead(from, to)
		ctx.MoveTo(tip.X, tip.Y)
		ctx.LineTo(left.X, left.Y)
		ctx.LineTo(right.X, right.Y)
		ctx.LineTo(tip.X, tip.Y)
		ctx.Fill()
		ctx.Stroke()
	}
}

func drawNodes(ctx canvas.Context, f Frame, st *state.Interaction, c colorful.Color) {
	width := StrokeWidth(len(f.Network.Nodes))
	for _, n := range f.Network.Nodes {
		alpha := NodeAlpha(n.Index, st, f.Index)

		ctx.BeginPath()
		ctx.Arc(f.X.Map(n.X), f.Y.Map(n.Y), n.Size)
		// Nodes are filled with the link color, not their own fill.
		ctx.SetFillColor(canvas.RGBA(c, alpha))
		ctx.SetLineWidth(width)
		ctx.SetStrokeColor(canvas.RGBA(NodeStroke(n, st).Color, alpha))
		ctx.Fill()
		ctx.Stroke()
	}
}

func drawBrush(ctx canvas.Context, r Rect) {
	ctx.SetFillColor(canvas.RGBA(brushFill.Color, brushFillAlpha))
	ctx.SetStrokeColor(canvas.RGBA(brushStroke.Color, 1))
	ctx.SetLineWidth(brushWidth)
	ctx.SetLineJoin(canvas.JoinMiter)
	ctx.BeginPath()
	ctx.MoveTo(r.X0, r.Y0)
	ctx.LineTo(r.X1, r.Y0)
	ctx.LineTo(r.X1, r.Y1)
	ctx.LineTo(r.X0, r.Y1)
	ctx.LineTo(r.X0, r.Y0)
	ctx.Fill()
	ctx.Stroke()
}

// Arrowhead returns the three corners of the filled head of a link drawn
// from one pixel position to another: the tip, set back ArrowTipOffset from
// the target, and the two wings ArrowLength back at ±ArrowWing.
func Arrowhead(from, to r2.Vec) (tip, left, right r2.Vec) {
	dir := r2.Sub(to, from)
	if r2.Norm(dir) == 0 {
		dir = r2.Vec{X: 1}
	} else {
		dir = r2.Unit(dir)
	}
	origin := r2.Vec{}
	tip = r2.Sub(to, r2.Scale(ArrowTipOffset, dir))
	left = r2.Sub(to, r2.Scale(ArrowLength, r2.Rotate(dir, -ArrowWing, origin)))
	right = r2.Sub(to, r2.Scale(ArrowLength, r2.Rotate(dir, ArrowWing, origin)))
	return tip, left, right
}
