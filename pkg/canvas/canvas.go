// Package canvas defines the 2D drawing-context capability the render loop
// draws through, with raster, SVG and recording implementations.
//
// The contract follows the immediate-mode model of an HTML canvas:
// [Context.BeginPath] starts an empty path, path commands accumulate, and
// [Context.Fill] and [Context.Stroke] paint the current path without
// consuming it, so a shape may be filled and then outlined.
//
//	r := canvas.NewRaster(800, 600)
//	render.Draw(r, frame)
//	err := r.EncodePNG(w)
package canvas

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// LineJoin selects how connected stroke segments are joined.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Context is a stateful 2D drawing surface.
type Context interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height float64)
	// Clear erases every pixel of the surface to transparent.
	Clear()

	SetStrokeColor(c color.NRGBA)
	SetFillColor(c color.NRGBA)
	SetLineWidth(w float64)
	SetLineJoin(j LineJoin)

	// BeginPath discards the current path.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc appends a full circle of radius r centered at (x, y).
	Arc(x, y, r float64)

	// Fill paints the interior of the current path with the fill color.
	Fill()
	// Stroke outlines the current path with the stroke color and width.
	Stroke()
}

// Labeler is implemented by surfaces that can draw floating text labels,
// used to composite tooltip overlays onto exported frames.
type Labeler interface {
	DrawLabel(l Label)
}

// Label is a filled, rounded box with centered text. Coordinates are in
// pixels from the top-left corner of the surface.
type Label struct {
	Text          string
	Left, Top     float64
	Width, Height float64
	Radius        float64
	FontSize      float64
	Background    color.NRGBA
	Foreground    color.NRGBA
}

// RGBA combines a color with an alpha in [0, 1] into a non-premultiplied color.
func RGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clampUnit(alpha) * 255))}
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
