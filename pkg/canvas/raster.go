package canvas

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/netcanvas/pkg/fonts"
)

// Raster is a [Context] backed by an in-memory RGBA image.
type Raster struct {
	dc *gg.Context
}

// NewRaster creates a transparent width×height raster surface.
func NewRaster(width, height int) *Raster {
	dc := gg.NewContext(width, height)
	dc.SetLineCapRound()
	return &Raster{dc: dc}
}

func (r *Raster) Size() (float64, float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

func (r *Raster) Clear() {
	r.dc.Push()
	r.dc.SetColor(color.Transparent)
	r.dc.Clear()
	r.dc.Pop()
}

func (r *Raster) SetStrokeColor(c color.NRGBA) { r.dc.SetStrokeStyle(gg.NewSolidPattern(c)) }
func (r *Raster) SetFillColor(c color.NRGBA)   { r.dc.SetFillStyle(gg.NewSolidPattern(c)) }
func (r *Raster) SetLineWidth(w float64)       { r.dc.SetLineWidth(w) }

func (r *Raster) SetLineJoin(j LineJoin) {
	switch j {
	case JoinRound:
		r.dc.SetLineJoinRound()
	default:
		r.dc.SetLineJoinBevel()
	}
}

func (r *Raster) BeginPath()          { r.dc.ClearPath() }
func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }
func (r *Raster) Arc(x, y, rad float64) {
	r.dc.NewSubPath()
	r.dc.DrawArc(x, y, rad, 0, 2*math.Pi)
}
func (r *Raster) Fill()   { r.dc.FillPreserve() }
func (r *Raster) Stroke() { r.dc.StrokePreserve() }

// DrawLabel paints l over the current contents.
func (r *Raster) DrawLabel(l Label) {
	r.dc.Push()
	defer r.dc.Pop()

	r.dc.ClearPath()
	r.dc.SetColor(l.Background)
	r.dc.DrawRoundedRectangle(l.Left, l.Top, l.Width, l.Height, l.Radius)
	r.dc.Fill()

	if face, err := fonts.Face(l.FontSize); err == nil {
		r.dc.SetFontFace(face)
	}
	r.dc.SetColor(l.Foreground)
	r.dc.DrawStringAnchored(l.Text, l.Left+l.Width/2, l.Top+l.Height/2, 0.5, 0.35)
}

// Image returns the rendered image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the surface as a PNG image.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

var (
	_ Context = (*Raster)(nil)
	_ Labeler = (*Raster)(nil)
)
