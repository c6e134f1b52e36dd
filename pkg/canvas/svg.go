package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"strings"

	"github.com/matzehuels/netcanvas/pkg/fonts"
)

// SVG is a [Context] that records drawing commands as SVG elements.
// Every Fill and Stroke call emits one <path>, so the document replays the
// frame in paint order.
type SVG struct {
	width, height float64

	body   bytes.Buffer
	path   strings.Builder
	fill   color.NRGBA
	stroke color.NRGBA
	lineW  float64
	join   LineJoin
}

// NewSVG creates an empty width×height vector surface.
func NewSVG(width, height float64) *SVG {
	return &SVG{width: width, height: height, lineW: 1}
}

func (s *SVG) Size() (float64, float64) { return s.width, s.height }

func (s *SVG) Clear() {
	s.body.Reset()
	s.path.Reset()
}

func (s *SVG) SetStrokeColor(c color.NRGBA) { s.stroke = c }
func (s *SVG) SetFillColor(c color.NRGBA)   { s.fill = c }
func (s *SVG) SetLineWidth(w float64)       { s.lineW = w }
func (s *SVG) SetLineJoin(j LineJoin)       { s.join = j }

func (s *SVG) BeginPath() { s.path.Reset() }

func (s *SVG) MoveTo(x, y float64) { fmt.Fprintf(&s.path, "M%.2f %.2f ", x, y) }
func (s *SVG) LineTo(x, y float64) { fmt.Fprintf(&s.path, "L%.2f %.2f ", x, y) }

func (s *SVG) Arc(x, y, r float64) {
	fmt.Fprintf(&s.path, "M%.2f %.2f A%.2f %.2f 0 1 0 %.2f %.2f A%.2f %.2f 0 1 0 %.2f %.2f ",
		x+r, y, r, r, x-r, y, r, r, x+r, y)
}

func (s *SVG) Fill() {
	if s.path.Len() == 0 {
		return
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="%s"/>`+"\n", strings.TrimSpace(s.path.String()), cssColor(s.fill))
}

func (s *SVG) Stroke() {
	if s.path.Len() == 0 {
		return
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linejoin="%s" stroke-linecap="round"/>`+"\n",
		strings.TrimSpace(s.path.String()), cssColor(s.stroke), s.lineW, joinName(s.join))
}

// DrawLabel appends a rounded rect with centered text.
func (s *SVG) DrawLabel(l Label) {
	var text bytes.Buffer
	_ = xml.EscapeText(&text, []byte(l.Text))
	fmt.Fprintf(&s.body, `  <g class="tooltip">`+"\n")
	fmt.Fprintf(&s.body, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s"/>`+"\n",
		l.Left, l.Top, l.Width, l.Height, l.Radius, cssColor(l.Background))
	fmt.Fprintf(&s.body, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" text-anchor="middle" dominant-baseline="central" fill="%s">%s</text>`+"\n",
		l.Left+l.Width/2, l.Top+l.Height/2, fonts.FontFamily, l.FontSize, cssColor(l.Foreground), text.String())
	fmt.Fprintf(&s.body, "  </g>\n")
}

// Bytes returns the complete SVG document for the current frame.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func cssColor(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", c.R, c.G, c.B, float64(c.A)/255)
}

func joinName(j LineJoin) string {
	switch j {
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	}
	return "miter"
}

var (
	_ Context = (*SVG)(nil)
	_ Labeler = (*SVG)(nil)
)
