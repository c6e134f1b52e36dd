package scale

import "math"

// Zoom factor limits. They keep the view transform invertible.
const (
	MinZoom = 1.0 / 1000
	MaxZoom = 1000.0
)

// Transform is the pan/zoom view transform shared by both axes: a pixel p
// of the base scale is displayed at p*K + (X, Y).
type Transform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Identity returns the transform that leaves the base scales untouched.
func Identity() Transform { return Transform{K: 1} }

// IsIdentity reports whether t leaves the base scales untouched.
func (t Transform) IsIdentity() bool { return t == Identity() }

// Pan translates the view by (dx, dy) pixels.
func (t Transform) Pan(dx, dy float64) Transform {
	t.X += dx
	t.Y += dy
	return t
}

// ZoomAt multiplies the scale factor by factor while keeping the pixel
// (px, py) fixed on screen.
func (t Transform) ZoomAt(px, py, factor float64) Transform {
	if t.K == 0 {
		t = Identity()
	}
	k := clamp(t.K*factor, MinZoom, MaxZoom)
	if math.IsNaN(k) {
		return t
	}
	ratio := k / t.K
	return Transform{
		K: k,
		X: px - (px-t.X)*ratio,
		Y: py - (py-t.Y)*ratio,
	}
}

// RescaleX returns the view scale for base on the x axis.
func (t Transform) RescaleX(base Linear) Linear {
	return t.rescale(base, t.X)
}

// RescaleY returns the view scale for base on the y axis.
func (t Transform) RescaleY(base Linear) Linear {
	return t.rescale(base, t.Y)
}

// rescale maps the range endpoints back through the transform and the base
// scale, giving the data domain currently visible.
func (t Transform) rescale(base Linear, offset float64) Linear {
	k := t.K
	if k == 0 {
		k = 1
	}
	return Linear{
		Domain: Extent{
			Min: base.Invert((base.Range.Min - offset) / k),
			Max: base.Invert((base.Range.Max - offset) / k),
		},
		Range: base.Range,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
