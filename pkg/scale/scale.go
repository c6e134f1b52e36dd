// Package scale maps data-space node positions to pixel space.
//
// Scales are built once per dataset from padded domains ([ComputeDomains],
// [CreateScales]). Pan and zoom never recompute domains: they are a
// [Transform] that derives a view scale from the base scale.
package scale

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/netcanvas/pkg/network"
)

const (
	// domainGrowth expands each domain by this fraction of its range on both sides.
	domainGrowth = 0.025

	// fallbackPadding is used when no node declares a size.
	fallbackPadding = 8*2 + 10
)

// Extent is a closed numeric interval. Min may exceed Max for inverted ranges.
type Extent struct {
	Min, Max float64
}

// Span returns Max - Min.
func (e Extent) Span() float64 { return e.Max - e.Min }

// Mid returns the midpoint of the interval.
func (e Extent) Mid() float64 { return (e.Min + e.Max) / 2 }

// Domains holds the padded data extents of a network.
type Domains struct {
	X, Y Extent

	// Padding is twice the largest node size, or 26 when no node has a size.
	// It is reported for callers that inset the drawing area; the domains
	// themselves are grown only by the 2.5% margin.
	Padding float64
}

// ComputeDomains returns the data extents of nodes, each grown by 2.5% of
// its range on both sides. An empty node list yields zero-width domains.
func ComputeDomains(nodes []network.Node) Domains {
	if len(nodes) == 0 {
		return Domains{Padding: fallbackPadding}
	}

	xs := make([]float64, len(nodes))
	ys := make([]float64, len(nodes))
	sizes := make([]float64, len(nodes))
	for i, n := range nodes {
		xs[i], ys[i], sizes[i] = n.X, n.Y, n.Size
	}

	d := Domains{
		X:       grow(Extent{floats.Min(xs), floats.Max(xs)}),
		Y:       grow(Extent{floats.Min(ys), floats.Max(ys)}),
		Padding: fallbackPadding,
	}
	if maxSize := floats.Max(sizes); maxSize > 0 {
		d.Padding = maxSize * 2
	}
	return d
}

func grow(e Extent) Extent {
	pad := math.Abs(e.Span()) * domainGrowth
	return Extent{e.Min - pad, e.Max + pad}
}

// Linear is a linear map from a data domain onto a pixel range.
type Linear struct {
	Domain Extent
	Range  Extent
}

// CreateScales returns the x scale onto [0, width] and the y scale onto
// [height, 0]; y is inverted because pixel rows grow downward.
func CreateScales(d Domains, width, height float64) (x, y Linear) {
	x = Linear{Domain: d.X, Range: Extent{0, width}}
	y = Linear{Domain: d.Y, Range: Extent{height, 0}}
	return x, y
}

// Map converts a data value to pixels. A degenerate domain maps every value
// to the midpoint of the range.
func (l Linear) Map(v float64) float64 {
	span := l.Domain.Span()
	if span == 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return l.Range.Mid()
	}
	t := (v - l.Domain.Min) / span
	switch t {
	case 0:
		return l.Range.Min
	case 1:
		return l.Range.Max
	}
	return l.Range.Min + t*l.Range.Span()
}

// Invert converts a pixel value back to data space. A degenerate range
// maps every pixel to the midpoint of the domain.
func (l Linear) Invert(p float64) float64 {
	span := l.Range.Span()
	if span == 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return l.Domain.Mid()
	}
	t := (p - l.Range.Min) / span
	return l.Domain.Min + t*l.Domain.Span()
}
