package render

import (
	"math"

	"github.com/matzehuels/netcanvas/pkg/adjacency"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/state"
)

// Link colors.
var (
	LinkGray   = network.MustColor("#999999")
	LinkAccent = network.MustColor("#3c16ce")
	// HighlightStroke outlines the highlighted node.
	HighlightStroke = network.MustColor("#000000")
)

const (
	alphaFocus     = 0.9
	alphaLinkFaded = 0.05
	alphaNodeFaded = 0.1

	linkDecay    = 0.0005
	linkAlphaMin = 0.5

	denseNodeCount    = 500
	strokeWidthDense  = 1.0
	strokeWidthSparse = 1.1
)

// LinkColor is resolved once per frame: gray when the dataset declared a
// color attribute, accent otherwise.
func LinkColor(colored bool) network.Color {
	if colored {
		return LinkGray
	}
	return LinkAccent
}

// DefaultLinkAlpha is the link opacity with no selection or highlight.
func DefaultLinkAlpha(linkCount int) float64 {
	return math.Max(1-linkDecay*float64(linkCount), linkAlphaMin)
}

// LinkAlpha returns the opacity of l. A non-empty selection takes
// precedence over the highlight.
func LinkAlpha(l network.Link, st *state.Interaction, linkCount int) float64 {
	switch {
	case !st.Selection.Empty():
		if st.Selection.Has(l.Source) && st.Selection.Has(l.Target) {
			return alphaFocus
		}
		return alphaLinkFaded
	case st.Highlight.Active():
		if st.Highlight.Is(l.Source) || st.Highlight.Is(l.Target) {
			return alphaFocus
		}
		return alphaLinkFaded
	default:
		return DefaultLinkAlpha(linkCount)
	}
}

// NodeAlpha returns the opacity of node i. An active highlight overrides the
// selection: nodes adjacent to it in either direction stay opaque.
func NodeAlpha(i int, st *state.Interaction, idx *adjacency.Index) float64 {
	if h, ok := st.Highlight.Get(); ok {
		if idx.Adjacent(h, i) {
			return alphaFocus
		}
		return alphaNodeFaded
	}
	if !st.Selection.Empty() && !st.Selection.Has(i) {
		return alphaNodeFaded
	}
	return alphaFocus
}

// NodeStroke returns the outline color of n.
func NodeStroke(n network.Node, st *state.Interaction) network.Color {
	if st.Highlight.Is(n.Index) {
		return HighlightStroke
	}
	return n.Stroke
}

// StrokeWidth returns the node outline width for a network of nodeCount nodes.
func StrokeWidth(nodeCount int) float64 {
	if nodeCount > denseNodeCount {
		return strokeWidthDense
	}
	return strokeWidthSparse
}
