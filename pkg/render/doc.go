// Package render draws network frames onto a [canvas.Context].
//
// # Overview
//
// [Draw] is a pure function of a [Frame]: it clears the surface, strokes
// every link with its arrowhead, then fills and outlines every node. Visual
// style is resolved per frame from the interaction state:
//
//   - [LinkColor] picks neutral gray for colored datasets, accent otherwise
//   - [LinkAlpha] and [NodeAlpha] fade whatever is not selected or adjacent
//     to the highlighted node
//   - [StrokeWidth] thins node outlines for dense networks
//
// [Renderer] wraps Draw with tooltip presentation and render hooks and is
// what a visualization calls on every redraw:
//
//	r := render.NewRenderer(surface, render.WithPresenter(tooltip))
//	r.Render(frame)
//
// # Node-Link Export
//
// The [nodelink] subpackage renders the same network through Graphviz with
// node positions pinned, for static DOT and SVG exports.
//
// [nodelink]: github.com/matzehuels/netcanvas/pkg/render/nodelink
package render
