// Package nodelink exports networks as Graphviz node-link diagrams.
//
// Positions are never laid out here: every node is pinned at its data
// position (pos="x,y!") and rendered with the neato engine, so the diagram
// matches the interactive canvas.
//
//	dot := nodelink.ToDOT(net, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools. In-process rendering uses [github.com/goccy/go-graphviz].
package nodelink
