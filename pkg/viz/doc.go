// Package viz assembles a network visualization from its parts.
//
// [Graph] is the composition root: it computes the base scales and the
// adjacency index once in [Graph.Init], owns the interaction state, and
// wires an [interact.Controller], a [render.Renderer] and an
// [overlay.Presenter] together. Every event passed to [Graph.Handle] is
// applied under a lock and redrawn before Handle returns.
//
//	g := viz.New(net, canvas.NewRaster(800, 600))
//	if err := g.Init(); err != nil {
//	    return err
//	}
//	g.OnHover(func(n network.Node) { fmt.Println(n.DisplayLabel()) })
//	_ = g.Handle(interact.Event{Type: interact.Click, X: 120, Y: 80})
//
// [interact.Controller]: github.com/matzehuels/netcanvas/pkg/interact
// [render.Renderer]: github.com/matzehuels/netcanvas/pkg/render
// [overlay.Presenter]: github.com/matzehuels/netcanvas/pkg/overlay
package viz
