package viz

import "github.com/matzehuels/netcanvas/pkg/scale"

// State is a serializable snapshot of a visualization's interaction state.
type State struct {
	Selection []int           `json:"selection"`
	Highlight *int            `json:"highlight"`
	Modifier  bool            `json:"modifier"`
	Mode      string          `json:"mode"`
	Transform scale.Transform `json:"transform"`
	Frames    int             `json:"frames"`
}

// Snapshot returns the current interaction state. The selection is sorted.
func (g *Graph) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := State{
		Selection: g.state.Selection.Indices(),
		Modifier:  g.state.Modifier,
		Mode:      "idle",
		Transform: scale.Identity(),
	}
	if s.Selection == nil {
		s.Selection = []int{}
	}
	if h, ok := g.state.Highlight.Get(); ok {
		s.Highlight = &h
	}
	if g.ready {
		s.Mode = g.ctrl.Mode().String()
		s.Transform = g.ctrl.Transform()
		s.Frames = g.renderer.Frames()
	}
	return s
}
