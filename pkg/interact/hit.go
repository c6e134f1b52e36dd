package interact

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/scale"
)

// DefaultTolerance is the pixel slack NearestPoint adds to a node's radius.
const DefaultTolerance = 2.0

// HitTester finds the node under a pixel position given the current view
// scales. It reports false when no node is close enough.
type HitTester interface {
	Hit(nodes []network.Node, x, y scale.Linear, px, py float64) (int, bool)
}

// HitFunc adapts a function to a HitTester.
type HitFunc func(nodes []network.Node, x, y scale.Linear, px, py float64) (int, bool)

func (f HitFunc) Hit(nodes []network.Node, x, y scale.Linear, px, py float64) (int, bool) {
	return f(nodes, x, y, px, py)
}

// NearestPoint hits the node whose center is closest to the pointer, as
// long as the pointer lies within the node's radius plus Tolerance pixels.
// Equal distances resolve to the lowest index.
type NearestPoint struct {
	Tolerance float64
}

func (h NearestPoint) Hit(nodes []network.Node, x, y scale.Linear, px, py float64) (int, bool) {
	pointer := r2.Vec{X: px, Y: py}
	best, bestDist := -1, 0.0
	for _, n := range nodes {
		center := r2.Vec{X: x.Map(n.X), Y: y.Map(n.Y)}
		d := r2.Norm(r2.Sub(pointer, center))
		if d > n.Size+h.Tolerance {
			continue
		}
		if best < 0 || d < bestDist {
			best, bestDist = n.Index, d
		}
	}
	return best, best >= 0
}
