package interact

import (
	"testing"

	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/scale"
)

func TestNearestPoint(t *testing.T) {
	x, y := pixelScales()
	nodes := []network.Node{
		{Index: 0, X: 100, Y: 100, Size: 6},
		{Index: 1, X: 100, Y: 100, Size: 6},
		{Index: 2, X: 120, Y: 100, Size: 10},
	}
	h := NearestPoint{Tolerance: DefaultTolerance}

	tests := []struct {
		name   string
		px, py float64
		want   int
		hit    bool
	}{
		{"center tie picks lowest", 100, 300, 0, true},
		{"edge of tolerance", 108, 300, 0, true},
		{"nearest wins", 111, 300, 2, true},
		{"large radius", 131, 300, 2, true},
		{"outside", 100, 309, 0, false},
		{"far away", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := h.Hit(nodes, x, y, tt.px, tt.py)
			if ok != tt.hit || (ok && got != tt.want) {
				t.Errorf("Hit(%v, %v) = %d,%v, want %d,%v", tt.px, tt.py, got, ok, tt.want, tt.hit)
			}
		})
	}
}

func TestCustomHitTester(t *testing.T) {
	always := HitFunc(func([]network.Node, scale.Linear, scale.Linear, float64, float64) (int, bool) {
		return 3, true
	})
	h := newHarness(WithHitTester(always))
	h.send(t, Event{Type: Click, X: 0, Y: 0})
	if !h.st.Highlight.Is(3) {
		t.Error("custom hit tester should decide the highlighted node")
	}
}
