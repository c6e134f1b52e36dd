package overlay

import (
	"testing"

	"github.com/matzehuels/netcanvas/pkg/canvas"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/scale"
)

// identity scales: data coordinates are pixels, y grows upward.
func scales(w, h float64) (scale.Linear, scale.Linear) {
	return scale.Linear{Domain: scale.Extent{Min: 0, Max: w}, Range: scale.Extent{Min: 0, Max: w}},
		scale.Linear{Domain: scale.Extent{Min: 0, Max: h}, Range: scale.Extent{Min: h, Max: 0}}
}

func TestTooltipShow(t *testing.T) {
	host := NewContainer()
	tip := NewTooltip(host, 400, 300)
	x, y := scales(400, 300)

	label := "hub"
	n := network.Node{Index: 2, X: 100, Y: 200, Size: 6, Label: &label}
	tip.Show(n, x, y)

	els := host.Elements()
	if len(els) != 1 {
		t.Fatalf("attached %d elements, want 1", len(els))
	}
	e := els[0]
	if e.Text != "hub" {
		t.Errorf("Text = %q, want hub", e.Text)
	}
	if e.Left != 50 {
		t.Errorf("Left = %v, want 50 (x - half width)", e.Left)
	}
	// pixel y of the node is 100; bottom = 300 - 100 + 6 + 5
	if e.Bottom != 211 {
		t.Errorf("Bottom = %v, want 211", e.Bottom)
	}
	if e.Node != 2 {
		t.Errorf("Node = %d, want 2", e.Node)
	}
}

func TestTooltipDefaultLabel(t *testing.T) {
	tip := NewTooltip(NewContainer(), 400, 300)
	x, y := scales(400, 300)
	tip.Build(network.Node{Index: 7, X: 10, Y: 10}, x, y)

	e, ok := tip.Current()
	if !ok {
		t.Fatal("Build should create an element")
	}
	if e.Text != "id: 7" {
		t.Errorf("Text = %q, want %q", e.Text, "id: 7")
	}
}

func TestTooltipOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{"left of plot", -1, 10},
		{"right of plot", 401, 10},
		{"below plot", 10, -5},
		{"above plot", 10, 301},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := NewContainer()
			tip := NewTooltip(host, 400, 300)
			x, y := scales(400, 300)
			tip.Show(network.Node{X: tt.x, Y: tt.y}, x, y)
			if len(host.Elements()) != 0 {
				t.Error("out-of-bounds node should not get a tooltip")
			}
			if _, ok := tip.Current(); ok {
				t.Error("Current should be empty after an out-of-bounds Build")
			}
		})
	}
}

func TestTooltipMargin(t *testing.T) {
	host := NewContainer()
	tip := NewTooltip(host, 400, 300, WithMargin(Margin{Left: 20, Right: 20}))
	x, y := scales(400, 300)

	tip.Show(network.Node{X: 370, Y: 10}, x, y)
	if len(host.Elements()) != 0 {
		t.Error("node beyond width minus margins should be skipped")
	}

	tip.Show(network.Node{X: 100, Y: 10}, x, y)
	if els := host.Elements(); len(els) != 1 || els[0].Left != 70 {
		t.Errorf("elements = %+v, want one at left 70", els)
	}
}

func TestTooltipRepeatedShowReplaces(t *testing.T) {
	host := NewContainer()
	tip := NewTooltip(host, 400, 300)
	x, y := scales(400, 300)

	for i := 0; i < 3; i++ {
		tip.Show(network.Node{Index: i, X: 50, Y: 50}, x, y)
	}
	els := host.Elements()
	if len(els) != 1 || els[0].Node != 2 {
		t.Errorf("elements = %+v, want only the last tooltip", els)
	}
}

func TestTooltipRemoveIdempotent(t *testing.T) {
	host := NewContainer()
	tip := NewTooltip(host, 400, 300)
	x, y := scales(400, 300)

	tip.Remove()
	tip.Show(network.Node{X: 50, Y: 50}, x, y)
	tip.Remove()
	tip.Remove()

	if len(host.Elements()) != 0 {
		t.Error("Remove should detach the tooltip")
	}
}

func TestTooltipRenderWithoutBuild(t *testing.T) {
	host := NewContainer()
	tip := NewTooltip(host, 400, 300)
	tip.Render()
	if len(host.Elements()) != 0 {
		t.Error("Render without Build should attach nothing")
	}
}

func TestContainerPaint(t *testing.T) {
	host := NewContainer()
	tip := NewTooltip(host, 400, 300)
	x, y := scales(400, 300)
	tip.Show(network.Node{Index: 1, X: 100, Y: 200, Size: 6}, x, y)

	rec := canvas.NewRecorder(400, 300)
	rec.Clear()
	host.Paint(rec)

	labels := rec.Filter(canvas.OpLabel)
	if len(labels) != 1 {
		t.Fatalf("painted %d labels, want 1", len(labels))
	}
	e := host.Elements()[0]
	wantTop := 300 - e.Bottom - e.Height
	if got := labels[0].Args[1]; got != wantTop {
		t.Errorf("label top = %v, want %v", got, wantTop)
	}
	if labels[0].Text != "id: 1" {
		t.Errorf("label text = %q", labels[0].Text)
	}
}
