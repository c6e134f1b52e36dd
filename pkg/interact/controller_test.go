package interact

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/netcanvas/pkg/errors"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/scale"
	"github.com/matzehuels/netcanvas/pkg/state"
)

// pixel scales over a 400x400 surface: pixel = (x, 400-y).
func pixelScales() (scale.Linear, scale.Linear) {
	return scale.Linear{Domain: scale.Extent{Min: 0, Max: 400}, Range: scale.Extent{Min: 0, Max: 400}},
		scale.Linear{Domain: scale.Extent{Min: 0, Max: 400}, Range: scale.Extent{Min: 400, Max: 0}}
}

func grid() *network.Network {
	pos := [][2]float64{{100, 100}, {200, 200}, {300, 300}, {150, 100}}
	net := &network.Network{}
	for i, p := range pos {
		net.Nodes = append(net.Nodes, network.Node{Index: i, X: p[0], Y: p[1], Size: 6})
	}
	net.Links = []network.Link{{Source: 0, Target: 1, Weight: 1}}
	return net
}

type fakePresenter struct{ removes int }

func (p *fakePresenter) Show(network.Node, scale.Linear, scale.Linear) {}
func (p *fakePresenter) Remove()                                       { p.removes++ }

type harness struct {
	ctrl      *Controller
	st        *state.Interaction
	presenter *fakePresenter
	redraws   int
	hovered   []int
}

func newHarness(opts ...Option) *harness {
	h := &harness{st: &state.Interaction{}, presenter: &fakePresenter{}}
	x, y := pixelScales()
	base := []Option{
		WithPresenter(h.presenter),
		WithRedraw(func() { h.redraws++ }),
		WithHover(func(n network.Node) { h.hovered = append(h.hovered, n.Index) }),
	}
	h.ctrl = NewController(h.st, grid(), x, y, append(base, opts...)...)
	return h
}

func (h *harness) send(t *testing.T, events ...Event) {
	t.Helper()
	for _, ev := range events {
		if err := h.ctrl.Handle(ev); err != nil {
			t.Fatalf("Handle(%+v): %v", ev, err)
		}
	}
}

func TestClickHighlightsNode(t *testing.T) {
	h := newHarness()
	h.send(t, Event{Type: Click, X: 201, Y: 199})

	if got, ok := h.st.Highlight.Get(); !ok || got != 1 {
		t.Errorf("highlight = %d,%v, want 1", got, ok)
	}
	if !slices.Equal(h.hovered, []int{1}) {
		t.Errorf("hovered = %v, want [1]", h.hovered)
	}
	if h.redraws != 1 {
		t.Errorf("redraws = %d, want 1", h.redraws)
	}
}

func TestClickMissClears(t *testing.T) {
	h := newHarness()
	h.st.Selection.Replace([]int{0, 2})
	h.st.Highlight.Set(1)

	h.send(t, Event{Type: Click, X: 10, Y: 10})

	if h.st.Highlight.Active() {
		t.Error("miss should clear the highlight")
	}
	if !h.st.Selection.Empty() {
		t.Error("miss should clear the selection")
	}
	if h.presenter.removes != 1 {
		t.Errorf("presenter removes = %d, want 1", h.presenter.removes)
	}
	if len(h.hovered) != 0 {
		t.Errorf("hover notified on miss: %v", h.hovered)
	}
}

func TestPressReleaseIsClick(t *testing.T) {
	h := newHarness()
	h.send(t,
		Event{Type: PointerDown, X: 100, Y: 300},
		Event{Type: PointerUp, X: 100, Y: 300},
	)
	if !h.st.Highlight.Is(0) {
		t.Error("press and release in place should click node 0")
	}
	if h.ctrl.Mode() != Idle {
		t.Errorf("mode = %v, want idle", h.ctrl.Mode())
	}
}

func TestBrushSelectsStrictlyInside(t *testing.T) {
	tests := []struct {
		name       string
		start, end [2]float64
		want       []int
	}{
		// data rectangle (50,50)-(250,250)
		{"covers three", [2]float64{50, 350}, [2]float64{250, 150}, []int{0, 1, 3}},
		// reversed drag gives the same rectangle
		{"reversed", [2]float64{250, 150}, [2]float64{50, 350}, []int{0, 1, 3}},
		// left edge at x=100 excludes node 0 sitting on it
		{"edge excluded", [2]float64{100, 350}, [2]float64{250, 150}, []int{1, 3}},
		{"empty area", [2]float64{350, 390}, [2]float64{390, 350}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.st.Highlight.Set(2)
			h.send(t,
				Event{Type: KeyDown, Shift: true},
				Event{Type: PointerDown, X: tt.start[0], Y: tt.start[1]},
			)
			if h.ctrl.Mode() != Brushing {
				t.Fatalf("mode = %v, want brushing", h.ctrl.Mode())
			}
			if h.st.Highlight.Active() {
				t.Error("brush start should clear the highlight")
			}

			h.send(t, Event{Type: PointerMove, X: tt.end[0], Y: tt.end[1]})
			if h.ctrl.Brush() == nil {
				t.Error("brush rectangle should be visible while dragging")
			}
			h.send(t, Event{Type: PointerUp, X: tt.end[0], Y: tt.end[1]}, Event{Type: KeyUp})

			if got := h.st.Selection.Indices(); !slices.Equal(got, tt.want) {
				t.Errorf("selection = %v, want %v", got, tt.want)
			}
			if h.ctrl.Brush() != nil || h.ctrl.Mode() != Idle {
				t.Error("brush end should clear the rectangle and return to idle")
			}
			if h.st.Modifier {
				t.Error("key up should release the modifier")
			}
		})
	}
}

func TestBrushRecomputedEveryTick(t *testing.T) {
	h := newHarness()
	h.send(t,
		Event{Type: KeyDown, Shift: true},
		Event{Type: PointerDown, X: 50, Y: 350},
		Event{Type: PointerMove, X: 350, Y: 50},
	)
	if got := h.st.Selection.Len(); got != 4 {
		t.Fatalf("selection = %d, want 4", got)
	}
	h.send(t, Event{Type: PointerMove, X: 120, Y: 250})
	if got := h.st.Selection.Indices(); !slices.Equal(got, []int{0}) {
		t.Errorf("selection after shrinking = %v, want [0]", got)
	}
}

func TestToggleTwiceRestoresSelection(t *testing.T) {
	h := newHarness()
	h.st.Selection.Replace([]int{0})

	toggle := Event{Type: Click, X: 200, Y: 200, Shift: true}
	h.send(t, toggle)
	if got := h.st.Selection.Indices(); !slices.Equal(got, []int{0, 1}) {
		t.Fatalf("after first toggle = %v, want [0 1]", got)
	}
	h.send(t, toggle)
	if got := h.st.Selection.Indices(); !slices.Equal(got, []int{0}) {
		t.Errorf("after second toggle = %v, want [0]", got)
	}
}

func TestBrushDisabled(t *testing.T) {
	h := newHarness(WithBrush(false))
	h.send(t,
		Event{Type: KeyDown, Shift: true},
		Event{Type: Click, X: 200, Y: 200, Shift: true},
	)
	if !h.st.Selection.Empty() {
		t.Error("brush disabled should not toggle selection")
	}
	if !h.st.Highlight.Is(1) {
		t.Error("modifier click without brush should behave as a plain click")
	}
}

func TestWheelZoom(t *testing.T) {
	h := newHarness()
	h.send(t, Event{Type: Wheel, X: 200, Y: 200, Delta: -500})

	tr := h.ctrl.Transform()
	if math.Abs(tr.K-2) > 1e-9 || math.Abs(tr.X+200) > 1e-9 || math.Abs(tr.Y+200) > 1e-9 {
		t.Errorf("transform = %+v, want k=2 x=-200 y=-200", tr)
	}

	// node 1 stays under the pointer it was zoomed about
	h.send(t, Event{Type: Click, X: 200, Y: 200})
	if !h.st.Highlight.Is(1) {
		t.Error("node under the zoom center should still be hit")
	}
}

func TestDragPans(t *testing.T) {
	h := newHarness()
	h.send(t,
		Event{Type: PointerDown, X: 10, Y: 10},
		Event{Type: PointerMove, X: 20, Y: 30},
		Event{Type: PointerMove, X: 30, Y: 40},
	)
	if h.ctrl.Mode() != Panning {
		t.Errorf("mode = %v, want panning", h.ctrl.Mode())
	}
	h.send(t, Event{Type: PointerUp, X: 30, Y: 40})

	if tr := h.ctrl.Transform(); tr.X != 20 || tr.Y != 30 || tr.K != 1 {
		t.Errorf("transform = %+v, want pan (20, 30)", tr)
	}
	if h.st.Highlight.Active() || h.redraws != 2 {
		t.Errorf("drag should only pan: highlight=%v redraws=%d", h.st.Highlight.Active(), h.redraws)
	}
}

func TestZoomDisabled(t *testing.T) {
	h := newHarness(WithZoom(false))
	h.send(t,
		Event{Type: Wheel, X: 200, Y: 200, Delta: -500},
		Event{Type: PointerDown, X: 10, Y: 10},
		Event{Type: PointerMove, X: 60, Y: 60},
		Event{Type: PointerUp, X: 60, Y: 60},
	)
	if !h.ctrl.Transform().IsIdentity() {
		t.Errorf("transform = %+v, want identity", h.ctrl.Transform())
	}
	if h.redraws != 0 {
		t.Errorf("redraws = %d, want 0", h.redraws)
	}

	h.send(t, Event{Type: Click, X: 300, Y: 100})
	if !h.st.Highlight.Is(2) {
		t.Error("plain click should still work with zoom disabled")
	}
}

func TestDoubleClickIgnored(t *testing.T) {
	h := newHarness()
	h.send(t, Event{Type: DoubleClick, X: 200, Y: 200})
	if h.redraws != 0 || h.st.Highlight.Active() || !h.ctrl.Transform().IsIdentity() {
		t.Error("double click should not change anything")
	}
}

func TestUnknownEvent(t *testing.T) {
	h := newHarness()
	err := h.ctrl.Handle(Event{Type: "hover"})
	if !errors.Is(err, errors.ErrCodeInvalidEvent) {
		t.Errorf("err = %v, want INVALID_EVENT", err)
	}
}

func TestWheelFactor(t *testing.T) {
	tests := []struct{ delta, want float64 }{
		{0, 1},
		{500, 0.5},
		{-500, 2},
	}
	for _, tt := range tests {
		if got := WheelFactor(tt.delta); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WheelFactor(%v) = %v, want %v", tt.delta, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{Idle: "idle", Panning: "panning", Brushing: "brushing"} {
		if m.String() != want {
			t.Errorf("%d.String() = %q, want %q", m, m.String(), want)
		}
	}
}
