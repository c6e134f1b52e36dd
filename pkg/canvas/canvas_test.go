package canvas

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestRGBA(t *testing.T) {
	c, _ := colorful.Hex("#3c16ce")
	tests := []struct {
		alpha float64
		want  color.NRGBA
	}{
		{1, color.NRGBA{0x3c, 0x16, 0xce, 255}},
		{0.5, color.NRGBA{0x3c, 0x16, 0xce, 128}},
		{0, color.NRGBA{0x3c, 0x16, 0xce, 0}},
		{2, color.NRGBA{0x3c, 0x16, 0xce, 255}},
		{-1, color.NRGBA{0x3c, 0x16, 0xce, 0}},
	}
	for _, tt := range tests {
		if got := RGBA(c, tt.alpha); got != tt.want {
			t.Errorf("RGBA(alpha=%v) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
}

func TestRasterFillAndClear(t *testing.T) {
	r := NewRaster(100, 100)
	r.BeginPath()
	r.Arc(50, 50, 10)
	r.SetFillColor(color.NRGBA{255, 0, 0, 255})
	r.Fill()

	red, _, _, a := r.Image().At(50, 50).RGBA()
	if red>>8 != 255 || a>>8 != 255 {
		t.Errorf("center pixel = (%d, a=%d), want opaque red", red>>8, a>>8)
	}
	if _, _, _, a := r.Image().At(5, 5).RGBA(); a != 0 {
		t.Errorf("corner pixel alpha = %d, want 0", a)
	}

	r.Clear()
	if _, _, _, a := r.Image().At(50, 50).RGBA(); a != 0 {
		t.Errorf("after Clear alpha = %d, want 0", a)
	}

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("EncodePNG should produce a PNG stream")
	}
}

func TestRasterDrawLabel(t *testing.T) {
	r := NewRaster(200, 100)
	r.DrawLabel(Label{
		Text: "id: 3", Left: 50, Top: 20, Width: 100, Height: 24, Radius: 4, FontSize: 12,
		Background: color.NRGBA{0, 0, 0, 166}, Foreground: color.NRGBA{255, 255, 255, 255},
	})
	if _, _, _, a := r.Image().At(55, 25).RGBA(); a == 0 {
		t.Error("label background should be painted")
	}
}

func TestSVG(t *testing.T) {
	s := NewSVG(320, 240)
	s.SetStrokeColor(color.NRGBA{153, 153, 153, 128})
	s.SetLineWidth(2)
	s.SetLineJoin(JoinRound)
	s.BeginPath()
	s.MoveTo(0, 0)
	s.LineTo(10, 10)
	s.Stroke()
	s.DrawLabel(Label{Text: "a<b", Width: 100, Height: 20, FontSize: 12})

	out := string(s.Bytes())
	for _, want := range []string{
		`viewBox="0 0 320.0 240.0"`,
		`d="M0.00 0.00 L10.00 10.00"`,
		`stroke="rgba(153,153,153,0.502)"`,
		`stroke-linejoin="round"`,
		`a&lt;b`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q:\n%s", want, out)
		}
	}

	s.Clear()
	if strings.Contains(string(s.Bytes()), "<path") {
		t.Error("Clear should drop previously drawn paths")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(10, 10)
	r.MoveTo(1, 1)
	r.Clear()

	r.SetFillColor(color.NRGBA{1, 2, 3, 4})
	r.BeginPath()
	r.Arc(5, 5, 2)
	r.Fill()
	r.SetLineWidth(1.1)
	r.Stroke()

	if r.Ops[0].Kind != OpClear {
		t.Fatalf("first op = %s, want clear", r.Ops[0].Kind)
	}
	if n := len(r.Filter(OpMove)); n != 0 {
		t.Errorf("ops before Clear should be discarded, found %d moves", n)
	}
	fills := r.Filter(OpFill)
	if len(fills) != 1 || fills[0].Color != (color.NRGBA{1, 2, 3, 4}) {
		t.Errorf("fills = %+v", fills)
	}
	if strokes := r.Filter(OpStroke); len(strokes) != 1 || strokes[0].Width != 1.1 {
		t.Errorf("strokes = %+v", strokes)
	}

	snap := r.Snapshot()
	if !EqualOps(snap, r.Ops) {
		t.Error("Snapshot should equal the live log")
	}
	snap[2].Args[0] = 99
	if EqualOps(snap, r.Ops) {
		t.Error("Snapshot should be a deep copy")
	}
}
