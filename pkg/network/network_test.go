package network

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/matzehuels/netcanvas/pkg/errors"
)

func TestFormatDefaults(t *testing.T) {
	raw := &Raw{
		Nodes: [][]float64{{0, 0}, {10, 10}},
		Links: [][]float64{{0, 1, 4}, {1, 0}},
	}
	net, err := Format(raw, DefaultStyles())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	if net.NodeCount() != 2 || net.LinkCount() != 2 {
		t.Fatalf("got %d nodes, %d links; want 2, 2", net.NodeCount(), net.LinkCount())
	}
	if net.Colored {
		t.Error("dataset without color attributes should not be Colored")
	}

	n := net.Nodes[1]
	if n.Index != 1 || n.X != 10 || n.Y != 10 {
		t.Errorf("node 1 = %+v", n)
	}
	if n.Size != 6 {
		t.Errorf("default size = %v, want 6", n.Size)
	}
	if n.Fill.Hex() != "#68a1e5" {
		t.Errorf("default fill = %s, want #68a1e5", n.Fill.Hex())
	}
	if n.Stroke.Hex() != "#ffffff" {
		t.Errorf("default stroke = %s, want #ffffff", n.Stroke.Hex())
	}
	if n.Label != nil {
		t.Errorf("label = %q, want nil", *n.Label)
	}

	if net.Links[0].Weight != 4 {
		t.Errorf("link 0 weight = %v, want 4", net.Links[0].Weight)
	}
	if net.Links[1].Weight != 1 {
		t.Errorf("link without weight = %v, want 1", net.Links[1].Weight)
	}
}

func TestFormatColors(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		want []string
	}{
		{
			name: "explicit per node",
			raw:  Raw{Nodes: [][]float64{{0, 0}, {1, 1}}, Color: []string{"#ff0000", "#00ff00"}},
			want: []string{"#ff0000", "#00ff00"},
		},
		{
			name: "single color broadcast",
			raw:  Raw{Nodes: [][]float64{{0, 0}, {1, 1}}, Color: []string{"#0000ff"}},
			want: []string{"#0000ff", "#0000ff"},
		},
		{
			name: "groups",
			raw:  Raw{Nodes: [][]float64{{0, 0}, {1, 1}}, Group: []int{0, 11}},
			want: []string{"#1f77b4", "#ff7f0e"},
		},
		{
			name: "values span the ramp",
			raw:  Raw{Nodes: [][]float64{{0, 0}, {1, 1}}, Values: []float64{-3, 7}},
			want: []string{"#fee6ce", "#a63603"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := Format(&tt.raw, DefaultStyles())
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			if !net.Colored {
				t.Error("Colored = false, want true")
			}
			for i, want := range tt.want {
				if got := net.Nodes[i].Fill.Hex(); got != want {
					t.Errorf("node %d fill = %s, want %s", i, got, want)
				}
			}
		})
	}
}

func TestFormatColoredStrokeIsDarker(t *testing.T) {
	raw := &Raw{Nodes: [][]float64{{0, 0}}, Color: []string{"#808080"}}
	net, err := Format(raw, DefaultStyles())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	fill, stroke := net.Nodes[0].Fill, net.Nodes[0].Stroke
	want := fill.R * math.Pow(0.7, 0.75)
	if math.Abs(stroke.R-want) > 1e-9 {
		t.Errorf("stroke R = %v, want %v", stroke.R, want)
	}
}

func TestFormatSizesAndLabels(t *testing.T) {
	raw := &Raw{
		Nodes:  [][]float64{{0, 0}, {1, 1}, {2, 2}},
		Size:   []float64{3, 0},
		Labels: labels("hub", "leaf"),
	}
	net, err := Format(raw, DefaultStyles())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	wantSizes := []float64{3, 6, 6}
	for i, want := range wantSizes {
		if got := net.Nodes[i].Size; got != want {
			t.Errorf("node %d size = %v, want %v", i, got, want)
		}
	}

	wantLabels := []string{"hub", "leaf", "id: 2"}
	for i, want := range wantLabels {
		if got := net.Nodes[i].DisplayLabel(); got != want {
			t.Errorf("node %d label = %q, want %q", i, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     Raw
		wantErr bool
	}{
		{"valid", Raw{Nodes: [][]float64{{0, 0}, {1, 1}}, Links: [][]float64{{0, 1, 2}}}, false},
		{"no links", Raw{Nodes: [][]float64{{0, 0}}}, false},
		{"no nodes", Raw{}, true},
		{"short node", Raw{Nodes: [][]float64{{0}}}, true},
		{"short link", Raw{Nodes: [][]float64{{0, 0}}, Links: [][]float64{{0}}}, true},
		{"target out of range", Raw{Nodes: [][]float64{{0, 0}}, Links: [][]float64{{0, 1}}}, true},
		{"negative index", Raw{Nodes: [][]float64{{0, 0}}, Links: [][]float64{{-1, 0}}}, true},
		{"fractional index", Raw{Nodes: [][]float64{{0, 0}, {1, 1}}, Links: [][]float64{{0.5, 1}}}, true},
		{"negative weight", Raw{Nodes: [][]float64{{0, 0}, {1, 1}}, Links: [][]float64{{0, 1, -2}}}, true},
		{"control char label", Raw{Nodes: [][]float64{{0, 0}}, Labels: labels("a\tb")}, true},
		{"null label", Raw{Nodes: [][]float64{{0, 0}}, Labels: []*string{nil}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.raw.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidDataset) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDataset)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#999", "#999999", false},
		{"#3c16ce", "#3c16ce", false},
		{"white", "#ffffff", false},
		{" Black ", "#000000", false},
		{"chartreuse-ish", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && c.Hex() != tt.want {
				t.Errorf("ParseColor(%q) = %s, want %s", tt.in, c.Hex(), tt.want)
			}
		})
	}
}

func TestNodeJSON(t *testing.T) {
	label := "hub"
	n := Node{Index: 3, X: 1, Y: 2, Size: 6, Fill: MustColor("#68a1e5"), Stroke: MustColor("white"), Label: &label}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Node
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Fill.Hex() != "#68a1e5" || got.Stroke.Hex() != "#ffffff" || got.DisplayLabel() != "hub" {
		t.Errorf("decoded node = %+v", got)
	}
}

func TestNetworkNode(t *testing.T) {
	net := &Network{Nodes: []Node{{Index: 0}, {Index: 1}}}
	if _, ok := net.Node(1); !ok {
		t.Error("Node(1) should exist")
	}
	for _, i := range []int{-1, 2} {
		if _, ok := net.Node(i); ok {
			t.Errorf("Node(%d) should not exist", i)
		}
	}
}

func TestNetworkValidate(t *testing.T) {
	white := MustColor("white")
	valid := func() *Network {
		return &Network{
			Nodes: []Node{{Index: 0, Size: 6, Stroke: white}, {Index: 1, X: 1, Y: 1, Size: 6, Stroke: white}},
			Links: []Link{{Source: 0, Target: 1, Weight: 1}},
		}
	}
	bad := "a\tb"

	tests := []struct {
		name   string
		mutate func(*Network)
	}{
		{"empty", func(n *Network) { n.Nodes = nil }},
		{"index mismatch", func(n *Network) { n.Nodes[1].Index = 5 }},
		{"negative size", func(n *Network) { n.Nodes[0].Size = -1 }},
		{"link out of range", func(n *Network) { n.Links[0].Target = 2 }},
		{"negative weight", func(n *Network) { n.Links[0].Weight = -3 }},
		{"bad label", func(n *Network) { n.Nodes[0].Label = &bad }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid network: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := valid()
			tt.mutate(n)
			if err := n.Validate(); !errors.Is(err, errors.ErrCodeInvalidDataset) {
				t.Errorf("Validate() = %v, want INVALID_DATASET", err)
			}
		})
	}
}

func labels(ss ...string) []*string {
	out := make([]*string, len(ss))
	for i := range ss {
		out[i] = &ss[i]
	}
	return out
}

func TestFormatNullLabelFallsBackToID(t *testing.T) {
	var raw Raw
	if err := json.Unmarshal([]byte(`{"nodes": [[0, 0], [1, 1]], "labels": ["a", null]}`), &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	net, err := Format(&raw, DefaultStyles())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if net.Nodes[1].Label != nil {
		t.Errorf("null label stored as %q, want nil", *net.Nodes[1].Label)
	}
	wantLabels := []string{"a", "id: 1"}
	for i, want := range wantLabels {
		if got := net.Nodes[i].DisplayLabel(); got != want {
			t.Errorf("node %d label = %q, want %q", i, got, want)
		}
	}
}

func TestColoredCountsEmptyAttributes(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{"absent", `{"nodes": [[0, 0]]}`, false},
		{"null", `{"nodes": [[0, 0]], "color": null}`, false},
		{"empty color", `{"nodes": [[0, 0]], "color": []}`, true},
		{"empty group", `{"nodes": [[0, 0]], "group": []}`, true},
		{"empty values", `{"nodes": [[0, 0]], "values": []}`, true},
		{"group", `{"nodes": [[0, 0]], "group": [1]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw Raw
			if err := json.Unmarshal([]byte(tt.data), &raw); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got := raw.Colored(); got != tt.want {
				t.Errorf("Colored() = %v, want %v", got, tt.want)
			}
			net, err := Format(&raw, DefaultStyles())
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			if net.Colored != tt.want {
				t.Errorf("Network.Colored = %v, want %v", net.Colored, tt.want)
			}
			if net.Nodes[0].Fill != DefaultStyles().Color && len(raw.Color)+len(raw.Group)+len(raw.Values) == 0 {
				t.Errorf("empty attribute changed the fill to %s", net.Nodes[0].Fill)
			}
		})
	}
}
