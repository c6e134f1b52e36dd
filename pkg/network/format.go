package network

import (
	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/netcanvas/pkg/errors"
)

// Styles holds the fallback appearance for nodes that carry no explicit
// color or size.
type Styles struct {
	Color  Color   `json:"color" toml:"color"`
	Stroke Color   `json:"stroke" toml:"stroke"`
	Size   float64 `json:"size" toml:"size" validate:"gt=0"`
}

// DefaultStyles returns the stock node appearance.
func DefaultStyles() Styles {
	return Styles{
		Color:  MustColor("#68a1e5"),
		Stroke: MustColor("white"),
		Size:   6,
	}
}

// strokeDarken is how much darker than its fill a colored node's outline is.
const strokeDarken = 0.75

// Categorical colors for the group attribute.
var groupPalette = []Color{
	MustColor("#1f77b4"), MustColor("#ff7f0e"), MustColor("#2ca02c"),
	MustColor("#d62728"), MustColor("#9467bd"), MustColor("#8c564b"),
	MustColor("#e377c2"), MustColor("#7f7f7f"), MustColor("#bcbd22"),
	MustColor("#17becf"),
}

// Endpoints of the sequential ramp used for the values attribute.
var (
	valueLow  = MustColor("#fee6ce")
	valueHigh = MustColor("#a63603")
)

// Raw is the array-of-arrays dataset accepted on input.
//
//	{
//	  "nodes": [[0, 0], [10, 10]],
//	  "links": [[0, 1, 1]],
//	  "labels": ["a", "b"]
//	}
//
// Per-node attributes (color, group, values, size, labels) apply
// element-wise; a single-element color or size applies to every node. A
// null label leaves the node unlabeled.
type Raw struct {
	Nodes  [][]float64 `json:"nodes"`
	Links  [][]float64 `json:"links"`
	Color  []string    `json:"color,omitempty"`
	Group  []int       `json:"group,omitempty"`
	Values []float64   `json:"values,omitempty"`
	Size   []float64   `json:"size,omitempty"`
	Labels []*string   `json:"labels,omitempty"`
}

// Colored reports whether the dataset declares any per-node color
// attribute. A present but empty attribute array still counts.
func (r *Raw) Colored() bool {
	return r.Color != nil || r.Group != nil || r.Values != nil
}

// Validate checks the structural preconditions of the dataset: every node
// has at least two coordinates and every link references existing nodes.
func (r *Raw) Validate() error {
	if len(r.Nodes) == 0 {
		return errors.New(errors.ErrCodeInvalidDataset, "dataset has no nodes")
	}
	for i, n := range r.Nodes {
		if len(n) < 2 {
			return errors.New(errors.ErrCodeInvalidDataset, "node %d: expected [x, y], got %d values", i, len(n))
		}
	}
	for i, l := range r.Links {
		if len(l) < 2 {
			return errors.New(errors.ErrCodeInvalidDataset, "link %d: expected [source, target, weight], got %d values", i, len(l))
		}
		for _, end := range l[:2] {
			if end != float64(int(end)) || int(end) < 0 || int(end) >= len(r.Nodes) {
				return errors.New(errors.ErrCodeInvalidDataset, "link %d: node index %v out of range [0, %d)", i, end, len(r.Nodes))
			}
		}
		if len(l) > 2 && l[2] < 0 {
			return errors.New(errors.ErrCodeInvalidDataset, "link %d: negative weight %v", i, l[2])
		}
	}
	for _, label := range r.Labels {
		if label == nil {
			continue
		}
		if err := errors.ValidateLabel(*label); err != nil {
			return err
		}
	}
	return nil
}

// Format normalizes raw into typed node and link records, filling missing
// attributes from styles. Call [Raw.Validate] first; Format assumes valid input.
func Format(r *Raw, styles Styles) (*Network, error) {
	colors, err := r.nodeColors()
	if err != nil {
		return nil, err
	}

	net := &Network{
		Nodes:   make([]Node, len(r.Nodes)),
		Links:   make([]Link, len(r.Links)),
		Colored: r.Colored(),
	}

	for i, p := range r.Nodes {
		n := Node{Index: i, X: p[0], Y: p[1], Fill: styles.Color, Stroke: styles.Stroke, Size: styles.Size}
		if c, ok := pick(colors, i); ok {
			n.Fill = c
			n.Stroke = c.Darker(strokeDarken)
		}
		if s, ok := pick(r.Size, i); ok && s > 0 {
			n.Size = s
		}
		if i < len(r.Labels) && r.Labels[i] != nil {
			label := *r.Labels[i]
			n.Label = &label
		}
		net.Nodes[i] = n
	}

	for i, l := range r.Links {
		link := Link{Source: int(l[0]), Target: int(l[1]), Weight: 1}
		if len(l) > 2 {
			link.Weight = l[2]
		}
		net.Links[i] = link
	}

	return net, nil
}

// nodeColors resolves the per-node color list; color wins over group,
// group wins over values.
func (r *Raw) nodeColors() ([]Color, error) {
	switch {
	case len(r.Color) > 0:
		out := make([]Color, len(r.Color))
		for i, s := range r.Color {
			c, err := ParseColor(s)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case len(r.Group) > 0:
		out := make([]Color, len(r.Group))
		for i, g := range r.Group {
			if g < 0 {
				g = -g
			}
			out[i] = groupPalette[g%len(groupPalette)]
		}
		return out, nil
	case len(r.Values) > 0:
		lo, hi := floats.Min(r.Values), floats.Max(r.Values)
		out := make([]Color, len(r.Values))
		for i, v := range r.Values {
			t := 0.5
			if hi > lo {
				t = (v - lo) / (hi - lo)
			}
			out[i] = Color{valueLow.BlendLab(valueHigh.Color, t).Clamped()}
		}
		return out, nil
	}
	return nil, nil
}

// pick returns the element for node i: element-wise when the list has
// several entries, broadcast when it has exactly one.
func pick[T any](list []T, i int) (T, bool) {
	var zero T
	switch {
	case len(list) == 1:
		return list[0], true
	case i < len(list):
		return list[i], true
	}
	return zero, false
}
