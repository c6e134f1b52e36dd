// Package network defines the node and link records drawn by netcanvas.
//
// A [Network] is built once from a dataset and never mutated afterwards:
// node indices are positions in [Network.Nodes], links refer to nodes by
// index, and positions are supplied by the caller (no layout is computed).
//
// # Normalization
//
// Datasets arrive in a compact array-of-arrays form ([Raw]). [Format] turns
// them into typed records, resolving per-node colors from the color, group
// or values attributes and falling back to [Styles] for anything missing:
//
//	raw := &network.Raw{
//	    Nodes: [][]float64{{0, 0}, {10, 10}},
//	    Links: [][]float64{{0, 1, 1}},
//	}
//	if err := raw.Validate(); err != nil {
//	    return err
//	}
//	net, err := network.Format(raw, network.DefaultStyles())
//
// A node with an explicit color gets an outline 0.75 steps darker than its
// fill; uncolored nodes use the style's fill and stroke.
package network
