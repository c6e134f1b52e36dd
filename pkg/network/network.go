package network

import (
	"fmt"
	"math"

	"github.com/matzehuels/netcanvas/pkg/errors"
)

// Node is a positioned vertex of the network.
//
// Index is the node's position in [Network.Nodes] and never changes after
// construction; selection, highlight and adjacency all refer to nodes by it.
type Node struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   float64 `json:"size"`
	Fill   Color   `json:"fill"`
	Stroke Color   `json:"stroke"`
	Label  *string `json:"label,omitempty"`
}

// DisplayLabel returns the explicit label when present, otherwise "id: {index}".
func (n Node) DisplayLabel() string {
	if n.Label != nil {
		return *n.Label
	}
	return fmt.Sprintf("id: %d", n.Index)
}

// Link is a directed, weighted edge between two node indices.
type Link struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

// Network is the normalized dataset handed to the visualization.
type Network struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`

	// Colored is set when the source dataset declared a per-node color,
	// group or value attribute. It switches links to neutral gray.
	Colored bool `json:"colored,omitempty"`
}

// Node returns the node at index i.
func (n *Network) Node(i int) (Node, bool) {
	if i < 0 || i >= len(n.Nodes) {
		return Node{}, false
	}
	return n.Nodes[i], true
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.Nodes) }

// LinkCount returns the number of links.
func (n *Network) LinkCount() int { return len(n.Links) }

// Validate checks a normalized network: indices match positions, positions
// are finite and every link references existing nodes.
func (n *Network) Validate() error {
	if len(n.Nodes) == 0 {
		return errors.New(errors.ErrCodeInvalidDataset, "network has no nodes")
	}
	for i, nd := range n.Nodes {
		if nd.Index != i {
			return errors.New(errors.ErrCodeInvalidDataset, "node %d: index %d does not match position", i, nd.Index)
		}
		if !finite(nd.X) || !finite(nd.Y) || !finite(nd.Size) || nd.Size < 0 {
			return errors.New(errors.ErrCodeInvalidDataset, "node %d: invalid position or size", i)
		}
		if nd.Label != nil {
			if err := errors.ValidateLabel(*nd.Label); err != nil {
				return err
			}
		}
	}
	for i, l := range n.Links {
		if l.Source < 0 || l.Source >= len(n.Nodes) || l.Target < 0 || l.Target >= len(n.Nodes) {
			return errors.New(errors.ErrCodeInvalidDataset, "link %d: %d -> %d out of range [0, %d)", i, l.Source, l.Target, len(n.Nodes))
		}
		if !finite(l.Weight) || l.Weight < 0 {
			return errors.New(errors.ErrCodeInvalidDataset, "link %d: invalid weight %v", i, l.Weight)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
