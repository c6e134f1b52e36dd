// Package adjacency indexes which node pairs are directly linked.
package adjacency

import "github.com/matzehuels/netcanvas/pkg/network"

type pair struct{ a, b int }

// Index is a directed neighbor set built once from a link list. Every node
// is its own neighbor.
type Index struct {
	pairs map[pair]struct{}
}

// New builds the index for nodeCount nodes and links in O(N+E).
func New(nodeCount int, links []network.Link) *Index {
	idx := &Index{pairs: make(map[pair]struct{}, nodeCount+len(links))}
	for i := 0; i < nodeCount; i++ {
		idx.pairs[pair{i, i}] = struct{}{}
	}
	for _, l := range links {
		idx.pairs[pair{l.Source, l.Target}] = struct{}{}
	}
	return idx
}

// Neighboring reports whether (a, b) is a self pair or a link from a to b.
// The relation is directional; check both orders for an undirected test.
func (idx *Index) Neighboring(a, b int) bool {
	if idx == nil {
		return a == b
	}
	_, ok := idx.pairs[pair{a, b}]
	return ok
}

// Adjacent reports whether a and b are neighbors in either direction.
func (idx *Index) Adjacent(a, b int) bool {
	return idx.Neighboring(a, b) || idx.Neighboring(b, a)
}

// Len returns the number of distinct pairs in the index.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.pairs)
}
