// Package state holds the mutable interaction state of a visualization:
// the persistent node selection and the transient highlight.
//
// The two are independent. Neither is ever derived from the other; the
// render loop reads both and decides the visual outcome.
package state

import (
	"maps"
	"slices"
)

// Selection is a set of node indices. The zero value is an empty selection.
type Selection struct {
	set map[int]struct{}
}

// Len returns the number of selected nodes.
func (s *Selection) Len() int { return len(s.set) }

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool { return len(s.set) == 0 }

// Has reports whether node i is selected.
func (s *Selection) Has(i int) bool {
	_, ok := s.set[i]
	return ok
}

// Toggle adds i when absent and removes it when present. It returns true
// when i ends up selected.
func (s *Selection) Toggle(i int) bool {
	if s.Has(i) {
		delete(s.set, i)
		return false
	}
	if s.set == nil {
		s.set = make(map[int]struct{})
	}
	s.set[i] = struct{}{}
	return true
}

// Replace discards the current selection and selects exactly indices.
func (s *Selection) Replace(indices []int) {
	s.set = make(map[int]struct{}, len(indices))
	for _, i := range indices {
		s.set[i] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() { s.set = nil }

// Indices returns the selected indices in ascending order.
func (s *Selection) Indices() []int {
	return slices.Sorted(maps.Keys(s.set))
}

// Highlight is at most one node index. The zero value is no highlight.
type Highlight struct {
	index int
	set   bool
}

// Set highlights node i, replacing any previous highlight.
func (h *Highlight) Set(i int) { h.index, h.set = i, true }

// Clear removes the highlight.
func (h *Highlight) Clear() { h.index, h.set = 0, false }

// Get returns the highlighted index, if any.
func (h Highlight) Get() (int, bool) { return h.index, h.set }

// Active reports whether a node is highlighted.
func (h Highlight) Active() bool { return h.set }

// Is reports whether node i is the highlighted node.
func (h Highlight) Is(i int) bool { return h.set && h.index == i }

// Interaction is the complete interaction state owned by one visualization
// instance and passed by pointer into its event handlers.
type Interaction struct {
	Selection Selection
	Highlight Highlight

	// Modifier is true while the brush modifier key is held.
	Modifier bool
}
