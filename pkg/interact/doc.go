// Package interact turns pointer, wheel and key events into changes of a
// visualization's interaction state.
//
// A [Controller] owns the zoom transform and a small state machine with
// three modes: [Idle], [Panning] and [Brushing]. Every event is handled to
// completion and ends with a synchronous redraw, so the surface always
// reflects the latest state before the next event is accepted.
//
// Clicks hit-test through a [HitTester]; [NearestPoint] is the default.
// Brushing is only available while the modifier key is held: a brush
// gesture toggles the node under the pointer, then replaces the selection
// with the nodes strictly inside the dragged rectangle.
//
// Recorded sessions can be replayed from JSON with [ReadScript]:
//
//	events, err := interact.ReadScript(f)
//	for _, ev := range events {
//	    if err := ctrl.Handle(ev); err != nil { ... }
//	}
package interact
