package interact

import (
	"encoding/json"
	"io"
	"slices"

	"github.com/matzehuels/netcanvas/pkg/errors"
)

// Kind identifies an input event.
type Kind string

const (
	PointerDown Kind = "down"
	PointerMove Kind = "move"
	PointerUp   Kind = "up"
	Click       Kind = "click"
	DoubleClick Kind = "dblclick"
	Wheel       Kind = "wheel"
	KeyDown     Kind = "keydown"
	KeyUp       Kind = "keyup"
)

// Kinds lists every event kind a controller accepts.
var Kinds = []Kind{PointerDown, PointerMove, PointerUp, Click, DoubleClick, Wheel, KeyDown, KeyUp}

// Valid reports whether k is a known event kind.
func (k Kind) Valid() bool {
	return slices.Contains(Kinds, k)
}

// Event is one input event in surface pixel coordinates. Delta is the wheel
// delta; Shift reports the modifier key for key and click events.
type Event struct {
	Type  Kind    `json:"type"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Delta float64 `json:"delta,omitempty"`
	Shift bool    `json:"shift,omitempty"`
}

// ReadScript decodes a JSON array of events.
func ReadScript(r io.Reader) ([]Event, error) {
	var events []Event
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "decode event script")
	}
	for i, ev := range events {
		if !ev.Type.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidEvent, "event %d: unknown type %q", i, ev.Type)
		}
	}
	return events, nil
}

// WriteScript encodes events as an indented JSON array.
func WriteScript(w io.Writer, events []Event) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode event script")
	}
	return nil
}
