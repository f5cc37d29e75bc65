package model

import "fmt"

// PointerKind names the pointer events a drawing surface forwards.
type PointerKind string

// Pointer event kinds. Leave behaves like Up: it ends the active stroke.
const (
	PointerDown  PointerKind = "down"
	PointerMove  PointerKind = "move"
	PointerUp    PointerKind = "up"
	PointerLeave PointerKind = "leave"
	PointerReset PointerKind = "reset"
)

// PointerEvent is one input sample as delivered by the presentation layer,
// already translated into surface-local coordinates.
type PointerEvent struct {
	Type PointerKind `json:"type" yaml:"type"`
	X    float64     `json:"x,omitempty" yaml:"x,omitempty"`
	Y    float64     `json:"y,omitempty" yaml:"y,omitempty"`
}

// Point returns the event position.
func (e PointerEvent) Point() Point {
	return Point{X: e.X, Y: e.Y}
}

// Validate checks the event kind and, for positional events, the coordinates.
func (e PointerEvent) Validate() error {
	switch e.Type {
	case PointerDown, PointerMove:
		if !e.Point().Finite() {
			return fmt.Errorf("%s event has non-finite coordinates", e.Type)
		}
		return nil
	case PointerUp, PointerLeave, PointerReset:
		return nil
	default:
		return fmt.Errorf("unknown pointer event type %q", e.Type)
	}
}
