package thumbstick

import (
	"fmt"
	"strings"
)

// Vec2 is a 2D vector used for positions and offsets throughout the API.
// The coordinate system has its origin at the top-left, with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// MotionConstraint restricts which axis contributes to a drag and to the slop test.
type MotionConstraint uint8

const (
	ConstraintNone       MotionConstraint = iota // both axes move the stick
	ConstraintHorizontal                         // only X moves the stick
	ConstraintVertical                           // only Y moves the stick
)

// String returns the lower-case name used in config files.
func (m MotionConstraint) String() string {
	switch m {
	case ConstraintNone:
		return "none"
	case ConstraintHorizontal:
		return "horizontal"
	case ConstraintVertical:
		return "vertical"
	default:
		return fmt.Sprintf("MotionConstraint(%d)", uint8(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m MotionConstraint) MarshalText() ([]byte, error) {
	if m > ConstraintVertical {
		return nil, fmt.Errorf("motion constraint %d: %w", uint8(m), ErrInvalidConfig)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are case-insensitive.
func (m *MotionConstraint) UnmarshalText(text []byte) error {
	c, err := ParseMotionConstraint(string(text))
	if err != nil {
		return err
	}
	*m = c
	return nil
}

// ParseMotionConstraint converts "none", "horizontal" or "vertical" to a MotionConstraint.
func ParseMotionConstraint(s string) (MotionConstraint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ConstraintNone, nil
	case "horizontal":
		return ConstraintHorizontal, nil
	case "vertical":
		return ConstraintVertical, nil
	}
	return ConstraintNone, fmt.Errorf("motion constraint %q: %w", s, ErrInvalidConfig)
}

// OutputMode selects how drag output is reported to the listener.
type OutputMode uint8

const (
	// OutputPolar reports (angle in degrees, normalized offset in [0, 1]).
	OutputPolar OutputMode = iota
	// OutputRect reports independent per-axis offsets in [-1, 1].
	OutputRect
)

// String returns the lower-case name used in config files.
func (o OutputMode) String() string {
	switch o {
	case OutputPolar:
		return "polar"
	case OutputRect:
		return "rect"
	default:
		return fmt.Sprintf("OutputMode(%d)", uint8(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o OutputMode) MarshalText() ([]byte, error) {
	if o > OutputRect {
		return nil, fmt.Errorf("output mode %d: %w", uint8(o), ErrInvalidConfig)
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. "oval" and "rectangular"
// are accepted as aliases.
func (o *OutputMode) UnmarshalText(text []byte) error {
	m, err := ParseOutputMode(string(text))
	if err != nil {
		return err
	}
	*o = m
	return nil
}

// ParseOutputMode converts "polar"/"oval" or "rect"/"rectangular" to an OutputMode.
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "polar", "oval":
		return OutputPolar, nil
	case "rect", "rectangular":
		return OutputRect, nil
	}
	return OutputPolar, fmt.Errorf("output mode %q: %w", s, ErrInvalidConfig)
}

// GestureState is the controller's position in the gesture state machine.
type GestureState uint8

const (
	StateIdle      GestureState = iota // no gesture in flight
	StateDetecting                     // tracked pointer down, slop not yet exceeded
	StateDragging                      // stick follows the tracked pointer
)

func (s GestureState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDetecting:
		return "detecting"
	case StateDragging:
		return "dragging"
	default:
		return fmt.Sprintf("GestureState(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s GestureState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PointerKind identifies a raw pointer event delivered by the host.
type PointerKind uint8

const (
	PointerPress     PointerKind = iota // a pointer went down
	PointerMove                         // one or more pointers moved
	PointerLifted                       // one of several pointers went up
	PointersEnded                       // the last pointer went up
	PointerCancelled                    // the host aborted the gesture
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerLifted:
		return "lift"
	case PointersEnded:
		return "end"
	case PointerCancelled:
		return "cancel"
	default:
		return fmt.Sprintf("PointerKind(%d)", uint8(k))
	}
}

// EventType identifies a gesture event emitted to handlers and the event sink.
type EventType uint8

const (
	EventDown      EventType = iota // fires when a press is accepted
	EventDragStart                  // fires once when the stick starts following the pointer
	EventDrag                       // fires for every drag output
	EventUp                         // fires on an unlocked release
)

func (e EventType) String() string {
	switch e {
	case EventDown:
		return "down"
	case EventDragStart:
		return "drag-start"
	case EventDrag:
		return "drag"
	case EventUp:
		return "up"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(e))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e EventType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// NoPointer is the ActiveTouch.PointerID value when no pointer is tracked.
const NoPointer = -1

// PointerSample is the position of one pointer at one event, in the control's
// local coordinate space.
type PointerSample struct {
	ID   int
	X, Y float64
}

// PointerEvent is one raw event as delivered by the host. Pointers carries the
// current coordinates of every pointer that is down, keyed by ID.
type PointerEvent struct {
	Kind      PointerKind
	PointerID int
	Pointers  []PointerSample
}

// Sample returns the coordinates of pointer id within the event.
func (e PointerEvent) Sample(id int) (PointerSample, bool) {
	for _, p := range e.Pointers {
		if p.ID == id {
			return p, true
		}
	}
	return PointerSample{}, false
}

// ActiveTouch identifies the tracked pointer and where it went down.
type ActiveTouch struct {
	PointerID    int
	DownX, DownY float64
}

// Geometry is the control center and the maximum stick displacement.
type Geometry struct {
	CenterX, CenterY float64
	Radius           float64
}

// DragOutput is the signal derived from one drag update.
// Angle and Offset are valid for OutputPolar, XOffset and YOffset for OutputRect.
// X and Y are the stick translation relative to its rest position in both modes.
type DragOutput struct {
	Mode             OutputMode
	Angle            float64 // degrees in (-180, 180], up is positive
	Offset           float64 // normalized magnitude in [0, 1]
	XOffset, YOffset float64 // per-axis offsets in [-1, 1]
	X, Y             float64
}

// Primary returns the first value passed to Listener.OnDrag: the angle in
// polar mode, the X offset in rect mode.
func (o DragOutput) Primary() float64 {
	if o.Mode == OutputRect {
		return o.XOffset
	}
	return o.Angle
}

// Secondary returns the second value passed to Listener.OnDrag: the offset in
// polar mode, the Y offset in rect mode.
func (o DragOutput) Secondary() float64 {
	if o.Mode == OutputRect {
		return o.YOffset
	}
	return o.Offset
}
