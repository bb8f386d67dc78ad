package scatter

import "time"

// ElementID names the input element an event was delivered to. The mapper
// uses it to ignore leave events bubbling up from child elements.
type ElementID string

// Phase is the device-level phase of an input event.
type Phase uint8

const (
	PhaseStart  Phase = iota // pointerdown, touchstart, mousedown
	PhaseMove                // pointermove, touchmove, mousemove
	PhaseEnd                 // pointerup, touchend, mouseup
	PhaseCancel              // pointercancel, touchcancel
	PhaseLeave               // pointerleave, mouseleave
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	case PhaseCancel:
		return "cancel"
	case PhaseLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// Capabilities is a bitmask of the event models a host platform delivers.
type Capabilities uint8

const (
	CapPointer Capabilities = 1 << iota // unified pointer events
	CapTouch                            // legacy multi-touch events
	CapMouse                            // plain mouse events
)

// Strategy is the event model a Mapper consumes.
type Strategy uint8

const (
	StrategyNone Strategy = iota
	StrategyPointer
	StrategyTouch
	StrategyMouse
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyPointer:
		return "pointer"
	case StrategyTouch:
		return "touch"
	case StrategyMouse:
		return "mouse"
	default:
		return "none"
	}
}

// SelectStrategy picks the event model to use, preferring pointer events,
// then touch events, then mouse events.
func SelectStrategy(caps Capabilities) Strategy {
	switch {
	case caps&CapPointer != 0:
		return StrategyPointer
	case caps&CapTouch != 0:
		return StrategyTouch
	case caps&CapMouse != 0:
		return StrategyMouse
	default:
		return StrategyNone
	}
}

// Event is a raw input event from a host platform.
type Event interface {
	base() *EventBase
}

// EventBase carries the fields shared by all events.
type EventBase struct {
	Element ElementID
	Time    time.Time
	claimed bool
}

func (b *EventBase) base() *EventBase { return b }

// Claim marks the event as handled so that enclosing mappers can decline it.
func (b *EventBase) Claim() { b.claimed = true }

// Claimed reports whether a mapper already handled the event.
func (b *EventBase) Claimed() bool { return b.claimed }

// PointerType is the device class of a pointer event.
type PointerType uint8

const (
	PointerMouse PointerType = iota
	PointerTouch
	PointerPen
)

// PointerEvent is a unified pointer event covering mouse, touch and pen.
type PointerEvent struct {
	EventBase
	Phase     Phase
	PointerID int
	Type      PointerType
	X, Y      float64
	Buttons   uint8
}

// Touch is one changed touch point of a TouchEvent.
type Touch struct {
	ID   int
	X, Y float64
}

// TouchEvent is a legacy multi-touch event. Changed lists the touches whose
// state changed with this event.
type TouchEvent struct {
	EventBase
	Phase   Phase
	Changed []Touch
}

// MouseEvent is a plain mouse event. Buttons is the bitmask of pressed
// buttons at the time of the event.
type MouseEvent struct {
	EventBase
	Phase   Phase
	X, Y    float64
	Buttons uint8
}

// WheelEvent is a scroll-wheel or trackpad scroll event.
type WheelEvent struct {
	EventBase
	X, Y           float64
	DeltaX, DeltaY float64
}

// eventPhase returns the phase of ev and whether ev is a tracked contact
// event.
func eventPhase(ev Event) (Phase, bool) {
	switch e := ev.(type) {
	case *PointerEvent:
		return e.Phase, true
	case *TouchEvent:
		return e.Phase, true
	case *MouseEvent:
		return e.Phase, true
	default:
		return 0, false
	}
}

// pointerContactID maps a pointer event to its contact id.
func pointerContactID(e *PointerEvent) ContactID {
	switch e.Type {
	case PointerMouse:
		return MouseID
	case PointerPen:
		return StylusID
	default:
		return TouchID(e.PointerID)
	}
}

// ExtractPoints converts ev into contact positions using strategy. Events
// that do not belong to the strategy's event model yield an empty map.
func ExtractPoints(strategy Strategy, ev Event) PointMap {
	points := PointMap{}
	switch strategy {
	case StrategyPointer:
		if e, ok := ev.(*PointerEvent); ok {
			points[pointerContactID(e)] = Vec2{e.X, e.Y}
		}
	case StrategyTouch:
		if e, ok := ev.(*TouchEvent); ok {
			for _, t := range e.Changed {
				points[TouchID(t.ID)] = Vec2{t.X, t.Y}
			}
		}
	case StrategyMouse:
		if e, ok := ev.(*MouseEvent); ok {
			// Move events fire continuously; only a pressed button makes them
			// part of a gesture.
			if e.Phase == PhaseStart || e.Phase == PhaseMove {
				if e.Buttons == 0 {
					return points
				}
			}
			points[MouseID] = Vec2{e.X, e.Y}
		}
	}
	return points
}
