package remote

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phanxgames/scatter"
)

// ErrUnknownType is returned by Decode for messages whose type is not one
// of pointer, touch, mouse or wheel.
var ErrUnknownType = errors.New("remote: unknown message type")

// Message is the wire form of one remote input event.
type Message struct {
	Type    string  `json:"type"`
	Phase   string  `json:"phase,omitempty"`
	Element string  `json:"element,omitempty"`
	ID      int     `json:"id,omitempty"`
	Pointer string  `json:"pointer,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Buttons uint8   `json:"buttons,omitempty"`
	Touches []Touch `json:"touches,omitempty"`
	DeltaX  float64 `json:"deltaX,omitempty"`
	DeltaY  float64 `json:"deltaY,omitempty"`
}

// Touch is one changed touch point of a touch message.
type Touch struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

var phases = map[string]scatter.Phase{
	"start":  scatter.PhaseStart,
	"move":   scatter.PhaseMove,
	"end":    scatter.PhaseEnd,
	"cancel": scatter.PhaseCancel,
	"leave":  scatter.PhaseLeave,
}

var pointerTypes = map[string]scatter.PointerType{
	"":      scatter.PointerMouse,
	"mouse": scatter.PointerMouse,
	"touch": scatter.PointerTouch,
	"pen":   scatter.PointerPen,
}

// Decode parses one JSON message into a scatter event. base supplies the
// element and timestamp; a message naming its own element overrides it.
func Decode(data []byte, base scatter.EventBase) (scatter.Event, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse remote message: %w", err)
	}
	return m.Event(base)
}

// Event converts m into a scatter event.
func (m *Message) Event(base scatter.EventBase) (scatter.Event, error) {
	if m.Element != "" {
		base.Element = scatter.ElementID(m.Element)
	}
	if m.Type == "wheel" {
		return &scatter.WheelEvent{EventBase: base, X: m.X, Y: m.Y, DeltaX: m.DeltaX, DeltaY: m.DeltaY}, nil
	}

	phase, ok := phases[m.Phase]
	if !ok {
		return nil, fmt.Errorf("parse remote message: unknown phase %q", m.Phase)
	}
	switch m.Type {
	case "pointer":
		pt, ok := pointerTypes[m.Pointer]
		if !ok {
			return nil, fmt.Errorf("parse remote message: unknown pointer type %q", m.Pointer)
		}
		return &scatter.PointerEvent{
			EventBase: base,
			Phase:     phase,
			PointerID: m.ID,
			Type:      pt,
			X:         m.X,
			Y:         m.Y,
			Buttons:   m.Buttons,
		}, nil
	case "touch":
		changed := make([]scatter.Touch, len(m.Touches))
		for i, t := range m.Touches {
			changed[i] = scatter.Touch{ID: t.ID, X: t.X, Y: t.Y}
		}
		return &scatter.TouchEvent{EventBase: base, Phase: phase, Changed: changed}, nil
	case "mouse":
		return &scatter.MouseEvent{EventBase: base, Phase: phase, X: m.X, Y: m.Y, Buttons: m.Buttons}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, m.Type)
	}
}
