package scatter

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// pointerSample is one polled pointer position.
type pointerSample struct {
	id      int
	typ     PointerType
	x, y    float64
	pressed bool
	buttons uint8
}

type pointerKey struct {
	typ PointerType
	id  int
}

// pointerTracker turns polled pointer state into pointer events by diffing
// consecutive frames.
type pointerTracker struct {
	down map[pointerKey]Vec2
	seen map[pointerKey]bool
}

func newPointerTracker() *pointerTracker {
	return &pointerTracker{
		down: map[pointerKey]Vec2{},
		seen: map[pointerKey]bool{},
	}
}

// diff appends the events that take the tracker from its last state to
// samples. Pressed pointers missing from samples are released at their last
// position.
func (t *pointerTracker) diff(samples []pointerSample, base EventBase, buf []Event) []Event {
	clear(t.seen)
	for _, s := range samples {
		k := pointerKey{s.typ, s.id}
		t.seen[k] = true
		last, wasDown := t.down[k]
		p := Vec2{s.x, s.y}
		var phase Phase
		switch {
		case s.pressed && !wasDown:
			phase = PhaseStart
			t.down[k] = p
		case s.pressed && wasDown:
			if last == p {
				continue
			}
			phase = PhaseMove
			t.down[k] = p
		case !s.pressed && wasDown:
			phase = PhaseEnd
			delete(t.down, k)
		default:
			continue
		}
		buf = append(buf, &PointerEvent{
			EventBase: base, Phase: phase, PointerID: s.id, Type: s.typ,
			X: s.x, Y: s.y, Buttons: s.buttons,
		})
	}
	for k, last := range t.down {
		if t.seen[k] {
			continue
		}
		delete(t.down, k)
		buf = append(buf, &PointerEvent{
			EventBase: base, Phase: PhaseEnd, PointerID: k.id, Type: k.typ,
			X: last.X, Y: last.Y,
		})
	}
	return buf
}

// EbitenSource polls Ebitengine's mouse, touch and wheel state once per
// frame and reports it as unified pointer events. The mouse is pointer
// MouseID; each touch keeps its Ebitengine touch id.
type EbitenSource struct {
	Element ElementID

	tracker  *pointerTracker
	samples  []pointerSample
	touchIDs []ebiten.TouchID
}

// NewEbitenSource creates a source bound to element.
func NewEbitenSource(element ElementID) *EbitenSource {
	return &EbitenSource{Element: element, tracker: newPointerTracker()}
}

// Capabilities reports unified pointer events.
func (e *EbitenSource) Capabilities() Capabilities {
	return CapPointer
}

// Poll must be called from the Ebitengine Update goroutine.
func (e *EbitenSource) Poll(buf []Event) []Event {
	base := EventBase{Element: e.Element, Time: time.Now()}
	e.samples = e.samples[:0]

	mx, my := ebiten.CursorPosition()
	var buttons uint8
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		buttons |= 1
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		buttons |= 2
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		buttons |= 4
	}
	e.samples = append(e.samples, pointerSample{
		typ: PointerMouse, x: float64(mx), y: float64(my),
		pressed: buttons&1 != 0, buttons: buttons,
	})

	e.touchIDs = ebiten.AppendTouchIDs(e.touchIDs[:0])
	for _, tid := range e.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		e.samples = append(e.samples, pointerSample{
			id: int(tid), typ: PointerTouch, x: float64(tx), y: float64(ty),
			pressed: true, buttons: 1,
		})
	}

	buf = e.tracker.diff(e.samples, base, buf)

	if _, dy := ebiten.Wheel(); dy != 0 {
		// Ebitengine reports scrolling up as positive; wheel events use the
		// DOM convention where negative means up.
		buf = append(buf, &WheelEvent{
			EventBase: base, X: float64(mx), Y: float64(my), DeltaY: -dy,
		})
	}
	return buf
}
