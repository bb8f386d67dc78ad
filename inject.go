package scatter

import "math"

// Injected events use device coordinates, exactly like host input, and are
// consumed one frame at a time by Stage.Update. Single-contact helpers use
// the mouse pointer; multi-contact helpers use touch pointers.

// Inject queues a frame holding the given events.
func (s *Stage) Inject(events ...Event) {
	if len(events) == 0 {
		return
	}
	s.injectQueue = append(s.injectQueue, events)
}

func (s *Stage) pointer(phase Phase, id int, typ PointerType, x, y float64) *PointerEvent {
	var buttons uint8
	if phase == PhaseStart || phase == PhaseMove {
		buttons = 1
	}
	return &PointerEvent{
		EventBase: EventBase{Element: s.element, Time: s.clock.Now()},
		Phase:     phase,
		PointerID: id,
		Type:      typ,
		X:         x,
		Y:         y,
		Buttons:   buttons,
	}
}

// InjectPress queues a mouse press at (x, y).
func (s *Stage) InjectPress(x, y float64) {
	s.Inject(s.pointer(PhaseStart, 0, PointerMouse, x, y))
}

// InjectMove queues a mouse move at (x, y) with the button held.
func (s *Stage) InjectMove(x, y float64) {
	s.Inject(s.pointer(PhaseMove, 0, PointerMouse, x, y))
}

// InjectRelease queues a mouse release at (x, y).
func (s *Stage) InjectRelease(x, y float64) {
	s.Inject(s.pointer(PhaseEnd, 0, PointerMouse, x, y))
}

// InjectTap queues a press followed by a release at the same position.
// Consumes two frames.
func (s *Stage) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectHold queues a press, frames-2 stationary frames and a release at
// (x, y). Minimum frames is 2.
func (s *Stage) InjectHold(x, y float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(x, y)
	for i := 0; i < frames-2; i++ {
		s.injectQueue = append(s.injectQueue, nil)
	}
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). Minimum frames is 2.
func (s *Stage) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectPinch queues a two-finger gesture around (cx, cy). The fingers sit
// on opposite sides of the center; their distance and angle are
// interpolated from (fromDist, fromAngle) to (toDist, toAngle) over
// frames-2 intermediate frames. Angles are in radians.
func (s *Stage) InjectPinch(cx, cy, fromDist, toDist, fromAngle, toAngle float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	fingers := func(dist, angle float64) (Vec2, Vec2) {
		c := Vec2{cx, cy}
		return Arc(c, angle+math.Pi, dist/2), Arc(c, angle, dist/2)
	}
	a, b := fingers(fromDist, fromAngle)
	s.Inject(
		s.pointer(PhaseStart, 1, PointerTouch, a.X, a.Y),
		s.pointer(PhaseStart, 2, PointerTouch, b.X, b.Y),
	)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		a, b = fingers(fromDist+(toDist-fromDist)*t, fromAngle+(toAngle-fromAngle)*t)
		s.Inject(
			s.pointer(PhaseMove, 1, PointerTouch, a.X, a.Y),
			s.pointer(PhaseMove, 2, PointerTouch, b.X, b.Y),
		)
	}
	a, b = fingers(toDist, toAngle)
	s.Inject(
		s.pointer(PhaseEnd, 1, PointerTouch, a.X, a.Y),
		s.pointer(PhaseEnd, 2, PointerTouch, b.X, b.Y),
	)
}

// InjectWheel queues a wheel event at (x, y).
func (s *Stage) InjectWheel(x, y, deltaY float64) {
	s.Inject(&WheelEvent{
		EventBase: EventBase{Element: s.element, Time: s.clock.Now()},
		X:         x,
		Y:         y,
		DeltaY:    deltaY,
	})
}

// processInjectedInput pops one frame from the inject queue and feeds its
// events through the mapper. Returns the number of events handled.
func (s *Stage) processInjectedInput() int {
	if len(s.injectQueue) == 0 {
		return 0
	}
	frame := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = nil
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	for _, ev := range frame {
		if b := ev.base(); b.Time.IsZero() {
			b.Time = s.clock.Now()
		}
		s.mapper.Handle(ev)
	}
	return len(frame)
}

// PendingInjections returns the number of queued frames.
func (s *Stage) PendingInjections() int {
	return len(s.injectQueue)
}
