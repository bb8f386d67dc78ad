package scatter

import "testing"

// splitRouter routes contacts left of x=100 to left and the rest to right.
func splitRouter(left, right Target) (*Router, *Mapper) {
	find := func(ev Event, local, global Vec2) Target {
		if local.X < 100 {
			return left
		}
		return right
	}
	clock := newTestClock()
	r := NewRouter(find, clock)
	return r, NewRoutingMapper(CapPointer, r, clock)
}

func TestRouterIndependentTargets(t *testing.T) {
	a := &recordingTarget{id: 1}
	b := &recordingTarget{id: 2}
	r, m := splitRouter(a, b)

	m.Handle(pointerEv(PhaseStart, PointerTouch, 1, 50, 50))
	m.Handle(pointerEv(PhaseStart, PointerTouch, 2, 150, 50))
	if r.ActiveTargets() != 2 {
		t.Fatalf("ActiveTargets = %d, want 2", r.ActiveTargets())
	}
	if r.TargetOf("1") != a || r.TargetOf("2") != b {
		t.Fatal("contacts bound to the wrong targets")
	}

	m.Handle(pointerEv(PhaseMove, PointerTouch, 1, 60, 50))
	assertVec(t, "a translate", a.lastDelta.Translate, Vec2{10, 0})
	m.Handle(pointerEv(PhaseMove, PointerTouch, 2, 150, 70))
	assertVec(t, "b translate", b.lastDelta.Translate, Vec2{0, 20})

	// Each sub-interaction only holds its own contacts.
	subA := r.SubInteraction(1)
	if subA.Count() != 1 {
		t.Errorf("sub A Count = %d, want 1", subA.Count())
	}
	if _, ok := subA.Current["2"]; ok {
		t.Error("sub A should not see contact 2")
	}
	if a.moves != 1 || b.moves != 1 {
		t.Errorf("moves = %d/%d, want 1/1", a.moves, b.moves)
	}
}

func TestRouterTwoContactsOneTarget(t *testing.T) {
	a := &recordingTarget{id: 1}
	b := &recordingTarget{id: 2}
	r, m := splitRouter(a, b)

	m.Handle(pointerEv(PhaseStart, PointerTouch, 1, 40, 50))
	m.Handle(pointerEv(PhaseStart, PointerTouch, 2, 60, 50))
	m.Handle(pointerEv(PhaseStart, PointerTouch, 3, 300, 50))
	if a.starts != 2 {
		t.Errorf("a starts = %d, want 2", a.starts)
	}
	if got := a.counts[1]; got != 2 {
		t.Errorf("second OnStart saw %d contacts, want 2", got)
	}

	m.Handle(pointerEv(PhaseMove, PointerTouch, 1, 30, 50))
	m.Handle(pointerEv(PhaseMove, PointerTouch, 2, 70, 50))
	// Distance grew from 20 to 30, then 30 to 40 across the two moves.
	assertNear(t, "Zoom", a.lastDelta.Zoom, 40.0/30.0)

	m.Handle(pointerEv(PhaseEnd, PointerTouch, 1, 30, 50))
	if r.ActiveTargets() != 2 {
		t.Fatalf("ActiveTargets = %d, want 2 while contact 2 holds a", r.ActiveTargets())
	}
	if r.SubInteraction(1) == nil {
		t.Fatal("sub-interaction of a dropped too early")
	}

	m.Handle(pointerEv(PhaseEnd, PointerTouch, 2, 70, 50))
	if r.ActiveTargets() != 1 {
		t.Errorf("ActiveTargets = %d, want 1", r.ActiveTargets())
	}
	if r.SubInteraction(1) != nil {
		t.Error("sub-interaction of a should be dropped once unbound")
	}
	if r.TargetOf("1") != nil {
		t.Error("ended contact should be unbound")
	}
	if b.ends != 0 {
		t.Errorf("b ends = %d, want 0", b.ends)
	}
}

func TestRouterMissesAndDeclines(t *testing.T) {
	decliner := &recordingTarget{id: 1, decline: true}
	r, m := splitRouter(decliner, nil)

	m.Handle(pointerEv(PhaseStart, PointerTouch, 1, 50, 50))
	m.Handle(pointerEv(PhaseStart, PointerTouch, 2, 150, 50))
	if r.ActiveTargets() != 0 {
		t.Errorf("ActiveTargets = %d, want 0", r.ActiveTargets())
	}
	m.Handle(pointerEv(PhaseMove, PointerTouch, 1, 55, 50))
	m.Handle(pointerEv(PhaseEnd, PointerTouch, 1, 55, 50))
	if decliner.starts+decliner.moves+decliner.ends != 0 {
		t.Error("declining target should receive no callbacks")
	}
}

func TestRouterMapPoint(t *testing.T) {
	a := &recordingTarget{id: 1}
	r, m := splitRouter(a, a)
	r.MapPoint = func(_ Target, p Vec2) Vec2 { return p.Scale(2) }
	m.Handle(pointerEv(PhaseStart, PointerTouch, 1, 10, 10))
	m.Handle(pointerEv(PhaseMove, PointerTouch, 1, 15, 10))
	assertVec(t, "Translate", a.lastDelta.Translate, Vec2{10, 0})
}

func TestRouterWheel(t *testing.T) {
	a := &recordingTarget{id: 1}
	b := &recordingTarget{id: 2}
	_, m := splitRouter(a, b)
	m.Handle(&WheelEvent{X: 150, Y: 0, DeltaY: 1})
	if a.wheels != 0 || b.wheels != 1 {
		t.Errorf("wheels = %d/%d, want 0/1", a.wheels, b.wheels)
	}
}

func TestRouterUnbind(t *testing.T) {
	a := &recordingTarget{id: 1}
	b := &recordingTarget{id: 2}
	r, m := splitRouter(a, b)

	m.Handle(pointerEv(PhaseStart, PointerTouch, 1, 50, 50))
	m.Handle(pointerEv(PhaseStart, PointerTouch, 2, 150, 50))
	r.Unbind(1)
	if r.ActiveTargets() != 1 {
		t.Fatalf("ActiveTargets = %d, want 1", r.ActiveTargets())
	}
	if r.TargetOf("1") != nil || r.SubInteraction(1) != nil {
		t.Fatal("contact 1 still routed after Unbind")
	}

	m.Handle(pointerEv(PhaseMove, PointerTouch, 1, 60, 50))
	m.Handle(pointerEv(PhaseEnd, PointerTouch, 1, 60, 50))
	if a.moves != 0 || a.ends != 0 {
		t.Errorf("unbound target got moves=%d ends=%d, want 0/0", a.moves, a.ends)
	}

	m.Handle(pointerEv(PhaseMove, PointerTouch, 2, 160, 50))
	if b.moves != 1 {
		t.Errorf("b moves = %d, want 1", b.moves)
	}
	r.Unbind(7) // unknown handles are ignored
}

// selfUnbinding unbinds itself when its first contact ends.
type selfUnbinding struct {
	recordingTarget
	router *Router
}

func (s *selfUnbinding) OnEnd(ev Event, in *Interaction) {
	s.recordingTarget.OnEnd(ev, in)
	s.router.Unbind(s.id)
}

func TestRouterUnbindDuringCallback(t *testing.T) {
	a := &selfUnbinding{recordingTarget: recordingTarget{id: 1}}
	b := &recordingTarget{id: 2}
	r, m := splitRouter(a, b)
	a.router = r

	m.Handle(pointerEv(PhaseStart, PointerTouch, 1, 40, 50))
	m.Handle(pointerEv(PhaseStart, PointerTouch, 2, 60, 50))
	m.Handle(pointerEv(PhaseEnd, PointerTouch, 1, 40, 50))
	m.Handle(pointerEv(PhaseEnd, PointerTouch, 2, 60, 50))
	if a.ends != 1 {
		t.Errorf("ends = %d, want 1", a.ends)
	}
	if r.ActiveTargets() != 0 {
		t.Errorf("ActiveTargets = %d, want 0", r.ActiveTargets())
	}
}
