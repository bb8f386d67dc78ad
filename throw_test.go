package scatter

import (
	"math"
	"testing"
	"time"
)

func TestThrowAfterDrag(t *testing.T) {
	st, clock := newTestStage()
	s := MustNewScatter(st, testConfig(200, 200, 100, 100))

	var ended int
	s.OnThrowEnd = func(*Scatter) { ended++ }
	store := &recordingStore{}
	st.SetEntityStore(store)

	st.InjectDrag(200, 200, 300, 200, 5)
	runFrames(st, clock, 5)
	if !s.IsThrowing() {
		t.Fatal("IsThrowing() = false after a fast release")
	}
	// Three 25px moves 16ms apart, then a 16ms pause before the release:
	// the trailing 30ms window averages 25/16 with the zero padding sample.
	// Only the release has damped it; the step scheduled in the same frame
	// waits for the next one.
	want := 25.0 / 16 / 2 * 0.95
	assertNear(t, "Velocity.X", s.Velocity().X, want)

	x0 := s.State().X
	runFrames(st, clock, 1)
	assertNear(t, "X after one frame", s.State().X, x0+want*16)
	assertNear(t, "Velocity.X after one frame", s.Velocity().X, want*0.95)

	frames := settle(st, clock, 1000)
	if frames >= 1000 {
		t.Fatal("throw did not come to rest")
	}
	if ended != 1 {
		t.Errorf("OnThrowEnd fired %d times, want 1", ended)
	}
	if !s.Velocity().IsZero() {
		t.Errorf("Velocity = %v after rest, want zero", s.Velocity())
	}
	x := s.State().X
	if x <= 275 || x > 800 {
		t.Errorf("X = %v, want carried past the release point", x)
	}
	assertNear(t, "Y", s.State().Y, 200)

	var starts int
	for _, ev := range store.events {
		if ev.Type == EventThrowStart {
			starts++
			if ev.Velocity.X <= 0 {
				t.Errorf("throw start velocity = %v", ev.Velocity)
			}
		}
	}
	if starts != 1 {
		t.Errorf("throw start events = %d, want 1", starts)
	}
}

func TestThrowDampingConverges(t *testing.T) {
	st, _ := newTestStage()
	cfg := testConfig(200, 200, 100, 100)
	cfg.KeepOnStage = false
	s := MustNewScatter(st, cfg)

	v := Vec2{10, -4}
	steps := 0
	for v.Len() > throwStopSpeed {
		v = limitSpeed(v, s.nextVelocity(v))
		steps++
		if steps > 1000 {
			t.Fatal("velocity never dropped below the stop speed")
		}
	}
	// 0.95^n * |v0| <= 0.01 first holds at n = 137.
	if steps != 137 {
		t.Errorf("steps = %d, want 137", steps)
	}
}

func TestThrowCancelledByNewGesture(t *testing.T) {
	st, clock := newTestStage()
	s := MustNewScatter(st, testConfig(200, 200, 100, 100))
	var ended int
	s.OnThrowEnd = func(*Scatter) { ended++ }

	st.InjectDrag(200, 200, 300, 200, 5)
	runFrames(st, clock, 7)
	if !s.IsThrowing() {
		t.Fatal("IsThrowing() = false")
	}

	c := s.Center()
	st.InjectPress(c.X, c.Y)
	runFrames(st, clock, 1)
	if s.IsThrowing() {
		t.Error("IsThrowing() = true after a new press")
	}
	if !s.IsDragging() {
		t.Error("IsDragging() = false after a new press")
	}
	if st.Scheduler().Len() != 0 {
		t.Errorf("scheduled steps = %d, want 0 after cancellation", st.Scheduler().Len())
	}

	before := s.State()
	runFrames(st, clock, 10)
	if s.State() != before {
		t.Errorf("cancelled throw kept moving: %+v -> %+v", before, s.State())
	}
	if ended != 0 {
		t.Errorf("OnThrowEnd fired %d times for a cancelled throw", ended)
	}
}

func TestThrowStaleStepStops(t *testing.T) {
	st, clock := newTestStage()
	s := MustNewScatter(st, testConfig(200, 200, 100, 100))
	s.phase = phaseThrowing
	s.throwGen = 3
	if got := s.throwStep(2, clock.Now()); got != StepDone {
		t.Errorf("stale step = %v, want StepDone", got)
	}
	if s.State().X != 200 {
		t.Error("stale step moved the object")
	}
}

func TestResetCancelsThrow(t *testing.T) {
	st, clock := newTestStage()
	s := MustNewScatter(st, testConfig(200, 200, 100, 100))
	st.InjectDrag(200, 200, 300, 200, 5)
	runFrames(st, clock, 6)
	s.Reset()
	runFrames(st, clock, 5)
	if s.IsThrowing() {
		t.Error("IsThrowing() = true after Reset")
	}
	assertVec(t, "position", s.State().Position(), Vec2{200, 200})
}

func TestRecenterPullsObjectOnStage(t *testing.T) {
	st, _ := newTestStage()
	s := MustNewScatter(st, testConfig(1000, 300, 100, 100))
	if s.insideStage() {
		t.Fatal("object should start off stage")
	}

	next := s.nextVelocity(Vec2{1, 0})
	if !s.insideStage() {
		t.Error("object still off stage after recentering")
	}
	// It stops as soon as 44px overlap the stage.
	assertNear(t, "X", s.State().X, 806)
	// Collision damping, inverted to point back onto the stage.
	assertVec(t, "next", next, Vec2{-0.5, 0})
}

func TestRecenterNoopInside(t *testing.T) {
	st, _ := newTestStage()
	s := MustNewScatter(st, testConfig(400, 300, 100, 100))
	next := s.nextVelocity(Vec2{2, 1})
	assertVec(t, "next", next, Vec2{1.9, 0.95})
	assertVec(t, "position", s.State().Position(), Vec2{400, 300})
}

func TestThrowOffStageBouncesBack(t *testing.T) {
	st, clock := newTestStage()
	s := MustNewScatter(st, testConfig(700, 300, 100, 100))

	// Fling hard to the right.
	st.InjectDrag(700, 300, 900, 300, 5)
	if frames := settle(st, clock, 2000); frames >= 2000 {
		t.Fatal("throw did not come to rest")
	}
	if !s.insideStage() {
		t.Errorf("object at %v ended off stage", s.State().Position())
	}
	hit, ok := s.Polygon().IntersectsWith(st.Bounds())
	if !ok || hit.Overlap < s.visibility() {
		t.Errorf("overlap = %v, want >= %v", hit.Overlap, s.visibility())
	}
}

func TestReleaseOffStageWithoutVelocity(t *testing.T) {
	st, clock := newTestStage()
	s := MustNewScatter(st, testConfig(200, 200, 100, 100))
	s.MoveTo(Vec2{-300, 200})

	st.Handle(pointerEv(PhaseStart, PointerMouse, 0, -300, 200))
	clock.Advance(200 * time.Millisecond)
	st.Handle(pointerEv(PhaseEnd, PointerMouse, 0, -300, 200))
	if !s.insideStage() {
		t.Error("zero-velocity release off stage should recenter immediately")
	}
	settle(st, clock, 100)
	if s.IsThrowing() {
		t.Error("object should come to rest")
	}
}

func TestLockedAxisThrowTerminates(t *testing.T) {
	st, clock := newTestStage()
	cfg := testConfig(200, 200, 100, 100)
	cfg.MovableX = false
	cfg.MovableY = false
	s := MustNewScatter(st, cfg)
	s.state.X = -500

	s.startObserving()
	s.phase = phaseDragging
	s.startThrow()
	if frames := settle(st, clock, 100); frames >= 100 {
		t.Fatal("throw on a locked object never ended")
	}
	assertNear(t, "X", s.State().X, -500)
}

func TestLimitSpeed(t *testing.T) {
	got := limitSpeed(Vec2{3, 4}, Vec2{6, 8})
	assertNear(t, "len", got.Len(), 5)
	assertVec(t, "slower", limitSpeed(Vec2{3, 4}, Vec2{1, 1}), Vec2{1, 1})
	assertVec(t, "zero", limitSpeed(Vec2{}, Vec2{}), Vec2{})
}

func TestVisibilityClamped(t *testing.T) {
	st, _ := newTestStage()
	s := MustNewScatter(st, testConfig(400, 300, 20, 30))
	assertNear(t, "small object", s.visibility(), 20)

	big := MustNewScatter(st, testConfig(400, 300, 300, 300))
	assertNear(t, "default", big.visibility(), 44)

	tiny := NewStage(StageConfig{Bounds: Rect{Width: 30, Height: 300}})
	o := MustNewScatter(tiny, testConfig(15, 150, 100, 100))
	assertNear(t, "small stage", o.visibility(), 30)
}

func TestInsideStageUnbounded(t *testing.T) {
	st := NewStage(StageConfig{Clock: newTestClock()})
	s := MustNewScatter(st, testConfig(-1e6, 0, 10, 10))
	if !s.insideStage() {
		t.Error("objects on an unbounded stage are always inside")
	}
	if v := s.nextVelocity(Vec2{1, 0}); math.Abs(v.X-0.95) > epsilon {
		t.Errorf("next = %v, want plain damping", v)
	}
}
