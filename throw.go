package scatter

import (
	"math"
	"time"
)

const (
	// throwStopSpeed is the speed in pixels per millisecond below which a
	// throw comes to rest.
	throwStopSpeed = 0.01
	// maxRecenterSteps bounds the unit steps taken to pull an object back
	// onto the stage within one frame.
	maxRecenterSteps = 10000
)

// startThrow turns the release velocity into an inertial throw. With no
// velocity the gesture completes immediately.
func (s *Scatter) startThrow() {
	v := s.releaseVelocity()
	if v.IsZero() && s.insideStage() {
		s.completeThrow()
		return
	}
	s.throwGen++
	gen := s.throwGen
	s.phase = phaseThrowing
	s.lastFrame = s.stage.clock.Now()
	// Containment runs once before the first frame so that an object
	// released off stage bounces back right away.
	s.velocity = limitSpeed(v, s.nextVelocity(v))
	Logger().Debug("scatter: throw", "target", s.ID, "vx", v.X, "vy", v.Y)
	s.stage.fireThrowStart(s, v)
	s.stage.scheduler.Schedule(func(now time.Time) StepResult {
		return s.throwStep(gen, now)
	})
}

// stopThrow cancels a running throw. Steps already scheduled observe the
// new generation and stop without touching the object.
func (s *Scatter) stopThrow() {
	s.throwGen++
	s.velocity = Vec2{}
	if s.phase == phaseThrowing {
		s.phase = phaseIdle
	}
}

// throwStep advances the throw by one frame.
func (s *Scatter) throwStep(gen uint64, now time.Time) StepResult {
	if gen != s.throwGen || s.phase != phaseThrowing {
		return StepDone
	}
	dt := millis(now.Sub(s.lastFrame))
	if dt <= 0 {
		// Started this frame; startThrow already ran containment.
		return StepContinue
	}
	s.lastFrame = now
	s.move(s.gate(s.velocity.Scale(dt)), TransformUpdate, true)
	s.velocity = limitSpeed(s.velocity, s.nextVelocity(s.velocity))
	if s.velocity.Len() > throwStopSpeed || (!s.insideStage() && s.canRecenter()) {
		return StepContinue
	}
	s.completeThrow()
	return StepDone
}

// completeThrow returns the object to rest and fires the completion hooks.
func (s *Scatter) completeThrow() {
	s.velocity = Vec2{}
	s.phase = phaseIdle
	if s.OnThrowEnd != nil {
		s.OnThrowEnd(s)
	}
	s.stage.fireThrowEnd(s)
}

// limitSpeed rescales next so it is never faster than prev.
func limitSpeed(prev, next Vec2) Vec2 {
	pl, nl := prev.Len(), next.Len()
	if nl > pl && nl > 0 {
		return next.Scale(pl / nl)
	}
	return next
}

// nextVelocity damps v. When the object is kept on stage and had to be
// pulled back, the velocity components pointing further out are inverted
// and the stiffer collision damping is used instead.
func (s *Scatter) nextVelocity(v Vec2) Vec2 {
	next := v.Scale(s.cfg.ThrowDamping)
	if !s.cfg.KeepOnStage || s.stage.bounds == nil {
		return next
	}
	if !s.recenter() {
		return next
	}
	dir := s.stage.bounds.Center.Sub(s.Center())
	next = v.Scale(s.cfg.CollisionDamping)
	if next.X*dir.X < 0 {
		next.X = -next.X
	}
	if next.Y*dir.Y < 0 {
		next.Y = -next.Y
	}
	return next
}

// visibility returns the overlap required for the object to count as on
// stage. It never exceeds the object's or the stage's smallest extent.
func (s *Scatter) visibility() float64 {
	v := s.cfg.ThrowVisibility
	scale := s.state.Scale
	v = math.Min(v, math.Min(s.cfg.Width, s.cfg.Height)*scale)
	b := s.stage.bounds.Bounds()
	return math.Min(v, math.Min(b.Width, b.Height))
}

// insideStage reports whether enough of the object overlaps the stage.
// Objects not kept on stage always count as inside.
func (s *Scatter) insideStage() bool {
	if !s.cfg.KeepOnStage || s.stage.bounds == nil {
		return true
	}
	hit, ok := s.Polygon().IntersectsWith(s.stage.bounds)
	return ok && hit.Overlap >= s.visibility()
}

// canRecenter reports whether the locked axes still allow moving the
// object toward the stage center.
func (s *Scatter) canRecenter() bool {
	return !s.gate(s.stage.bounds.Center.Sub(s.Center())).IsZero()
}

// recenter nudges the object in unit steps toward the stage center until
// it overlaps the stage by the required visibility. It reports whether the
// object was moved.
func (s *Scatter) recenter() bool {
	stageCenter := s.stage.bounds.Center
	var total Vec2
	for i := 0; i < maxRecenterSteps && !s.insideStage(); i++ {
		toCenter := stageCenter.Sub(s.Center())
		step := toCenter.Normalize()
		if toCenter.Len() < 1 {
			step = toCenter
		}
		step = s.gate(step)
		if step.IsZero() {
			break
		}
		s.state.X += step.X
		s.state.Y += step.Y
		total = total.Add(step)
	}
	if total.IsZero() {
		return false
	}
	Logger().Debug("scatter: recenter", "target", s.ID, "dx", total.X, "dy", total.Y)
	s.emit(TransformEvent{Type: TransformUpdate, Translate: total, Zoom: 1, About: s.origin(), Fast: true})
	return true
}
