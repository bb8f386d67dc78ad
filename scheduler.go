package scatter

import "time"

// StepResult tells the scheduler whether a step wants another frame.
type StepResult uint8

const (
	StepContinue StepResult = iota
	StepDone
)

// StepFunc is invoked once per display frame until it returns StepDone.
type StepFunc func(now time.Time) StepResult

// Scheduler drives frame steps such as inertial throws. The host calls Tick
// once per display refresh; tests tick it manually.
type Scheduler struct {
	steps   []StepFunc
	pending []StepFunc
	ticking bool
}

// Schedule registers fn to run from the next Tick on.
func (s *Scheduler) Schedule(fn StepFunc) {
	if s.ticking {
		s.pending = append(s.pending, fn)
		return
	}
	s.steps = append(s.steps, fn)
}

// Len returns the number of scheduled steps.
func (s *Scheduler) Len() int {
	return len(s.steps) + len(s.pending)
}

// Tick runs every scheduled step once and drops those that are done. Steps
// scheduled during Tick first run on the following Tick.
func (s *Scheduler) Tick(now time.Time) {
	s.ticking = true
	kept := s.steps[:0]
	for _, fn := range s.steps {
		if fn(now) == StepContinue {
			kept = append(kept, fn)
		}
	}
	for i := len(kept); i < len(s.steps); i++ {
		s.steps[i] = nil
	}
	s.steps = append(kept, s.pending...)
	s.pending = s.pending[:0]
	s.ticking = false
}
