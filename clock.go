package scatter

import "time"

// Clock supplies timestamps for contact histories, velocity sampling and
// throw steps. Inject a FrameClock in tests and headless replays.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// FrameClock is a manual clock that only moves when advanced. It is used to
// drive the engine deterministically, one display frame at a time.
type FrameClock struct {
	now  time.Time
	step time.Duration
}

// NewFrameClock creates a FrameClock starting at start that advances by step
// on each Tick.
func NewFrameClock(start time.Time, step time.Duration) *FrameClock {
	return &FrameClock{now: start, step: step}
}

// Now returns the current frame time.
func (c *FrameClock) Now() time.Time { return c.now }

// Tick advances the clock by one frame step.
func (c *FrameClock) Tick() { c.now = c.now.Add(c.step) }

// Advance moves the clock forward by d.
func (c *FrameClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
