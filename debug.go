package scatter

import "time"

// debugStats holds per-update timing and input metrics.
// Only populated when Stage.debug is true.
type debugStats struct {
	inputTime time.Duration
	stepTime  time.Duration
	events    int
	steps     int
}

// debugLog logs update stats at debug level.
func (s *Stage) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	Logger().Debug("scatter: update",
		"input", stats.inputTime,
		"steps", stats.stepTime,
		"total", stats.inputTime+stats.stepTime,
		"events", stats.events,
		"running", stats.steps,
		"objects", len(s.objects),
		"targets", s.router.ActiveTargets(),
	)
}
