package scatter

import "time"

const (
	velocityCapacity = 5
	velocityWindow   = 30 * time.Millisecond
	// sameFrameMillis is the spacing in milliseconds below which movements
	// belong to the same frame, as when several contacts report separately.
	sameFrameMillis = 1.0
)

// VelocitySample is one recorded movement step. DT is in milliseconds.
type VelocitySample struct {
	DT, DX, DY float64
	Time       time.Time
}

// velocityBuffer is a fixed-capacity ring of samples; the oldest sample is
// evicted first.
type velocityBuffer struct {
	samples [velocityCapacity]VelocitySample
	start   int
	n       int
}

func (b *velocityBuffer) add(s VelocitySample) {
	if b.n < velocityCapacity {
		b.samples[(b.start+b.n)%velocityCapacity] = s
		b.n++
		return
	}
	b.samples[b.start] = s
	b.start = (b.start + 1) % velocityCapacity
}

func (b *velocityBuffer) reset() {
	b.start = 0
	b.n = 0
}

func (b *velocityBuffer) len() int { return b.n }

// mergeNewest folds a movement into the newest sample.
func (b *velocityBuffer) mergeNewest(s VelocitySample) {
	i := (b.start + b.n - 1) % velocityCapacity
	b.samples[i].DT += s.DT
	b.samples[i].DX += s.DX
	b.samples[i].DY += s.DY
	b.samples[i].Time = s.Time
}

// at returns the i-th newest sample (0 = newest).
func (b *velocityBuffer) at(i int) VelocitySample {
	return b.samples[(b.start+b.n-1-i)%velocityCapacity]
}

// mean averages per-sample velocities from the newest sample backwards
// until window milliseconds are covered. Samples shorter than a frame carry
// no usable timing and are skipped. Result is in pixels per ms.
func (b *velocityBuffer) mean(window time.Duration) Vec2 {
	limit := float64(window) / float64(time.Millisecond)
	var sum Vec2
	var total float64
	count := 0
	for i := 0; i < b.n; i++ {
		s := b.at(i)
		if s.DT < sameFrameMillis {
			continue
		}
		sum = sum.Add(Vec2{s.DX / s.DT, s.DY / s.DT})
		count++
		total += s.DT
		if total >= limit {
			break
		}
	}
	if count == 0 {
		return Vec2{}
	}
	return sum.Scale(1 / float64(count))
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// startObserving clears recorded velocities and resets the timing baseline.
func (s *Scatter) startObserving() {
	s.velocities.reset()
	s.lastSample = s.stage.clock.Now()
}

// addVelocity records the translation of one gesture step. Steps from the
// same frame are summed into one sample.
func (s *Scatter) addVelocity(d Vec2) {
	now := s.stage.clock.Now()
	dt := millis(now.Sub(s.lastSample))
	s.lastSample = now
	sample := VelocitySample{DT: dt, DX: d.X, DY: d.Y, Time: now}
	if dt < sameFrameMillis && s.velocities.len() > 0 {
		s.velocities.mergeNewest(sample)
		return
	}
	s.velocities.add(sample)
}

// releaseVelocity pads the buffer with a zero-movement sample covering the
// time since the last movement, then returns the mean velocity over the
// trailing window.
func (s *Scatter) releaseVelocity() Vec2 {
	now := s.stage.clock.Now()
	if dt := millis(now.Sub(s.lastSample)); dt >= sameFrameMillis {
		s.velocities.add(VelocitySample{DT: dt, Time: now})
		s.lastSample = now
	}
	return s.velocities.mean(velocityWindow)
}
