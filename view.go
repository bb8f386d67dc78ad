package scatter

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ViewTweenDuration is the duration in seconds of tweened (non-fast)
// transforms.
const ViewTweenDuration float32 = 0.25

// View is the presented transform of a scatter object, as a renderer draws
// it. Fast TransformEvents are applied immediately; the others, such as
// programmatic moves and the scale bounce-back, are tweened.
//
// There is no global animation manager: call Update once per frame.
type View struct {
	Target *Scatter
	State  State

	Duration float32
	Ease     ease.TweenFunc

	tweens [4]*gween.Tween
	fields [4]*float64
	active bool
}

// NewView creates a view showing target's current state.
func NewView(target *Scatter) *View {
	v := &View{
		Target:   target,
		State:    target.State(),
		Duration: ViewTweenDuration,
		Ease:     ease.OutQuad,
	}
	v.fields = [4]*float64{&v.State.X, &v.State.Y, &v.State.Scale, &v.State.Rotation}
	return v
}

// Apply presents ev. Events for other targets are ignored.
func (v *View) Apply(ev TransformEvent) {
	if ev.Target != v.Target {
		return
	}
	if ev.Fast || v.Duration <= 0 {
		v.active = false
		v.State = ev.State
		return
	}
	to := ev.State
	// Rotate along the shorter arc.
	to.Rotation = v.State.Rotation + NormalizeAngle(to.Rotation-v.State.Rotation)
	targets := [4]float64{to.X, to.Y, to.Scale, to.Rotation}
	for i, f := range v.fields {
		v.tweens[i] = gween.New(float32(*f), float32(targets[i]), v.Duration, v.Ease)
	}
	v.active = true
}

// Animating reports whether a tween is running.
func (v *View) Animating() bool {
	return v.active
}

// Update advances running tweens by dt seconds.
func (v *View) Update(dt float32) {
	if !v.active {
		return
	}
	allDone := true
	for i, tw := range v.tweens {
		val, finished := tw.Update(dt)
		*v.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if allDone {
		v.active = false
		v.State = v.Target.State()
	}
}

// Matrix returns the presented local-to-stage matrix.
func (v *View) Matrix() [6]float64 {
	return computeObjectTransform(v.State, v.Target.Pivot())
}

// Corners returns the presented outline in stage space.
func (v *View) Corners() [4]Vec2 {
	return v.outline(v.Matrix())
}

// DeviceCorners returns the presented outline mapped through the stage's
// stage-to-device matrix.
func (v *View) DeviceCorners(view [6]float64) [4]Vec2 {
	return v.outline(multiplyAffine(view, v.Matrix()))
}

func (v *View) outline(m [6]float64) [4]Vec2 {
	size := v.Target.Size()
	return [4]Vec2{
		transformPoint(m, Vec2{0, 0}),
		transformPoint(m, Vec2{size.X, 0}),
		transformPoint(m, size),
		transformPoint(m, Vec2{0, size.Y}),
	}
}
