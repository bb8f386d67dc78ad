package scatter

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Configuration errors returned by NewScatter.
var (
	ErrNoContainer       = errors.New("scatter: no owning stage")
	ErrInvalidSize       = errors.New("scatter: width and height must be positive")
	ErrInvalidScaleRange = errors.New("scatter: invalid scale range")
)

// Config is the immutable per-object configuration. Start from
// DefaultConfig; Width and Height are required.
type Config struct {
	Name   string  `json:"name,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Pivot is the object-local rotation origin. Nil selects the center.
	Pivot *Vec2 `json:"pivot,omitempty"`

	// Position is the initial stage-space position of the pivot.
	Position   Vec2    `json:"position"`
	StartScale float64 `json:"startScale"`
	Rotation   float64 `json:"rotation"`

	MinScale      float64 `json:"minScale"`
	MaxScale      float64 `json:"maxScale"`
	OverdoScaling float64 `json:"overdoScaling"`

	Translatable bool `json:"translatable"`
	Scalable     bool `json:"scalable"`
	Rotatable    bool `json:"rotatable"`
	MovableX     bool `json:"movableX"`
	MovableY     bool `json:"movableY"`

	ThrowDamping     float64 `json:"throwDamping"`
	CollisionDamping float64 `json:"collisionDamping"`
	ThrowVisibility  float64 `json:"throwVisibility"`
	KeepOnStage      bool    `json:"keepOnStage"`
	AutoBringToFront bool    `json:"autoBringToFront"`
}

// DefaultConfig returns a configuration with every manipulation enabled.
func DefaultConfig() Config {
	return Config{
		StartScale:       1,
		MinScale:         0.1,
		MaxScale:         1.0,
		OverdoScaling:    1.5,
		Translatable:     true,
		Scalable:         true,
		Rotatable:        true,
		MovableX:         true,
		MovableY:         true,
		ThrowDamping:     0.95,
		CollisionDamping: 0.5,
		ThrowVisibility:  44,
		KeepOnStage:      true,
		AutoBringToFront: true,
	}
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 || math.IsNaN(c.Width) || math.IsNaN(c.Height) {
		return ErrInvalidSize
	}
	if c.MinScale <= 0 || c.MaxScale < c.MinScale || c.OverdoScaling < 1 || c.StartScale <= 0 {
		return ErrInvalidScaleRange
	}
	return nil
}

// dragPhase is the manipulation state of a scatter object.
type dragPhase uint8

const (
	phaseIdle dragPhase = iota
	phaseDragging
	phaseThrowing
)

// Scatter is a manipulable 2D object confined to a stage. It is dragged,
// zoomed and rotated by gestures and by the programmatic Move, MoveTo,
// CenterAt, Zoom and RotateDegrees calls, which share one composition path.
type Scatter struct {
	// Identity
	ID       uint32
	Name     string
	UserData any
	EntityID uint32

	// Callbacks
	OnTransform func(TransformEvent)
	OnTap       func(TapContext)
	OnLongPress func(TapContext)
	OnThrowEnd  func(*Scatter)

	cfg     Config
	pivot   Vec2
	state   State
	initial State
	stage   *Stage
	phase   dragPhase

	velocities velocityBuffer
	lastSample time.Time

	velocity  Vec2
	throwGen  uint64
	lastFrame time.Time
}

// NewScatter creates an object on stage. A nil stage or invalid sizes and
// scale ranges are configuration errors.
func NewScatter(stage *Stage, cfg Config) (*Scatter, error) {
	if stage == nil {
		return nil, fmt.Errorf("scatter: new %q: %w", cfg.Name, ErrNoContainer)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("scatter: new %q: %w", cfg.Name, err)
	}
	pivot := Vec2{cfg.Width / 2, cfg.Height / 2}
	if cfg.Pivot != nil {
		pivot = *cfg.Pivot
	}
	st := State{
		X:        cfg.Position.X,
		Y:        cfg.Position.Y,
		Scale:    cfg.StartScale,
		Rotation: cfg.Rotation,
	}
	s := &Scatter{
		ID:      stage.nextTargetID(),
		Name:    cfg.Name,
		cfg:     cfg,
		pivot:   pivot,
		state:   st,
		initial: st,
		stage:   stage,
	}
	stage.add(s)
	return s, nil
}

// MustNewScatter is like NewScatter but panics on configuration errors.
func MustNewScatter(stage *Stage, cfg Config) *Scatter {
	s, err := NewScatter(stage, cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// Config returns the object's configuration.
func (s *Scatter) Config() Config { return s.cfg }

// State returns the current transform.
func (s *Scatter) State() State { return s.state }

// Stage returns the owning stage.
func (s *Scatter) Stage() *Stage { return s.stage }

// Pivot returns the object-local rotation origin.
func (s *Scatter) Pivot() Vec2 { return s.pivot }

// Size returns the unscaled width and height.
func (s *Scatter) Size() Vec2 { return Vec2{s.cfg.Width, s.cfg.Height} }

// IsDragging reports whether contacts are manipulating the object.
func (s *Scatter) IsDragging() bool { return s.phase == phaseDragging }

// IsThrowing reports whether an inertial throw is running.
func (s *Scatter) IsThrowing() bool { return s.phase == phaseThrowing }

// Velocity returns the current throw velocity in pixels per millisecond.
func (s *Scatter) Velocity() Vec2 { return s.velocity }

// origin returns the stage-space rotation origin.
func (s *Scatter) origin() Vec2 {
	return s.state.Position()
}

// Center returns the stage-space center of the object.
func (s *Scatter) Center() Vec2 {
	return s.LocalToStage(Vec2{s.cfg.Width / 2, s.cfg.Height / 2})
}

// Polygon returns the object's outline in stage space.
func (s *Scatter) Polygon() *Polygon {
	w, h := s.cfg.Width, s.cfg.Height
	m := s.Matrix()
	return NewPolygon([]Vec2{
		transformPoint(m, Vec2{0, 0}),
		transformPoint(m, Vec2{w, 0}),
		transformPoint(m, Vec2{w, h}),
		transformPoint(m, Vec2{0, h}),
	})
}

// --- Target ---

// TargetID returns the object's routing handle.
func (s *Scatter) TargetID() uint32 { return s.ID }

// Capture declines events a nested mapper has already claimed.
func (s *Scatter) Capture(ev Event) bool {
	return !ev.base().Claimed()
}

// OnStart begins or extends a drag: the object is raised, any throw is
// cancelled and velocity observation restarts.
func (s *Scatter) OnStart(ev Event, in *Interaction) {
	if s.cfg.AutoBringToFront {
		s.stage.BringToFront(s)
	}
	s.stopThrow()
	s.startObserving()
	if s.phase != phaseDragging {
		s.phase = phaseDragging
		s.emit(TransformEvent{Type: TransformStart, Zoom: 1, About: in.Current.Mean(), Fast: true})
	}
}

// OnMove applies the gesture delta of in.
func (s *Scatter) OnMove(ev Event, in *Interaction) {
	d := in.Delta()
	if d == nil {
		return
	}
	s.addVelocity(d.Translate)
	s.transform(*d, TransformUpdate, true)
}

// OnEnd classifies released contacts as taps or long-presses and, once the
// last contact is gone, ends the drag and starts a throw.
func (s *Scatter) OnEnd(ev Event, in *Interaction) {
	for _, id := range in.Ended.IDs() {
		ctx := TapContext{
			Target: s, Contact: id, Point: in.Ended[id], Event: ev,
			EntityID: s.EntityID, UserData: s.UserData,
		}
		switch {
		case in.IsTap(id):
			s.fireTap(ctx, false)
		case in.IsLongPress(id):
			s.fireTap(ctx, true)
		}
	}
	if !in.IsFinished() || s.phase != phaseDragging {
		return
	}
	s.phase = phaseIdle
	s.emit(TransformEvent{Type: TransformEnd, Zoom: 1, About: s.origin(), Fast: true})
	s.bounceScale()
	s.startThrow()
}

// OnMouseWheel zooms by one step about the wheel position.
func (s *Scatter) OnMouseWheel(ev *WheelEvent) {
	if ev.DeltaY == 0 {
		return
	}
	zoom := wheelZoomStep
	if ev.DeltaY > 0 {
		zoom = 1 / wheelZoomStep
	}
	about := s.stage.MapPositionToPoint(Vec2{ev.X, ev.Y})
	s.transform(Delta{Zoom: zoom, About: about}, TransformZoom, true)
	s.bounceScale()
}

// wheelZoomStep is the zoom factor of one wheel notch.
const wheelZoomStep = 1.1

func (s *Scatter) fireTap(ctx TapContext, long bool) {
	if long {
		if s.OnLongPress != nil {
			s.OnLongPress(ctx)
		}
	} else if s.OnTap != nil {
		s.OnTap(ctx)
	}
	s.stage.fireTap(ctx, long)
}

// --- Composition ---

// clampScale limits scale to the soft range extended by OverdoScaling.
func (s *Scatter) clampScale(scale float64) float64 {
	lo := s.cfg.MinScale / s.cfg.OverdoScaling
	hi := s.cfg.MaxScale * s.cfg.OverdoScaling
	return math.Max(lo, math.Min(scale, hi))
}

// gate zeroes translation on locked axes.
func (s *Scatter) gate(d Vec2) Vec2 {
	if !s.cfg.Translatable {
		return Vec2{}
	}
	if !s.cfg.MovableX {
		d.X = 0
	}
	if !s.cfg.MovableY {
		d.Y = 0
	}
	return d
}

// transform composes d into the state so that d.About stays fixed under
// the zoom and rotation, then emits a TransformEvent of type typ.
func (s *Scatter) transform(d Delta, typ TransformType, fast bool) {
	translate := s.gate(d.Translate)
	zoom := d.Zoom
	if !s.cfg.Scalable || zoom <= 0 || math.IsNaN(zoom) {
		zoom = 1
	}
	rotate := d.Rotate
	if !s.cfg.Rotatable || math.IsNaN(rotate) {
		rotate = 0
	}
	if zoom == 1 && rotate == 0 {
		s.move(translate, typ, fast)
		return
	}

	origin := s.origin()
	anchor := d.About
	beta := Angle(anchor, origin)
	dist := Dist(anchor, origin)

	newScale := s.clampScale(s.state.Scale * zoom)
	zoom = newScale / s.state.Scale
	newOrigin := Arc(anchor, beta+rotate, dist*zoom)
	offset := newOrigin.Sub(origin).Add(translate)

	s.state.X += offset.X
	s.state.Y += offset.Y
	s.state.Scale = newScale
	s.state.Rotation = NormalizeAngle(s.state.Rotation + rotate)

	s.emit(TransformEvent{
		Type: typ, Translate: offset, Zoom: zoom, Rotate: rotate,
		About: anchor, Fast: fast,
	})
}

// move translates the object by an already gated delta.
func (s *Scatter) move(d Vec2, typ TransformType, fast bool) {
	if d.IsZero() {
		return
	}
	s.state.X += d.X
	s.state.Y += d.Y
	s.emit(TransformEvent{
		Type: typ, Translate: d, Zoom: 1, About: s.origin(), Fast: fast,
	})
}

func (s *Scatter) emit(ev TransformEvent) {
	ev.Target = s
	ev.State = s.state
	if s.OnTransform != nil {
		s.OnTransform(ev)
	}
	s.stage.fireTransform(ev)
}

// bounceScale animates the scale back into [MinScale, MaxScale] after it
// was pushed into the overdo range.
func (s *Scatter) bounceScale() {
	target := math.Max(s.cfg.MinScale, math.Min(s.state.Scale, s.cfg.MaxScale))
	if target == s.state.Scale || !s.cfg.Scalable {
		return
	}
	s.transform(Delta{Zoom: target / s.state.Scale, About: s.origin()}, TransformUpdate, false)
}

// --- Programmatic API ---

// Move translates the object by delta.
func (s *Scatter) Move(delta Vec2) {
	s.transform(Delta{Translate: delta, Zoom: 1, About: s.origin()}, TransformUpdate, false)
}

// MoveTo moves the pivot to p.
func (s *Scatter) MoveTo(p Vec2) {
	s.Move(p.Sub(s.origin()))
}

// CenterAt moves the object so that its center is at p.
func (s *Scatter) CenterAt(p Vec2) {
	s.Move(p.Sub(s.Center()))
}

// Zoom scales the object to scale, keeping about fixed. The scale is
// limited to the overdo range.
func (s *Scatter) Zoom(scale float64, about Vec2) {
	if scale <= 0 {
		return
	}
	s.transform(Delta{Zoom: scale / s.state.Scale, About: about}, TransformUpdate, false)
}

// RotateDegrees rotates the object by deg degrees around anchor.
func (s *Scatter) RotateDegrees(deg float64, anchor Vec2) {
	s.transform(Delta{Zoom: 1, Rotate: Radians(NormalizeDegrees(deg)), About: anchor}, TransformUpdate, false)
}

// Reset cancels any throw and restores the initial transform.
func (s *Scatter) Reset() {
	s.stopThrow()
	s.phase = phaseIdle
	prev := s.state
	s.state = s.initial
	s.emit(TransformEvent{
		Type:      TransformReset,
		Translate: s.state.Position().Sub(prev.Position()),
		Zoom:      s.state.Scale / prev.Scale,
		Rotate:    NormalizeAngle(s.state.Rotation - prev.Rotation),
		About:     s.origin(),
	})
}
