package scatter

import (
	"time"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Stage, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// Source delivers raw host events. Capabilities is consulted once, when the
// source is attached, to select the event model.
type Source interface {
	Capabilities() Capabilities
	// Poll appends the events received since the last call to buf.
	Poll(buf []Event) []Event
}

// StageConfig configures a Stage.
type StageConfig struct {
	// Bounds is the rectangular stage area. Ignored when Polygon is set.
	Bounds Rect
	// Polygon is an arbitrary convex stage area.
	Polygon *Polygon
	// Element names the input element the stage's mapper is bound to.
	Element ElementID
	// Capabilities selects the event model when no Source is attached.
	// Zero means CapPointer, the model injected events use.
	Capabilities Capabilities

	TapDistance   float64
	LongPressTime time.Duration
	// Clock defaults to SystemClock.
	Clock Clock
}

// Stage is the top-level object that owns scatter objects, the stage
// bounds, input mapping and the frame scheduler. Everything runs on the
// caller's goroutine: call Update once per frame.
type Stage struct {
	store EntityStore
	debug bool

	objects []*Scatter
	bounds  *Polygon
	view    [6]float64
	invView [6]float64
	nextID  uint32

	clock     Clock
	mapper    *Mapper
	router    *Router
	source    Source
	evBuf     []Event
	scheduler Scheduler

	handlers    handlerRegistry
	injectQueue [][]Event
	testRunner  *ScriptRunner

	element ElementID
}

// NewStage creates an empty stage.
func NewStage(cfg StageConfig) *Stage {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock
	}
	s := &Stage{
		clock:   clock,
		view:    identityTransform,
		invView: identityTransform,
		element: cfg.Element,
	}
	switch {
	case cfg.Polygon != nil:
		s.bounds = clonePolygon(cfg.Polygon)
	case cfg.Bounds.Width > 0 && cfg.Bounds.Height > 0:
		s.bounds = cfg.Bounds.Polygon()
	}

	s.router = NewRouter(s.FindTarget, clock)
	s.router.MapPoint = func(_ Target, p Vec2) Vec2 { return s.MapPositionToPoint(p) }
	if cfg.TapDistance > 0 {
		s.router.TapDistance = cfg.TapDistance
	}
	if cfg.LongPressTime > 0 {
		s.router.LongPressTime = cfg.LongPressTime
	}
	caps := cfg.Capabilities
	if caps == 0 {
		caps = CapPointer
	}
	s.resetMapper(caps)
	return s
}

func clonePolygon(p *Polygon) *Polygon {
	pts := make([]Vec2, len(p.Points))
	copy(pts, p.Points)
	return &Polygon{Center: p.Center, Points: pts}
}

func (s *Stage) resetMapper(caps Capabilities) {
	s.mapper = NewRoutingMapper(caps, s.router, s.clock)
	s.mapper.Element = s.element
	s.mapper.Local = s.MapPositionToPoint
}

// SetSource attaches the host event source and selects the event model from
// its capabilities. Attach the source before input begins.
func (s *Stage) SetSource(src Source) {
	s.source = src
	if src != nil {
		s.resetMapper(src.Capabilities())
	}
}

// Mapper returns the stage's event mapper.
func (s *Stage) Mapper() *Mapper { return s.mapper }

// Router returns the stage's gesture router.
func (s *Stage) Router() *Router { return s.router }

// Clock returns the stage clock.
func (s *Stage) Clock() Clock { return s.clock }

// Scheduler returns the frame scheduler driving throws.
func (s *Stage) Scheduler() *Scheduler { return &s.scheduler }

// Bounds returns a copy of the stage polygon, or nil if the stage is
// unbounded.
func (s *Stage) Bounds() *Polygon {
	if s.bounds == nil {
		return nil
	}
	return clonePolygon(s.bounds)
}

// SetView sets the mapping from stage space to device space: stage points
// are scaled by scale and then offset. Device input is mapped back through
// the inverse.
func (s *Stage) SetView(offset Vec2, scale float64) {
	s.view = [6]float64{scale, 0, 0, scale, offset.X, offset.Y}
	s.invView = invertAffine(s.view)
}

// View returns the stage-to-device matrix.
func (s *Stage) View() [6]float64 { return s.view }

// MapPositionToPoint maps a device point into stage space.
func (s *Stage) MapPositionToPoint(global Vec2) Vec2 {
	return transformPoint(s.invView, global)
}

// --- Objects ---

func (s *Stage) nextTargetID() uint32 {
	s.nextID++
	return s.nextID
}

func (s *Stage) add(o *Scatter) {
	s.objects = append(s.objects, o)
}

// Objects returns the stage's objects from bottom to top. The returned
// slice MUST NOT be mutated.
func (s *Stage) Objects() []*Scatter {
	return s.objects
}

// Remove detaches o from the stage, releases the contacts manipulating it
// and cancels its throw.
func (s *Stage) Remove(o *Scatter) {
	for i, c := range s.objects {
		if c == o {
			s.router.Unbind(o.ID)
			o.stopThrow()
			o.phase = phaseIdle
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return
		}
	}
}

// BringToFront moves o to the top of the z-order.
func (s *Stage) BringToFront(o *Scatter) {
	n := len(s.objects)
	for i, c := range s.objects {
		if c == o {
			if i == n-1 {
				return
			}
			copy(s.objects[i:], s.objects[i+1:])
			s.objects[n-1] = o
			return
		}
	}
}

// FindTarget returns the topmost object containing the stage-space point
// local, or nil.
func (s *Stage) FindTarget(ev Event, local, global Vec2) Target {
	for i := len(s.objects) - 1; i >= 0; i-- {
		o := s.objects[i]
		if o.Polygon().Contains(local) {
			return o
		}
	}
	return nil
}

// --- Frame loop ---

// Handle feeds one host event into the stage's mapper.
func (s *Stage) Handle(ev Event) {
	s.mapper.Handle(ev)
}

// Update processes pending input and advances running throws by one frame.
func (s *Stage) Update() {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if s.source != nil {
		s.evBuf = s.source.Poll(s.evBuf[:0])
		for i, ev := range s.evBuf {
			s.mapper.Handle(ev)
			s.evBuf[i] = nil
		}
		stats.events += len(s.evBuf)
	}
	stats.events += s.processInjectedInput()

	if s.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	stats.steps = s.scheduler.Len()
	s.scheduler.Tick(s.clock.Now())

	if s.debug {
		stats.stepTime = time.Since(t0)
		s.debugLog(stats)
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Stage) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables per-update stats logging at debug level.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// --- Event fan-out ---

func (s *Stage) emit(ev InteractionEvent) {
	if s.store != nil {
		s.store.EmitEvent(ev)
	}
}

func (s *Stage) fireTransform(ev TransformEvent) {
	for _, h := range s.handlers.transform {
		h.fn(ev)
	}
	s.emit(InteractionEvent{
		Type:      EventTransform,
		EntityID:  ev.Target.EntityID,
		TargetID:  ev.Target.ID,
		Transform: ev.Type,
		Translate: ev.Translate,
		Zoom:      ev.Zoom,
		Rotate:    ev.Rotate,
		About:     ev.About,
		Fast:      ev.Fast,
		State:     ev.State,
	})
}

func (s *Stage) fireTap(ctx TapContext, long bool) {
	typ := EventTap
	list := s.handlers.tap
	if long {
		typ = EventLongPress
		list = s.handlers.longPress
	}
	for _, h := range list {
		h.fn(ctx)
	}
	s.emit(InteractionEvent{
		Type:     typ,
		EntityID: ctx.EntityID,
		TargetID: ctx.Target.ID,
		Point:    ctx.Point,
		State:    ctx.Target.state,
	})
}

func (s *Stage) fireThrowStart(o *Scatter, v Vec2) {
	s.emit(InteractionEvent{
		Type:     EventThrowStart,
		EntityID: o.EntityID,
		TargetID: o.ID,
		Velocity: v,
		State:    o.state,
	})
}

func (s *Stage) fireThrowEnd(o *Scatter) {
	for _, h := range s.handlers.throwEnd {
		h.fn(o)
	}
	s.emit(InteractionEvent{
		Type:     EventThrowEnd,
		EntityID: o.EntityID,
		TargetID: o.ID,
		State:    o.state,
	})
}
