package scatter

// Mapper adapts raw host events into contact updates. The event model is
// selected once from the host capabilities. A mapper either drives a single
// Target with its own Interaction, or routes contacts through a Router to
// many targets.
type Mapper struct {
	// Element is the element the mapper is bound to. Leave events only end
	// a gesture when they come from exactly this element.
	Element ElementID
	// Local maps raw device points into the mapper's coordinate space.
	// Nil means identity.
	Local func(Vec2) Vec2

	strategy    Strategy
	target      Target
	router      *Router
	interaction *Interaction
}

// NewMapper creates a mapper that delivers all contacts to target.
func NewMapper(caps Capabilities, target Target, clock Clock) *Mapper {
	m := &Mapper{
		strategy:    SelectStrategy(caps),
		target:      target,
		interaction: NewInteraction(clock),
	}
	Logger().Debug("scatter: mapper strategy", "strategy", m.strategy.String())
	return m
}

// NewRoutingMapper creates a mapper that distributes contacts to targets
// through router.
func NewRoutingMapper(caps Capabilities, router *Router, clock Clock) *Mapper {
	m := &Mapper{
		strategy:    SelectStrategy(caps),
		router:      router,
		interaction: NewInteraction(clock),
	}
	Logger().Debug("scatter: routing mapper strategy", "strategy", m.strategy.String())
	return m
}

// Strategy returns the selected event model.
func (m *Mapper) Strategy() Strategy {
	return m.strategy
}

// Interaction returns the mapper's own contact history covering every
// contact it tracks.
func (m *Mapper) Interaction() *Interaction {
	return m.interaction
}

func (m *Mapper) local(p Vec2) Vec2 {
	if m.Local == nil {
		return p
	}
	return m.Local(p)
}

// Handle processes one host event. Events the selected model does not
// understand are ignored.
func (m *Mapper) Handle(ev Event) {
	if ev == nil {
		return
	}
	if w, ok := ev.(*WheelEvent); ok {
		m.handleWheel(w)
		return
	}
	phase, ok := eventPhase(ev)
	if !ok {
		return
	}
	points := ExtractPoints(m.strategy, ev)
	if len(points) == 0 {
		return
	}
	switch phase {
	case PhaseStart:
		m.onStart(ev, points)
	case PhaseMove:
		m.onMove(ev, m.tracked(points))
	case PhaseEnd, PhaseCancel:
		m.onEnd(ev, m.tracked(points))
	case PhaseLeave:
		if ev.base().Element == m.Element {
			m.onEnd(ev, m.tracked(points))
		}
	}
}

// tracked filters points down to contacts that have started.
func (m *Mapper) tracked(points PointMap) PointMap {
	out := PointMap{}
	for id, p := range points {
		if _, ok := m.interaction.Current[id]; ok {
			out[id] = p
		}
	}
	return out
}

func (m *Mapper) onStart(ev Event, points PointMap) {
	if m.router == nil {
		if m.target == nil || !m.target.Capture(ev) {
			return
		}
	}
	for id, p := range points {
		m.interaction.Update(id, m.local(p))
	}
	if m.router != nil {
		m.router.start(ev, points, m.local)
	} else {
		m.target.OnStart(ev, m.interaction)
	}
	ev.base().Claim()
}

func (m *Mapper) onMove(ev Event, points PointMap) {
	if len(points) == 0 {
		return
	}
	for id, p := range points {
		m.interaction.Update(id, m.local(p))
	}
	if m.router != nil {
		m.router.move(ev, points)
	} else if m.target != nil {
		m.target.OnMove(ev, m.interaction)
	}
	m.interaction.UpdatePrevious()
	ev.base().Claim()
}

func (m *Mapper) onEnd(ev Event, points PointMap) {
	if len(points) == 0 {
		return
	}
	for id, p := range points {
		m.interaction.Stop(id, m.local(p))
	}
	if m.router != nil {
		m.router.end(ev, points)
	} else if m.target != nil {
		m.target.OnEnd(ev, m.interaction)
	}
	for id := range points {
		m.interaction.Finish(id)
	}
	ev.base().Claim()
}

func (m *Mapper) handleWheel(ev *WheelEvent) {
	if m.router != nil {
		m.router.wheel(ev, m.local)
		return
	}
	if wt, ok := m.target.(WheelTarget); ok {
		wt.OnMouseWheel(ev)
	}
}
