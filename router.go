package scatter

import "time"

// Target is an object that receives gestures. Each target sees only its own
// sub-interaction, so concurrently manipulated targets compute independent
// deltas from one input surface.
type Target interface {
	// TargetID is the stable handle routing tables are keyed by.
	TargetID() uint32
	// Capture is asked before tracking begins. Returning false ignores the
	// event for this target.
	Capture(ev Event) bool
	OnStart(ev Event, in *Interaction)
	OnMove(ev Event, in *Interaction)
	OnEnd(ev Event, in *Interaction)
}

// WheelTarget is implemented by targets that handle scroll-wheel gestures.
type WheelTarget interface {
	Target
	OnMouseWheel(ev *WheelEvent)
}

// FindTargetFunc hit-tests a new contact. local is the contact mapped into
// the mapper's coordinate space, global the raw device position. It returns
// nil when nothing is hit.
type FindTargetFunc func(ev Event, local, global Vec2) Target

// MapPointFunc maps a raw device point into a target's coordinate space.
type MapPointFunc func(t Target, global Vec2) Vec2

// route is a target's slot in the routing table.
type route struct {
	target Target
	in     *Interaction
}

// Router binds contacts to targets and maintains one sub-interaction per
// target. Tables are keyed by TargetID; the router never owns targets.
type Router struct {
	FindTarget FindTargetFunc
	MapPoint   MapPointFunc

	TapDistance   float64
	LongPressTime time.Duration

	clock   Clock
	routes  map[ContactID]uint32
	targets map[uint32]*route
	touched []uint32
}

// NewRouter creates a router that hit-tests new contacts with find.
func NewRouter(find FindTargetFunc, clock Clock) *Router {
	if clock == nil {
		clock = SystemClock
	}
	return &Router{
		FindTarget:    find,
		TapDistance:   DefaultTapDistance,
		LongPressTime: DefaultLongPressTime,
		clock:         clock,
		routes:        map[ContactID]uint32{},
		targets:       map[uint32]*route{},
	}
}

// TargetOf returns the target bound to id, or nil.
func (r *Router) TargetOf(id ContactID) Target {
	tid, ok := r.routes[id]
	if !ok {
		return nil
	}
	return r.targets[tid].target
}

// SubInteraction returns the sub-interaction of the target with the given
// handle, or nil if no contact is bound to it.
func (r *Router) SubInteraction(targetID uint32) *Interaction {
	if rt, ok := r.targets[targetID]; ok {
		return rt.in
	}
	return nil
}

// ActiveTargets returns the number of targets with at least one bound
// contact.
func (r *Router) ActiveTargets() int {
	return len(r.targets)
}

func (r *Router) mapPoint(t Target, p Vec2) Vec2 {
	if r.MapPoint == nil {
		return p
	}
	return r.MapPoint(t, p)
}

// touch records tid as affected by the current event, preserving first-touch
// order so callbacks fire deterministically.
func (r *Router) touch(tid uint32) {
	for _, t := range r.touched {
		if t == tid {
			return
		}
	}
	r.touched = append(r.touched, tid)
}

// start binds new contacts to the targets under them and fires OnStart.
// local maps raw points into the mapper's space for hit testing.
func (r *Router) start(ev Event, points PointMap, local func(Vec2) Vec2) {
	r.touched = r.touched[:0]
	for _, id := range points.IDs() {
		p := points[id]
		if _, bound := r.routes[id]; bound {
			continue
		}
		if r.FindTarget == nil {
			continue
		}
		t := r.FindTarget(ev, local(p), p)
		if t == nil || !t.Capture(ev) {
			continue
		}
		tid := t.TargetID()
		rt, ok := r.targets[tid]
		if !ok {
			in := NewInteraction(r.clock)
			in.TapDistance = r.TapDistance
			in.LongPressTime = r.LongPressTime
			rt = &route{target: t, in: in}
			r.targets[tid] = rt
			Logger().Debug("scatter: bind target", "target", tid, "contact", string(id))
		}
		r.routes[id] = tid
		rt.in.Update(id, r.mapPoint(t, p))
		r.touch(tid)
	}
	for _, tid := range r.touched {
		if rt, ok := r.targets[tid]; ok {
			rt.target.OnStart(ev, rt.in)
		}
	}
}

// move forwards moved contacts to their targets, fires OnMove and then
// commits each affected sub-interaction's baseline.
func (r *Router) move(ev Event, points PointMap) {
	r.touched = r.touched[:0]
	for _, id := range points.IDs() {
		tid, ok := r.routes[id]
		if !ok {
			continue
		}
		rt := r.targets[tid]
		rt.in.Update(id, r.mapPoint(rt.target, points[id]))
		r.touch(tid)
	}
	for _, tid := range r.touched {
		if rt, ok := r.targets[tid]; ok {
			rt.target.OnMove(ev, rt.in)
		}
	}
	for _, tid := range r.touched {
		if rt, ok := r.targets[tid]; ok {
			rt.in.UpdatePrevious()
		}
	}
}

// end releases contacts, fires OnEnd and unbinds them. A target's
// sub-interaction is dropped once no contact maps to it.
func (r *Router) end(ev Event, points PointMap) {
	r.touched = r.touched[:0]
	var ended []ContactID
	for _, id := range points.IDs() {
		tid, ok := r.routes[id]
		if !ok {
			continue
		}
		rt := r.targets[tid]
		rt.in.Stop(id, r.mapPoint(rt.target, points[id]))
		ended = append(ended, id)
		r.touch(tid)
	}
	for _, tid := range r.touched {
		if rt, ok := r.targets[tid]; ok {
			rt.target.OnEnd(ev, rt.in)
		}
	}
	for _, id := range ended {
		tid, ok := r.routes[id]
		if !ok {
			continue
		}
		r.targets[tid].in.Finish(id)
		delete(r.routes, id)
	}
	for _, tid := range r.touched {
		if _, ok := r.targets[tid]; ok && !r.bound(tid) {
			delete(r.targets, tid)
			Logger().Debug("scatter: release target", "target", tid)
		}
	}
}

// Unbind drops every contact bound to the target with the given handle
// along with its sub-interaction. Later events from those contacts are
// ignored until they are released.
func (r *Router) Unbind(targetID uint32) {
	if _, ok := r.targets[targetID]; !ok {
		return
	}
	for id, tid := range r.routes {
		if tid == targetID {
			delete(r.routes, id)
		}
	}
	delete(r.targets, targetID)
	Logger().Debug("scatter: unbind target", "target", targetID)
}

// bound reports whether any contact still maps to tid.
func (r *Router) bound(tid uint32) bool {
	for _, t := range r.routes {
		if t == tid {
			return true
		}
	}
	return false
}

// wheel routes a wheel event to the target under its position.
func (r *Router) wheel(ev *WheelEvent, local func(Vec2) Vec2) {
	if r.FindTarget == nil {
		return
	}
	p := Vec2{ev.X, ev.Y}
	t := r.FindTarget(ev, local(p), p)
	if wt, ok := t.(WheelTarget); ok {
		wt.OnMouseWheel(ev)
	}
}
