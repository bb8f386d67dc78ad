package scatter

// --- Handler registry ---

type transformHandler struct {
	id uint32
	fn func(TransformEvent)
}

type tapHandler struct {
	id uint32
	fn func(TapContext)
}

type throwHandler struct {
	id uint32
	fn func(*Scatter)
}

type handlerRegistry struct {
	transform []transformHandler
	tap       []tapHandler
	longPress []tapHandler
	throwEnd  []throwHandler
	nextID    uint32
}

// callbackKind identifies the list a CallbackHandle belongs to.
type callbackKind uint8

const (
	callbackTransform callbackKind = iota
	callbackTap
	callbackLongPress
	callbackThrowEnd
)

// CallbackHandle allows removing a registered stage-level callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind callbackKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case callbackTransform:
		h.reg.transform = removeHandler(h.reg.transform, func(e transformHandler) bool { return e.id == h.id })
	case callbackTap:
		h.reg.tap = removeHandler(h.reg.tap, func(e tapHandler) bool { return e.id == h.id })
	case callbackLongPress:
		h.reg.longPress = removeHandler(h.reg.longPress, func(e tapHandler) bool { return e.id == h.id })
	case callbackThrowEnd:
		h.reg.throwEnd = removeHandler(h.reg.throwEnd, func(e throwHandler) bool { return e.id == h.id })
	}
}

// removeHandler removes the first entry matching and clears the vacated
// slot so the callback can be collected.
func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			copy(s[i:], s[i+1:])
			var zero T
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Stage-level event registration ---

// OnTransform registers a callback for every transform of every object.
func (s *Stage) OnTransform(fn func(TransformEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.transform = append(s.handlers.transform, transformHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: callbackTransform}
}

// OnTap registers a callback for taps on any object.
func (s *Stage) OnTap(fn func(TapContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.tap = append(s.handlers.tap, tapHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: callbackTap}
}

// OnLongPress registers a callback for long-presses on any object.
func (s *Stage) OnLongPress(fn func(TapContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.longPress = append(s.handlers.longPress, tapHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: callbackLongPress}
}

// OnThrowEnd registers a callback fired when an object comes to rest after
// a gesture, with or without a throw.
func (s *Stage) OnThrowEnd(fn func(*Scatter)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.throwEnd = append(s.handlers.throwEnd, throwHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: callbackThrowEnd}
}
