package remote

import (
	"errors"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/phanxgames/scatter"
)

// DefaultBuffer is the number of events a Source holds between polls.
const DefaultBuffer = 256

// Config configures a Source.
type Config struct {
	// Capabilities reported to the stage. Zero means CapPointer.
	Capabilities scatter.Capabilities
	// Element is stamped on events whose message does not name one.
	Element scatter.ElementID
	// Buffer is the event channel capacity. Zero means DefaultBuffer.
	Buffer int
	// Clock timestamps received events. Defaults to scatter.SystemClock.
	Clock scatter.Clock
	// CheckOrigin is passed to the websocket upgrader. Nil accepts every
	// origin.
	CheckOrigin func(r *http.Request) bool
}

// Source is a scatter.Source fed by websocket clients.
type Source struct {
	caps     scatter.Capabilities
	element  scatter.ElementID
	clock    scatter.Clock
	upgrader websocket.Upgrader
	events   chan scatter.Event

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool

	dropped atomic.Int64
}

// NewSource creates a Source. Its capabilities are fixed for its lifetime.
func NewSource(cfg Config) *Source {
	if cfg.Capabilities == 0 {
		cfg.Capabilities = scatter.CapPointer
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultBuffer
	}
	if cfg.Clock == nil {
		cfg.Clock = scatter.SystemClock
	}
	if cfg.CheckOrigin == nil {
		cfg.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return &Source{
		caps:    cfg.Capabilities,
		element: cfg.Element,
		clock:   cfg.Clock,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
		events: make(chan scatter.Event, cfg.Buffer),
		conns:  map[*websocket.Conn]struct{}{},
	}
}

// Capabilities implements scatter.Source.
func (s *Source) Capabilities() scatter.Capabilities { return s.caps }

// Poll implements scatter.Source. It never blocks.
func (s *Source) Poll(buf []scatter.Event) []scatter.Event {
	for {
		select {
		case ev := <-s.events:
			buf = append(buf, ev)
		default:
			return buf
		}
	}
}

// Pending returns the number of events waiting for the next Poll.
func (s *Source) Pending() int { return len(s.events) }

// Dropped returns the number of events discarded because the buffer was
// full.
func (s *Source) Dropped() int64 { return s.dropped.Load() }

// Connections returns the number of open client connections.
func (s *Source) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// ServeHTTP upgrades the request to a websocket and reads input messages
// until the client disconnects or the Source is closed.
func (s *Source) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		scatter.Logger().Warn("remote: upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	if !s.register(ws) {
		ws.Close()
		return
	}
	scatter.Logger().Info("remote: client connected", "remote", r.RemoteAddr)
	defer func() {
		s.unregister(ws)
		ws.Close()
		scatter.Logger().Info("remote: client disconnected", "remote", r.RemoteAddr)
	}()
	s.readLoop(ws)
}

func (s *Source) readLoop(ws *websocket.Conn) {
	for {
		messageType, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				scatter.Logger().Warn("remote: read failed", "error", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		ev, err := Decode(data, scatter.EventBase{Element: s.element, Time: s.clock.Now()})
		if err != nil {
			reason := "malformed"
			if errors.Is(err, ErrUnknownType) {
				reason = "unsupported"
			}
			scatter.Logger().Warn("remote: dropped message", "reason", reason, "error", err)
			continue
		}
		select {
		case s.events <- ev:
		default:
			s.dropped.Add(1)
			scatter.Logger().Warn("remote: event buffer full, dropping event")
		}
	}
}

func (s *Source) register(ws *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[ws] = struct{}{}
	return true
}

func (s *Source) unregister(ws *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, ws)
	s.mu.Unlock()
}

// Close disconnects every client and refuses new connections.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	var first error
	for ws := range s.conns {
		if err := ws.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
