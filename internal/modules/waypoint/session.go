// README: Waypoint session: keeps the local waypoint list and the external engine in sync.
package waypoint

import (
	"errors"
	"sync"

	"github.com/YukiAminaka/cycle-route/internal/types"
)

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrIndexOutOfRange   = errors.New("waypoint index out of range")
)

// Session owns the ordered waypoint sequence and mirrors every mutation
// into the attached Engine, one adapter call per local mutation. The local
// sequence is authoritative for callers; the engine's internal list is
// never read back. Route geometry flows the other way, as asynchronous
// RouteComputed notifications from which the cue list is derived.
//
// While no engine is attached (map still loading, credential missing) all
// mutations are quiet no-ops.
type Session struct {
	mu            sync.Mutex
	engine        Engine
	attachGen     uint64
	waypoints     []types.LngLat
	cues          []Cue
	lastSeq       uint64
	onRouteChange func([]Cue)
}

func NewSession(onRouteChange func([]Cue)) *Session {
	return &Session{onRouteChange: onRouteChange}
}

// Attach connects an engine and starts consuming its notifications.
// Attaching is idempotent: a previously attached engine's subscription is
// abandoned first so events are never handled twice. The new engine is
// brought up to date with the current waypoint list.
//
// The session does not own the engine. The caller must close a replaced
// engine after detaching it; that closes its notification channel, which
// is what ends the delivery goroutine started here.
func (s *Session) Attach(engine Engine) {
	s.mu.Lock()
	s.attachGen++
	gen := s.attachGen
	s.engine = engine
	// Each engine numbers its computations from 1, so the stale-result
	// guard must restart with it.
	s.lastSeq = 0
	wps := append([]types.LngLat(nil), s.waypoints...)
	s.mu.Unlock()

	if engine == nil {
		return
	}
	switch len(wps) {
	case 0:
		engine.Clear()
	default:
		engine.ReplaceAll(wps)
	}

	go func() {
		for n := range engine.Notifications() {
			s.applyRoute(gen, n)
		}
	}()
}

// Detach drops the engine. Pending notifications from it are discarded.
func (s *Session) Detach() {
	s.Attach(nil)
}

// Add appends a waypoint to the end of the sequence and instructs the
// engine to insert at the same index.
func (s *Session) Add(coord types.LngLat) error {
	if !coord.Valid() {
		return ErrInvalidCoordinate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return nil
	}
	index := len(s.waypoints)
	s.waypoints = append(s.waypoints, coord)
	s.engine.InsertAt(coord, index)
	return nil
}

// Remove deletes the waypoint at index from both the local sequence and
// the engine. Out-of-range indices are rejected before either side is
// touched, so the two lists cannot diverge.
func (s *Session) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return nil
	}
	if index < 0 || index >= len(s.waypoints) {
		return ErrIndexOutOfRange
	}
	s.waypoints = append(s.waypoints[:index], s.waypoints[index+1:]...)
	s.engine.RemoveAt(index)
	return nil
}

// Undo removes the last waypoint. Going to zero fully clears the engine (a
// zero- or one-point request is not a routable route); a single survivor is
// pushed as a one-point list with no route computation expected.
func (s *Session) Undo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil || len(s.waypoints) == 0 {
		return
	}
	s.waypoints = s.waypoints[:len(s.waypoints)-1]
	if len(s.waypoints) == 0 {
		s.engine.Clear()
		return
	}
	s.engine.ReplaceAll(append([]types.LngLat(nil), s.waypoints...))
}

// ClearAll empties both the local sequence and the engine. Idempotent.
func (s *Session) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return
	}
	s.waypoints = nil
	s.engine.Clear()
}

// Waypoints returns a copy of the current sequence.
func (s *Session) Waypoints() []types.LngLat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.LngLat(nil), s.waypoints...)
}

// Cues returns a copy of the cue list derived from the last applied route.
func (s *Session) Cues() []Cue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Cue(nil), s.cues...)
}

// Attached reports whether an engine is currently connected.
func (s *Session) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine != nil
}

// applyRoute consumes one route-computed notification. Results from a
// detached engine or from a computation older than the last applied one
// are dropped: last writer wins, no merging.
func (s *Session) applyRoute(gen uint64, n RouteComputed) {
	s.mu.Lock()
	if gen != s.attachGen || n.Seq < s.lastSeq {
		s.mu.Unlock()
		return
	}
	s.lastSeq = n.Seq
	if len(n.Routes) == 0 {
		// Nothing to update; the previous cue list stays.
		s.mu.Unlock()
		return
	}
	cues := cuesFromRoute(n.Routes[0])
	s.cues = cues
	notify := s.onRouteChange
	s.mu.Unlock()

	if notify != nil {
		notify(append([]Cue(nil), cues...))
	}
}
