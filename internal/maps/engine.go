// README: Shared routing-engine plumbing: waypoint bookkeeping, sequencing, notifications.
package maps

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/YukiAminaka/cycle-route/internal/modules/waypoint"
	"github.com/YukiAminaka/cycle-route/internal/types"
)

const fetchTimeout = 15 * time.Second

// fetchFunc asks a directions provider for candidate routes through the
// given ordered waypoints.
type fetchFunc func(ctx context.Context, coords []types.LngLat) ([]waypoint.Route, error)

// baseEngine implements waypoint.Engine bookkeeping for both providers.
// Each mutation snapshots the waypoint list under a fresh sequence number
// and recomputes asynchronously; results for superseded snapshots are still
// delivered and resolved by the session's last-writer-wins rule.
type baseEngine struct {
	fetch  fetchFunc
	notify chan waypoint.RouteComputed

	mu        sync.Mutex
	waypoints []types.LngLat
	seq       uint64
	closed    bool
}

func newBaseEngine(fetch fetchFunc) *baseEngine {
	return &baseEngine{
		fetch:  fetch,
		notify: make(chan waypoint.RouteComputed, 16),
	}
}

func (e *baseEngine) InsertAt(coord types.LngLat, index int) {
	e.mu.Lock()
	if index < 0 || index > len(e.waypoints) {
		index = len(e.waypoints)
	}
	e.waypoints = append(e.waypoints, types.LngLat{})
	copy(e.waypoints[index+1:], e.waypoints[index:])
	e.waypoints[index] = coord
	e.recomputeLocked()
	e.mu.Unlock()
}

func (e *baseEngine) RemoveAt(index int) {
	e.mu.Lock()
	if index >= 0 && index < len(e.waypoints) {
		e.waypoints = append(e.waypoints[:index], e.waypoints[index+1:]...)
		e.recomputeLocked()
	}
	e.mu.Unlock()
}

func (e *baseEngine) ReplaceAll(coords []types.LngLat) {
	e.mu.Lock()
	e.waypoints = append([]types.LngLat(nil), coords...)
	e.recomputeLocked()
	e.mu.Unlock()
}

func (e *baseEngine) Clear() {
	e.mu.Lock()
	e.waypoints = nil
	e.recomputeLocked()
	e.mu.Unlock()
}

func (e *baseEngine) Notifications() <-chan waypoint.RouteComputed {
	return e.notify
}

// Close stops the engine. No notifications are emitted afterwards.
func (e *baseEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	close(e.notify)
}

// recomputeLocked starts one route computation for the current list.
// Fewer than two waypoints is not a routable request: an empty
// notification is emitted so the sequence still advances past any
// in-flight computation for a longer, now stale, list.
func (e *baseEngine) recomputeLocked() {
	e.seq++
	seq := e.seq
	if len(e.waypoints) < 2 {
		go e.emit(waypoint.RouteComputed{Seq: seq})
		return
	}
	coords := append([]types.LngLat(nil), e.waypoints...)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		rts, err := e.fetch(ctx, coords)
		if err != nil {
			log.Printf("maps: directions fetch failed: %v", err)
			return
		}
		e.emit(waypoint.RouteComputed{Seq: seq, Routes: rts})
	}()
}

func (e *baseEngine) emit(n waypoint.RouteComputed) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.notify <- n:
	default:
		log.Printf("maps: notification backlog, dropping seq %d", n.Seq)
	}
}
