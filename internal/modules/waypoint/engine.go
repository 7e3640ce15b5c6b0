// README: Engine adapter contract for the external routing provider.
package waypoint

import "github.com/YukiAminaka/cycle-route/internal/types"

// Engine is the external routing engine adapter. The session issues exactly
// one mutation call per local mutation and never reads the engine's waypoint
// list back; route results arrive only through Notifications.
//
// Mutations are synchronous bookkeeping; the route computation they trigger
// completes later and is reported as a RouteComputed value. An Engine must
// stamp notifications with a sequence number that increases with each
// computation it starts.
type Engine interface {
	InsertAt(coord types.LngLat, index int)
	RemoveAt(index int)
	ReplaceAll(coords []types.LngLat)
	Clear()

	// Notifications delivers route-computed events. The channel is closed
	// when the engine is shut down.
	Notifications() <-chan RouteComputed
}
