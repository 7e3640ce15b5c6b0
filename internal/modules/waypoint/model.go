// README: Waypoint module types: routes, steps, cues, engine notifications.
package waypoint

import (
	"encoding/json"

	"github.com/YukiAminaka/cycle-route/internal/types"
)

// Maneuver describes the action at a step: the kind of turn, its direction
// modifier, and where on the map it happens. All fields are optional on the
// wire.
type Maneuver struct {
	Type     string        `json:"type,omitempty"`
	Modifier string        `json:"modifier,omitempty"`
	Location *types.LngLat `json:"location,omitempty"`
}

// Step is one leg segment of a computed route as delivered by the engine.
type Step struct {
	Name      string          `json:"name"`
	DistanceM float64         `json:"distance"`
	DurationS float64         `json:"duration"`
	Maneuver  Maneuver        `json:"maneuver"`
	Geometry  json.RawMessage `json:"geometry,omitempty"`
}

// Leg joins two consecutive waypoints.
type Leg struct {
	Steps []Step `json:"steps"`
}

// Route is one candidate route from the engine.
type Route struct {
	Legs      []Leg           `json:"legs"`
	DistanceM float64         `json:"distance"`
	DurationS float64         `json:"duration"`
	Geometry  json.RawMessage `json:"geometry,omitempty"`
}

// Cue is one turn-by-turn instruction derived from a route. The cue list is
// rebuilt wholesale from each route-computed notification, never patched.
type Cue struct {
	Order     int             `json:"order"`
	Road      string          `json:"road"`
	DistanceM float64         `json:"distance_m"`
	DurationS float64         `json:"duration_s"`
	Maneuver  Maneuver        `json:"maneuver"`
	Geometry  json.RawMessage `json:"geometry,omitempty"`
}

// RouteComputed is the engine's asynchronous completion notification.
// Routes carries zero or more candidates; the first is authoritative.
// Seq increases monotonically with each computation the engine starts, so
// a superseded in-flight result can be recognized and dropped.
type RouteComputed struct {
	Seq    uint64
	Routes []Route
}

// cuesFromRoute flattens the first candidate's legs into an ordered cue
// list, leg order then step order, with 0-based positions.
func cuesFromRoute(r Route) []Cue {
	var cues []Cue
	for _, leg := range r.Legs {
		for _, step := range leg.Steps {
			cues = append(cues, Cue{
				Order:     len(cues),
				Road:      step.Name,
				DistanceM: step.DistanceM,
				DurationS: step.DurationS,
				Maneuver:  step.Maneuver,
				Geometry:  step.Geometry,
			})
		}
	}
	return cues
}
