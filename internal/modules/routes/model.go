// README: Persisted route records for the dashboard, activity, and my-routes screens.
package routes

import "time"

// RoutePoint is one point of a saved route's path.
type RoutePoint struct {
	ID        string  `json:"id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Elevation float64 `json:"elevation,omitempty"`
}

// Route is a saved route. Records are created whole and deleted whole;
// there is no update-in-place. CreatedAt is serialized as RFC 3339.
type Route struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Points         []RoutePoint `json:"points"`
	DistanceKm     float64      `json:"distance"`
	ElevationGainM float64      `json:"elevationGain"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// EstimatedDuration is the displayed ride time for a saved route, assuming
// a 20 km/h cruising speed.
func (r Route) EstimatedDuration() time.Duration {
	return time.Duration(r.DistanceKm / 20 * float64(time.Hour))
}

// Totals aggregates the stats shown on the dashboard.
type Totals struct {
	Count          int     `json:"count"`
	DistanceKm     float64 `json:"distance"`
	ElevationGainM float64 `json:"elevationGain"`
}
