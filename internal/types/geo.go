// README: Common geographic value objects used across modules.
package types

import "math"

type ID string

// LngLat is an ordered (longitude, latitude) pair, matching the wire order
// used by the search and directions providers.
type LngLat struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Valid reports whether both components are finite numbers.
func (p LngLat) Valid() bool {
	return !math.IsNaN(p.Lng) && !math.IsInf(p.Lng, 0) &&
		!math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0)
}
