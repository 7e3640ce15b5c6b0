// README: Search module types: suggestions, retrieved places, request options.
package search

import "github.com/YukiAminaka/cycle-route/internal/types"

// Suggestion is one candidate place returned by a suggest call. It is
// ephemeral: produced by Suggest, consumed by at most one Retrieve.
type Suggestion struct {
	Name       string `json:"name"`
	Context    string `json:"context"`
	ExternalID string `json:"mapbox_id"`
}

// RetrievedPlace is a suggestion resolved to a coordinate and label.
// Coord is nil when the upstream service returns no resolvable point;
// callers must treat that as "nothing to do", not as an error.
type RetrievedPlace struct {
	Coord *types.LngLat `json:"coord,omitempty"`
	Label string        `json:"label"`
}

// SuggestOptions refine a suggest call. Zero values fall back to the
// defaults used by the route planner (Japanese results biased to Japan).
type SuggestOptions struct {
	Proximity *types.LngLat
	Country   string
	Language  string
	Limit     int
	Types     string
}

const (
	defaultLimit    = 8
	defaultLanguage = "ja"
	defaultCountry  = "JP"
	defaultTypes    = "address,street,neighborhood,locality,place,poi"
)
