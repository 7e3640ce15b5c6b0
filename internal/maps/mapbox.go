// README: Mapbox Directions v5 backed routing engine.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/YukiAminaka/cycle-route/internal/modules/waypoint"
	"github.com/YukiAminaka/cycle-route/internal/types"
)

const (
	mapboxDirectionsURL = "https://api.mapbox.com/directions/v5"

	ProfileCycling = "mapbox/cycling"
	ProfileWalking = "mapbox/walking"
	ProfileDriving = "mapbox/driving"
)

// MapboxEngine computes routes through the hosted Directions v5 API with
// step-level geometry, alternatives, and full overview.
type MapboxEngine struct {
	*baseEngine
	httpClient  *http.Client
	baseURL     string
	accessToken string
	profile     string
}

// NewMapboxEngine builds an engine for the given travel profile
// (ProfileCycling if empty). httpClient may be nil.
func NewMapboxEngine(accessToken, profile string, httpClient *http.Client) *MapboxEngine {
	if profile == "" {
		profile = ProfileCycling
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	e := &MapboxEngine{
		httpClient:  httpClient,
		baseURL:     mapboxDirectionsURL,
		accessToken: accessToken,
		profile:     profile,
	}
	e.baseEngine = newBaseEngine(e.fetchRoutes)
	return e
}

// WithBaseURL points the engine at a different endpoint. Used by tests.
func (e *MapboxEngine) WithBaseURL(base string) *MapboxEngine {
	e.baseURL = strings.TrimRight(base, "/")
	return e
}

func (e *MapboxEngine) fetchRoutes(ctx context.Context, coords []types.LngLat) ([]waypoint.Route, error) {
	pairs := make([]string, len(coords))
	for i, c := range coords {
		pairs[i] = fmt.Sprintf("%v,%v", c.Lng, c.Lat)
	}

	params := url.Values{}
	params.Set("access_token", e.accessToken)
	params.Set("geometries", "geojson")
	params.Set("steps", "true")
	params.Set("alternatives", "true")
	params.Set("overview", "full")

	reqURL := fmt.Sprintf("%s/%s/%s?%s", e.baseURL, e.profile,
		url.PathEscape(strings.Join(pairs, ";")), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build directions request: %w", err)
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read directions response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("directions api error: %s", resp.Status)
	}

	var payload struct {
		Routes []struct {
			Legs []struct {
				Steps []struct {
					Name     string  `json:"name"`
					Distance float64 `json:"distance"`
					Duration float64 `json:"duration"`
					Maneuver struct {
						Type     string    `json:"type"`
						Modifier string    `json:"modifier"`
						Location []float64 `json:"location"`
					} `json:"maneuver"`
					Geometry json.RawMessage `json:"geometry"`
				} `json:"steps"`
			} `json:"legs"`
			Distance float64         `json:"distance"`
			Duration float64         `json:"duration"`
			Geometry json.RawMessage `json:"geometry"`
		} `json:"routes"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	out := make([]waypoint.Route, 0, len(payload.Routes))
	for _, r := range payload.Routes {
		route := waypoint.Route{
			DistanceM: r.Distance,
			DurationS: r.Duration,
			Geometry:  r.Geometry,
		}
		for _, leg := range r.Legs {
			var steps []waypoint.Step
			for _, s := range leg.Steps {
				step := waypoint.Step{
					Name:      s.Name,
					DistanceM: s.Distance,
					DurationS: s.Duration,
					Maneuver: waypoint.Maneuver{
						Type:     s.Maneuver.Type,
						Modifier: s.Maneuver.Modifier,
					},
					Geometry: s.Geometry,
				}
				if len(s.Maneuver.Location) >= 2 {
					step.Maneuver.Location = &types.LngLat{
						Lng: s.Maneuver.Location[0],
						Lat: s.Maneuver.Location[1],
					}
				}
				steps = append(steps, step)
			}
			route.Legs = append(route.Legs, waypoint.Leg{Steps: steps})
		}
		out = append(out, route)
	}
	return out, nil
}
