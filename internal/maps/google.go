// README: Google Directions backed routing engine (alternate provider).
package maps

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/YukiAminaka/cycle-route/internal/modules/waypoint"
	"github.com/YukiAminaka/cycle-route/internal/types"
)

// GoogleEngine computes routes through the Google Directions API. Its
// responses are normalized into the same leg/step shape the Mapbox engine
// produces, so the session and the cue sheet cannot tell providers apart.
type GoogleEngine struct {
	*baseEngine
	client *maps.Client
	mode   maps.Mode
}

// NewGoogleEngine builds an engine for the given travel profile. The
// profile names match the Mapbox ones; unknown profiles ride a bicycle.
func NewGoogleEngine(apiKey, profile string) (*GoogleEngine, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	mode := maps.TravelModeBicycling
	switch profile {
	case ProfileWalking:
		mode = maps.TravelModeWalking
	case ProfileDriving:
		mode = maps.TravelModeDriving
	}
	e := &GoogleEngine{client: client, mode: mode}
	e.baseEngine = newBaseEngine(e.fetchRoutes)
	return e, nil
}

func (e *GoogleEngine) fetchRoutes(ctx context.Context, coords []types.LngLat) ([]waypoint.Route, error) {
	r := &maps.DirectionsRequest{
		Origin:       latLng(coords[0]),
		Destination:  latLng(coords[len(coords)-1]),
		Mode:         e.mode,
		Language:     "ja",
		Alternatives: true,
	}
	for _, c := range coords[1 : len(coords)-1] {
		r.Waypoints = append(r.Waypoints, latLng(c))
	}

	routes, _, err := e.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}

	out := make([]waypoint.Route, 0, len(routes))
	for _, gr := range routes {
		var route waypoint.Route
		for _, leg := range gr.Legs {
			var steps []waypoint.Step
			for _, s := range leg.Steps {
				mtype, modifier := maneuverFromInstruction(stripTags(s.HTMLInstructions))
				steps = append(steps, waypoint.Step{
					DistanceM: float64(s.Distance.Meters),
					DurationS: s.Duration.Seconds(),
					Maneuver: waypoint.Maneuver{
						Type:     mtype,
						Modifier: modifier,
						Location: &types.LngLat{Lng: s.StartLocation.Lng, Lat: s.StartLocation.Lat},
					},
					Geometry: []byte(strconv.Quote(s.Polyline.Points)),
				})
			}
			route.Legs = append(route.Legs, waypoint.Leg{Steps: steps})
			route.DistanceM += float64(leg.Distance.Meters)
			route.DurationS += leg.Duration.Seconds()
		}
		out = append(out, route)
	}
	return out, nil
}

// stripTags flattens a Google html_instructions string to plain text.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(b.String())
}

// maneuverFromInstruction derives the type/modifier split the cue sheet
// understands from a Japanese (or English) instruction text. The Google
// Directions client carries no structured maneuver field, so the shape is
// recovered from the wording; anything unrecognized stays empty and the
// cue sheet renders its go-straight fallback.
func maneuverFromInstruction(text string) (mtype, modifier string) {
	t := strings.ToLower(text)
	switch {
	case t == "":
		return "", ""
	case strings.Contains(t, "uターン") || strings.Contains(t, "u-turn"):
		return "turn", "uturn"
	case strings.Contains(t, "ラウンドアバウト") || strings.Contains(t, "環状交差点") || strings.Contains(t, "roundabout"):
		return "roundabout", ""
	case strings.Contains(t, "合流") || strings.Contains(t, "merge"):
		return "merge", ""
	case strings.Contains(t, "目的地") || strings.Contains(t, "destination"):
		return "arrive", ""
	case strings.Contains(t, "斜め右") || strings.Contains(t, "右斜め") || strings.Contains(t, "slight right") || strings.Contains(t, "keep right"):
		return "turn", "slight right"
	case strings.Contains(t, "斜め左") || strings.Contains(t, "左斜め") || strings.Contains(t, "slight left") || strings.Contains(t, "keep left"):
		return "turn", "slight left"
	case strings.Contains(t, "右折") || strings.Contains(t, "右方向") || strings.Contains(t, "turn right"):
		return "turn", "right"
	case strings.Contains(t, "左折") || strings.Contains(t, "左方向") || strings.Contains(t, "turn left"):
		return "turn", "left"
	case strings.Contains(t, "直進") || strings.Contains(t, "straight"):
		return "continue", "straight"
	case strings.Contains(t, "フェリー") || strings.Contains(t, "ferry"):
		return "", "ferry"
	}
	return "", ""
}

func latLng(c types.LngLat) string {
	return fmt.Sprintf("%v,%v", c.Lat, c.Lng)
}
