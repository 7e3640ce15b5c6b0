// README: HTTP client for the hosted search-box suggest/retrieve endpoints.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/YukiAminaka/cycle-route/internal/types"
)

const defaultBaseURL = "https://api.mapbox.com/search/searchbox/v1"

// ErrNoAccessToken is returned when the search provider credential is not
// configured. Callers that want graceful degradation treat it as "no results".
var ErrNoAccessToken = errors.New("search access token is not configured")

// StatusError reports a non-success response from the search provider.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search api error: %d %s", e.Status, e.Message)
}

// Client wraps the two-phase search flow: Suggest turns partial text into
// candidate places, Retrieve resolves one candidate to a coordinate.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

func NewClient(accessToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
	}
}

// WithBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

// Suggest fetches place suggestions for partial text. Empty or
// whitespace-only text short-circuits to an empty result without a network
// call. sessionToken groups this call with the retrieve that follows it.
func (c *Client) Suggest(ctx context.Context, text, sessionToken string, opts SuggestOptions) ([]Suggestion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if c.accessToken == "" {
		return nil, ErrNoAccessToken
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("session_token", sessionToken)
	params.Set("access_token", c.accessToken)
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("language", orDefault(opts.Language, defaultLanguage))
	params.Set("country", orDefault(opts.Country, defaultCountry))
	params.Set("types", orDefault(opts.Types, defaultTypes))
	if opts.Proximity != nil {
		params.Set("proximity", fmt.Sprintf("%v,%v", opts.Proximity.Lng, opts.Proximity.Lat))
	}

	body, err := c.get(ctx, c.baseURL+"/suggest?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Suggestions []struct {
			Name           string `json:"name"`
			PlaceFormatted string `json:"place_formatted"`
			MapboxID       string `json:"mapbox_id"`
		} `json:"suggestions"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("search: malformed suggest response: %v", err)
		return nil, nil
	}
	if payload.Suggestions == nil {
		log.Printf("search: no suggestions field in response")
		return nil, nil
	}

	out := make([]Suggestion, 0, len(payload.Suggestions))
	for _, s := range payload.Suggestions {
		out = append(out, Suggestion{
			Name:       s.Name,
			Context:    s.PlaceFormatted,
			ExternalID: s.MapboxID,
		})
	}
	return out, nil
}

// Retrieve resolves a suggestion's opaque id to a coordinate and label.
// A response with no features yields (nil, nil): no result, not an error.
// sessionToken must match the suggest call that produced the id.
func (c *Client) Retrieve(ctx context.Context, externalID, sessionToken string) (*RetrievedPlace, error) {
	if c.accessToken == "" {
		return nil, ErrNoAccessToken
	}

	params := url.Values{}
	params.Set("session_token", sessionToken)
	params.Set("access_token", c.accessToken)

	body, err := c.get(ctx, c.baseURL+"/retrieve/"+url.PathEscape(externalID)+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Features []struct {
			Properties struct {
				Name           string `json:"name"`
				PlaceFormatted string `json:"place_formatted"`
				RoutablePoints []struct {
					Point []float64 `json:"point"`
				} `json:"routable_points"`
			} `json:"properties"`
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("search: malformed retrieve response: %v", err)
		return nil, nil
	}
	if len(payload.Features) == 0 {
		log.Printf("search: no feature in retrieve response")
		return nil, nil
	}

	feat := payload.Features[0]
	place := &RetrievedPlace{Label: orDefault(feat.Properties.Name, feat.Properties.PlaceFormatted)}
	// Routable point preferred over the raw geometry centroid.
	coords := feat.Geometry.Coordinates
	if len(feat.Properties.RoutablePoints) > 0 && len(feat.Properties.RoutablePoints[0].Point) >= 2 {
		coords = feat.Properties.RoutablePoints[0].Point
	}
	if len(coords) >= 2 {
		place.Coord = &types.LngLat{Lng: coords[0], Lat: coords[1]}
	}
	return place, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := resp.Status
		var errBody struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &errBody) == nil && errBody.Message != "" {
			msg = errBody.Message
		}
		return nil, &StatusError{Status: resp.StatusCode, Message: msg}
	}
	return body, nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
