// README: Route store: whole-array read-modify-write over one storage key.
package routes

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

var nowFunc = time.Now

// StorageKey is the single key the saved-route array lives under. No other
// component writes it.
const StorageKey = "cycling-routes"

var ErrBadRequest = errors.New("bad request")

// Store persists the flat route list. Every operation reads the whole
// array and writes it back whole; there is no partial update and no
// multi-writer protection, acceptable for single-user storage.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Save appends route to the persisted array. A missing ID or CreatedAt is
// filled in.
func (s *Store) Save(ctx context.Context, route Route) (Route, error) {
	if route.Name == "" {
		return Route{}, ErrBadRequest
	}
	if route.ID == "" {
		route.ID = uuid.NewString()
	}
	if route.CreatedAt.IsZero() {
		route.CreatedAt = nowFunc()
	}
	all, err := s.load(ctx)
	if err != nil {
		return Route{}, err
	}
	all = append(all, route)
	return route, s.write(ctx, all)
}

// List returns every saved route. Missing, unavailable, or malformed
// storage yields an empty list rather than an error: losing the saved-route
// screen over a bad blob is worse than showing it empty.
func (s *Store) List(ctx context.Context) ([]Route, error) {
	all, err := s.load(ctx)
	if err != nil {
		log.Printf("routes: storage unavailable: %v", err)
		return nil, nil
	}
	return all, nil
}

// Delete rewrites the array without the matching id. Deleting an unknown
// id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	filtered := all[:0]
	for _, r := range all {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}
	return s.write(ctx, filtered)
}

// Totals aggregates distance and climb across all saved routes.
func (s *Store) Totals(ctx context.Context) (Totals, error) {
	all, err := s.List(ctx)
	if err != nil {
		return Totals{}, err
	}
	t := Totals{Count: len(all)}
	for _, r := range all {
		t.DistanceKm += r.DistanceKm
		t.ElevationGainM += r.ElevationGainM
	}
	return t, nil
}

// load reads the persisted array. Absent or malformed storage is an empty
// list, but a backend failure is surfaced as an error: the mutating paths
// must not rebuild the array from nothing and overwrite every saved route.
func (s *Store) load(ctx context.Context) ([]Route, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var all []Route
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		log.Printf("routes: malformed stored routes, ignoring: %v", err)
		return nil, nil
	}
	return all, nil
}

func (s *Store) write(ctx context.Context, all []Route) error {
	if all == nil {
		all = []Route{}
	}
	data, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, StorageKey, string(data))
}
