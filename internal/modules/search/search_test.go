// README: Search module tests: token renewal, debounce, client short-circuits and error mapping.
package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRenewReplacesToken(t *testing.T) {
	m := NewTokenManager()
	seen := map[string]bool{m.Current(): true}

	for i := 0; i < 10; i++ {
		before := m.Current()
		renewed := m.Renew()
		if renewed == before {
			t.Fatalf("renewed token equals previous token %q", before)
		}
		if seen[renewed] {
			t.Fatalf("token %q issued twice", renewed)
		}
		seen[renewed] = true
		if m.Current() != renewed {
			t.Fatal("Current must observe the renewed token")
		}
	}
}

func TestDebouncerEmitsOnlyLastValue(t *testing.T) {
	emitted := make(chan string, 8)
	d := NewDebouncer[string](50*time.Millisecond, func(v string) { emitted <- v })

	d.Update("a")
	d.Update("ab")
	d.Update("abc")

	select {
	case got := <-emitted:
		if got != "abc" {
			t.Fatalf("emitted %q, want %q", got, "abc")
		}
	case <-time.After(time.Second):
		t.Fatal("debouncer never emitted")
	}

	select {
	case got := <-emitted:
		t.Fatalf("unexpected second emission %q", got)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncerStopCancelsPendingEmission(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer[string](30*time.Millisecond, func(string) { fired.Add(1) })

	d.Update("pending")
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	if fired.Load() != 0 {
		t.Fatal("pending emission must be cancelled by Stop")
	}
}

func TestSuggestEmptyTextSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()
	client := NewClient("token", srv.Client()).WithBaseURL(srv.URL)

	for _, text := range []string{"", "   ", "\t\n"} {
		got, err := client.Suggest(context.Background(), text, "session", SuggestOptions{})
		if err != nil {
			t.Fatalf("Suggest(%q): %v", text, err)
		}
		if len(got) != 0 {
			t.Fatalf("Suggest(%q) = %v, want empty", text, got)
		}
	}
	if hits.Load() != 0 {
		t.Fatalf("network called %d times for blank text", hits.Load())
	}
}

func TestSuggestMapsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "渋谷" || q.Get("session_token") != "sess-1" {
			t.Errorf("unexpected query params: %v", q)
		}
		if q.Get("limit") != "8" || q.Get("language") != "ja" || q.Get("country") != "JP" {
			t.Errorf("defaults not applied: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"suggestions":[
			{"name":"渋谷駅","place_formatted":"東京都渋谷区","mapbox_id":"id-1"},
			{"name":"渋谷センター街","place_formatted":"東京都渋谷区","mapbox_id":"id-2"}
		]}`))
	}))
	defer srv.Close()
	client := NewClient("token", srv.Client()).WithBaseURL(srv.URL)

	got, err := client.Suggest(context.Background(), "渋谷", "sess-1", SuggestOptions{})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("suggestion count = %d, want 2", len(got))
	}
	if got[0].Name != "渋谷駅" || got[0].Context != "東京都渋谷区" || got[0].ExternalID != "id-1" {
		t.Fatalf("suggestion[0] = %+v", got[0])
	}
}

func TestSuggestMissingFieldIsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"attribution":"whatever"}`))
	}))
	defer srv.Close()
	client := NewClient("token", srv.Client()).WithBaseURL(srv.URL)

	got, err := client.Suggest(context.Background(), "anything", "sess", SuggestOptions{})
	if err != nil {
		t.Fatalf("missing suggestions field must not be an error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestSuggestUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Not Authorized"}`))
	}))
	defer srv.Close()
	client := NewClient("token", srv.Client()).WithBaseURL(srv.URL)

	_, err := client.Suggest(context.Background(), "tokyo", "sess", SuggestOptions{})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.Status != http.StatusUnauthorized || statusErr.Message != "Not Authorized" {
		t.Fatalf("statusErr = %+v", statusErr)
	}
}

func TestSuggestWithoutAccessToken(t *testing.T) {
	client := NewClient("", nil)
	_, err := client.Suggest(context.Background(), "tokyo", "sess", SuggestOptions{})
	if !errors.Is(err, ErrNoAccessToken) {
		t.Fatalf("err = %v, want ErrNoAccessToken", err)
	}
}

func TestRetrievePrefersRoutablePoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[{
			"properties":{
				"name":"渋谷駅",
				"place_formatted":"東京都渋谷区",
				"routable_points":[{"point":[139.701,35.658]}]
			},
			"geometry":{"coordinates":[139.7016,35.6580]}
		}]}`))
	}))
	defer srv.Close()
	client := NewClient("token", srv.Client()).WithBaseURL(srv.URL)

	place, err := client.Retrieve(context.Background(), "id-1", "sess")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if place == nil || place.Coord == nil {
		t.Fatal("expected a resolved coordinate")
	}
	if place.Coord.Lng != 139.701 || place.Coord.Lat != 35.658 {
		t.Fatalf("coord = %+v, want the routable point", place.Coord)
	}
	if place.Label != "渋谷駅" {
		t.Fatalf("label = %q, want name over place_formatted", place.Label)
	}
}

func TestRetrieveNoFeatureIsAbsentResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()
	client := NewClient("token", srv.Client()).WithBaseURL(srv.URL)

	place, err := client.Retrieve(context.Background(), "id-1", "sess")
	if err != nil {
		t.Fatalf("no feature must not be an error, got %v", err)
	}
	if place != nil {
		t.Fatalf("place = %+v, want nil", place)
	}
}
