// README: Search session: debounced query -> suggestions -> pick-to-coordinate flow.
package search

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

const defaultDebounce = 300 * time.Millisecond

// Session owns one user search interaction: the query text, its debounced
// suggest lookups, the billing session token, and the current suggestion
// list. A suggest response is applied only if no newer query superseded it
// and the session has not been closed.
type Session struct {
	client *Client
	tokens *TokenManager
	deb    *Debouncer[string]
	opts   SuggestOptions

	mu          sync.Mutex
	query       string
	suggestions []Suggestion
	lastErr     error
	loading     bool
	gen         uint64
	closed      bool
	onUpdate    func()
}

// NewSession builds a search session around client. debounce <= 0 falls
// back to the default quiet period. onUpdate, when non-nil, is invoked
// after every applied suggestion/error change.
func NewSession(client *Client, debounce time.Duration, opts SuggestOptions, onUpdate func()) *Session {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	s := &Session{
		client:   client,
		tokens:   NewTokenManager(),
		opts:     opts,
		onUpdate: onUpdate,
	}
	s.deb = NewDebouncer[string](debounce, s.lookup)
	return s
}

// SetQuery feeds a keystroke's worth of input. The suggest call fires only
// after the quiet period with no further edits.
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.query = q
	s.gen++
	s.loading = true
	s.mu.Unlock()
	s.deb.Update(q)
}

func (s *Session) lookup(q string) {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := s.client.Suggest(ctx, q, s.tokens.Current(), s.opts)
	if errors.Is(err, ErrNoAccessToken) {
		// Unconfigured credential degrades to "no suggestions".
		log.Printf("search: suggest skipped: %v", err)
		results, err = nil, nil
	}

	s.mu.Lock()
	if s.closed || gen != s.gen {
		// A newer query superseded this lookup, or the owner tore the
		// session down. Discard so a stale list never overwrites a fresher one.
		s.mu.Unlock()
		return
	}
	s.loading = false
	if err != nil {
		s.lastErr = err
		s.suggestions = nil
	} else {
		s.lastErr = nil
		s.suggestions = results
	}
	notify := s.onUpdate
	s.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// Pick resolves a suggestion to a place. On success the suggestion list is
// cleared and the session token renewed, ending the billable session.
func (s *Session) Pick(ctx context.Context, sug Suggestion) (*RetrievedPlace, error) {
	place, err := s.client.Retrieve(ctx, sug.ExternalID, s.tokens.Current())
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return nil, err
	}
	if place != nil {
		s.mu.Lock()
		s.query = orDefault(place.Label, sug.Name)
		s.suggestions = nil
		s.lastErr = nil
		s.mu.Unlock()
		s.tokens.Renew()
	}
	return place, nil
}

// Suggestions returns a copy of the current suggestion list.
func (s *Session) Suggestions() []Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Suggestion, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// Query returns the current query text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Loading reports whether a suggest lookup is pending or in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last suggest/retrieve failure, nil after any success.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Token exposes the current session token. Mainly for callers that drive
// the client directly (the HTTP handlers).
func (s *Session) Token() string {
	return s.tokens.Current()
}

// RenewToken starts a fresh billable session.
func (s *Session) RenewToken() string {
	return s.tokens.Renew()
}

// ClearSuggestions drops the suggestion list and any displayed error.
func (s *Session) ClearSuggestions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = nil
	s.lastErr = nil
}

// Close cancels any pending lookup. In-flight responses are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.deb.Stop()
}
