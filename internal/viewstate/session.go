package viewstate

import (
	"sync"

	"fjacquet/dre-report/internal/models"
)

// Session guards a State shared between concurrent requests. Each mutator
// runs its recompute callback under the lock, so recomputations never
// interleave.
type Session struct {
	mu    sync.Mutex
	state State
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Replace swaps the working set, keeping the filters.
func (s *Session) Replace(records []models.TransactionRecord) State {
	return s.Update(func(st State) State { return st.WithRecords(records) })
}

// SetFilters replaces both filters.
func (s *Session) SetFilters(f Filters) State {
	return s.Update(func(st State) State { return st.WithFilters(f) })
}

// Update applies fn to the state under the lock and stores the result.
func (s *Session) Update(fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}

// View runs fn on a state derived with filters f, under the lock. The
// stored filters are not changed.
func (s *Session) View(f Filters, fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state.WithFilters(f))
}
