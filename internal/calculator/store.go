package calculator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or evicted session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Store keeps the live keypad sessions of the HTTP host in memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	idleTimeout time.Duration
	feedback    []Feedback
	now         func() time.Time
}

// NewStore returns a store that evicts sessions idle for longer than
// idleTimeout. A zero idleTimeout disables eviction.
func NewStore(idleTimeout time.Duration, feedback ...Feedback) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		feedback:    feedback,
		now:         time.Now,
	}
}

// Create starts a new session in the initial state.
func (st *Store) Create(ctx context.Context) *Session {
	s := newSession(uuid.NewString(), st.now, st.feedback)

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	activeSessions.Add(ctx, 1)
	return s
}

// Get returns the session with the given ID. The session may still be
// deleted or evicted afterwards, in which case Session.Press reports
// ErrSessionNotFound.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete ends the session with the given ID.
func (st *Store) Delete(ctx context.Context, id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.close()
	activeSessions.Add(ctx, -1)
	return nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep evicts idle sessions and returns how many were removed.
func (st *Store) Sweep(ctx context.Context) int {
	if st.idleTimeout <= 0 {
		return 0
	}
	cutoff := st.now().Add(-st.idleTimeout)

	st.mu.Lock()
	evicted := 0
	for id, s := range st.sessions {
		if s.closeIfIdleBefore(cutoff) {
			delete(st.sessions, id)
			evicted++
		}
	}
	st.mu.Unlock()

	if evicted > 0 {
		activeSessions.Add(ctx, -int64(evicted))
	}
	return evicted
}

// RunSweeper calls Sweep every interval until ctx is done.
func (st *Store) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(evicted int)) {
	if interval <= 0 || st.idleTimeout <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(ctx); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
