// Package session provides the in-memory session store and its TTL sweeper.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/apsara-ai/apsara-server/internal/domain"
	"github.com/google/uuid"
)

// Store owns all session records. Lookups for different identifiers never
// block one another; callers serialize work on a single record by holding the
// session's own lock for the duration of a request.
type Store interface {
	// Get returns the session for the identifier, if it exists.
	Get(id string) (*domain.Session, bool)

	// GetOrCreate returns the existing session, or creates one. A supplied
	// unknown identifier is kept so callers can revive a deleted session
	// under the same id; an empty identifier mints a fresh one.
	GetOrCreate(id string) *domain.Session

	// Delete removes the session record entirely.
	Delete(id string)

	// Len reports the number of live sessions.
	Len() int

	// Sweep deletes sessions idle for longer than maxIdle and reports how
	// many were removed.
	Sweep(maxIdle time.Duration) int
}

// MemoryStore is a mutex-guarded map store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*domain.Session)}
}

// Get returns the session for the identifier, if it exists.
func (s *MemoryStore) Get(id string) (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// GetOrCreate returns the existing session or registers a new one.
func (s *MemoryStore) GetOrCreate(id string) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return sess
		}
	} else {
		id = uuid.NewString()
	}

	sess := domain.NewSession(id)
	s.sessions[id] = sess
	slog.Debug("session created", "session_id", id)
	return sess
}

// Delete removes the session record entirely.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep deletes sessions whose last activity is older than maxIdle.
func (s *MemoryStore) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.LastActive.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
