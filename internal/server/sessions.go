package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/wordsmithery/internal/types"
)

// maxSessions bounds the in-memory result sets; the oldest is evicted first
const maxSessions = 256

// Session is one generated result set, kept until the client discards it
type Session struct {
	ID        string                   `json:"session_id"`
	Selection types.Selection          `json:"selection"`
	Results   []types.GenerationResult `json:"results"`
	CreatedAt time.Time                `json:"created_at"`
}

// SessionStore holds sessions in memory
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
	limit    int
	now      func() time.Time
}

// NewSessionStore creates an empty store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		limit:    maxSessions,
		now:      time.Now,
	}
}

// Create stores results under a fresh id
func (s *SessionStore) Create(sel types.Selection, results []types.GenerationResult) *Session {
	session := &Session{
		ID:        uuid.New().String(),
		Selection: sel,
		Results:   results,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	s.order = append(s.order, session.ID)
	for len(s.order) > s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.sessions, oldest)
	}
	return session
}

// Get returns the session with id
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, &ErrSessionNotFound{ID: id}
	}
	return session, nil
}

// Delete discards the session with id
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return &ErrSessionNotFound{ID: id}
	}
	delete(s.sessions, id)
	for i, sid := range s.order {
		if sid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
