// Package memory provides in-memory implementations of the persistence
// ports. They back the simulator and the test suites; production runs
// use the redis or postgres adapters.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sautiflow/sauti/pkg/domain"
)

// SessionStore implements ports.SessionStore in memory.
// Safe for concurrent use.
type SessionStore struct {
	mu    sync.RWMutex
	data  map[string]*domain.Session
	order []string // insertion order, for stable ListByApplication
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		data: make(map[string]*domain.Session),
	}
}

// Get retrieves a session. The returned value is a copy so the caller
// cannot mutate store state through the pointer.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// Upsert stores a copy of the session.
func (s *SessionStore) Upsert(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[session.SessionID]; !exists {
		s.order = append(s.order, session.SessionID)
	}
	s.data[session.SessionID] = session.Clone()
	return nil
}

// Delete removes the session.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[sessionID]; !exists {
		return nil
	}
	delete(s.data, sessionID)
	for i, id := range s.order {
		if id == sessionID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListByApplication returns copies of the sessions created in
// [since, until), in insertion order.
func (s *SessionStore) ListByApplication(ctx context.Context, applicationID string, since, until time.Time) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Session, 0)
	for _, id := range s.order {
		sess := s.data[id]
		if sess.ApplicationID != applicationID {
			continue
		}
		if !since.IsZero() && sess.CreatedAt.Before(since) {
			continue
		}
		if !until.IsZero() && !sess.CreatedAt.Before(until) {
			continue
		}
		out = append(out, sess.Clone())
	}
	return out, nil
}

// GraphStore implements ports.GraphStore in memory.
// Safe for concurrent use.
type GraphStore struct {
	mu   sync.RWMutex
	data map[string]*domain.MenuGraph
}

// NewGraphStore creates an empty in-memory graph store.
func NewGraphStore() *GraphStore {
	return &GraphStore{
		data: make(map[string]*domain.MenuGraph),
	}
}

// Get retrieves a copy of the stored graph.
func (s *GraphStore) Get(ctx context.Context, applicationID string) (*domain.MenuGraph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.data[applicationID]
	if !ok {
		return nil, domain.ErrGraphNotFound
	}
	return g.Clone(), nil
}

// Save stores a copy of the graph, replacing any previous version.
func (s *GraphStore) Save(ctx context.Context, graph *domain.MenuGraph) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[graph.ApplicationID] = graph.Clone()
	return nil
}

// Delete removes the graph.
func (s *GraphStore) Delete(ctx context.Context, applicationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, applicationID)
	return nil
}

// List returns the stored application IDs.
func (s *GraphStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
