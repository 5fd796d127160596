package ports

import (
	"context"
	"time"

	"github.com/sautiflow/sauti/pkg/domain"
)

// SessionStore defines the interface for persisting sessions. The
// engine treats it purely as an injected collaborator: it never retries
// internally, and it relies on the store (plus the session manager) to
// serialize concurrent writes for the same session ID.
type SessionStore interface {
	// Get retrieves a session by ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// Upsert persists the session, replacing any previous snapshot.
	Upsert(ctx context.Context, session *domain.Session) error

	// Delete removes the session.
	Delete(ctx context.Context, sessionID string) error

	// ListByApplication returns sessions created in [since, until) for
	// an application, in creation order. Zero time bounds are open.
	// This is the analytics aggregator's read path.
	ListByApplication(ctx context.Context, applicationID string, since, until time.Time) ([]*domain.Session, error)
}

// GraphStore defines durable storage for authored menu graphs.
type GraphStore interface {
	// Get retrieves the graph for an application.
	// Returns domain.ErrGraphNotFound if none is stored.
	Get(ctx context.Context, applicationID string) (*domain.MenuGraph, error)

	// Save persists the whole graph atomically. Drafts are edited as a
	// value and committed in one call, never as incremental field writes.
	Save(ctx context.Context, graph *domain.MenuGraph) error

	// Delete removes the graph.
	Delete(ctx context.Context, applicationID string) error

	// List returns the stored application IDs.
	List(ctx context.Context) ([]string, error)
}
