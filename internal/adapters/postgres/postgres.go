// Package postgres persists sessions and menu graphs in PostgreSQL via
// pgx. Records are stored as JSONB documents keyed by their natural
// ids, with the columns analytics filters on (application, creation
// time) broken out for indexing.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements ports.SessionStore and ports.GraphStore backed by
// a pgx connection pool.
type PGStore struct {
	db *pgxpool.Pool
}

// New creates a PGStore over the given pool.
func New(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Connect opens a pool for the DSN and returns a store over it.
func Connect(ctx context.Context, dsn string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("sauti: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("sauti: ping postgres: %w", err)
	}
	return &PGStore{db: pool}, nil
}

// Close releases the underlying pool.
func (s *PGStore) Close() {
	s.db.Close()
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
