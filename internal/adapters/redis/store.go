// Package redis persists sessions in Redis. Each session is a JSON
// value; a per-application sorted set scored by creation time provides
// the windowed listing the analytics aggregator reads.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sautiflow/sauti/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.SessionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for session values. The index entry is
// pruned lazily on the next listing.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "sauti:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(sessionID string) string {
	return s.prefix + "session:" + sessionID
}

func (s *Store) indexKey(applicationID string) string {
	return s.prefix + "app:" + applicationID + ":sessions"
}

// Get retrieves a session.
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Upsert persists the session and indexes it under its application.
func (s *Store) Upsert(ctx context.Context, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sess.SessionID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(sess.ApplicationID), backend.Z{
		Score:  float64(sess.CreatedAt.Unix()),
		Member: sess.SessionID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Delete removes the session and its index entry.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	// The index is keyed by application, so the record must be read to
	// find which index entry to drop.
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(sessionID))
	pipe.ZRem(ctx, s.indexKey(sess.ApplicationID), sessionID)
	_, err = pipe.Exec(ctx)
	return err
}

// ListByApplication returns sessions created in [since, until), in
// creation order. Index entries whose session value has expired are
// pruned as they are encountered.
func (s *Store) ListByApplication(ctx context.Context, applicationID string, since, until time.Time) ([]*domain.Session, error) {
	min := "-inf"
	if !since.IsZero() {
		min = strconv.FormatInt(since.Unix(), 10)
	}
	max := "+inf"
	if !until.IsZero() {
		// Exclusive upper bound.
		max = "(" + strconv.FormatInt(until.Unix(), 10)
	}

	ids, err := s.client.ZRangeByScore(ctx, s.indexKey(applicationID), &backend.ZRangeBy{
		Min: min,
		Max: max,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*domain.Session, 0, len(ids))
	for _, id := range ids {
		sess, err := s.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				// Value expired; drop the stale index entry.
				_ = s.client.ZRem(ctx, s.indexKey(applicationID), id).Err()
				continue
			}
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
