package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sautiflow/sauti/pkg/domain"
)

// Get fetches a session by its ID.
// Returns domain.ErrSessionNotFound if absent.
func (s *PGStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT data FROM ussd_sessions WHERE id = $1`, sessionID,
	).Scan(&data)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("sauti: get session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("sauti: decode session: %w", err)
	}
	return &sess, nil
}

// Upsert inserts or replaces the session snapshot.
func (s *PGStore) Upsert(ctx context.Context, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("sauti: encode session: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO ussd_sessions (id, application_id, subscriber_id, data, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE
		 SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		sess.SessionID, sess.ApplicationID, sess.SubscriberID, data, sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sauti: upsert session: %w", err)
	}
	return nil
}

// Delete removes a session. No error if it doesn't exist.
func (s *PGStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM ussd_sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("sauti: delete session: %w", err)
	}
	return nil
}

// ListByApplication returns sessions created in [since, until) for an
// application, ordered by creation time. Returns an empty slice (not
// nil) if none found.
func (s *PGStore) ListByApplication(ctx context.Context, applicationID string, since, until time.Time) ([]*domain.Session, error) {
	query := `SELECT data FROM ussd_sessions WHERE application_id = $1`
	args := []any{applicationID}
	if !since.IsZero() {
		args = append(args, since)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if !until.IsZero() {
		args = append(args, until)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sauti: list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("sauti: scan session: %w", err)
		}
		var sess domain.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			return nil, fmt.Errorf("sauti: decode session: %w", err)
		}
		sessions = append(sessions, &sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sauti: list sessions: %w", err)
	}
	return sessions, nil
}
