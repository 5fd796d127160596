package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS ussd_sessions (
    id             TEXT PRIMARY KEY,
    application_id TEXT NOT NULL,
    subscriber_id  TEXT NOT NULL,
    data           JSONB NOT NULL DEFAULT '{}',
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS ussd_menus (
    application_id TEXT PRIMARY KEY,
    data           JSONB NOT NULL DEFAULT '{}',
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_ussd_sessions_app_created
    ON ussd_sessions(application_id, created_at);
`

// CreateSchema creates the session and menu tables if they don't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the session and menu tables.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS ussd_sessions, ussd_menus CASCADE;`)
	return err
}
