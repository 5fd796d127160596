package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sautiflow/sauti/pkg/domain"
)

// PGGraphStore implements ports.GraphStore over the same pool.
type PGGraphStore struct {
	db *pgxpool.Pool
}

// GraphStore exposes the menu-graph side of the store so callers can
// hold the two ports separately.
func (s *PGStore) GraphStore() *PGGraphStore {
	return &PGGraphStore{db: s.db}
}

// Get fetches the graph for an application.
// Returns domain.ErrGraphNotFound if absent.
func (s *PGGraphStore) Get(ctx context.Context, applicationID string) (*domain.MenuGraph, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT data FROM ussd_menus WHERE application_id = $1`, applicationID,
	).Scan(&data)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrGraphNotFound
		}
		return nil, fmt.Errorf("sauti: get menu: %w", err)
	}

	var graph domain.MenuGraph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("sauti: decode menu: %w", err)
	}
	return &graph, nil
}

// Save stores the whole graph in one write.
func (s *PGGraphStore) Save(ctx context.Context, graph *domain.MenuGraph) error {
	data, err := json.Marshal(graph)
	if err != nil {
		return fmt.Errorf("sauti: encode menu: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO ussd_menus (application_id, data, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (application_id) DO UPDATE
		 SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		graph.ApplicationID, data, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sauti: save menu: %w", err)
	}
	return nil
}

// Delete removes the graph. No error if it doesn't exist.
func (s *PGGraphStore) Delete(ctx context.Context, applicationID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM ussd_menus WHERE application_id = $1`, applicationID)
	if err != nil {
		return fmt.Errorf("sauti: delete menu: %w", err)
	}
	return nil
}

// List returns all stored application IDs.
func (s *PGGraphStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT application_id FROM ussd_menus ORDER BY application_id`)
	if err != nil {
		return nil, fmt.Errorf("sauti: list menus: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sauti: scan menu id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sauti: list menus: %w", err)
	}
	return ids, nil
}
