package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/intima/internal/audit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateEvent(ctx context.Context, e *audit.Event) error {
	details := e.Details
	if details == nil {
		details = map[string]any{}
	}

	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encoding audit details: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO audit_events (id, actor_id, action, subject, details, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.ActorID, e.Action, e.Subject, string(raw), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating audit event: %w", err)
	}

	return nil
}

func (s *Store) ListEvents(ctx context.Context, limit int) ([]*audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, actor_id, action, subject, details, created_at
		FROM audit_events
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit events: %w", err)
	}
	defer rows.Close()

	var events []*audit.Event

	for rows.Next() {
		var (
			e      audit.Event
			action string
			raw    []byte
		)

		if err := rows.Scan(&e.ID, &e.ActorID, &action, &e.Subject, &raw, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit event: %w", err)
		}

		if err := json.Unmarshal(raw, &e.Details); err != nil {
			return nil, fmt.Errorf("decoding audit details: %w", err)
		}

		e.Action = audit.Action(action)
		events = append(events, &e)
	}

	return events, rows.Err()
}
