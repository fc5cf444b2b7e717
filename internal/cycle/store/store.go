package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/cycle"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateLogs inserts all logs in one transaction.
func (s *Store) CreateLogs(ctx context.Context, logs ...*cycle.Log) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning cycle tx: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO cycle_logs (id, account_id, start_date, symptoms, flow_intensity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, l := range logs {
		symptoms, err := json.Marshal(l.Symptoms)
		if err != nil {
			return fmt.Errorf("encoding symptoms: %w", err)
		}

		if _, err := dbTx.ExecContext(ctx, query,
			l.ID, l.AccountID, l.StartDate, string(symptoms), l.Flow, l.CreatedAt,
		); err != nil {
			return fmt.Errorf("creating cycle log: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing cycle logs: %w", err)
	}

	return nil
}

// ListLogs returns the account's logs, most recent start date first.
func (s *Store) ListLogs(ctx context.Context, accountID uuid.UUID, limit int) ([]*cycle.Log, error) {
	query := `
		SELECT id, account_id, start_date, symptoms, flow_intensity, created_at
		FROM cycle_logs
		WHERE account_id = $1
		ORDER BY start_date DESC, created_at DESC`

	args := []any{accountID}
	if limit > 0 {
		query += " LIMIT $2"

		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cycle logs: %w", err)
	}
	defer rows.Close()

	var logs []*cycle.Log

	for rows.Next() {
		var (
			l        cycle.Log
			symptoms []byte
			flow     string
		)

		if err := rows.Scan(&l.ID, &l.AccountID, &l.StartDate, &symptoms, &flow, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning cycle log: %w", err)
		}

		if err := json.Unmarshal(symptoms, &l.Symptoms); err != nil {
			return nil, fmt.Errorf("decoding symptoms: %w", err)
		}

		l.Flow = cycle.Flow(flow)
		l.StartDate = cycle.Day(l.StartDate)
		logs = append(logs, &l)
	}

	return logs, rows.Err()
}
