package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/consent"
	"github.com/MrJamesThe3rd/intima/internal/pairing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func consentLockKey(coupleID uuid.UUID, capability consent.Capability) int64 {
	h := fnv.New64a()
	h.Write(coupleID[:])
	h.Write([]byte{0})
	h.Write([]byte(capability))

	return int64(h.Sum64())
}

func getCouple(ctx context.Context, q querier, coupleID uuid.UUID, lockClause string) (*pairing.Couple, error) {
	var (
		c      pairing.Couple
		status string
	)

	query := `SELECT id, account_a, account_b, status, created_at, dissolved_at FROM couples WHERE id = $1` + lockClause

	err := q.QueryRowContext(ctx, query, coupleID).
		Scan(&c.ID, &c.AccountA, &c.AccountB, &status, &c.CreatedAt, &c.DissolvedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pairing.ErrCoupleNotFound
		}

		return nil, fmt.Errorf("getting couple: %w", err)
	}

	c.Status = pairing.Status(status)

	return &c, nil
}

func listRecords(ctx context.Context, q querier, coupleID uuid.UUID, capability consent.Capability) ([]consent.Record, error) {
	query := `
		SELECT couple_id, capability, account_id, granted, updated_at
		FROM consent_records
		WHERE couple_id = $1 AND capability = $2 AND voided_at IS NULL
	`

	rows, err := q.QueryContext(ctx, query, coupleID, capability)
	if err != nil {
		return nil, fmt.Errorf("listing consent records: %w", err)
	}
	defer rows.Close()

	var records []consent.Record

	for rows.Next() {
		var (
			r       consent.Record
			capName string
		)

		if err := rows.Scan(&r.CoupleID, &capName, &r.AccountID, &r.Granted, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning consent record: %w", err)
		}

		r.Capability = consent.Capability(capName)
		records = append(records, r)
	}

	return records, rows.Err()
}

// Snapshot reads the couple and its live records from one repeatable-read
// snapshot so a concurrent grant or dissolution is seen entirely or not at all.
func (s *Store) Snapshot(ctx context.Context, coupleID uuid.UUID, capability consent.Capability) (*pairing.Couple, []consent.Record, error) {
	dbTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, nil, fmt.Errorf("beginning consent snapshot: %w", err)
	}
	defer dbTx.Rollback()

	couple, err := getCouple(ctx, dbTx, coupleID, "")
	if err != nil {
		return nil, nil, err
	}

	records, err := listRecords(ctx, dbTx, coupleID, capability)
	if err != nil {
		return nil, nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("closing consent snapshot: %w", err)
	}

	return couple, records, nil
}

type consentTx struct {
	tx *sql.Tx
}

// Begin opens a transaction holding the advisory lock of the
// (couple, capability) key, serializing grants and revocations on it.
func (s *Store) Begin(ctx context.Context, coupleID uuid.UUID, capability consent.Capability) (consent.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning consent tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", consentLockKey(coupleID, capability)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring consent lock: %w", err)
	}

	return &consentTx{tx: dbTx}, nil
}

func (ct *consentTx) Commit() error   { return ct.tx.Commit() }
func (ct *consentTx) Rollback() error { return ct.tx.Rollback() }

// Couple share-locks the couple row so it cannot be dissolved mid-change.
func (ct *consentTx) Couple(ctx context.Context, coupleID uuid.UUID) (*pairing.Couple, error) {
	return getCouple(ctx, ct.tx, coupleID, " FOR SHARE")
}

func (ct *consentTx) SetGranted(ctx context.Context, r consent.Record) error {
	query := `
		INSERT INTO consent_records (couple_id, capability, account_id, granted, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (couple_id, capability, account_id)
		DO UPDATE SET granted = EXCLUDED.granted, updated_at = EXCLUDED.updated_at, voided_at = NULL
	`

	if _, err := ct.tx.ExecContext(ctx, query, r.CoupleID, r.Capability, r.AccountID, r.Granted, r.UpdatedAt); err != nil {
		return fmt.Errorf("setting consent: %w", err)
	}

	return nil
}

func (ct *consentTx) Records(ctx context.Context, coupleID uuid.UUID, capability consent.Capability) ([]consent.Record, error) {
	return listRecords(ctx, ct.tx, coupleID, capability)
}
