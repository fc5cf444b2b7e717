package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/intima/internal/pairing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectCoupleColumns = `c.id, c.account_a, c.account_b, c.status, c.created_at, c.dissolved_at`

func scanCouple(s scanner) (*pairing.Couple, error) {
	var (
		c      pairing.Couple
		status string
	)

	if err := s.Scan(&c.ID, &c.AccountA, &c.AccountB, &status, &c.CreatedAt, &c.DissolvedAt); err != nil {
		return nil, err
	}

	c.Status = pairing.Status(status)

	return &c, nil
}

func activeCoupleFor(ctx context.Context, q queryRower, accountID uuid.UUID) (*pairing.Couple, error) {
	query := `SELECT ` + selectCoupleColumns + `
		FROM couple_members m
		JOIN couples c ON c.id = m.couple_id
		WHERE m.account_id = $1 AND c.status = 'active'`

	c, err := scanCouple(q.QueryRowContext(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pairing.ErrNotPaired
		}

		return nil, fmt.Errorf("finding active couple: %w", err)
	}

	return c, nil
}

func (s *Store) ActiveCoupleFor(ctx context.Context, accountID uuid.UUID) (*pairing.Couple, error) {
	return activeCoupleFor(ctx, s.db, accountID)
}

func (s *Store) GetCouple(ctx context.Context, id uuid.UUID) (*pairing.Couple, error) {
	c, err := scanCouple(s.db.QueryRowContext(ctx, `SELECT `+selectCoupleColumns+` FROM couples c WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pairing.ErrCoupleNotFound
		}

		return nil, fmt.Errorf("getting couple: %w", err)
	}

	return c, nil
}

func (s *Store) CountActive(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM couples WHERE status = 'active'`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting couples: %w", err)
	}

	return n, nil
}

type pairingTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (pairing.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning pairing tx: %w", err)
	}

	return &pairingTx{tx: dbTx}, nil
}

func (pt *pairingTx) Commit() error   { return pt.tx.Commit() }
func (pt *pairingTx) Rollback() error { return pt.tx.Rollback() }

func (pt *pairingTx) FindAccountByInviteCode(ctx context.Context, code string) (uuid.UUID, error) {
	var id uuid.UUID

	err := pt.tx.QueryRowContext(ctx, `SELECT id FROM accounts WHERE invite_code = $1`, code).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, pairing.ErrInvalidCode
		}

		return uuid.Nil, fmt.Errorf("finding invite code: %w", err)
	}

	return id, nil
}

func (pt *pairingTx) LockAccounts(ctx context.Context, ids ...uuid.UUID) error {
	for _, id := range ids {
		var locked uuid.UUID
		if err := pt.tx.QueryRowContext(ctx, `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return pairing.ErrInvalidCode
			}

			return fmt.Errorf("locking account %s: %w", id, err)
		}
	}

	return nil
}

func (pt *pairingTx) ActiveCoupleFor(ctx context.Context, accountID uuid.UUID) (*pairing.Couple, error) {
	return activeCoupleFor(ctx, pt.tx, accountID)
}

// CreateCouple inserts the couple and claims both memberships. The
// couple_members primary key rejects an account that is already a member.
func (pt *pairingTx) CreateCouple(ctx context.Context, c *pairing.Couple) error {
	_, err := pt.tx.ExecContext(ctx,
		`INSERT INTO couples (id, account_a, account_b, status, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.AccountA, c.AccountB, c.Status, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating couple: %w", err)
	}

	_, err = pt.tx.ExecContext(ctx,
		`INSERT INTO couple_members (account_id, couple_id) VALUES ($1, $3), ($2, $3)`,
		c.AccountA, c.AccountB, c.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return pairing.ErrAlreadyPaired
		}

		return fmt.Errorf("adding couple members: %w", err)
	}

	return nil
}

func (pt *pairingTx) LockCouple(ctx context.Context, id uuid.UUID) (*pairing.Couple, error) {
	query := `SELECT ` + selectCoupleColumns + ` FROM couples c WHERE c.id = $1 FOR UPDATE`

	c, err := scanCouple(pt.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pairing.ErrCoupleNotFound
		}

		return nil, fmt.Errorf("locking couple: %w", err)
	}

	return c, nil
}

// DissolveCouple marks the couple dissolved, releases both memberships and
// voids its consent records. Voided records are kept for audit.
func (pt *pairingTx) DissolveCouple(ctx context.Context, c *pairing.Couple) error {
	if _, err := pt.tx.ExecContext(ctx,
		`UPDATE couples SET status = $1, dissolved_at = $2 WHERE id = $3`,
		c.Status, c.DissolvedAt, c.ID,
	); err != nil {
		return fmt.Errorf("dissolving couple: %w", err)
	}

	if _, err := pt.tx.ExecContext(ctx, `DELETE FROM couple_members WHERE couple_id = $1`, c.ID); err != nil {
		return fmt.Errorf("releasing couple members: %w", err)
	}

	if _, err := pt.tx.ExecContext(ctx,
		`UPDATE consent_records SET voided_at = $1 WHERE couple_id = $2 AND voided_at IS NULL`,
		c.DissolvedAt, c.ID,
	); err != nil {
		return fmt.Errorf("voiding consent records: %w", err)
	}

	return nil
}
