package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `id, account_id, delta, reason, counterpart_id, withdrawal_id, created_at`

func scanEntry(s scanner) (*ledger.Entry, error) {
	var (
		e      ledger.Entry
		reason string
	)

	if err := s.Scan(&e.ID, &e.AccountID, &e.Delta, &reason, &e.Counterpart, &e.WithdrawalID, &e.CreatedAt); err != nil {
		return nil, err
	}

	e.Reason = ledger.Reason(reason)

	return &e, nil
}

const selectWithdrawalColumns = `id, account_id, amount, payment_method, payment_details, status, created_at, resolved_at`

func scanWithdrawal(s scanner) (*ledger.Withdrawal, error) {
	var (
		w              ledger.Withdrawal
		method, status string
	)

	if err := s.Scan(&w.ID, &w.AccountID, &w.Amount, &method, &w.PaymentDetails, &status, &w.CreatedAt, &w.ResolvedAt); err != nil {
		return nil, err
	}

	w.PaymentMethod = ledger.PaymentMethod(method)
	w.Status = ledger.WithdrawalStatus(status)

	return &w, nil
}

func balance(ctx context.Context, q querier, accountID uuid.UUID) (int64, error) {
	var b int64

	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(delta), 0) FROM ledger_entries WHERE account_id = $1`, accountID,
	).Scan(&b)
	if err != nil {
		return 0, fmt.Errorf("summing ledger entries: %w", err)
	}

	return b, nil
}

func listEntries(ctx context.Context, q querier, accountID uuid.UUID, limit int) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC`

	args := []any{accountID}
	if limit > 0 {
		query += " LIMIT $2"

		args = append(args, limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *Store) Balance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return balance(ctx, s.db, accountID)
}

func (s *Store) ListEntries(ctx context.Context, accountID uuid.UUID, limit int) ([]*ledger.Entry, error) {
	return listEntries(ctx, s.db, accountID, limit)
}

func (s *Store) GetWithdrawal(ctx context.Context, id uuid.UUID) (*ledger.Withdrawal, error) {
	query := `SELECT ` + selectWithdrawalColumns + ` FROM withdrawals WHERE id = $1`

	w, err := scanWithdrawal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrWithdrawalNotFound
		}

		return nil, fmt.Errorf("getting withdrawal: %w", err)
	}

	return w, nil
}

func (s *Store) ListWithdrawals(ctx context.Context, filter ledger.WithdrawalFilter) ([]*ledger.Withdrawal, error) {
	query := `SELECT ` + selectWithdrawalColumns + ` FROM withdrawals WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND account_id = $%d", argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	query += " ORDER BY created_at ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing withdrawals: %w", err)
	}
	defer rows.Close()

	var ws []*ledger.Withdrawal

	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning withdrawal: %w", err)
		}

		ws = append(ws, w)
	}

	return ws, rows.Err()
}

func (s *Store) CountWithdrawals(ctx context.Context, status ledger.WithdrawalStatus) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM withdrawals WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting withdrawals: %w", err)
	}

	return n, nil
}

func (s *Store) TotalCirculation(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(delta), 0) FROM ledger_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("summing circulation: %w", err)
	}

	return n, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ledger tx: %w", err)
	}

	return &ledgerTx{tx: dbTx}, nil
}

func (lt *ledgerTx) Commit() error   { return lt.tx.Commit() }
func (lt *ledgerTx) Rollback() error { return lt.tx.Rollback() }

// LockAccounts takes row locks in the order given. Callers pass ids sorted.
func (lt *ledgerTx) LockAccounts(ctx context.Context, ids ...uuid.UUID) error {
	for _, id := range ids {
		var locked uuid.UUID

		err := lt.tx.QueryRowContext(ctx, `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ledger.ErrAccountNotFound
			}

			return fmt.Errorf("locking account %s: %w", id, err)
		}
	}

	return nil
}

func (lt *ledgerTx) Balance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return balance(ctx, lt.tx, accountID)
}

func (lt *ledgerTx) ListEntries(ctx context.Context, accountID uuid.UUID) ([]*ledger.Entry, error) {
	return listEntries(ctx, lt.tx, accountID, 0)
}

func (lt *ledgerTx) AppendEntries(ctx context.Context, entries ...*ledger.Entry) error {
	query := `
		INSERT INTO ledger_entries (id, account_id, delta, reason, counterpart_id, withdrawal_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, e := range entries {
		_, err := lt.tx.ExecContext(ctx, query,
			e.ID, e.AccountID, e.Delta, e.Reason, e.Counterpart, e.WithdrawalID, e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("appending ledger entry: %w", err)
		}
	}

	return nil
}

func (lt *ledgerTx) CreateWithdrawal(ctx context.Context, w *ledger.Withdrawal) error {
	query := `
		INSERT INTO withdrawals (id, account_id, amount, payment_method, payment_details, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := lt.tx.ExecContext(ctx, query,
		w.ID, w.AccountID, w.Amount, w.PaymentMethod, w.PaymentDetails, w.Status, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating withdrawal: %w", err)
	}

	return nil
}

func (lt *ledgerTx) LockWithdrawal(ctx context.Context, id uuid.UUID) (*ledger.Withdrawal, error) {
	query := `SELECT ` + selectWithdrawalColumns + ` FROM withdrawals WHERE id = $1 FOR UPDATE`

	w, err := scanWithdrawal(lt.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrWithdrawalNotFound
		}

		return nil, fmt.Errorf("locking withdrawal: %w", err)
	}

	return w, nil
}

func (lt *ledgerTx) UpdateWithdrawal(ctx context.Context, w *ledger.Withdrawal) error {
	_, err := lt.tx.ExecContext(ctx,
		`UPDATE withdrawals SET status = $1, resolved_at = $2 WHERE id = $3`,
		w.Status, w.ResolvedAt, w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating withdrawal: %w", err)
	}

	return nil
}
