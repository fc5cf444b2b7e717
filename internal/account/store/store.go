package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/intima/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// UpsertAccount inserts the account or, if it exists, refreshes its role.
// On return acc reflects the stored row, including the original invite code.
func (s *Store) UpsertAccount(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (id, role, invite_code, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET role = EXCLUDED.role
		RETURNING role, age_verified, invite_code, created_at
	`

	var role string

	err := s.db.QueryRowContext(ctx, query, acc.ID, acc.Role, acc.InviteCode).
		Scan(&role, &acc.AgeVerified, &acc.InviteCode, &acc.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return account.ErrInviteCodeTaken
		}

		return fmt.Errorf("upserting account: %w", err)
	}

	acc.Role = account.Role(role)

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `
		SELECT a.id, a.role, a.age_verified, a.invite_code, a.created_at,
			COALESCE((SELECT SUM(e.delta) FROM ledger_entries e WHERE e.account_id = a.id), 0)
		FROM accounts a
		WHERE a.id = $1
	`

	var (
		acc  account.Account
		role string
	)

	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&acc.ID, &role, &acc.AgeVerified, &acc.InviteCode, &acc.CreatedAt, &acc.Balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	acc.Role = account.Role(role)

	return &acc, nil
}

func (s *Store) SetAgeVerified(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `UPDATE accounts SET age_verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("setting age verification: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting age verification: %w", err)
	}

	if n == 0 {
		return account.ErrNotFound
	}

	return nil
}

func (s *Store) CountAccounts(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting accounts: %w", err)
	}

	return n, nil
}
