package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/intima/internal/account"
)

func TestStore_UpsertAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := New(db)
	id := uuid.New()

	t.Run("keeps stored invite code", func(t *testing.T) {
		acc := &account.Account{ID: id, Role: account.RoleStandard, InviteCode: "NEWCODE1"}

		mock.ExpectQuery("INSERT INTO accounts").
			WithArgs(id, account.RoleStandard, "NEWCODE1").
			WillReturnRows(sqlmock.NewRows([]string{"role", "age_verified", "invite_code", "created_at"}).
				AddRow("standard", true, "OLDCODE1", time.Now()))

		require.NoError(t, s.UpsertAccount(context.Background(), acc))
		assert.Equal(t, "OLDCODE1", acc.InviteCode)
		assert.True(t, acc.AgeVerified)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invite code collision", func(t *testing.T) {
		acc := &account.Account{ID: id, Role: account.RoleStandard, InviteCode: "TAKEN123"}

		mock.ExpectQuery("INSERT INTO accounts").
			WithArgs(id, account.RoleStandard, "TAKEN123").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := s.UpsertAccount(context.Background(), acc)
		assert.ErrorIs(t, err, account.ErrInviteCodeTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_GetAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := New(db)
	id := uuid.New()

	t.Run("found with derived balance", func(t *testing.T) {
		mock.ExpectQuery("SELECT a.id, a.role").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "role", "age_verified", "invite_code", "created_at", "balance"}).
				AddRow(id.String(), "admin", false, "ABCDEFGH", time.Now(), int64(250)))

		acc, err := s.GetAccount(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, account.RoleAdmin, acc.Role)
		assert.Equal(t, int64(250), acc.Balance)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT a.id, a.role").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := s.GetAccount(context.Background(), id)
		assert.ErrorIs(t, err, account.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SetAgeVerified_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectExec("UPDATE accounts SET age_verified").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = New(db).SetAgeVerified(context.Background(), id)
	assert.ErrorIs(t, err, account.ErrNotFound)
}
