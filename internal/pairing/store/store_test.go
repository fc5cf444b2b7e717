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

	"github.com/MrJamesThe3rd/intima/internal/pairing"
)

var coupleColumns = []string{"id", "account_a", "account_b", "status", "created_at", "dissolved_at"}

func TestStore_ActiveCoupleFor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := New(db)
	a, b, id := uuid.New(), uuid.New(), uuid.New()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("FROM couple_members m JOIN couples c").
			WithArgs(a).
			WillReturnRows(sqlmock.NewRows(coupleColumns).
				AddRow(id.String(), a.String(), b.String(), "active", time.Now(), nil))

		c, err := s.ActiveCoupleFor(context.Background(), a)
		require.NoError(t, err)
		assert.Equal(t, id, c.ID)
		assert.True(t, c.Active())
		assert.Nil(t, c.DissolvedAt)
	})

	t.Run("none", func(t *testing.T) {
		mock.ExpectQuery("FROM couple_members m JOIN couples c").
			WithArgs(a).
			WillReturnRows(sqlmock.NewRows(coupleColumns))

		_, err := s.ActiveCoupleFor(context.Background(), a)
		assert.ErrorIs(t, err, pairing.ErrNotPaired)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPairingTx_CreateCouple_MembershipConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c := &pairing.Couple{ID: uuid.New(), AccountA: uuid.New(), AccountB: uuid.New(), Status: pairing.StatusActive, CreatedAt: time.Now()}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO couples").
		WithArgs(c.ID, c.AccountA, c.AccountB, pairing.StatusActive, c.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO couple_members").
		WithArgs(c.AccountA, c.AccountB, c.ID).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	ctx := context.Background()

	tx, err := New(db).Begin(ctx)
	require.NoError(t, err)

	err = tx.CreateCouple(ctx, c)
	assert.ErrorIs(t, err, pairing.ErrAlreadyPaired)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPairingTx_FindAccountByInviteCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	owner := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM accounts WHERE invite_code").
		WithArgs("ABCD2345").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(owner.String()))
	mock.ExpectQuery("SELECT id FROM accounts WHERE invite_code").
		WithArgs("ZZZZZZZZ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	ctx := context.Background()

	tx, err := New(db).Begin(ctx)
	require.NoError(t, err)

	got, err := tx.FindAccountByInviteCode(ctx, "ABCD2345")
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	_, err = tx.FindAccountByInviteCode(ctx, "ZZZZZZZZ")
	assert.ErrorIs(t, err, pairing.ErrInvalidCode)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPairingTx_DissolveCouple_VoidsConsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	c := &pairing.Couple{ID: uuid.New(), Status: pairing.StatusDissolved, DissolvedAt: &now}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE couples SET status").
		WithArgs(pairing.StatusDissolved, now, c.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM couple_members WHERE couple_id").
		WithArgs(c.ID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE consent_records SET voided_at").
		WithArgs(now, c.ID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	ctx := context.Background()

	tx, err := New(db).Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DissolveCouple(ctx, c))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
