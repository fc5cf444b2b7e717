package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/intima/internal/ledger"
)

var withdrawalColumns = []string{"id", "account_id", "amount", "payment_method", "payment_details", "status", "created_at", "resolved_at"}

func TestStore_Balance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(delta\\), 0\\) FROM ledger_entries WHERE account_id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(150)))

	got, err := New(db).Balance(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(150), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListEntries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	other := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "account_id", "delta", "reason", "counterpart_id", "withdrawal_id", "created_at"}).
		AddRow(uuid.New().String(), id.String(), int64(-50), "gift_sent", other.String(), nil, now).
		AddRow(uuid.New().String(), id.String(), int64(100), "purchase", nil, nil, now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM ledger_entries WHERE account_id = \\$1 ORDER BY created_at DESC, id DESC LIMIT \\$2").
		WithArgs(id, 10).
		WillReturnRows(rows)

	entries, err := New(db).ListEntries(context.Background(), id, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, ledger.ReasonGiftSent, entries[0].Reason)
	require.NotNil(t, entries[0].Counterpart)
	assert.Equal(t, other, *entries[0].Counterpart)
	assert.Nil(t, entries[1].Counterpart)
	assert.Nil(t, entries[1].WithdrawalID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListWithdrawals_Filter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	status := ledger.WithdrawalPending
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM withdrawals WHERE TRUE AND status = \\$1 ORDER BY created_at ASC LIMIT \\$2").
		WithArgs(status, 20).
		WillReturnRows(sqlmock.NewRows(withdrawalColumns).
			AddRow(id.String(), uuid.New().String(), int64(80), "paypal", "me@example.com", "pending", time.Now(), nil))

	ws, err := New(db).ListWithdrawals(context.Background(), ledger.WithdrawalFilter{Status: &status, Limit: 20})
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, id, ws[0].ID)
	assert.Equal(t, ledger.PaymentPayPal, ws[0].PaymentMethod)
	assert.Nil(t, ws[0].ResolvedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetWithdrawal_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM withdrawals WHERE id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(withdrawalColumns))

	_, err = New(db).GetWithdrawal(context.Background(), id)
	assert.ErrorIs(t, err, ledger.ErrWithdrawalNotFound)
}

func TestLedgerTx_GiftUnit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a, b := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM accounts WHERE id = \\$1 FOR UPDATE").
		WithArgs(a).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(a.String()))
	mock.ExpectQuery("SELECT id FROM accounts WHERE id = \\$1 FOR UPDATE").
		WithArgs(b).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(b.String()))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(delta\\), 0\\)").
		WithArgs(a).WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(500)))
	mock.ExpectExec("INSERT INTO ledger_entries").
		WithArgs(sqlmock.AnyArg(), a, int64(-100), ledger.ReasonGiftSent, b, nil, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO ledger_entries").
		WithArgs(sqlmock.AnyArg(), b, int64(100), ledger.ReasonGiftReceived, a, nil, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := context.Background()

	tx, err := New(db).Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.LockAccounts(ctx, a, b))

	bal, err := tx.Balance(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(500), bal)

	require.NoError(t, tx.AppendEntries(ctx,
		&ledger.Entry{ID: uuid.New(), AccountID: a, Delta: -100, Reason: ledger.ReasonGiftSent, Counterpart: &b, CreatedAt: now},
		&ledger.Entry{ID: uuid.New(), AccountID: b, Delta: 100, Reason: ledger.ReasonGiftReceived, Counterpart: &a, CreatedAt: now},
	))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerTx_LockAccounts_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM accounts WHERE id = \\$1 FOR UPDATE").
		WithArgs(id).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	ctx := context.Background()

	tx, err := New(db).Begin(ctx)
	require.NoError(t, err)

	err = tx.LockAccounts(ctx, id)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerTx_ResolveWithdrawal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	acc := uuid.New()
	resolved := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM withdrawals WHERE id = \\$1 FOR UPDATE").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(withdrawalColumns).
			AddRow(id.String(), acc.String(), int64(80), "bank", "IBAN", "pending", time.Now(), nil))
	mock.ExpectExec("UPDATE withdrawals SET status").
		WithArgs(ledger.WithdrawalApproved, resolved, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := context.Background()

	tx, err := New(db).Begin(ctx)
	require.NoError(t, err)

	w, err := tx.LockWithdrawal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ledger.WithdrawalPending, w.Status)
	assert.Equal(t, acc, w.AccountID)

	w.Status = ledger.WithdrawalApproved
	w.ResolvedAt = &resolved
	require.NoError(t, tx.UpdateWithdrawal(ctx, w))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
