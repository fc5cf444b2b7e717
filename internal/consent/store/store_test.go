package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/intima/internal/consent"
	"github.com/MrJamesThe3rd/intima/internal/pairing"
)

var (
	coupleColumns = []string{"id", "account_a", "account_b", "status", "created_at", "dissolved_at"}
	recordColumns = []string{"couple_id", "capability", "account_id", "granted", "updated_at"}
)

func TestConsentLockKey(t *testing.T) {
	c := uuid.New()

	assert.Equal(t, consentLockKey(c, consent.LiveVideo), consentLockKey(c, consent.LiveVideo))
	assert.NotEqual(t, consentLockKey(c, consent.LiveVideo), consentLockKey(c, consent.ExplicitMedia))
	assert.NotEqual(t, consentLockKey(c, consent.LiveVideo), consentLockKey(uuid.New(), consent.LiveVideo))
}

func TestStore_GrantUnit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	coupleID, a, b := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(consentLockKey(coupleID, consent.LiveVideo)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM couples WHERE id = \\$1 FOR SHARE").
		WithArgs(coupleID).
		WillReturnRows(sqlmock.NewRows(coupleColumns).AddRow(coupleID.String(), a.String(), b.String(), "active", now, nil))
	mock.ExpectExec("INSERT INTO consent_records").
		WithArgs(coupleID, consent.LiveVideo, a, true, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM consent_records WHERE couple_id = \\$1 AND capability = \\$2 AND voided_at IS NULL").
		WithArgs(coupleID, consent.LiveVideo).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(coupleID.String(), "live_video", a.String(), true, now))
	mock.ExpectCommit()

	ctx := context.Background()

	tx, err := New(db).Begin(ctx, coupleID, consent.LiveVideo)
	require.NoError(t, err)

	couple, err := tx.Couple(ctx, coupleID)
	require.NoError(t, err)
	assert.Equal(t, pairing.StatusActive, couple.Status)

	require.NoError(t, tx.SetGranted(ctx, consent.Record{
		CoupleID: coupleID, Capability: consent.LiveVideo, AccountID: a, Granted: true, UpdatedAt: now,
	}))

	records, err := tx.Records(ctx, coupleID, consent.LiveVideo)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, consent.LiveVideo, records[0].Capability)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Snapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	coupleID, a, b := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM couples WHERE id").
		WithArgs(coupleID).
		WillReturnRows(sqlmock.NewRows(coupleColumns).AddRow(coupleID.String(), a.String(), b.String(), "active", now, nil))
	mock.ExpectQuery("FROM consent_records").
		WithArgs(coupleID, consent.ExplicitMedia).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(coupleID.String(), "explicit_media", a.String(), true, now).
			AddRow(coupleID.String(), "explicit_media", b.String(), true, now))
	mock.ExpectCommit()

	couple, records, err := New(db).Snapshot(context.Background(), coupleID, consent.ExplicitMedia)
	require.NoError(t, err)
	assert.Equal(t, consent.MutualConsent, consent.Evaluate(couple, consent.ExplicitMedia, records).Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Snapshot_UnknownCouple(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM couples WHERE id").WithArgs(id).WillReturnRows(sqlmock.NewRows(coupleColumns))
	mock.ExpectRollback()

	_, _, err = New(db).Snapshot(context.Background(), id, consent.LiveVideo)
	assert.ErrorIs(t, err, pairing.ErrCoupleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
