package retry_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/intima/internal/retry"
)

var fast = retry.Policy{MaxTries: 3, Initial: time.Millisecond, Max: 2 * time.Millisecond}

func TestDo_BusinessErrorNotRetried(t *testing.T) {
	errBusiness := errors.New("insufficient funds")
	calls := 0

	err := retry.Do(context.Background(), fast, func() error {
		calls++
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.NotErrorIs(t, err, retry.ErrUnavailable)
	assert.Equal(t, 1, calls)
}

func TestDo_TransientThenSuccess(t *testing.T) {
	calls := 0

	err := retry.Do(context.Background(), fast, func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "40001"}
		}

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_TransientExhausted(t *testing.T) {
	calls := 0

	err := retry.Do(context.Background(), fast, func() error {
		calls++
		return driver.ErrBadConn
	})

	assert.ErrorIs(t, err, retry.ErrUnavailable)
	assert.ErrorIs(t, err, driver.ErrBadConn)
	assert.Equal(t, 3, calls)
}

func TestValue_ReturnsResult(t *testing.T) {
	got, err := retry.Value(context.Background(), fast, func() (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "serialization", err: &pgconn.PgError{Code: "40001"}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: true},
		{name: "connection", err: &pgconn.PgError{Code: "08006"}, want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: false},
		{name: "plain", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retry.IsTransient(tt.err))
		})
	}
}

func TestCommit(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"serialization failure rolled back", &pgconn.PgError{Code: "40001"}, true},
		{"lost acknowledgement", &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset")}, false},
		{"bad conn", driver.ErrBadConn, false},
		{"connection exception", &pgconn.PgError{Code: "08006"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := retry.Commit(tt.err)

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, !tt.retryable, errors.Is(err, retry.ErrUnavailable))
		})
	}

	assert.NoError(t, retry.Commit(nil))
}

func TestDo_UnknownCommitOutcomeNotRetried(t *testing.T) {
	calls := 0

	err := retry.Do(context.Background(), fast, func() error {
		calls++
		return retry.Commit(&net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset")})
	})

	assert.ErrorIs(t, err, retry.ErrUnavailable)
	assert.Equal(t, 1, calls)
}
