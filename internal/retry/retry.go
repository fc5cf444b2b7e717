// Package retry re-runs persistence units of work that failed for transient
// reasons (serialization conflicts, deadlocks, dropped connections).
package retry

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUnavailable is returned once the retry budget for a transient failure is spent.
var ErrUnavailable = errors.New("service temporarily unavailable")

type Policy struct {
	MaxTries uint
	Initial  time.Duration
	Max      time.Duration
}

// DefaultPolicy is used by services constructed without an explicit policy.
var DefaultPolicy = Policy{MaxTries: 3, Initial: 50 * time.Millisecond, Max: 500 * time.Millisecond}

// Do runs fn until it succeeds, fails permanently, or the tries are exhausted.
// Business errors are returned untouched on the first attempt.
func Do(ctx context.Context, p Policy, fn func() error) error {
	_, err := Value(ctx, p, func() (struct{}, error) {
		return struct{}{}, fn()
	})

	return err
}

// Value is Do for units of work that produce a result.
func Value[T any](ctx context.Context, p Policy, fn func() (T, error)) (T, error) {
	if p.MaxTries == 0 {
		p = DefaultPolicy
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.Initial
	b.MaxInterval = p.Max

	var lastTransient error

	res, err := backoff.Retry(ctx, func() (T, error) {
		v, err := fn()
		if err == nil {
			return v, nil
		}

		if errors.Is(err, ErrUnavailable) || !IsTransient(err) {
			return v, backoff.Permanent(err)
		}

		lastTransient = err

		return v, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(p.MaxTries))
	if err != nil && lastTransient != nil && errors.Is(err, lastTransient) {
		return res, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return res, err
}

// Commit classifies a failed COMMIT. An error reported by the server means the
// transaction was rolled back and the unit may run again. Any other failure
// leaves the outcome unknown, so it ends the retry loop as ErrUnavailable
// instead of applying the unit a second time.
func Commit(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && !strings.HasPrefix(pgErr.Code, "08") {
		return err
	}

	return fmt.Errorf("%w: commit outcome unknown: %w", ErrUnavailable, err)
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}

		return strings.HasPrefix(pgErr.Code, "08")
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return pgconn.SafeToRetry(err)
}
