package consent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/metrics"
	"github.com/MrJamesThe3rd/intima/internal/pairing"
	"github.com/MrJamesThe3rd/intima/internal/retry"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=consent
type Repository interface {
	Begin(ctx context.Context, coupleID uuid.UUID, capability Capability) (Tx, error)
	Snapshot(ctx context.Context, coupleID uuid.UUID, capability Capability) (*pairing.Couple, []Record, error)
}

// Tx holds the per (couple, capability) lock until Commit or Rollback.
type Tx interface {
	Couple(ctx context.Context, coupleID uuid.UUID) (*pairing.Couple, error)
	SetGranted(ctx context.Context, r Record) error
	Records(ctx context.Context, coupleID uuid.UUID, capability Capability) ([]Record, error)
	Commit() error
	Rollback() error
}

type Service struct {
	repo   Repository
	policy retry.Policy
	now    func() time.Time
}

func NewService(repo Repository, policy retry.Policy) *Service {
	return &Service{repo: repo, policy: policy, now: time.Now}
}

func (s *Service) Grant(ctx context.Context, coupleID uuid.UUID, capability Capability, accountID uuid.UUID) (State, error) {
	return s.set(ctx, coupleID, capability, accountID, true)
}

// Revoke clears the account's grant. The partner's grant stays on record but
// no longer suffices.
func (s *Service) Revoke(ctx context.Context, coupleID uuid.UUID, capability Capability, accountID uuid.UUID) (State, error) {
	return s.set(ctx, coupleID, capability, accountID, false)
}

func (s *Service) set(ctx context.Context, coupleID uuid.UUID, capability Capability, accountID uuid.UUID, granted bool) (State, error) {
	if _, err := ParseCapability(string(capability)); err != nil {
		return State{}, err
	}

	var st State

	err := retry.Do(ctx, s.policy, func() error {
		tx, err := s.repo.Begin(ctx, coupleID, capability)
		if err != nil {
			return fmt.Errorf("beginning consent tx: %w", err)
		}
		defer tx.Rollback()

		couple, err := tx.Couple(ctx, coupleID)
		if err != nil {
			return err
		}

		if !couple.Active() {
			return pairing.ErrNotPaired
		}

		if !couple.Has(accountID) {
			return pairing.ErrNotMember
		}

		err = tx.SetGranted(ctx, Record{
			CoupleID:   coupleID,
			Capability: capability,
			AccountID:  accountID,
			Granted:    granted,
			UpdatedAt:  s.now().UTC(),
		})
		if err != nil {
			return err
		}

		records, err := tx.Records(ctx, coupleID, capability)
		if err != nil {
			return err
		}

		st = Evaluate(couple, capability, records)

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing consent tx: %w", retry.Commit(err))
		}

		return nil
	})
	if err != nil {
		return State{}, err
	}

	action := "revoke"
	if granted {
		action = "grant"
	}

	metrics.ConsentChanges.WithLabelValues(string(capability), action).Inc()
	slog.Info("consent changed", "couple_id", coupleID, "capability", capability, "account_id", accountID,
		"action", action, "state", st.Kind)

	return st, nil
}

// State reads a consistent snapshot of the couple and its records.
func (s *Service) State(ctx context.Context, coupleID uuid.UUID, capability Capability) (State, error) {
	if _, err := ParseCapability(string(capability)); err != nil {
		return State{}, err
	}

	return retry.Value(ctx, s.policy, func() (State, error) {
		couple, records, err := s.repo.Snapshot(ctx, coupleID, capability)
		if err != nil {
			return State{}, err
		}

		return Evaluate(couple, capability, records), nil
	})
}

func (s *Service) Check(ctx context.Context, coupleID uuid.UUID, capability Capability) (bool, error) {
	st, err := s.State(ctx, coupleID, capability)
	if err != nil {
		return false, err
	}

	return st.Mutual(), nil
}

// Require fails with ErrConsentRequired unless consent is mutual.
func (s *Service) Require(ctx context.Context, coupleID uuid.UUID, capability Capability) error {
	ok, err := s.Check(ctx, coupleID, capability)
	if err != nil {
		return err
	}

	if !ok {
		metrics.ConsentDenials.WithLabelValues(string(capability)).Inc()
		return ErrConsentRequired
	}

	return nil
}
