package pairing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/account"
	"github.com/MrJamesThe3rd/intima/internal/metrics"
	"github.com/MrJamesThe3rd/intima/internal/retry"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=pairing
type Repository interface {
	Begin(ctx context.Context) (Tx, error)
	ActiveCoupleFor(ctx context.Context, accountID uuid.UUID) (*Couple, error)
	GetCouple(ctx context.Context, id uuid.UUID) (*Couple, error)
	CountActive(ctx context.Context) (int64, error)
}

// Tx serializes pairing changes. Account rows locked through it stay locked
// until Commit or Rollback.
type Tx interface {
	FindAccountByInviteCode(ctx context.Context, code string) (uuid.UUID, error)
	LockAccounts(ctx context.Context, ids ...uuid.UUID) error
	ActiveCoupleFor(ctx context.Context, accountID uuid.UUID) (*Couple, error)
	CreateCouple(ctx context.Context, c *Couple) error
	LockCouple(ctx context.Context, id uuid.UUID) (*Couple, error)
	DissolveCouple(ctx context.Context, c *Couple) error
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

func (s *Service) inTx(ctx context.Context, fn func(tx Tx) error) error {
	return retry.Do(ctx, s.policy, func() error {
		tx, err := s.repo.Begin(ctx)
		if err != nil {
			return fmt.Errorf("beginning pairing tx: %w", err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing pairing tx: %w", retry.Commit(err))
		}

		return nil
	})
}

// Redeem pairs the requester with the owner of inviteCode. It is the only way
// a couple comes into existence.
func (s *Service) Redeem(ctx context.Context, requester uuid.UUID, inviteCode string) (*Couple, error) {
	code := account.NormalizeInviteCode(inviteCode)
	if len(code) < account.MinInviteCodeLength {
		metrics.Pairings.WithLabelValues("invalid_code").Inc()
		return nil, ErrInvalidCode
	}

	var couple *Couple

	err := s.inTx(ctx, func(tx Tx) error {
		owner, err := tx.FindAccountByInviteCode(ctx, code)
		if err != nil {
			return err
		}

		if owner == requester {
			return ErrSelfPairing
		}

		ids := []uuid.UUID{owner, requester}
		slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })

		if err := tx.LockAccounts(ctx, ids...); err != nil {
			return err
		}

		for _, id := range ids {
			_, err := tx.ActiveCoupleFor(ctx, id)
			if err == nil {
				return ErrAlreadyPaired
			}

			if !errors.Is(err, ErrNotPaired) {
				return err
			}
		}

		couple = &Couple{
			ID:        uuid.New(),
			AccountA:  owner,
			AccountB:  requester,
			Status:    StatusActive,
			CreatedAt: s.now().UTC(),
		}

		return tx.CreateCouple(ctx, couple)
	})
	if err != nil {
		metrics.Pairings.WithLabelValues(redeemOutcome(err)).Inc()
		return nil, err
	}

	metrics.Pairings.WithLabelValues("paired").Inc()
	slog.Info("couple paired", "couple_id", couple.ID, "account_a", couple.AccountA, "account_b", couple.AccountB)

	return couple, nil
}

func redeemOutcome(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyPaired):
		return "already_paired"
	case errors.Is(err, ErrSelfPairing):
		return "self_pairing"
	case errors.Is(err, ErrInvalidCode):
		return "invalid_code"
	}

	return "error"
}

// ActiveCoupleFor returns ErrNotPaired when the account has no active couple.
func (s *Service) ActiveCoupleFor(ctx context.Context, accountID uuid.UUID) (*Couple, error) {
	return retry.Value(ctx, s.policy, func() (*Couple, error) {
		return s.repo.ActiveCoupleFor(ctx, accountID)
	})
}

func (s *Service) GetCouple(ctx context.Context, id uuid.UUID) (*Couple, error) {
	return s.repo.GetCouple(ctx, id)
}

// Dissolve ends the couple and voids every consent record it holds.
// Dissolving a dissolved couple returns it unchanged with changed=false.
func (s *Service) Dissolve(ctx context.Context, coupleID uuid.UUID) (c *Couple, changed bool, err error) {
	err = s.inTx(ctx, func(tx Tx) error {
		changed = false

		var err error

		c, err = tx.LockCouple(ctx, coupleID)
		if err != nil {
			return err
		}

		if !c.Active() {
			return nil
		}

		now := s.now().UTC()
		c.Status = StatusDissolved
		c.DissolvedAt = &now

		if err := tx.DissolveCouple(ctx, c); err != nil {
			return err
		}

		changed = true

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if changed {
		slog.Info("couple dissolved", "couple_id", c.ID)
	}

	return c, changed, nil
}

// DissolveFor dissolves the account's active couple.
func (s *Service) DissolveFor(ctx context.Context, accountID uuid.UUID) (*Couple, bool, error) {
	c, err := s.ActiveCoupleFor(ctx, accountID)
	if err != nil {
		return nil, false, err
	}

	return s.Dissolve(ctx, c.ID)
}

func (s *Service) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx)
}
