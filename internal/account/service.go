package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	UpsertAccount(ctx context.Context, acc *Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	SetAgeVerified(ctx context.Context, id uuid.UUID) error
	CountAccounts(ctx context.Context) (int64, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

const maxInviteAttempts = 5

// Register creates the account on first sight and keeps its role in sync with
// the identity provider afterwards. The invite code of an existing account is
// never changed.
func (s *Service) Register(ctx context.Context, id uuid.UUID, role Role) (*Account, error) {
	if role == "" {
		role = RoleStandard
	}

	for range maxInviteAttempts {
		acc := &Account{ID: id, Role: role, InviteCode: NewInviteCode()}

		err := s.repo.UpsertAccount(ctx, acc)
		if errors.Is(err, ErrInviteCodeTaken) {
			slog.Warn("invite code collision, regenerating", "account_id", id)
			continue
		}

		if err != nil {
			return nil, err
		}

		return acc, nil
	}

	return nil, fmt.Errorf("registering account %s: %w", id, ErrInviteCodeTaken)
}

// Ensure returns the account, registering it if this is its first authentication.
func (s *Service) Ensure(ctx context.Context, id uuid.UUID, role Role) (*Account, error) {
	acc, err := s.repo.GetAccount(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return s.Register(ctx, id, role)
	}

	if err != nil {
		return nil, err
	}

	if role != "" && acc.Role != role {
		return s.Register(ctx, id, role)
	}

	return acc, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) VerifyAge(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetAgeVerified(ctx, id)
}

// RequireAdult fails with ErrAgeVerificationRequired unless the account passed the age gate.
func (s *Service) RequireAdult(ctx context.Context, id uuid.UUID) error {
	acc, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return err
	}

	if !acc.AgeVerified {
		return ErrAgeVerificationRequired
	}

	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.CountAccounts(ctx)
}
