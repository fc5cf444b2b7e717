package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/audit"
	"github.com/MrJamesThe3rd/intima/internal/consent"
	"github.com/MrJamesThe3rd/intima/internal/generate"
	"github.com/MrJamesThe3rd/intima/internal/ledger"
	"github.com/MrJamesThe3rd/intima/internal/media"
	"github.com/MrJamesThe3rd/intima/internal/pairing"
)

//go:generate mockgen -source=deps.go -destination=deps_mock.go -package=session
type Accounts interface {
	RequireAdult(ctx context.Context, id uuid.UUID) error
}

type Registry interface {
	Redeem(ctx context.Context, requester uuid.UUID, inviteCode string) (*pairing.Couple, error)
	ActiveCoupleFor(ctx context.Context, accountID uuid.UUID) (*pairing.Couple, error)
	DissolveFor(ctx context.Context, accountID uuid.UUID) (*pairing.Couple, bool, error)
}

type Gate interface {
	Grant(ctx context.Context, coupleID uuid.UUID, capability consent.Capability, accountID uuid.UUID) (consent.State, error)
	Revoke(ctx context.Context, coupleID uuid.UUID, capability consent.Capability, accountID uuid.UUID) (consent.State, error)
	State(ctx context.Context, coupleID uuid.UUID, capability consent.Capability) (consent.State, error)
	Require(ctx context.Context, coupleID uuid.UUID, capability consent.Capability) error
}

type Ledger interface {
	TransferGift(ctx context.Context, from, to uuid.UUID, amount int64) (*ledger.Transfer, error)
	RequestWithdrawal(ctx context.Context, req ledger.WithdrawalRequest) (*ledger.Withdrawal, error)
	ResolveWithdrawal(ctx context.Context, id uuid.UUID, decision ledger.Decision) (*ledger.Withdrawal, bool, error)
}

type Vault interface {
	Upload(ctx context.Context, coupleID, uploader uuid.UUID, p media.UploadParams) (*media.Item, error)
	List(ctx context.Context, coupleID uuid.UUID, limit int) ([]*media.Item, error)
}

type Generator interface {
	Generate(ctx context.Context, accountID uuid.UUID, p generate.Prompt) (string, error)
}

type Auditor interface {
	Record(ctx context.Context, actor uuid.UUID, action audit.Action, subject string, details map[string]any)
}
