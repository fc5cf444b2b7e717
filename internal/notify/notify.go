// Package notify dispatches fire-and-forget push events to account holders.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindPartnerPaired      Kind = "partner_paired"
	KindCoupleDissolved    Kind = "couple_dissolved"
	KindConsentGranted     Kind = "consent_granted"
	KindConsentRevoked     Kind = "consent_revoked"
	KindGiftReceived       Kind = "gift_received"
	KindWithdrawalResolved Kind = "withdrawal_resolved"
)

// Event is addressed to a single account.
type Event struct {
	Kind      Kind           `json:"kind"`
	AccountID uuid.UUID      `json:"account_id"`
	Data      map[string]any `json:"data,omitempty"`
	At        time.Time      `json:"at"`
}

// Notifier never reports failure to the caller; delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// Log writes events to the process log. It is used when no broker is configured.
type Log struct{}

func (Log) Notify(_ context.Context, e Event) {
	slog.Info("notification", "kind", e.Kind, "account_id", e.AccountID, "data", e.Data)
}
