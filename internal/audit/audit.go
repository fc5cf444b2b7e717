package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action names a security-relevant state transition.
type Action string

const (
	ActionCouplePaired        Action = "couple.paired"
	ActionCoupleDissolved     Action = "couple.dissolved"
	ActionConsentGranted      Action = "consent.granted"
	ActionConsentRevoked      Action = "consent.revoked"
	ActionGiftSent            Action = "ledger.gift_sent"
	ActionWithdrawalRequested Action = "withdrawal.requested"
	ActionWithdrawalResolved  Action = "withdrawal.resolved"
	ActionLiveSessionStarted  Action = "session.live_started"
	ActionMediaUploaded       Action = "vault.media_uploaded"
	ActionAgeVerified         Action = "account.age_verified"
	ActionClientReported      Action = "client.reported"
)

type Event struct {
	ID        uuid.UUID
	ActorID   *uuid.UUID
	Action    Action
	Subject   string
	Details   map[string]any
	CreatedAt time.Time
}
