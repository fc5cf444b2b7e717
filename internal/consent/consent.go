package consent

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/pairing"
)

// Capability names an interaction that needs both partners' consent.
type Capability string

const (
	LiveVideo     Capability = "live_video"
	ExplicitMedia Capability = "explicit_media"
)

var (
	ErrUnknownCapability = errors.New("unknown capability")
	ErrConsentRequired   = errors.New("mutual consent required")
)

func Capabilities() []Capability {
	return []Capability{LiveVideo, ExplicitMedia}
}

func ParseCapability(s string) (Capability, error) {
	switch c := Capability(s); c {
	case LiveVideo, ExplicitMedia:
		return c, nil
	}

	return "", ErrUnknownCapability
}

// Kind is the consent state of one capability within a couple.
type Kind int

const (
	NoConsent Kind = iota
	OnePartyConsented
	MutualConsent
)

func (k Kind) String() string {
	switch k {
	case OnePartyConsented:
		return "one_party_consented"
	case MutualConsent:
		return "mutual_consent"
	default:
		return "no_consent"
	}
}

// Record is one account's standing grant for a capability.
type Record struct {
	CoupleID   uuid.UUID
	Capability Capability
	AccountID  uuid.UUID
	Granted    bool
	UpdatedAt  time.Time
}

type State struct {
	CoupleID   uuid.UUID
	Capability Capability
	Kind       Kind
	// ConsentedBy is set only in OnePartyConsented.
	ConsentedBy *uuid.UUID
}

func (s State) Mutual() bool {
	return s.Kind == MutualConsent
}

// Evaluate derives the state from the couple's records. Records of accounts
// outside the couple and grants on a dissolved couple count for nothing.
func Evaluate(c *pairing.Couple, capability Capability, records []Record) State {
	st := State{CoupleID: c.ID, Capability: capability, Kind: NoConsent}
	if !c.Active() {
		return st
	}

	var aGranted, bGranted bool

	for _, r := range records {
		if r.CoupleID != c.ID || r.Capability != capability || !r.Granted {
			continue
		}

		switch r.AccountID {
		case c.AccountA:
			aGranted = true
		case c.AccountB:
			bGranted = true
		}
	}

	switch {
	case aGranted && bGranted:
		st.Kind = MutualConsent
	case aGranted:
		st.Kind = OnePartyConsented
		st.ConsentedBy = &c.AccountA
	case bGranted:
		st.Kind = OnePartyConsented
		st.ConsentedBy = &c.AccountB
	}

	return st
}
