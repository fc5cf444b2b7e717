package pairing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusDissolved Status = "dissolved"
)

var (
	ErrNotPaired      = errors.New("account is not in an active couple")
	ErrAlreadyPaired  = errors.New("account is already paired")
	ErrSelfPairing    = errors.New("cannot redeem your own invite code")
	ErrInvalidCode    = errors.New("invalid invite code")
	ErrCoupleNotFound = errors.New("couple not found")
	ErrNotMember      = errors.New("account is not a member of this couple")
)

// Couple is an unordered pair of two distinct accounts. AccountA holds the
// redeemed invite code, AccountB redeemed it.
type Couple struct {
	ID          uuid.UUID
	AccountA    uuid.UUID
	AccountB    uuid.UUID
	Status      Status
	CreatedAt   time.Time
	DissolvedAt *time.Time
}

func (c *Couple) Active() bool {
	return c.Status == StatusActive
}

func (c *Couple) Has(accountID uuid.UUID) bool {
	return c.AccountA == accountID || c.AccountB == accountID
}

// Partner returns the other member of the couple.
func (c *Couple) Partner(of uuid.UUID) (uuid.UUID, error) {
	switch of {
	case c.AccountA:
		return c.AccountB, nil
	case c.AccountB:
		return c.AccountA, nil
	}

	return uuid.Nil, ErrNotMember
}

func (c *Couple) Members() []uuid.UUID {
	return []uuid.UUID{c.AccountA, c.AccountB}
}
