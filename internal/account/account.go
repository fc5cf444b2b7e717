package account

import (
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is assigned by the identity provider and mirrored here.
type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

var (
	ErrNotFound                = errors.New("account not found")
	ErrInviteCodeTaken         = errors.New("invite code already taken")
	ErrAgeVerificationRequired = errors.New("age verification required")
)

// Account is the core's view of an identity. Balance is derived from the ledger.
type Account struct {
	ID          uuid.UUID
	Role        Role
	AgeVerified bool
	InviteCode  string
	Balance     int64
	CreatedAt   time.Time
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

const (
	inviteCodeLength = 8
	// MinInviteCodeLength is the shortest code a client may submit.
	MinInviteCodeLength = 6
	// No 0/O, 1/I/L so codes survive being read aloud.
	inviteAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
)

// NewInviteCode returns a random upper-case pairing code.
func NewInviteCode() string {
	code, err := newInviteCode(rand.Reader)
	if err != nil {
		panic("crypto/rand failed: " + err.Error())
	}

	return code
}

// Bytes at or above this bound are redrawn so every symbol is equally likely.
const inviteByteLimit = 256 - 256%len(inviteAlphabet)

func newInviteCode(r io.Reader) (string, error) {
	code := make([]byte, 0, inviteCodeLength)
	buf := make([]byte, inviteCodeLength)

	for len(code) < inviteCodeLength {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}

		for _, b := range buf {
			if int(b) >= inviteByteLimit || len(code) == inviteCodeLength {
				continue
			}

			code = append(code, inviteAlphabet[int(b)%len(inviteAlphabet)])
		}
	}

	return string(code), nil
}

// NormalizeInviteCode canonicalises user input before lookup.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
