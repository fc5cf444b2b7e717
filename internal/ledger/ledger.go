package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Reason classifies why an entry moved credits.
type Reason string

const (
	ReasonPurchase                 Reason = "purchase"
	ReasonGiftSent                 Reason = "gift_sent"
	ReasonGiftReceived             Reason = "gift_received"
	ReasonWithdrawalRequest        Reason = "withdrawal_request"
	ReasonWithdrawalApproved       Reason = "withdrawal_approved"
	ReasonWithdrawalRejectedRefund Reason = "withdrawal_rejected_refund"
)

// WithdrawalStatus is the lifecycle state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalApproved || s == WithdrawalRejected
}

// Decision is an admin's verdict on a pending withdrawal.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// PaymentMethod is where withdrawn credits are paid out.
type PaymentMethod string

const (
	PaymentPayPal PaymentMethod = "paypal"
	PaymentBank   PaymentMethod = "bank"
	PaymentCrypto PaymentMethod = "crypto"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentPayPal, PaymentBank, PaymentCrypto:
		return true
	}

	return false
}

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidRecipient    = errors.New("invalid recipient")
	ErrInvalidDecision     = errors.New("invalid withdrawal decision")
	ErrInvalidPayment      = errors.New("invalid payment method or details")
	ErrAccountNotFound     = errors.New("account not found")
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrUnknownPackage      = errors.New("unknown credit package")
	ErrUnknownGift         = errors.New("unknown gift")
	ErrBalanceOutOfBalance = errors.New("ledger balance does not match entries")
)

// Entry is one immutable line of the ledger. Delta is signed.
type Entry struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Delta        int64
	Reason       Reason
	Counterpart  *uuid.UUID
	WithdrawalID *uuid.UUID
	CreatedAt    time.Time
}

// Withdrawal is a request to pay credits out of the platform.
type Withdrawal struct {
	ID             uuid.UUID
	AccountID      uuid.UUID
	Amount         int64
	PaymentMethod  PaymentMethod
	PaymentDetails string
	Status         WithdrawalStatus
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

// Transfer is the result of a gift: the two legs written together.
type Transfer struct {
	Debit  *Entry
	Credit *Entry
}

// Statement is an account's balance together with the entries that produce it.
type Statement struct {
	AccountID uuid.UUID
	Balance   int64
	Entries   []*Entry
}
