package ledger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/metrics"
	"github.com/MrJamesThe3rd/intima/internal/retry"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	Begin(ctx context.Context) (Tx, error)

	Balance(ctx context.Context, accountID uuid.UUID) (int64, error)
	ListEntries(ctx context.Context, accountID uuid.UUID, limit int) ([]*Entry, error)
	GetWithdrawal(ctx context.Context, id uuid.UUID) (*Withdrawal, error)
	ListWithdrawals(ctx context.Context, filter WithdrawalFilter) ([]*Withdrawal, error)
	CountWithdrawals(ctx context.Context, status WithdrawalStatus) (int64, error)
	TotalCirculation(ctx context.Context) (int64, error)
}

// Tx is one serialized unit of ledger work. Locks taken through it are held
// until Commit or Rollback.
type Tx interface {
	LockAccounts(ctx context.Context, ids ...uuid.UUID) error
	Balance(ctx context.Context, accountID uuid.UUID) (int64, error)
	AppendEntries(ctx context.Context, entries ...*Entry) error
	CreateWithdrawal(ctx context.Context, w *Withdrawal) error
	LockWithdrawal(ctx context.Context, id uuid.UUID) (*Withdrawal, error)
	UpdateWithdrawal(ctx context.Context, w *Withdrawal) error
	ListEntries(ctx context.Context, accountID uuid.UUID) ([]*Entry, error)
	Commit() error
	Rollback() error
}

type WithdrawalFilter struct {
	Status    *WithdrawalStatus
	AccountID *uuid.UUID
	Limit     int
}

type Service struct {
	repo   Repository
	policy retry.Policy
	now    func() time.Time
}

func NewService(repo Repository, policy retry.Policy) *Service {
	return &Service{repo: repo, policy: policy, now: time.Now}
}

// inTx runs fn inside a fresh transaction, retrying the whole unit on
// transient persistence failures. Business errors abort on the first attempt.
func (s *Service) inTx(ctx context.Context, op string, fn func(tx Tx) error) error {
	err := retry.Do(ctx, s.policy, func() error {
		tx, err := s.repo.Begin(ctx)
		if err != nil {
			return fmt.Errorf("beginning ledger tx: %w", err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing ledger tx: %w", retry.Commit(err))
		}

		return nil
	})

	metrics.LedgerOperations.WithLabelValues(op, metrics.Outcome(err)).Inc()

	return err
}

// lockSorted locks the accounts in ascending id order so that two units
// touching the same pair never wait on each other in opposite directions.
func lockSorted(ctx context.Context, tx Tx, ids ...uuid.UUID) error {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	sorted = slices.Compact(sorted)

	return tx.LockAccounts(ctx, sorted...)
}

func (s *Service) newEntry(accountID uuid.UUID, delta int64, reason Reason) *Entry {
	return &Entry{
		ID:        uuid.New(),
		AccountID: accountID,
		Delta:     delta,
		Reason:    reason,
		CreatedAt: s.now().UTC(),
	}
}

func recordVolume(entries ...*Entry) {
	for _, e := range entries {
		d := e.Delta
		if d < 0 {
			d = -d
		}

		metrics.LedgerCredits.WithLabelValues(string(e.Reason)).Add(float64(d))
	}
}

func (s *Service) Credit(ctx context.Context, accountID uuid.UUID, amount int64, reason Reason) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var entry *Entry

	err := s.inTx(ctx, "credit", func(tx Tx) error {
		if err := tx.LockAccounts(ctx, accountID); err != nil {
			return err
		}

		entry = s.newEntry(accountID, amount, reason)

		return tx.AppendEntries(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	recordVolume(entry)

	return entry, nil
}

func (s *Service) Debit(ctx context.Context, accountID uuid.UUID, amount int64, reason Reason) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var entry *Entry

	err := s.inTx(ctx, "debit", func(tx Tx) error {
		if err := tx.LockAccounts(ctx, accountID); err != nil {
			return err
		}

		if err := requireFunds(ctx, tx, accountID, amount); err != nil {
			return err
		}

		entry = s.newEntry(accountID, -amount, reason)

		return tx.AppendEntries(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	recordVolume(entry)

	return entry, nil
}

func requireFunds(ctx context.Context, tx Tx, accountID uuid.UUID, amount int64) error {
	balance, err := tx.Balance(ctx, accountID)
	if err != nil {
		return err
	}

	if balance < amount {
		return ErrInsufficientFunds
	}

	return nil
}

// TransferGift moves amount from one account to another as a single unit:
// a gift_sent debit and a gift_received credit that net to zero.
func (s *Service) TransferGift(ctx context.Context, from, to uuid.UUID, amount int64) (*Transfer, error) {
	if from == to {
		return nil, ErrInvalidRecipient
	}

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var transfer *Transfer

	err := s.inTx(ctx, "transfer_gift", func(tx Tx) error {
		if err := lockSorted(ctx, tx, from, to); err != nil {
			return err
		}

		if err := requireFunds(ctx, tx, from, amount); err != nil {
			return err
		}

		debit := s.newEntry(from, -amount, ReasonGiftSent)
		debit.Counterpart = &to
		credit := s.newEntry(to, amount, ReasonGiftReceived)
		credit.Counterpart = &from

		if err := tx.AppendEntries(ctx, debit, credit); err != nil {
			return err
		}

		transfer = &Transfer{Debit: debit, Credit: credit}

		return nil
	})
	if err != nil {
		return nil, err
	}

	recordVolume(transfer.Debit)

	return transfer, nil
}

type WithdrawalRequest struct {
	AccountID      uuid.UUID
	Amount         int64
	PaymentMethod  PaymentMethod
	PaymentDetails string
}

// RequestWithdrawal debits the amount and records a pending request together.
func (s *Service) RequestWithdrawal(ctx context.Context, req WithdrawalRequest) (*Withdrawal, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	details := strings.TrimSpace(req.PaymentDetails)
	if !req.PaymentMethod.Valid() || details == "" {
		return nil, ErrInvalidPayment
	}

	var w *Withdrawal

	err := s.inTx(ctx, "request_withdrawal", func(tx Tx) error {
		if err := tx.LockAccounts(ctx, req.AccountID); err != nil {
			return err
		}

		if err := requireFunds(ctx, tx, req.AccountID, req.Amount); err != nil {
			return err
		}

		w = &Withdrawal{
			ID:             uuid.New(),
			AccountID:      req.AccountID,
			Amount:         req.Amount,
			PaymentMethod:  req.PaymentMethod,
			PaymentDetails: details,
			Status:         WithdrawalPending,
			CreatedAt:      s.now().UTC(),
		}
		if err := tx.CreateWithdrawal(ctx, w); err != nil {
			return err
		}

		entry := s.newEntry(req.AccountID, -req.Amount, ReasonWithdrawalRequest)
		entry.WithdrawalID = &w.ID

		return tx.AppendEntries(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	metrics.LedgerCredits.WithLabelValues(string(ReasonWithdrawalRequest)).Add(float64(req.Amount))

	return w, nil
}

// ResolveWithdrawal applies an admin decision to a pending withdrawal.
// Resolving an already resolved request changes nothing and reports
// changed=false. Rejection refunds the amount with an offsetting entry;
// approval only moves the status since the debit was taken on request.
func (s *Service) ResolveWithdrawal(ctx context.Context, id uuid.UUID, decision Decision) (w *Withdrawal, changed bool, err error) {
	var status WithdrawalStatus

	switch decision {
	case DecisionApprove:
		status = WithdrawalApproved
	case DecisionReject:
		status = WithdrawalRejected
	default:
		return nil, false, ErrInvalidDecision
	}

	err = s.inTx(ctx, "resolve_withdrawal", func(tx Tx) error {
		changed = false

		var err error

		w, err = tx.LockWithdrawal(ctx, id)
		if err != nil {
			return err
		}

		if w.Status.Terminal() {
			return nil
		}

		now := s.now().UTC()
		w.Status = status
		w.ResolvedAt = &now

		if err := tx.UpdateWithdrawal(ctx, w); err != nil {
			return err
		}

		if status == WithdrawalRejected {
			if err := tx.LockAccounts(ctx, w.AccountID); err != nil {
				return err
			}

			refund := s.newEntry(w.AccountID, w.Amount, ReasonWithdrawalRejectedRefund)
			refund.WithdrawalID = &w.ID

			if err := tx.AppendEntries(ctx, refund); err != nil {
				return err
			}
		}

		changed = true

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if !changed {
		slog.Info("withdrawal already resolved", "withdrawal_id", id, "status", w.Status)
	}

	return w, changed, nil
}

// Purchase credits the size of a catalog package. Payment capture happens
// upstream; paymentRef is only logged for correlation.
func (s *Service) Purchase(ctx context.Context, accountID uuid.UUID, packageID, paymentRef string) (*Entry, error) {
	pkg, err := LookupPackage(packageID)
	if err != nil {
		return nil, err
	}

	entry, err := s.Credit(ctx, accountID, pkg.Credits, ReasonPurchase)
	if err != nil {
		return nil, err
	}

	slog.Info("credit package purchased", "account_id", accountID, "package", pkg.ID, "payment_ref", paymentRef)

	return entry, nil
}

func (s *Service) Balance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return retry.Value(ctx, s.policy, func() (int64, error) {
		return s.repo.Balance(ctx, accountID)
	})
}

// Statement returns the balance and the most recent entries, newest first.
func (s *Service) Statement(ctx context.Context, accountID uuid.UUID, limit int) (*Statement, error) {
	balance, err := s.Balance(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries, err := retry.Value(ctx, s.policy, func() ([]*Entry, error) {
		return s.repo.ListEntries(ctx, accountID, limit)
	})
	if err != nil {
		return nil, err
	}

	return &Statement{AccountID: accountID, Balance: balance, Entries: entries}, nil
}

func (s *Service) GetWithdrawal(ctx context.Context, id uuid.UUID) (*Withdrawal, error) {
	return s.repo.GetWithdrawal(ctx, id)
}

// ListWithdrawals returns withdrawals oldest first.
func (s *Service) ListWithdrawals(ctx context.Context, filter WithdrawalFilter) ([]*Withdrawal, error) {
	return s.repo.ListWithdrawals(ctx, filter)
}

func (s *Service) CountPendingWithdrawals(ctx context.Context) (int64, error) {
	return s.repo.CountWithdrawals(ctx, WithdrawalPending)
}

// TotalCirculation is the sum of every account balance.
func (s *Service) TotalCirculation(ctx context.Context) (int64, error) {
	return s.repo.TotalCirculation(ctx)
}

type Reconciliation struct {
	AccountID  uuid.UUID
	Balance    int64
	EntrySum   int64
	EntryCount int
}

func (r *Reconciliation) Balanced() bool {
	return r.Balance == r.EntrySum && r.Balance >= 0
}

// Reconcile replays every entry of the account under its lock and compares
// the result with the balance the ledger reports.
func (s *Service) Reconcile(ctx context.Context, accountID uuid.UUID) (*Reconciliation, error) {
	var rec *Reconciliation

	err := s.inTx(ctx, "reconcile", func(tx Tx) error {
		if err := tx.LockAccounts(ctx, accountID); err != nil {
			return err
		}

		balance, err := tx.Balance(ctx, accountID)
		if err != nil {
			return err
		}

		entries, err := tx.ListEntries(ctx, accountID)
		if err != nil {
			return err
		}

		rec = &Reconciliation{AccountID: accountID, Balance: balance, EntryCount: len(entries)}
		for _, e := range entries {
			rec.EntrySum += e.Delta
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if !rec.Balanced() {
		slog.Error("ledger out of balance", "account_id", accountID, "balance", rec.Balance, "entry_sum", rec.EntrySum)

		return rec, fmt.Errorf("reconciling %s: %w", accountID, ErrBalanceOutOfBalance)
	}

	return rec, nil
}
