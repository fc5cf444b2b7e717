// Package session answers what an account may do with its partner right now.
// Every feature surface goes through the Facade rather than the individual
// registries.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/audit"
	"github.com/MrJamesThe3rd/intima/internal/consent"
	"github.com/MrJamesThe3rd/intima/internal/generate"
	"github.com/MrJamesThe3rd/intima/internal/ledger"
	"github.com/MrJamesThe3rd/intima/internal/media"
	"github.com/MrJamesThe3rd/intima/internal/notify"
	"github.com/MrJamesThe3rd/intima/internal/pairing"
)

type Deps struct {
	Accounts  Accounts
	Registry  Registry
	Gate      Gate
	Ledger    Ledger
	Vault     Vault
	Generator Generator
	Auditor   Auditor
	Notifier  notify.Notifier
	Counters  StatsSources
}

type Facade struct {
	Deps
	now func() time.Time
}

func New(d Deps) *Facade {
	if d.Notifier == nil {
		d.Notifier = notify.Log{}
	}

	return &Facade{Deps: d, now: time.Now}
}

// LiveSession describes a started live interaction. The media transport
// itself is negotiated elsewhere.
type LiveSession struct {
	ID        uuid.UUID `json:"id"`
	CoupleID  uuid.UUID `json:"couple_id"`
	StartedBy uuid.UUID `json:"started_by"`
	StartedAt time.Time `json:"started_at"`
}

type GiftResult struct {
	Gift     ledger.Gift
	Partner  uuid.UUID
	Transfer *ledger.Transfer
}

func (f *Facade) notify(ctx context.Context, to uuid.UUID, kind notify.Kind, data map[string]any) {
	f.Notifier.Notify(ctx, notify.Event{Kind: kind, AccountID: to, Data: data, At: f.now().UTC()})
}

// Couple returns the caller's active couple or pairing.ErrNotPaired.
func (f *Facade) Couple(ctx context.Context, accountID uuid.UUID) (*pairing.Couple, error) {
	return f.Registry.ActiveCoupleFor(ctx, accountID)
}

func (f *Facade) Pair(ctx context.Context, accountID uuid.UUID, inviteCode string) (*pairing.Couple, error) {
	c, err := f.Registry.Redeem(ctx, accountID, inviteCode)
	if err != nil {
		return nil, err
	}

	partner, _ := c.Partner(accountID)

	f.Auditor.Record(ctx, accountID, audit.ActionCouplePaired, c.ID.String(), map[string]any{"partner_id": partner})
	f.notify(ctx, partner, notify.KindPartnerPaired, map[string]any{"couple_id": c.ID, "partner_id": accountID})

	return c, nil
}

// Unpair dissolves the caller's active couple.
func (f *Facade) Unpair(ctx context.Context, accountID uuid.UUID) (*pairing.Couple, error) {
	c, changed, err := f.Registry.DissolveFor(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if changed {
		partner, _ := c.Partner(accountID)

		f.Auditor.Record(ctx, accountID, audit.ActionCoupleDissolved, c.ID.String(), nil)
		f.notify(ctx, partner, notify.KindCoupleDissolved, map[string]any{"couple_id": c.ID})
	}

	return c, nil
}

func (f *Facade) ConsentState(ctx context.Context, accountID uuid.UUID, capability consent.Capability) (consent.State, error) {
	c, err := f.Couple(ctx, accountID)
	if err != nil {
		return consent.State{}, err
	}

	return f.Gate.State(ctx, c.ID, capability)
}

func (f *Facade) Grant(ctx context.Context, accountID uuid.UUID, capability consent.Capability) (consent.State, error) {
	return f.setConsent(ctx, accountID, capability, true)
}

func (f *Facade) Revoke(ctx context.Context, accountID uuid.UUID, capability consent.Capability) (consent.State, error) {
	return f.setConsent(ctx, accountID, capability, false)
}

func (f *Facade) setConsent(ctx context.Context, accountID uuid.UUID, capability consent.Capability, grant bool) (consent.State, error) {
	if _, err := consent.ParseCapability(string(capability)); err != nil {
		return consent.State{}, err
	}

	c, err := f.Couple(ctx, accountID)
	if err != nil {
		return consent.State{}, err
	}

	action, kind, change := audit.ActionConsentGranted, notify.KindConsentGranted, f.Gate.Grant
	if !grant {
		action, kind, change = audit.ActionConsentRevoked, notify.KindConsentRevoked, f.Gate.Revoke
	}

	st, err := change(ctx, c.ID, capability, accountID)
	if err != nil {
		return consent.State{}, err
	}

	partner, _ := c.Partner(accountID)
	details := map[string]any{"capability": capability, "state": st.Kind.String()}

	f.Auditor.Record(ctx, accountID, action, c.ID.String(), details)
	f.notify(ctx, partner, kind, details)

	return st, nil
}

// gate resolves the caller's couple and checks the adult flag and the
// capability's mutual consent, in that order.
func (f *Facade) gate(ctx context.Context, accountID uuid.UUID, capability consent.Capability) (*pairing.Couple, error) {
	c, err := f.Couple(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := f.Accounts.RequireAdult(ctx, accountID); err != nil {
		return nil, err
	}

	if err := f.Gate.Require(ctx, c.ID, capability); err != nil {
		return nil, err
	}

	return c, nil
}

func (f *Facade) StartLiveSession(ctx context.Context, accountID uuid.UUID) (*LiveSession, error) {
	c, err := f.gate(ctx, accountID, consent.LiveVideo)
	if err != nil {
		return nil, err
	}

	ls := &LiveSession{
		ID:        uuid.New(),
		CoupleID:  c.ID,
		StartedBy: accountID,
		StartedAt: f.now().UTC(),
	}

	f.Auditor.Record(ctx, accountID, audit.ActionLiveSessionStarted, c.ID.String(), map[string]any{"session_id": ls.ID})
	slog.Info("live session started", "couple_id", c.ID, "session_id", ls.ID)

	return ls, nil
}

func (f *Facade) ListMedia(ctx context.Context, accountID uuid.UUID, limit int) ([]*media.Item, error) {
	c, err := f.gate(ctx, accountID, consent.ExplicitMedia)
	if err != nil {
		return nil, err
	}

	return f.Vault.List(ctx, c.ID, limit)
}

func (f *Facade) UploadMedia(ctx context.Context, accountID uuid.UUID, p media.UploadParams) (*media.Item, error) {
	c, err := f.gate(ctx, accountID, consent.ExplicitMedia)
	if err != nil {
		return nil, err
	}

	item, err := f.Vault.Upload(ctx, c.ID, accountID, p)
	if err != nil {
		return nil, err
	}

	f.Auditor.Record(ctx, accountID, audit.ActionMediaUploaded, c.ID.String(), map[string]any{"item_id": item.ID, "size": item.Size})

	return item, nil
}

// SendGift moves the gift's catalog price from the caller to their partner.
func (f *Facade) SendGift(ctx context.Context, accountID uuid.UUID, giftID string) (*GiftResult, error) {
	gift, err := ledger.LookupGift(giftID)
	if err != nil {
		return nil, err
	}

	c, err := f.Couple(ctx, accountID)
	if err != nil {
		return nil, err
	}

	partner, err := c.Partner(accountID)
	if err != nil {
		return nil, err
	}

	transfer, err := f.Ledger.TransferGift(ctx, accountID, partner, gift.Price)
	if err != nil {
		return nil, err
	}

	f.Auditor.Record(ctx, accountID, audit.ActionGiftSent, c.ID.String(), map[string]any{"gift": gift.ID, "amount": gift.Price})
	f.notify(ctx, partner, notify.KindGiftReceived, map[string]any{"gift": gift.ID, "amount": gift.Price, "from": accountID})

	return &GiftResult{Gift: gift, Partner: partner, Transfer: transfer}, nil
}

func (f *Facade) RequestWithdrawal(ctx context.Context, req ledger.WithdrawalRequest) (*ledger.Withdrawal, error) {
	w, err := f.Ledger.RequestWithdrawal(ctx, req)
	if err != nil {
		return nil, err
	}

	f.Auditor.Record(ctx, req.AccountID, audit.ActionWithdrawalRequested, w.ID.String(), map[string]any{
		"amount": w.Amount,
		"method": w.PaymentMethod,
	})

	return w, nil
}

// ResolveWithdrawal applies an admin decision. Repeating a decision on a
// resolved request is a silent no-op.
func (f *Facade) ResolveWithdrawal(ctx context.Context, adminID, withdrawalID uuid.UUID, decision ledger.Decision) (*ledger.Withdrawal, error) {
	w, changed, err := f.Ledger.ResolveWithdrawal(ctx, withdrawalID, decision)
	if err != nil {
		return nil, err
	}

	if changed {
		details := map[string]any{"status": w.Status, "amount": w.Amount}

		f.Auditor.Record(ctx, adminID, audit.ActionWithdrawalResolved, w.ID.String(), details)
		f.notify(ctx, w.AccountID, notify.KindWithdrawalResolved, map[string]any{"withdrawal_id": w.ID, "status": w.Status})
	}

	return w, nil
}

const maxTopicLength = 200

// Icebreaker asks the generator for a conversation starter. It needs an
// active couple but no consent.
func (f *Facade) Icebreaker(ctx context.Context, accountID uuid.UUID, topic string) (string, error) {
	if _, err := f.Couple(ctx, accountID); err != nil {
		return "", err
	}

	topic = strings.TrimSpace(topic)
	if r := []rune(topic); len(r) > maxTopicLength {
		topic = string(r[:maxTopicLength])
	}

	user := "Suggest one playful, affectionate question a partner could ask to start a conversation tonight."
	if topic != "" {
		user = fmt.Sprintf("%s Theme: %s.", user, topic)
	}

	return f.Generator.Generate(ctx, accountID, generate.Prompt{
		User:        user + " Reply with the question only.",
		MaxTokens:   80,
		Temperature: 0.9,
	})
}
