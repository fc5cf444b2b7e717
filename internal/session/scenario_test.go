package session

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/intima/internal/consent"
	"github.com/MrJamesThe3rd/intima/internal/pairing"
)

// memGate keeps consent records in memory and derives state with consent.Evaluate.
type memGate struct {
	mu      sync.Mutex
	couple  *pairing.Couple
	records map[uuid.UUID]bool
}

func (g *memGate) set(accountID uuid.UUID, granted bool) consent.State {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.records[accountID] = granted

	return g.stateLocked()
}

func (g *memGate) stateLocked() consent.State {
	var recs []consent.Record
	for id, granted := range g.records {
		recs = append(recs, consent.Record{CoupleID: g.couple.ID, Capability: consent.LiveVideo, AccountID: id, Granted: granted})
	}

	return consent.Evaluate(g.couple, consent.LiveVideo, recs)
}

func (g *memGate) Grant(_ context.Context, _ uuid.UUID, _ consent.Capability, accountID uuid.UUID) (consent.State, error) {
	return g.set(accountID, true), nil
}

func (g *memGate) Revoke(_ context.Context, _ uuid.UUID, _ consent.Capability, accountID uuid.UUID) (consent.State, error) {
	return g.set(accountID, false), nil
}

func (g *memGate) State(context.Context, uuid.UUID, consent.Capability) (consent.State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.stateLocked(), nil
}

func (g *memGate) Require(ctx context.Context, coupleID uuid.UUID, capability consent.Capability) error {
	st, _ := g.State(ctx, coupleID, capability)
	if !st.Mutual() {
		return consent.ErrConsentRequired
	}

	return nil
}

func TestScenario_LiveSessionNeedsBothGrants(t *testing.T) {
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	c := activeCouple(a, b)

	ctrl := gomock.NewController(t)
	registry := NewMockRegistry(ctrl)
	registry.EXPECT().ActiveCoupleFor(gomock.Any(), gomock.Any()).Return(c, nil).AnyTimes()

	accounts := NewMockAccounts(ctrl)
	accounts.EXPECT().RequireAdult(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	auditor := NewMockAuditor(ctrl)
	auditor.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	f := New(Deps{
		Accounts: accounts,
		Registry: registry,
		Gate:     &memGate{couple: c, records: map[uuid.UUID]bool{}},
		Auditor:  auditor,
		Notifier: &recordingNotifier{},
	})

	st, err := f.Grant(ctx, a, consent.LiveVideo)
	require.NoError(t, err)
	assert.Equal(t, consent.OnePartyConsented, st.Kind)

	_, err = f.StartLiveSession(ctx, a)
	assert.ErrorIs(t, err, consent.ErrConsentRequired)

	st, err = f.Grant(ctx, b, consent.LiveVideo)
	require.NoError(t, err)
	assert.True(t, st.Mutual())

	ls, err := f.StartLiveSession(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, c.ID, ls.CoupleID)

	// Revocation by either party closes the gate; the revoker alone reopens it.
	_, err = f.Revoke(ctx, b, consent.LiveVideo)
	require.NoError(t, err)

	_, err = f.StartLiveSession(ctx, b)
	assert.ErrorIs(t, err, consent.ErrConsentRequired)

	st, err = f.Grant(ctx, b, consent.LiveVideo)
	require.NoError(t, err)
	assert.True(t, st.Mutual())
}
