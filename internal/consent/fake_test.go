package consent_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/consent"
	"github.com/MrJamesThe3rd/intima/internal/pairing"
)

type recordKey struct {
	couple     uuid.UUID
	capability consent.Capability
	account    uuid.UUID
}

type lockKey struct {
	couple     uuid.UUID
	capability consent.Capability
}

// memGate stores records in memory and serializes each (couple, capability)
// key with its own mutex, like the advisory lock in PostgreSQL.
type memGate struct {
	mu      sync.Mutex
	couples map[uuid.UUID]*pairing.Couple
	records map[recordKey]consent.Record
	locks   map[lockKey]*sync.Mutex
}

func newMemGate(couples ...*pairing.Couple) *memGate {
	g := &memGate{
		couples: make(map[uuid.UUID]*pairing.Couple),
		records: make(map[recordKey]consent.Record),
		locks:   make(map[lockKey]*sync.Mutex),
	}
	for _, c := range couples {
		g.couples[c.ID] = c
	}

	return g
}

func (g *memGate) dissolve(id uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.couples[id].Status = pairing.StatusDissolved

	for k := range g.records {
		if k.couple == id {
			delete(g.records, k)
		}
	}
}

func (g *memGate) couple(id uuid.UUID) (*pairing.Couple, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.couples[id]
	if !ok {
		return nil, pairing.ErrCoupleNotFound
	}

	cp := *c

	return &cp, nil
}

func (g *memGate) list(coupleID uuid.UUID, capability consent.Capability) []consent.Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []consent.Record

	for k, r := range g.records {
		if k.couple == coupleID && k.capability == capability {
			out = append(out, r)
		}
	}

	return out
}

func (g *memGate) Begin(ctx context.Context, coupleID uuid.UUID, capability consent.Capability) (consent.Tx, error) {
	g.mu.Lock()
	k := lockKey{coupleID, capability}
	l, ok := g.locks[k]
	if !ok {
		l = &sync.Mutex{}
		g.locks[k] = l
	}
	g.mu.Unlock()

	l.Lock()

	return &memTx{g: g, lock: l}, nil
}

func (g *memGate) Snapshot(ctx context.Context, coupleID uuid.UUID, capability consent.Capability) (*pairing.Couple, []consent.Record, error) {
	c, err := g.couple(coupleID)
	if err != nil {
		return nil, nil, err
	}

	return c, g.list(coupleID, capability), nil
}

type memTx struct {
	g       *memGate
	lock    *sync.Mutex
	pending []consent.Record
	done    bool
}

func (t *memTx) Couple(ctx context.Context, coupleID uuid.UUID) (*pairing.Couple, error) {
	return t.g.couple(coupleID)
}

func (t *memTx) SetGranted(ctx context.Context, r consent.Record) error {
	t.pending = append(t.pending, r)

	return nil
}

func (t *memTx) Records(ctx context.Context, coupleID uuid.UUID, capability consent.Capability) ([]consent.Record, error) {
	byAccount := make(map[uuid.UUID]consent.Record)
	for _, r := range t.g.list(coupleID, capability) {
		byAccount[r.AccountID] = r
	}

	for _, r := range t.pending {
		byAccount[r.AccountID] = r
	}

	out := make([]consent.Record, 0, len(byAccount))
	for _, r := range byAccount {
		out = append(out, r)
	}

	return out, nil
}

func (t *memTx) Commit() error {
	t.g.mu.Lock()
	for _, r := range t.pending {
		t.g.records[recordKey{r.CoupleID, r.Capability, r.AccountID}] = r
	}
	t.g.mu.Unlock()

	return t.Rollback()
}

func (t *memTx) Rollback() error {
	if !t.done {
		t.done = true
		t.lock.Unlock()
	}

	return nil
}
