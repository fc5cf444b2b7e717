package pairing_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/pairing"
)

// memRegistry mimics the PostgreSQL store: account row locks plus a
// membership map standing in for the couple_members primary key.
type memRegistry struct {
	mu      sync.Mutex
	codes   map[string]uuid.UUID
	locks   map[uuid.UUID]*sync.Mutex
	couples map[uuid.UUID]*pairing.Couple
	members map[uuid.UUID]uuid.UUID
}

func newMemRegistry(codes map[uuid.UUID]string) *memRegistry {
	m := &memRegistry{
		codes:   make(map[string]uuid.UUID),
		locks:   make(map[uuid.UUID]*sync.Mutex),
		couples: make(map[uuid.UUID]*pairing.Couple),
		members: make(map[uuid.UUID]uuid.UUID),
	}

	for id, code := range codes {
		m.codes[code] = id
		m.locks[id] = &sync.Mutex{}
	}

	return m
}

func (m *memRegistry) coupleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.couples)
}

func (m *memRegistry) activeFor(accountID uuid.UUID) (*pairing.Couple, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.members[accountID]
	if !ok {
		return nil, pairing.ErrNotPaired
	}

	cp := *m.couples[id]

	return &cp, nil
}

func (m *memRegistry) Begin(ctx context.Context) (pairing.Tx, error) {
	return &memTx{m: m}, nil
}

func (m *memRegistry) ActiveCoupleFor(ctx context.Context, accountID uuid.UUID) (*pairing.Couple, error) {
	return m.activeFor(accountID)
}

func (m *memRegistry) GetCouple(ctx context.Context, id uuid.UUID) (*pairing.Couple, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.couples[id]
	if !ok {
		return nil, pairing.ErrCoupleNotFound
	}

	cp := *c

	return &cp, nil
}

func (m *memRegistry) CountActive(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64

	for _, c := range m.couples {
		if c.Active() {
			n++
		}
	}

	return n, nil
}

type memTx struct {
	m         *memRegistry
	held      []*sync.Mutex
	create    *pairing.Couple
	dissolve  *pairing.Couple
	finalized bool
}

func (t *memTx) FindAccountByInviteCode(ctx context.Context, code string) (uuid.UUID, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	id, ok := t.m.codes[code]
	if !ok {
		return uuid.Nil, pairing.ErrInvalidCode
	}

	return id, nil
}

func (t *memTx) LockAccounts(ctx context.Context, ids ...uuid.UUID) error {
	for _, id := range ids {
		t.m.mu.Lock()
		l := t.m.locks[id]
		t.m.mu.Unlock()

		l.Lock()
		t.held = append(t.held, l)
	}

	return nil
}

func (t *memTx) ActiveCoupleFor(ctx context.Context, accountID uuid.UUID) (*pairing.Couple, error) {
	return t.m.activeFor(accountID)
}

func (t *memTx) CreateCouple(ctx context.Context, c *pairing.Couple) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if _, ok := t.m.members[c.AccountA]; ok {
		return pairing.ErrAlreadyPaired
	}

	if _, ok := t.m.members[c.AccountB]; ok {
		return pairing.ErrAlreadyPaired
	}

	cp := *c
	t.create = &cp

	return nil
}

func (t *memTx) LockCouple(ctx context.Context, id uuid.UUID) (*pairing.Couple, error) {
	c, err := t.m.GetCouple(ctx, id)
	if err != nil {
		return nil, err
	}

	t.m.mu.Lock()
	l, ok := t.m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		t.m.locks[id] = l
	}
	t.m.mu.Unlock()

	l.Lock()
	t.held = append(t.held, l)

	return t.m.GetCouple(ctx, c.ID)
}

func (t *memTx) DissolveCouple(ctx context.Context, c *pairing.Couple) error {
	cp := *c
	t.dissolve = &cp

	return nil
}

func (t *memTx) Commit() error {
	t.m.mu.Lock()

	if c := t.create; c != nil {
		t.m.couples[c.ID] = c
		t.m.members[c.AccountA] = c.ID
		t.m.members[c.AccountB] = c.ID
	}

	if c := t.dissolve; c != nil {
		t.m.couples[c.ID] = c
		delete(t.m.members, c.AccountA)
		delete(t.m.members, c.AccountB)
	}

	t.m.mu.Unlock()

	return t.Rollback()
}

func (t *memTx) Rollback() error {
	if t.finalized {
		return nil
	}

	t.finalized = true

	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}

	return nil
}
