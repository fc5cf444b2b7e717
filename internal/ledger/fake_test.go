package ledger_test

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/ledger"
)

// memLedger is an in-memory Repository whose Tx holds real per-row locks,
// so concurrent service calls contend the way they would on PostgreSQL.
type memLedger struct {
	mu          sync.Mutex
	accountLock map[uuid.UUID]*sync.Mutex
	entries     []*ledger.Entry
	withdrawals map[uuid.UUID]*ledger.Withdrawal
	wLock       map[uuid.UUID]*sync.Mutex
}

func newMemLedger(accounts ...uuid.UUID) *memLedger {
	m := &memLedger{
		accountLock: make(map[uuid.UUID]*sync.Mutex),
		withdrawals: make(map[uuid.UUID]*ledger.Withdrawal),
		wLock:       make(map[uuid.UUID]*sync.Mutex),
	}
	for _, id := range accounts {
		m.accountLock[id] = &sync.Mutex{}
	}

	return m
}

func (m *memLedger) sum(accountID uuid.UUID) int64 {
	var b int64

	for _, e := range m.entries {
		if e.AccountID == accountID {
			b += e.Delta
		}
	}

	return b
}

func (m *memLedger) Begin(ctx context.Context) (ledger.Tx, error) {
	return &memTx{l: m}, nil
}

func (m *memLedger) Balance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sum(accountID), nil
}

func (m *memLedger) ListEntries(ctx context.Context, accountID uuid.UUID, limit int) ([]*ledger.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*ledger.Entry

	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].AccountID == accountID {
			out = append(out, m.entries[i])
		}

		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out, nil
}

func (m *memLedger) GetWithdrawal(ctx context.Context, id uuid.UUID) (*ledger.Withdrawal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.withdrawals[id]
	if !ok {
		return nil, ledger.ErrWithdrawalNotFound
	}

	cp := *w

	return &cp, nil
}

func (m *memLedger) ListWithdrawals(ctx context.Context, filter ledger.WithdrawalFilter) ([]*ledger.Withdrawal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*ledger.Withdrawal

	for _, w := range m.withdrawals {
		if filter.Status == nil || w.Status == *filter.Status {
			cp := *w
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (m *memLedger) CountWithdrawals(ctx context.Context, status ledger.WithdrawalStatus) (int64, error) {
	ws, _ := m.ListWithdrawals(ctx, ledger.WithdrawalFilter{Status: &status})

	return int64(len(ws)), nil
}

func (m *memLedger) TotalCirculation(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total int64
	for _, e := range m.entries {
		total += e.Delta
	}

	return total, nil
}

type memTx struct {
	l        *memLedger
	held     []*sync.Mutex
	entries  []*ledger.Entry
	created  []*ledger.Withdrawal
	updated  []*ledger.Withdrawal
	finished bool
}

func (t *memTx) LockAccounts(ctx context.Context, ids ...uuid.UUID) error {
	for _, id := range ids {
		t.l.mu.Lock()
		lock, ok := t.l.accountLock[id]
		t.l.mu.Unlock()

		if !ok {
			return ledger.ErrAccountNotFound
		}

		lock.Lock()
		t.held = append(t.held, lock)
	}

	return nil
}

func (t *memTx) Balance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	t.l.mu.Lock()
	b := t.l.sum(accountID)
	t.l.mu.Unlock()

	for _, e := range t.entries {
		if e.AccountID == accountID {
			b += e.Delta
		}
	}

	return b, nil
}

func (t *memTx) ListEntries(ctx context.Context, accountID uuid.UUID) ([]*ledger.Entry, error) {
	return t.l.ListEntries(ctx, accountID, 0)
}

func (t *memTx) AppendEntries(ctx context.Context, entries ...*ledger.Entry) error {
	t.entries = append(t.entries, entries...)

	return nil
}

func (t *memTx) CreateWithdrawal(ctx context.Context, w *ledger.Withdrawal) error {
	cp := *w
	t.created = append(t.created, &cp)

	return nil
}

func (t *memTx) LockWithdrawal(ctx context.Context, id uuid.UUID) (*ledger.Withdrawal, error) {
	t.l.mu.Lock()
	lock, ok := t.l.wLock[id]
	t.l.mu.Unlock()

	if !ok {
		return nil, ledger.ErrWithdrawalNotFound
	}

	lock.Lock()
	t.held = append(t.held, lock)

	return t.l.GetWithdrawal(ctx, id)
}

func (t *memTx) UpdateWithdrawal(ctx context.Context, w *ledger.Withdrawal) error {
	cp := *w
	t.updated = append(t.updated, &cp)

	return nil
}

func (t *memTx) Commit() error {
	t.l.mu.Lock()
	t.l.entries = append(t.l.entries, t.entries...)

	for _, w := range t.created {
		t.l.withdrawals[w.ID] = w
		t.l.wLock[w.ID] = &sync.Mutex{}
	}

	for _, w := range t.updated {
		t.l.withdrawals[w.ID] = w
	}
	t.l.mu.Unlock()

	t.release()

	return nil
}

func (t *memTx) Rollback() error {
	t.release()

	return nil
}

func (t *memTx) release() {
	if t.finished {
		return
	}

	t.finished = true

	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}
}

// droppedAckLedger applies the first commit and then reports the connection
// as lost, the way a COMMIT whose acknowledgement never arrives looks.
type droppedAckLedger struct {
	*memLedger
	dropped bool
}

func (d *droppedAckLedger) Begin(ctx context.Context) (ledger.Tx, error) {
	tx, _ := d.memLedger.Begin(ctx)

	return &droppedAckTx{memTx: tx.(*memTx), d: d}, nil
}

type droppedAckTx struct {
	*memTx
	d *droppedAckLedger
}

func (t *droppedAckTx) Commit() error {
	if err := t.memTx.Commit(); err != nil {
		return err
	}

	if t.d.dropped {
		return nil
	}

	t.d.dropped = true

	return &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}
}
