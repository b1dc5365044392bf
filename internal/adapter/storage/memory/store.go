// Package memory is a process-local storage driver. It gives the same
// atomicity and serialization guarantees as the postgres driver: one writer
// at a time, and a call's writes become visible together on commit.
package memory

import (
	"context"
	"errors"
	"sync"

	"payee-treasury/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/jackc/pgx/v5"
)

// ErrForeignTx is returned when a repository receives a transaction that was
// not started by its own Store.
var ErrForeignTx = errors.New("memory: transaction does not belong to this store")

// Store holds the committed snapshot and the writer slot.
type Store struct {
	writer chan struct{}

	mu   sync.RWMutex
	snap *snapshot

	auditMu    sync.Mutex
	audits     []domain.AuditLog
	deliveries map[uuid.UUID]domain.EventDeliveryLog
}

type snapshot struct {
	state   *domain.WalletState
	balance uint256.Int
	payees  map[common.Address]domain.Payee
	events  []domain.Event
}

// NewStore creates an empty store: no wallet state, zero balance.
func NewStore() *Store {
	return &Store{
		writer:     make(chan struct{}, 1),
		snap:       &snapshot{payees: make(map[common.Address]domain.Payee)},
		deliveries: make(map[uuid.UUID]domain.EventDeliveryLog),
	}
}

func (s *snapshot) clone() *snapshot {
	c := &snapshot{
		balance: s.balance,
		payees:  make(map[common.Address]domain.Payee, len(s.payees)),
		events:  s.events[:len(s.events):len(s.events)],
	}
	if s.state != nil {
		st := *s.state
		c.state = &st
	}
	for k, v := range s.payees {
		c.payees[k] = v
	}
	return c
}

func (s *Store) committed() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Begin waits for the writer slot and opens a transaction on a private copy
// of the committed snapshot.
func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	select {
	case s.writer <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &Tx{store: s, snap: s.committed().clone()}, nil
}

// Tx is a memory transaction. Only Commit and Rollback are supported; the
// repositories read and write its snapshot directly.
type Tx struct {
	pgx.Tx

	store *Store
	snap  *snapshot
	done  bool
}

// Commit publishes the transaction's snapshot and releases the writer slot.
func (tx *Tx) Commit(ctx context.Context) error {
	if tx.done {
		return pgx.ErrTxClosed
	}
	tx.store.mu.Lock()
	tx.store.snap = tx.snap
	tx.store.mu.Unlock()
	tx.finish()
	return nil
}

// Rollback discards the snapshot and releases the writer slot.
func (tx *Tx) Rollback(ctx context.Context) error {
	if tx.done {
		return pgx.ErrTxClosed
	}
	tx.finish()
	return nil
}

func (tx *Tx) finish() {
	tx.done = true
	tx.snap = nil
	<-tx.store.writer
}

func (s *Store) txOf(tx pgx.Tx) (*Tx, error) {
	mtx, ok := tx.(*Tx)
	if !ok || mtx.store != s {
		return nil, ErrForeignTx
	}
	if mtx.done {
		return nil, pgx.ErrTxClosed
	}
	return mtx, nil
}
