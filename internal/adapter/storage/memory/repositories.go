package memory

import (
	"bytes"
	"context"
	"sort"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/jackc/pgx/v5"
)

// WalletStateRepo implements ports.WalletStateRepository.
type WalletStateRepo struct{ store *Store }

func NewWalletStateRepo(s *Store) *WalletStateRepo { return &WalletStateRepo{store: s} }

func (r *WalletStateRepo) Get(ctx context.Context) (*domain.WalletState, error) {
	return copyState(r.store.committed().state), nil
}

// GetForUpdate reads the transaction's view. The writer slot taken at Begin
// is the lock.
func (r *WalletStateRepo) GetForUpdate(ctx context.Context, tx pgx.Tx) (*domain.WalletState, error) {
	mtx, err := r.store.txOf(tx)
	if err != nil {
		return nil, err
	}
	return copyState(mtx.snap.state), nil
}

func (r *WalletStateRepo) Create(ctx context.Context, tx pgx.Tx, s *domain.WalletState) error {
	mtx, err := r.store.txOf(tx)
	if err != nil {
		return err
	}
	if mtx.snap.state != nil {
		return domain.ErrStateExists
	}
	mtx.snap.state = copyState(s)
	return nil
}

func (r *WalletStateRepo) Update(ctx context.Context, tx pgx.Tx, s *domain.WalletState) error {
	mtx, err := r.store.txOf(tx)
	if err != nil {
		return err
	}
	if mtx.snap.state == nil {
		return errWalletStateMissing
	}
	// Admin and CreatedAt are immutable after construction.
	mtx.snap.state.DailyLimit = s.DailyLimit
	mtx.snap.state.EventSeq = s.EventSeq
	mtx.snap.state.LastEventHash = s.LastEventHash
	mtx.snap.state.UpdatedAt = s.UpdatedAt
	return nil
}

func copyState(s *domain.WalletState) *domain.WalletState {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// PayeeRepo implements ports.PayeeRepository. Absent addresses read as the
// unregistered default record.
type PayeeRepo struct{ store *Store }

func NewPayeeRepo(s *Store) *PayeeRepo { return &PayeeRepo{store: s} }

func (r *PayeeRepo) Get(ctx context.Context, addr common.Address) (*domain.Payee, error) {
	return lookupPayee(r.store.committed(), addr), nil
}

func (r *PayeeRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, addr common.Address) (*domain.Payee, error) {
	mtx, err := r.store.txOf(tx)
	if err != nil {
		return nil, err
	}
	return lookupPayee(mtx.snap, addr), nil
}

func (r *PayeeRepo) Save(ctx context.Context, tx pgx.Tx, p *domain.Payee) error {
	mtx, err := r.store.txOf(tx)
	if err != nil {
		return err
	}
	mtx.snap.payees[p.Address] = *p
	return nil
}

func (r *PayeeRepo) Delete(ctx context.Context, tx pgx.Tx, addr common.Address) error {
	mtx, err := r.store.txOf(tx)
	if err != nil {
		return err
	}
	delete(mtx.snap.payees, addr)
	return nil
}

// List returns allowed payees ordered by address.
func (r *PayeeRepo) List(ctx context.Context, params ports.PayeeListParams) ([]domain.Payee, int64, error) {
	snap := r.store.committed()

	var matched []domain.Payee
	for _, p := range snap.payees {
		if !p.Allowed {
			continue
		}
		if params.Whitelisted != nil && p.Whitelisted != *params.Whitelisted {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return bytes.Compare(matched[i].Address[:], matched[j].Address[:]) < 0
	})

	return paginate(matched, params.Page, params.PageSize), int64(len(matched)), nil
}

func lookupPayee(snap *snapshot, addr common.Address) *domain.Payee {
	p, ok := snap.payees[addr]
	if !ok {
		p = domain.UnregisteredPayee(addr)
	}
	return &p
}

// LedgerRepo implements ports.Ledger.
type LedgerRepo struct{ store *Store }

func NewLedgerRepo(s *Store) *LedgerRepo { return &LedgerRepo{store: s} }

func (r *LedgerRepo) Balance(ctx context.Context) (*uint256.Int, error) {
	snap := r.store.committed()
	return new(uint256.Int).Set(&snap.balance), nil
}

func (r *LedgerRepo) BalanceForUpdate(ctx context.Context, tx pgx.Tx) (*uint256.Int, error) {
	mtx, err := r.store.txOf(tx)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).Set(&mtx.snap.balance), nil
}

func (r *LedgerRepo) Credit(ctx context.Context, tx pgx.Tx, amount *uint256.Int) error {
	mtx, err := r.store.txOf(tx)
	if err != nil {
		return err
	}
	sum, overflow := new(uint256.Int).AddOverflow(&mtx.snap.balance, amount)
	if overflow {
		return errBalanceOverflow
	}
	mtx.snap.balance.Set(sum)
	return nil
}

func (r *LedgerRepo) Debit(ctx context.Context, tx pgx.Tx, amount *uint256.Int) error {
	mtx, err := r.store.txOf(tx)
	if err != nil {
		return err
	}
	if amount.Gt(&mtx.snap.balance) {
		return errBalanceNegative
	}
	mtx.snap.balance.Sub(&mtx.snap.balance, amount)
	return nil
}

// EventRepo implements ports.EventRepository.
type EventRepo struct{ store *Store }

func NewEventRepo(s *Store) *EventRepo { return &EventRepo{store: s} }

func (r *EventRepo) Append(ctx context.Context, tx pgx.Tx, e *domain.Event) error {
	mtx, err := r.store.txOf(tx)
	if err != nil {
		return err
	}
	if want := int64(len(mtx.snap.events)) + 1; e.Seq != want {
		return errSeqGap(e.Seq, want)
	}
	mtx.snap.events = append(mtx.snap.events, *e)
	return nil
}

func (r *EventRepo) List(ctx context.Context, params ports.EventListParams) ([]domain.Event, int64, error) {
	snap := r.store.committed()

	var matched []domain.Event
	for _, e := range snap.events {
		if params.Type != nil && e.Type != *params.Type {
			continue
		}
		if params.Payee != nil && (e.Payee == nil || *e.Payee != *params.Payee) {
			continue
		}
		if e.Seq <= params.AfterSeq {
			continue
		}
		matched = append(matched, e)
	}

	return paginate(matched, params.Page, params.PageSize), int64(len(matched)), nil
}

func paginate[T any](items []T, page, pageSize int) []T {
	start, err := domain.PageOffset(page, pageSize)
	if err != nil || start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
