package ports

import (
	"context"

	"payee-treasury/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/jackc/pgx/v5"
)

// WalletStateRepository persists the single treasury-wide record.
// Methods accepting pgx.Tx run inside the call's transaction.
type WalletStateRepository interface {
	// Get returns nil when the treasury has not been constructed yet.
	Get(ctx context.Context) (*domain.WalletState, error)
	// GetForUpdate locks the record; every mutating call serializes on it.
	GetForUpdate(ctx context.Context, tx pgx.Tx) (*domain.WalletState, error)
	Create(ctx context.Context, tx pgx.Tx, state *domain.WalletState) error
	Update(ctx context.Context, tx pgx.Tx, state *domain.WalletState) error
}

// PayeeRepository persists payee records. Reads of an absent address return
// the unregistered default record, never nil.
type PayeeRepository interface {
	Get(ctx context.Context, addr common.Address) (*domain.Payee, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, addr common.Address) (*domain.Payee, error)
	Save(ctx context.Context, tx pgx.Tx, payee *domain.Payee) error
	Delete(ctx context.Context, tx pgx.Tx, addr common.Address) error
	List(ctx context.Context, params PayeeListParams) ([]domain.Payee, int64, error)
}

// PayeeListParams holds filter + pagination for listing registered payees.
type PayeeListParams struct {
	Whitelisted *bool
	Page        int
	PageSize    int
}

// Ledger holds the treasury balance. It stands in for the host ledger's
// native balance and is never mirrored in WalletState.
type Ledger interface {
	Balance(ctx context.Context) (*uint256.Int, error)
	BalanceForUpdate(ctx context.Context, tx pgx.Tx) (*uint256.Int, error)
	Credit(ctx context.Context, tx pgx.Tx, amount *uint256.Int) error
	Debit(ctx context.Context, tx pgx.Tx, amount *uint256.Int) error
}

// EventRepository is the append-only event log store.
type EventRepository interface {
	Append(ctx context.Context, tx pgx.Tx, event *domain.Event) error
	List(ctx context.Context, params EventListParams) ([]domain.Event, int64, error)
}

// EventListParams holds filter + pagination for reading the event log.
type EventListParams struct {
	Type     *domain.EventType
	Payee    *common.Address
	AfterSeq int64
	Page     int
	PageSize int
}

// AuditRepository persists request audit records.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DeliveryRepository persists observer delivery attempts.
type DeliveryRepository interface {
	Create(ctx context.Context, log *domain.EventDeliveryLog) error
	Update(ctx context.Context, log *domain.EventDeliveryLog) error
	// ListPending returns up to limit undelivered attempts, oldest event first.
	ListPending(ctx context.Context, limit int) ([]domain.EventDeliveryLog, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
