package ports

import (
	"context"
	"time"

	"payee-treasury/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Clock is the timestamp oracle consulted by the withdrawal limiter.
type Clock interface {
	Now() time.Time
}

// PayoutGateway moves value out of the treasury. Transfer is the last step
// of a withdrawal and runs before the call commits; an error aborts the call.
type PayoutGateway interface {
	Transfer(ctx context.Context, to common.Address, amount *uint256.Int) error
}

// EventPublisher receives events after their call has committed.
type EventPublisher interface {
	Publish(ctx context.Context, events []domain.Event)
}

// TreasuryMetrics records withdrawal outcomes.
type TreasuryMetrics interface {
	ObserveWithdrawal(kind string, amount *uint256.Int)
	ObserveRejection(operation string, code string)
}

// SignatureService handles HMAC-SHA256 signing of outbound payloads.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// CallerVerifier recovers the address that signed a request.
type CallerVerifier interface {
	BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string
	Recover(payload string, signatureHex string) (common.Address, error)
}

// TokenService handles JWT session tokens bound to a caller address.
type TokenService interface {
	Generate(caller common.Address) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Caller common.Address
}

// NonceStore manages nonce uniqueness for replay attack prevention.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, caller string, nonce string, ttl time.Duration) (bool, error)
}

// --- Service Ports (Business Logic) ---

// RegistryService manages the payee registry. Mutations are administrator-only.
type RegistryService interface {
	AddPayee(ctx context.Context, caller common.Address, payee common.Address, whitelisted bool) (*domain.Payee, error)
	AddPayees(ctx context.Context, caller common.Address, payees []common.Address, whitelisted []bool) ([]domain.Payee, error)
	WhitelistPayee(ctx context.Context, caller common.Address, payee common.Address) (*domain.Payee, error)
	BlacklistPayee(ctx context.Context, caller common.Address, payee common.Address) (*domain.Payee, error)
	RemovePayee(ctx context.Context, caller common.Address, payee common.Address) error
	IsWhitelisted(ctx context.Context, payee common.Address) (bool, error)
	GetPayee(ctx context.Context, payee common.Address) (*domain.Payee, error)
	ListPayees(ctx context.Context, params PayeeListParams) ([]domain.Payee, int64, error)
}

// TreasuryService owns funding, withdrawals and the daily limit.
type TreasuryService interface {
	Initialize(ctx context.Context, req InitializeRequest) (*domain.WalletState, error)
	Deposit(ctx context.Context, caller common.Address, amount *uint256.Int) error
	OwnerWithdraws(ctx context.Context, caller common.Address, amount *uint256.Int) error
	PayeeWithdraws(ctx context.Context, caller common.Address, amount *uint256.Int) (*domain.Payee, error)
	SetDailyLimit(ctx context.Context, caller common.Address, newLimit *uint256.Int) error
	DailyLimit(ctx context.Context) (*uint256.Int, error)
	Allowance(ctx context.Context, payee common.Address) (*PayeeAllowance, error)
	Overview(ctx context.Context) (*TreasuryOverview, error)
}

// InitializeRequest holds the one-time construction parameters.
type InitializeRequest struct {
	Deployer       common.Address
	Payees         []common.Address
	Whitelisted    []bool
	DailyLimit     *uint256.Int
	InitialFunding *uint256.Int // nil or zero = unfunded
}

// TreasuryOverview is the combined view of wallet state and ledger balance.
type TreasuryOverview struct {
	Admin         common.Address
	DailyLimit    *uint256.Int
	Balance       *uint256.Int
	EventSeq      int64
	LastEventHash string
}

// PayeeAllowance is what a payee may still withdraw at the current time.
// Remaining is nil when the payee is not subject to the daily limit.
type PayeeAllowance struct {
	Payee     domain.Payee
	Remaining *uint256.Int
}

// EventQueryService exposes the event log to external observers.
type EventQueryService interface {
	ListEvents(ctx context.Context, params EventListParams) ([]domain.Event, int64, error)
}

// AuditService records request-level audit entries.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
