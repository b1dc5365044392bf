package service

import (
	"context"
	"errors"
	"fmt"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"
	"payee-treasury/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
)

const (
	withdrawalKindOwner = "owner"
	withdrawalKindPayee = "payee"
)

// TreasuryServiceImpl implements ports.TreasuryService.
type TreasuryServiceImpl struct {
	payeeRepo ports.PayeeRepository
	ledger    ports.Ledger
	limiter   WithdrawalLimiter
	guard     AccessGuard
	metrics   ports.TreasuryMetrics
	runner    *callRunner
	log       zerolog.Logger
}

// TreasuryDeps groups the collaborators of the treasury service.
type TreasuryDeps struct {
	PayeeRepo  ports.PayeeRepository
	StateRepo  ports.WalletStateRepository
	EventRepo  ports.EventRepository
	Ledger     ports.Ledger
	Transactor ports.DBTransactor
	Gateway    ports.PayoutGateway
	Publisher  ports.EventPublisher
	Metrics    ports.TreasuryMetrics
	Clock      ports.Clock
	Limiter    WithdrawalLimiter
}

// NewTreasuryService creates a new TreasuryServiceImpl.
func NewTreasuryService(deps TreasuryDeps, log zerolog.Logger) *TreasuryServiceImpl {
	limiter := deps.Limiter
	if limiter.Window <= 0 {
		limiter = NewWithdrawalLimiter(domain.OneDay)
	}
	return &TreasuryServiceImpl{
		payeeRepo: deps.PayeeRepo,
		ledger:    deps.Ledger,
		limiter:   limiter,
		metrics:   deps.Metrics,
		runner: &callRunner{
			transactor: deps.Transactor,
			stateRepo:  deps.StateRepo,
			events:     NewEventLog(deps.EventRepo),
			gateway:    deps.Gateway,
			publisher:  deps.Publisher,
			clock:      deps.Clock,
			log:        log,
		},
		log: log,
	}
}

// Initialize constructs the treasury once. The deployer becomes the
// administrator.
func (s *TreasuryServiceImpl) Initialize(ctx context.Context, req ports.InitializeRequest) (*domain.WalletState, error) {
	if err := checkReentrancy(ctx); err != nil {
		return nil, err
	}
	if req.Deployer == (common.Address{}) {
		return nil, apperror.InvalidInput("deployer must not be the zero address")
	}
	if len(req.Payees) != len(req.Whitelisted) {
		return nil, apperror.InvalidInput("payees and whitelisted flags must have equal length")
	}
	if req.DailyLimit == nil || req.DailyLimit.IsZero() {
		return nil, apperror.InvalidInput("daily limit must be positive")
	}
	seen := make(map[common.Address]struct{}, len(req.Payees))
	for _, addr := range req.Payees {
		if addr == (common.Address{}) {
			return nil, apperror.InvalidInput("zero address is not a valid payee")
		}
		if _, dup := seen[addr]; dup {
			return nil, apperror.InvalidInput(fmt.Sprintf("duplicate payee %s", addr.Hex()))
		}
		seen[addr] = struct{}{}
	}

	r := s.runner
	dbTx, err := r.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	existing, err := r.stateRepo.GetForUpdate(ctx, dbTx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet state: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyInitialized()
	}

	now := r.clock.Now().UTC()
	state := &domain.WalletState{
		Admin:         req.Deployer,
		LastEventHash: GenesisHash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	state.DailyLimit.Set(req.DailyLimit)

	sc := &callScope{ctx: ctx, tx: dbTx, state: state, caller: req.Deployer, now: now, runner: r}
	for i, addr := range req.Payees {
		p := domain.NewPayee(addr, req.Whitelisted[i])
		if err := s.payeeRepo.Save(ctx, dbTx, &p); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("save payee: %w", err))
		}
		if err := sc.emit(domain.PayeeAdded(addr)); err != nil {
			return nil, err
		}
	}
	if req.InitialFunding != nil && !req.InitialFunding.IsZero() {
		if err := s.ledger.Credit(ctx, dbTx, req.InitialFunding); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("credit ledger: %w", err))
		}
		if err := sc.emit(domain.Deposit(req.InitialFunding)); err != nil {
			return nil, err
		}
	}

	if err := r.stateRepo.Create(ctx, dbTx, state); err != nil {
		if errors.Is(err, domain.ErrStateExists) {
			return nil, apperror.ErrAlreadyInitialized()
		}
		return nil, apperror.InternalError(fmt.Errorf("create wallet state: %w", err))
	}

	if err := r.commit(ctx, dbTx, sc.emitted); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("admin", state.Admin.Hex()).
		Int("payees", len(req.Payees)).
		Str("daily_limit", state.DailyLimit.Dec()).
		Msg("treasury initialized")

	return state, nil
}

// Deposit credits the treasury. Any caller may deposit.
func (s *TreasuryServiceImpl) Deposit(ctx context.Context, caller common.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return apperror.InvalidInput("amount must be positive")
	}

	_, err := s.runner.run(ctx, caller, func(sc *callScope) error {
		balance, err := s.ledger.BalanceForUpdate(ctx, sc.tx)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock balance: %w", err))
		}
		if _, overflow := new(uint256.Int).AddOverflow(balance, amount); overflow {
			return apperror.InvalidInput("deposit would overflow the treasury balance")
		}
		if err := s.ledger.Credit(ctx, sc.tx, amount); err != nil {
			return apperror.InternalError(fmt.Errorf("credit ledger: %w", err))
		}
		return sc.emit(domain.Deposit(amount))
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("caller", caller.Hex()).Str("amount", amount.Dec()).Msg("deposit received")
	return nil
}

// OwnerWithdraws pays amount out to the administrator.
func (s *TreasuryServiceImpl) OwnerWithdraws(ctx context.Context, caller common.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return apperror.InvalidInput("amount must be positive")
	}

	_, err := s.runner.run(ctx, caller, func(sc *callScope) error {
		if err := s.guard.RequireAdmin(sc.state, caller); err != nil {
			return err
		}
		if err := s.debit(sc, amount); err != nil {
			return err
		}
		if err := sc.emit(domain.OwnerWithdrawal(amount)); err != nil {
			return err
		}
		sc.payOut(sc.state.Admin, amount)
		return nil
	})
	if err != nil {
		s.observeRejection("owner_withdraw", err)
		return err
	}

	s.observeWithdrawal(withdrawalKindOwner, amount)
	s.log.Info().Str("admin", caller.Hex()).Str("amount", amount.Dec()).Msg("owner withdrawal processed")
	return nil
}

// PayeeWithdraws pays amount out to the calling payee. Standard payees are
// charged against their daily window; whitelisted payees are not.
func (s *TreasuryServiceImpl) PayeeWithdraws(ctx context.Context, caller common.Address, amount *uint256.Int) (*domain.Payee, error) {
	if amount == nil || amount.IsZero() {
		return nil, apperror.InvalidInput("amount must be positive")
	}

	var updated domain.Payee
	_, err := s.runner.run(ctx, caller, func(sc *callScope) error {
		p, err := s.payeeRepo.GetForUpdate(ctx, sc.tx, caller)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock payee: %w", err))
		}
		if err := s.guard.RequirePayee(p, caller); err != nil {
			return err
		}

		balance, err := s.ledger.BalanceForUpdate(ctx, sc.tx)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock balance: %w", err))
		}
		if amount.Gt(balance) {
			return apperror.ErrInsufficientFunds()
		}

		next := *p
		if p.IsRateLimited() {
			next, err = s.limiter.Apply(*p, sc.now.Unix(), amount, &sc.state.DailyLimit)
			if err != nil {
				return err
			}
			if err := s.payeeRepo.Save(ctx, sc.tx, &next); err != nil {
				return apperror.InternalError(fmt.Errorf("save payee: %w", err))
			}
		}

		if err := s.ledger.Debit(ctx, sc.tx, amount); err != nil {
			return apperror.InternalError(fmt.Errorf("debit ledger: %w", err))
		}
		if err := sc.emit(domain.PayeeWithdrawal(caller, amount)); err != nil {
			return err
		}
		sc.payOut(caller, amount)
		updated = next
		return nil
	})
	if err != nil {
		s.observeRejection("payee_withdraw", err)
		return nil, err
	}

	s.observeWithdrawal(withdrawalKindPayee, amount)
	s.log.Info().
		Str("payee", caller.Hex()).
		Str("amount", amount.Dec()).
		Bool("whitelisted", updated.Whitelisted).
		Msg("payee withdrawal processed")

	return &updated, nil
}

// SetDailyLimit replaces the daily limit. Writing the current value is rejected.
func (s *TreasuryServiceImpl) SetDailyLimit(ctx context.Context, caller common.Address, newLimit *uint256.Int) error {
	if newLimit == nil || newLimit.IsZero() {
		return apperror.InvalidInput("daily limit must be positive")
	}

	_, err := s.runner.run(ctx, caller, func(sc *callScope) error {
		if err := s.guard.RequireAdmin(sc.state, caller); err != nil {
			return err
		}
		if sc.state.DailyLimit.Eq(newLimit) {
			return apperror.InvalidInput("daily limit is unchanged")
		}
		sc.state.DailyLimit.Set(newLimit)
		return sc.emit(domain.DailyLimitChanged(newLimit))
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("daily_limit", newLimit.Dec()).Msg("daily limit changed")
	return nil
}

// DailyLimit returns the current daily limit.
func (s *TreasuryServiceImpl) DailyLimit(ctx context.Context) (*uint256.Int, error) {
	state, err := s.runner.stateRepo.Get(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet state: %w", err))
	}
	if state == nil {
		return nil, apperror.ErrNotInitialized()
	}
	return new(uint256.Int).Set(&state.DailyLimit), nil
}

// Allowance reports what payee may still withdraw now. Addresses that are not
// allowed get zero; whitelisted payees get a nil Remaining.
func (s *TreasuryServiceImpl) Allowance(ctx context.Context, payee common.Address) (*ports.PayeeAllowance, error) {
	state, err := s.runner.stateRepo.Get(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet state: %w", err))
	}
	if state == nil {
		return nil, apperror.ErrNotInitialized()
	}
	p, err := s.payeeRepo.Get(ctx, payee)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get payee: %w", err))
	}

	out := &ports.PayeeAllowance{Payee: *p}
	switch {
	case !p.Allowed:
		out.Remaining = new(uint256.Int)
	case p.IsRateLimited():
		out.Remaining = s.limiter.Remaining(*p, s.runner.clock.Now().Unix(), &state.DailyLimit)
	}
	return out, nil
}

// Overview returns the wallet state together with the ledger balance.
func (s *TreasuryServiceImpl) Overview(ctx context.Context) (*ports.TreasuryOverview, error) {
	state, err := s.runner.stateRepo.Get(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet state: %w", err))
	}
	if state == nil {
		return nil, apperror.ErrNotInitialized()
	}
	balance, err := s.ledger.Balance(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get balance: %w", err))
	}

	return &ports.TreasuryOverview{
		Admin:         state.Admin,
		DailyLimit:    new(uint256.Int).Set(&state.DailyLimit),
		Balance:       balance,
		EventSeq:      state.EventSeq,
		LastEventHash: state.LastEventHash,
	}, nil
}

// debit checks the balance under lock and takes amount off the ledger.
func (s *TreasuryServiceImpl) debit(sc *callScope, amount *uint256.Int) error {
	balance, err := s.ledger.BalanceForUpdate(sc.ctx, sc.tx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock balance: %w", err))
	}
	if amount.Gt(balance) {
		return apperror.ErrInsufficientFunds()
	}
	if err := s.ledger.Debit(sc.ctx, sc.tx, amount); err != nil {
		return apperror.InternalError(fmt.Errorf("debit ledger: %w", err))
	}
	return nil
}

func (s *TreasuryServiceImpl) observeWithdrawal(kind string, amount *uint256.Int) {
	if s.metrics != nil {
		s.metrics.ObserveWithdrawal(kind, amount)
	}
}

func (s *TreasuryServiceImpl) observeRejection(op string, err error) {
	if s.metrics == nil {
		return
	}
	if code := apperror.CodeOf(err); code != "" {
		s.metrics.ObserveRejection(op, code)
	}
}
