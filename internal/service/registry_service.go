package service

import (
	"context"
	"fmt"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"
	"payee-treasury/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

const maxBatchSize = 256

// RegistryServiceImpl implements ports.RegistryService.
type RegistryServiceImpl struct {
	payeeRepo ports.PayeeRepository
	guard     AccessGuard
	runner    *callRunner
	log       zerolog.Logger
}

// NewRegistryService creates a new RegistryServiceImpl.
func NewRegistryService(
	payeeRepo ports.PayeeRepository,
	stateRepo ports.WalletStateRepository,
	eventRepo ports.EventRepository,
	transactor ports.DBTransactor,
	publisher ports.EventPublisher,
	clock ports.Clock,
	log zerolog.Logger,
) *RegistryServiceImpl {
	return &RegistryServiceImpl{
		payeeRepo: payeeRepo,
		runner: &callRunner{
			transactor: transactor,
			stateRepo:  stateRepo,
			events:     NewEventLog(eventRepo),
			publisher:  publisher,
			clock:      clock,
			log:        log,
		},
		log: log,
	}
}

// AddPayee registers a single payee.
func (s *RegistryServiceImpl) AddPayee(ctx context.Context, caller, payee common.Address, whitelisted bool) (*domain.Payee, error) {
	added, err := s.AddPayees(ctx, caller, []common.Address{payee}, []bool{whitelisted})
	if err != nil {
		return nil, err
	}
	return &added[0], nil
}

// AddPayees registers every pair or none of them. A duplicate against the
// registry or within the batch aborts the whole batch.
func (s *RegistryServiceImpl) AddPayees(ctx context.Context, caller common.Address, payees []common.Address, whitelisted []bool) ([]domain.Payee, error) {
	if len(payees) == 0 {
		return nil, apperror.InvalidInput("payee list must not be empty")
	}
	if len(payees) != len(whitelisted) {
		return nil, apperror.InvalidInput("payees and whitelisted flags must have equal length")
	}
	if len(payees) > maxBatchSize {
		return nil, apperror.InvalidInput(fmt.Sprintf("batch exceeds %d payees", maxBatchSize))
	}
	for _, addr := range payees {
		if addr == (common.Address{}) {
			return nil, apperror.InvalidInput("zero address is not a valid payee")
		}
	}

	added := make([]domain.Payee, 0, len(payees))
	_, err := s.runner.run(ctx, caller, func(sc *callScope) error {
		if err := s.guard.RequireAdmin(sc.state, caller); err != nil {
			return err
		}

		seen := make(map[common.Address]struct{}, len(payees))
		for i, addr := range payees {
			if _, dup := seen[addr]; dup {
				return apperror.ErrAlreadyRegistered()
			}
			seen[addr] = struct{}{}

			current, err := s.payeeRepo.GetForUpdate(ctx, sc.tx, addr)
			if err != nil {
				return apperror.InternalError(fmt.Errorf("lock payee: %w", err))
			}
			if current.Allowed {
				return apperror.ErrAlreadyRegistered()
			}

			p := domain.NewPayee(addr, whitelisted[i])
			if err := s.payeeRepo.Save(ctx, sc.tx, &p); err != nil {
				return apperror.InternalError(fmt.Errorf("save payee: %w", err))
			}
			if err := sc.emit(domain.PayeeAdded(addr)); err != nil {
				return err
			}
			added = append(added, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range added {
		s.log.Info().
			Str("payee", p.Address.Hex()).
			Bool("whitelisted", p.Whitelisted).
			Msg("payee added")
	}
	return added, nil
}

// WhitelistPayee exempts a registered payee from the daily limit.
func (s *RegistryServiceImpl) WhitelistPayee(ctx context.Context, caller, payee common.Address) (*domain.Payee, error) {
	var updated domain.Payee
	_, err := s.runner.run(ctx, caller, func(sc *callScope) error {
		if err := s.guard.RequireAdmin(sc.state, caller); err != nil {
			return err
		}
		p, err := s.payeeRepo.GetForUpdate(ctx, sc.tx, payee)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock payee: %w", err))
		}
		if !p.Allowed {
			return apperror.ErrNotFound("Payee")
		}
		if p.Whitelisted {
			return apperror.ErrAlreadyWhitelisted()
		}

		p.Whitelisted = true
		if err := s.payeeRepo.Save(ctx, sc.tx, p); err != nil {
			return apperror.InternalError(fmt.Errorf("save payee: %w", err))
		}
		updated = *p
		return sc.emit(domain.PayeeWhitelisted(payee))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("payee", payee.Hex()).Msg("payee whitelisted")
	return &updated, nil
}

// BlacklistPayee puts a whitelisted payee back under the daily limit. The
// window fields are left as they are.
func (s *RegistryServiceImpl) BlacklistPayee(ctx context.Context, caller, payee common.Address) (*domain.Payee, error) {
	var updated domain.Payee
	_, err := s.runner.run(ctx, caller, func(sc *callScope) error {
		if err := s.guard.RequireAdmin(sc.state, caller); err != nil {
			return err
		}
		p, err := s.payeeRepo.GetForUpdate(ctx, sc.tx, payee)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock payee: %w", err))
		}
		if !p.Whitelisted {
			return apperror.ErrNotWhitelisted()
		}

		p.Whitelisted = false
		if err := s.payeeRepo.Save(ctx, sc.tx, p); err != nil {
			return apperror.InternalError(fmt.Errorf("save payee: %w", err))
		}
		updated = *p
		return sc.emit(domain.PayeeBlacklisted(payee))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("payee", payee.Hex()).Msg("payee blacklisted")
	return &updated, nil
}

// RemovePayee deletes the payee record, returning the address to the
// never-registered state.
func (s *RegistryServiceImpl) RemovePayee(ctx context.Context, caller, payee common.Address) error {
	_, err := s.runner.run(ctx, caller, func(sc *callScope) error {
		if err := s.guard.RequireAdmin(sc.state, caller); err != nil {
			return err
		}
		p, err := s.payeeRepo.GetForUpdate(ctx, sc.tx, payee)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock payee: %w", err))
		}
		if !p.Allowed {
			return apperror.ErrNotFound("Payee")
		}

		if err := s.payeeRepo.Delete(ctx, sc.tx, payee); err != nil {
			return apperror.InternalError(fmt.Errorf("delete payee: %w", err))
		}
		return sc.emit(domain.PayeeRemoved(payee))
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("payee", payee.Hex()).Msg("payee removed")
	return nil
}

// IsWhitelisted reports false for addresses never registered or since removed.
func (s *RegistryServiceImpl) IsWhitelisted(ctx context.Context, payee common.Address) (bool, error) {
	p, err := s.GetPayee(ctx, payee)
	if err != nil {
		return false, err
	}
	return p.Whitelisted, nil
}

// GetPayee returns the record for payee, or the default record when absent.
func (s *RegistryServiceImpl) GetPayee(ctx context.Context, payee common.Address) (*domain.Payee, error) {
	p, err := s.payeeRepo.Get(ctx, payee)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get payee: %w", err))
	}
	return p, nil
}

// ListPayees returns registered payees ordered by address.
func (s *RegistryServiceImpl) ListPayees(ctx context.Context, params ports.PayeeListParams) ([]domain.Payee, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > domain.MaxPageSize {
		params.PageSize = domain.DefaultPageSize
	}
	if params.Page > domain.MaxPage {
		return nil, 0, apperror.InvalidInput(fmt.Sprintf("page must not exceed %d", domain.MaxPage))
	}

	payees, total, err := s.payeeRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list payees: %w", err))
	}
	return payees, total, nil
}
