package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"
	"payee-treasury/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// callRunner executes one mutating call as a single transaction serialized on
// the wallet state lock. Registry and treasury services share it.
type callRunner struct {
	transactor ports.DBTransactor
	stateRepo  ports.WalletStateRepository
	events     *EventLog
	gateway    ports.PayoutGateway
	publisher  ports.EventPublisher
	clock      ports.Clock
	log        zerolog.Logger
}

// callScope is the view a mutating call has of its own transaction.
type callScope struct {
	ctx    context.Context
	tx     pgx.Tx
	state  *domain.WalletState
	caller common.Address
	now    time.Time

	runner   *callRunner
	emitted  []domain.Event
	transfer *pendingTransfer
}

type pendingTransfer struct {
	to     common.Address
	amount *uint256.Int
}

// emit appends ev to the event log inside the call's transaction.
func (sc *callScope) emit(ev *domain.Event) error {
	if err := sc.runner.events.Append(sc.ctx, sc.tx, sc.state, sc.caller, sc.now, ev); err != nil {
		return apperror.InternalError(err)
	}
	sc.emitted = append(sc.emitted, *ev)
	return nil
}

// payOut schedules a value transfer. It is issued after every other write of
// the call and before commit.
func (sc *callScope) payOut(to common.Address, amount *uint256.Int) {
	sc.transfer = &pendingTransfer{to: to, amount: new(uint256.Int).Set(amount)}
}

// run executes fn against the locked wallet state and commits when fn, the
// state update and the scheduled transfer all succeed.
func (r *callRunner) run(ctx context.Context, caller common.Address, fn func(sc *callScope) error) ([]domain.Event, error) {
	if err := checkReentrancy(ctx); err != nil {
		return nil, err
	}

	dbTx, err := r.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	state, err := r.stateRepo.GetForUpdate(ctx, dbTx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet state: %w", err))
	}
	if state == nil {
		return nil, apperror.ErrNotInitialized()
	}

	sc := &callScope{
		ctx:    ctx,
		tx:     dbTx,
		state:  state,
		caller: caller,
		now:    r.clock.Now().UTC(),
		runner: r,
	}
	if err := fn(sc); err != nil {
		return nil, err
	}

	if len(sc.emitted) > 0 {
		state.UpdatedAt = sc.now
		if err := r.stateRepo.Update(ctx, dbTx, state); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("update wallet state: %w", err))
		}
	}

	if sc.transfer != nil {
		if err := r.gateway.Transfer(withinTransfer(ctx), sc.transfer.to, sc.transfer.amount); err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				return nil, appErr
			}
			return nil, apperror.ErrTransferFailed(err)
		}
	}

	if err := r.commit(ctx, dbTx, sc.emitted); err != nil {
		return nil, err
	}
	return sc.emitted, nil
}

// commitOrder is held from commit until the publisher has the call's events,
// so publication follows commit order across every runner in the process.
var commitOrder sync.Mutex

func (r *callRunner) commit(ctx context.Context, dbTx pgx.Tx, emitted []domain.Event) error {
	commitOrder.Lock()
	defer commitOrder.Unlock()

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	if len(emitted) > 0 && r.publisher != nil {
		r.publisher.Publish(context.WithoutCancel(ctx), emitted)
	}
	return nil
}
