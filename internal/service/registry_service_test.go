package service

import (
	"context"
	"testing"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"
	"payee-treasury/internal/core/ports/mocks"
	"payee-treasury/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type registryTestDeps struct {
	svc        *RegistryServiceImpl
	payeeRepo  *mocks.MockPayeeRepository
	stateRepo  *mocks.MockWalletStateRepository
	eventRepo  *mocks.MockEventRepository
	transactor *mocks.MockDBTransactor
	publisher  *mocks.MockEventPublisher
	tx         *mockTx
}

func setupRegistryService(t *testing.T) *registryTestDeps {
	ctrl := gomock.NewController(t)
	d := &registryTestDeps{
		payeeRepo:  mocks.NewMockPayeeRepository(ctrl),
		stateRepo:  mocks.NewMockWalletStateRepository(ctrl),
		eventRepo:  mocks.NewMockEventRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		publisher:  mocks.NewMockEventPublisher(ctrl),
		tx:         &mockTx{},
	}
	d.svc = NewRegistryService(
		d.payeeRepo, d.stateRepo, d.eventRepo,
		d.transactor, d.publisher, fixedClock{testNow}, zerolog.Nop(),
	)
	return d
}

func (d *registryTestDeps) expectLockedCall(ctx context.Context) *domain.WalletState {
	state := newState(eth(1))
	d.transactor.EXPECT().Begin(ctx).Return(d.tx, nil)
	d.stateRepo.EXPECT().GetForUpdate(ctx, d.tx).Return(state, nil)
	return state
}

func (d *registryTestDeps) expectCommit(ctx context.Context, events int) {
	d.stateRepo.EXPECT().Update(ctx, d.tx, gomock.Any()).Return(nil)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Len(events))
}

func registered(addr common.Address, whitelisted bool) *domain.Payee {
	p := domain.NewPayee(addr, whitelisted)
	return &p
}

func absent(addr common.Address) *domain.Payee {
	p := domain.UnregisteredPayee(addr)
	return &p
}

// ==================== AddPayee(s) Tests ====================

func TestRegistryService_AddPayee_Success(t *testing.T) {
	d := setupRegistryService(t)
	ctx := context.Background()

	state := d.expectLockedCall(ctx)
	d.payeeRepo.EXPECT().GetForUpdate(ctx, d.tx, payeeA).Return(absent(payeeA), nil)
	d.payeeRepo.EXPECT().Save(ctx, d.tx, registered(payeeA, false)).Return(nil)
	d.eventRepo.EXPECT().Append(ctx, d.tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, ev *domain.Event) error {
			assert.Equal(t, domain.EventPayeeAdded, ev.Type)
			assert.Equal(t, payeeA, *ev.Payee)
			assert.Equal(t, int64(4), ev.Seq)
			assert.Equal(t, GenesisHash, ev.PrevHash)
			return nil
		})
	d.expectCommit(ctx, 1)

	p, err := d.svc.AddPayee(ctx, adminAddr, payeeA, false)
	require.NoError(t, err)
	assert.True(t, p.Allowed)
	assert.False(t, p.Whitelisted)
	assert.True(t, d.tx.committed)
	assert.Equal(t, int64(4), state.EventSeq)
}

func TestRegistryService_AddPayee_AlreadyRegistered(t *testing.T) {
	d := setupRegistryService(t)
	ctx := context.Background()

	d.expectLockedCall(ctx)
	d.payeeRepo.EXPECT().GetForUpdate(ctx, d.tx, payeeA).Return(registered(payeeA, false), nil)

	_, err := d.svc.AddPayee(ctx, adminAddr, payeeA, true)
	assert.Equal(t, "REG_001", apperror.CodeOf(err))
	assert.False(t, d.tx.committed)
}

func TestRegistryService_AddPayee_Unauthorized(t *testing.T) {
	d := setupRegistryService(t)
	ctx := context.Background()

	d.expectLockedCall(ctx)

	_, err := d.svc.AddPayee(ctx, stranger, payeeA, false)
	assert.Equal(t, "ACL_001", apperror.CodeOf(err))
}

func TestRegistryService_AddPayees_Batch(t *testing.T) {
	d := setupRegistryService(t)
	ctx := context.Background()

	d.expectLockedCall(ctx)
	d.payeeRepo.EXPECT().GetForUpdate(ctx, d.tx, payeeA).Return(absent(payeeA), nil)
	d.payeeRepo.EXPECT().GetForUpdate(ctx, d.tx, payeeB).Return(absent(payeeB), nil)
	d.payeeRepo.EXPECT().Save(ctx, d.tx, registered(payeeA, false)).Return(nil)
	d.payeeRepo.EXPECT().Save(ctx, d.tx, registered(payeeB, true)).Return(nil)
	d.eventRepo.EXPECT().Append(ctx, d.tx, gomock.Any()).Times(2).Return(nil)
	d.expectCommit(ctx, 2)

	added, err := d.svc.AddPayees(ctx, adminAddr, []common.Address{payeeA, payeeB}, []bool{false, true})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.True(t, added[1].Whitelisted)
}

func TestRegistryService_AddPayees_DuplicateAbortsWholeBatch(t *testing.T) {
	d := setupRegistryService(t)
	ctx := context.Background()

	d.expectLockedCall(ctx)
	d.payeeRepo.EXPECT().GetForUpdate(ctx, d.tx, payeeA).Return(absent(payeeA), nil)
	d.payeeRepo.EXPECT().Save(ctx, d.tx, gomock.Any()).Return(nil)
	d.eventRepo.EXPECT().Append(ctx, d.tx, gomock.Any()).Return(nil)
	d.payeeRepo.EXPECT().GetForUpdate(ctx, d.tx, payeeB).Return(registered(payeeB, false), nil)

	_, err := d.svc.AddPayees(ctx, adminAddr, []common.Address{payeeA, payeeB}, []bool{false, false})
	assert.Equal(t, "REG_001", apperror.CodeOf(err))
	assert.False(t, d.tx.committed)
}

func TestRegistryService_AddPayees_DuplicateWithinBatch(t *testing.T) {
	d := setupRegistryService(t)
	ctx := context.Background()

	d.expectLockedCall(ctx)
	d.payeeRepo.EXPECT().GetForUpdate(ctx, d.tx, payeeA).Return(absent(payeeA), nil)
	d.payeeRepo.EXPECT().Save(ctx, d.tx, gomock.Any()).Return(nil)
	d.eventRepo.EXPECT().Append(ctx, d.tx, gomock.Any()).Return(nil)

	_, err := d.svc.AddPayees(ctx, adminAddr, []common.Address{payeeA, payeeA}, []bool{false, true})
	assert.Equal(t, "REG_001", apperror.CodeOf(err))
	assert.False(t, d.tx.committed)
}

func TestRegistryService_AddPayees_InvalidInput(t *testing.T) {
	d := setupRegistryService(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		payees      []common.Address
		whitelisted []bool
	}{
		{"empty", nil, nil},
		{"length mismatch", []common.Address{payeeA, payeeB}, []bool{true}},
		{"zero address", []common.Address{{}}, []bool{false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.svc.AddPayees(ctx, adminAddr, tt.payees, tt.whitelisted)
			assert.Equal(t, "VAL_001", apperror.CodeOf(err))
		})
	}
}

// ==================== Whitelist / Blacklist Tests ====================

func TestRegistryService_WhitelistPayee(t *testing.T) {
	tests := []struct {
		name     string
		current  *domain.Payee
		wantCode string
	}{
		{"standard payee", registered(payeeA, false), ""},
		{"already whitelisted", registered(payeeA, true), "REG_003"},
		{"not registered", absent(payeeA), "REG_002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupRegistryService(t)
			ctx := context.Background()

			d.expectLockedCall(ctx)
			d.payeeRepo.EXPECT().GetForUpdate(ctx, d.tx, payeeA).Return(tt.current, nil)
			if tt.wantCode == "" {
				d.payeeRepo.EXPECT().Save(ctx, d.tx, registered(payeeA, true)).Return(nil)
				d.eventRepo.EXPECT().Append(ctx, d.tx, gomock.Any()).Return(nil)
				d.expectCommit(ctx, 1)
			}

			p, err := d.svc.WhitelistPayee(ctx, adminAddr, payeeA)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, apperror.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, p.Whitelisted)
		})
	}
}

func TestRegistryService_BlacklistPayee(t *testing.T) {
	tests := []struct {
		name     string
		current  *domain.Payee
		wantCode string
	}{
		{"whitelisted payee", registered(payeeB, true), ""},
		{"already standard", registered(payeeB, false), "REG_004"},
		{"not registered", absent(payeeB), "REG_004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupRegistryService(t)
			ctx := context.Background()

			d.expectLockedCall(ctx)
			d.payeeRepo.EXPECT().GetForUpdate(ctx, d.tx, payeeB).Return(tt.current, nil)
			if tt.wantCode == "" {
				d.payeeRepo.EXPECT().Save(ctx, d.tx, registered(payeeB, false)).Return(nil)
				d.eventRepo.EXPECT().Append(ctx, d.tx, gomock.Any()).Return(nil)
				d.expectCommit(ctx, 1)
			}

			p, err := d.svc.BlacklistPayee(ctx, adminAddr, payeeB)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, apperror.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.False(t, p.Whitelisted)
			assert.True(t, p.Allowed)
		})
	}
}

func TestRegistryService_BlacklistKeepsWindow(t *testing.T) {
	d := setupRegistryService(t)
	ctx := context.Background()

	current := registered(payeeB, true)
	current.WindowStart = 42
	current.WithdrawnInWindow.Set(halfEth())

	d.expectLockedCall(ctx)
	d.payeeRepo.EXPECT().GetForUpdate(ctx, d.tx, payeeB).Return(current, nil)
	d.payeeRepo.EXPECT().Save(ctx, d.tx, gomock.Any()).Return(nil)
	d.eventRepo.EXPECT().Append(ctx, d.tx, gomock.Any()).Return(nil)
	d.expectCommit(ctx, 1)

	p, err := d.svc.BlacklistPayee(ctx, adminAddr, payeeB)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.WindowStart)
	assert.Equal(t, halfEth().Dec(), p.WithdrawnInWindow.Dec())
}

// ==================== Remove / Views Tests ====================

func TestRegistryService_RemovePayee(t *testing.T) {
	d := setupRegistryService(t)
	ctx := context.Background()

	d.expectLockedCall(ctx)
	d.payeeRepo.EXPECT().GetForUpdate(ctx, d.tx, payeeA).Return(registered(payeeA, true), nil)
	d.payeeRepo.EXPECT().Delete(ctx, d.tx, payeeA).Return(nil)
	d.eventRepo.EXPECT().Append(ctx, d.tx, gomock.Any()).Return(nil)
	d.expectCommit(ctx, 1)

	require.NoError(t, d.svc.RemovePayee(ctx, adminAddr, payeeA))
	assert.True(t, d.tx.committed)
}

func TestRegistryService_RemovePayee_NotFound(t *testing.T) {
	d := setupRegistryService(t)
	ctx := context.Background()

	d.expectLockedCall(ctx)
	d.payeeRepo.EXPECT().GetForUpdate(ctx, d.tx, payeeA).Return(absent(payeeA), nil)

	err := d.svc.RemovePayee(ctx, adminAddr, payeeA)
	assert.Equal(t, "REG_002", apperror.CodeOf(err))
}

func TestRegistryService_IsWhitelisted(t *testing.T) {
	d := setupRegistryService(t)
	ctx := context.Background()

	d.payeeRepo.EXPECT().Get(ctx, payeeB).Return(registered(payeeB, true), nil)
	d.payeeRepo.EXPECT().Get(ctx, stranger).Return(absent(stranger), nil)

	ok, err := d.svc.IsWhitelisted(ctx, payeeB)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.svc.IsWhitelisted(ctx, stranger)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistryService_ListPayees_ClampsPaging(t *testing.T) {
	d := setupRegistryService(t)
	ctx := context.Background()

	d.payeeRepo.EXPECT().List(ctx, ports.PayeeListParams{Page: 1, PageSize: 20}).
		Return([]domain.Payee{*registered(payeeA, false)}, int64(1), nil)

	payees, total, err := d.svc.ListPayees(ctx, ports.PayeeListParams{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Len(t, payees, 1)
	assert.Equal(t, int64(1), total)
}

func TestRegistryService_ListPayees_PageTooLarge(t *testing.T) {
	d := setupRegistryService(t)

	_, _, err := d.svc.ListPayees(context.Background(), ports.PayeeListParams{Page: 461168601842738792, PageSize: 20})
	assert.Equal(t, "VAL_001", apperror.CodeOf(err))
}

func TestRegistryService_ReentrantCallRejected(t *testing.T) {
	d := setupRegistryService(t)

	_, err := d.svc.AddPayee(withinTransfer(context.Background()), adminAddr, payeeA, false)
	assert.Equal(t, "SYS_004", apperror.CodeOf(err))
}
