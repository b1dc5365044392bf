package postgres

import (
	"context"
	"errors"
	"fmt"

	"payee-treasury/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletStateRepo implements ports.WalletStateRepository.
type WalletStateRepo struct {
	pool Pool
}

// NewWalletStateRepo creates a new WalletStateRepo.
func NewWalletStateRepo(pool Pool) *WalletStateRepo {
	return &WalletStateRepo{pool: pool}
}

const walletStateColumns = `admin, daily_limit::text, event_seq, last_event_hash, created_at, updated_at`

// Get reads the wallet state without locking. Returns nil before construction.
func (r *WalletStateRepo) Get(ctx context.Context) (*domain.WalletState, error) {
	query := `SELECT ` + walletStateColumns + ` FROM wallet_state WHERE id = 1`
	return scanWalletState(r.pool.QueryRow(ctx, query))
}

// GetForUpdate locks the wallet state row. Every mutating call goes through
// here first, which serializes them.
// This MUST be called within a transaction.
func (r *WalletStateRepo) GetForUpdate(ctx context.Context, tx pgx.Tx) (*domain.WalletState, error) {
	query := `SELECT ` + walletStateColumns + ` FROM wallet_state WHERE id = 1 FOR UPDATE`
	return scanWalletState(tx.QueryRow(ctx, query))
}

// Create inserts the wallet state. Returns domain.ErrStateExists when a
// concurrent construction won.
func (r *WalletStateRepo) Create(ctx context.Context, tx pgx.Tx, s *domain.WalletState) error {
	query := `INSERT INTO wallet_state (id, admin, daily_limit, event_seq, last_event_hash, created_at, updated_at)
		VALUES (1, $1, $2::numeric, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`

	tag, err := tx.Exec(ctx, query,
		s.Admin.Hex(), s.DailyLimit.Dec(), s.EventSeq, s.LastEventHash, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStateExists
	}
	return nil
}

// Update writes the mutable fields of the wallet state.
func (r *WalletStateRepo) Update(ctx context.Context, tx pgx.Tx, s *domain.WalletState) error {
	query := `UPDATE wallet_state SET daily_limit = $1::numeric, event_seq = $2, last_event_hash = $3, updated_at = $4
		WHERE id = 1`

	tag, err := tx.Exec(ctx, query, s.DailyLimit.Dec(), s.EventSeq, s.LastEventHash, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update wallet state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet state not found")
	}
	return nil
}

func scanWalletState(row pgx.Row) (*domain.WalletState, error) {
	var (
		s          domain.WalletState
		admin      string
		dailyLimit string
	)
	err := row.Scan(&admin, &dailyLimit, &s.EventSeq, &s.LastEventHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet state: %w", err)
	}

	if s.Admin, err = scanAddress(admin); err != nil {
		return nil, err
	}
	if err := scanAmount(&s.DailyLimit, dailyLimit); err != nil {
		return nil, err
	}
	return &s, nil
}
