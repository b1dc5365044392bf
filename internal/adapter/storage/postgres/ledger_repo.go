package postgres

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.Ledger on the single-row ledger table.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Balance reads the treasury balance without locking.
func (r *LedgerRepo) Balance(ctx context.Context) (*uint256.Int, error) {
	return scanBalance(r.pool.QueryRow(ctx, `SELECT balance::text FROM ledger WHERE id = 1`))
}

// BalanceForUpdate reads the balance and locks the ledger row.
// This MUST be called within a transaction.
func (r *LedgerRepo) BalanceForUpdate(ctx context.Context, tx pgx.Tx) (*uint256.Int, error) {
	return scanBalance(tx.QueryRow(ctx, `SELECT balance::text FROM ledger WHERE id = 1 FOR UPDATE`))
}

// Credit adds amount to the balance.
func (r *LedgerRepo) Credit(ctx context.Context, tx pgx.Tx, amount *uint256.Int) error {
	tag, err := tx.Exec(ctx, `UPDATE ledger SET balance = balance + $1::numeric WHERE id = 1`, amount.Dec())
	if err != nil {
		return fmt.Errorf("credit ledger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ledger row missing")
	}
	return nil
}

// Debit subtracts amount from the balance. The CHECK constraint rejects a
// negative result.
func (r *LedgerRepo) Debit(ctx context.Context, tx pgx.Tx, amount *uint256.Int) error {
	tag, err := tx.Exec(ctx, `UPDATE ledger SET balance = balance - $1::numeric WHERE id = 1`, amount.Dec())
	if err != nil {
		return fmt.Errorf("debit ledger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ledger row missing")
	}
	return nil
}

func scanBalance(row pgx.Row) (*uint256.Int, error) {
	var s string
	if err := row.Scan(&s); err != nil {
		return nil, fmt.Errorf("scan balance: %w", err)
	}
	balance := new(uint256.Int)
	if err := scanAmount(balance, s); err != nil {
		return nil, err
	}
	return balance, nil
}
