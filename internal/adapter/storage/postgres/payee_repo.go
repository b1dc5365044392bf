package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
)

// PayeeRepo implements ports.PayeeRepository. Only registered payees have a
// row; an absent row reads as the unregistered default record.
type PayeeRepo struct {
	pool Pool
}

// NewPayeeRepo creates a new PayeeRepo.
func NewPayeeRepo(pool Pool) *PayeeRepo {
	return &PayeeRepo{pool: pool}
}

const payeeColumns = `address, allowed, whitelisted, window_start, withdrawn_in_window::text`

// Get fetches a payee record (non-locking read).
func (r *PayeeRepo) Get(ctx context.Context, addr common.Address) (*domain.Payee, error) {
	query := `SELECT ` + payeeColumns + ` FROM payees WHERE address = $1`
	return scanPayeeOrDefault(r.pool.QueryRow(ctx, query, addr.Hex()), addr)
}

// GetForUpdate fetches a payee record with a row lock.
// This MUST be called within a transaction.
func (r *PayeeRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, addr common.Address) (*domain.Payee, error) {
	query := `SELECT ` + payeeColumns + ` FROM payees WHERE address = $1 FOR UPDATE`
	return scanPayeeOrDefault(tx.QueryRow(ctx, query, addr.Hex()), addr)
}

// Save upserts the payee record.
func (r *PayeeRepo) Save(ctx context.Context, tx pgx.Tx, p *domain.Payee) error {
	query := `INSERT INTO payees (address, allowed, whitelisted, window_start, withdrawn_in_window, updated_at)
		VALUES ($1, $2, $3, $4, $5::numeric, NOW())
		ON CONFLICT (address) DO UPDATE SET
			allowed = EXCLUDED.allowed,
			whitelisted = EXCLUDED.whitelisted,
			window_start = EXCLUDED.window_start,
			withdrawn_in_window = EXCLUDED.withdrawn_in_window,
			updated_at = EXCLUDED.updated_at`

	_, err := tx.Exec(ctx, query,
		p.Address.Hex(), p.Allowed, p.Whitelisted, p.WindowStart, p.WithdrawnInWindow.Dec(),
	)
	if err != nil {
		return fmt.Errorf("upsert payee: %w", err)
	}
	return nil
}

// Delete removes the payee row, returning the address to the default record.
func (r *PayeeRepo) Delete(ctx context.Context, tx pgx.Tx, addr common.Address) error {
	if _, err := tx.Exec(ctx, `DELETE FROM payees WHERE address = $1`, addr.Hex()); err != nil {
		return fmt.Errorf("delete payee: %w", err)
	}
	return nil
}

// List fetches registered payees ordered by address with pagination.
func (r *PayeeRepo) List(ctx context.Context, params ports.PayeeListParams) ([]domain.Payee, int64, error) {
	offset, err := domain.PageOffset(params.Page, params.PageSize)
	if err != nil {
		return nil, 0, err
	}

	conditions := []string{"allowed = TRUE"}
	var args []any
	argIdx := 1

	if params.Whitelisted != nil {
		conditions = append(conditions, fmt.Sprintf("whitelisted = $%d", argIdx))
		args = append(args, *params.Whitelisted)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM payees %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payees: %w", err)
	}

	dataQuery := fmt.Sprintf(`SELECT %s FROM payees %s ORDER BY address LIMIT $%d OFFSET $%d`,
		payeeColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payees: %w", err)
	}
	defer rows.Close()

	var payees []domain.Payee
	for rows.Next() {
		p, err := scanPayee(rows)
		if err != nil {
			return nil, 0, err
		}
		payees = append(payees, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate payee rows: %w", err)
	}

	return payees, total, nil
}

func scanPayeeOrDefault(row pgx.Row, addr common.Address) (*domain.Payee, error) {
	p, err := scanPayee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		def := domain.UnregisteredPayee(addr)
		return &def, nil
	}
	return p, err
}

func scanPayee(row pgx.Row) (*domain.Payee, error) {
	var (
		p         domain.Payee
		address   string
		withdrawn string
	)
	if err := row.Scan(&address, &p.Allowed, &p.Whitelisted, &p.WindowStart, &withdrawn); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan payee: %w", err)
	}

	var err error
	if p.Address, err = scanAddress(address); err != nil {
		return nil, err
	}
	if err := scanAmount(&p.WithdrawnInWindow, withdrawn); err != nil {
		return nil, err
	}
	return &p, nil
}
