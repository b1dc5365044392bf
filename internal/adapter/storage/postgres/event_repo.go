package postgres

import (
	"context"
	"fmt"
	"strings"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"

	"github.com/holiman/uint256"
	"github.com/jackc/pgx/v5"
)

// EventRepo implements ports.EventRepository. Rows are insert-only.
type EventRepo struct {
	pool Pool
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(pool Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// Append inserts the event inside the call's transaction.
func (r *EventRepo) Append(ctx context.Context, tx pgx.Tx, e *domain.Event) error {
	query := `INSERT INTO events (seq, id, type, payee, value, caller, prev_hash, hash, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9)`

	var payee, value *string
	if e.Payee != nil {
		s := e.Payee.Hex()
		payee = &s
	}
	if e.Value != nil {
		s := e.Value.Dec()
		value = &s
	}

	_, err := tx.Exec(ctx, query,
		e.Seq, e.ID, string(e.Type), payee, value,
		e.Caller.Hex(), e.PrevHash, e.Hash, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// List fetches events in ascending seq order with filtering and pagination.
func (r *EventRepo) List(ctx context.Context, params ports.EventListParams) ([]domain.Event, int64, error) {
	offset, err := domain.PageOffset(params.Page, params.PageSize)
	if err != nil {
		return nil, 0, err
	}

	var conditions []string
	var args []any
	argIdx := 1

	if params.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, string(*params.Type))
		argIdx++
	}
	if params.Payee != nil {
		conditions = append(conditions, fmt.Sprintf("payee = $%d", argIdx))
		args = append(args, params.Payee.Hex())
		argIdx++
	}
	if params.AfterSeq > 0 {
		conditions = append(conditions, fmt.Sprintf("seq > $%d", argIdx))
		args = append(args, params.AfterSeq)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM events %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	dataQuery := fmt.Sprintf(`SELECT seq, id, type, payee, value::text, caller, prev_hash, hash, created_at
		FROM events %s ORDER BY seq LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			e      domain.Event
			evType string
			payee  *string
			value  *string
			caller string
		)
		if err := rows.Scan(&e.Seq, &e.ID, &evType, &payee, &value, &caller, &e.PrevHash, &e.Hash, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan event: %w", err)
		}
		e.Type = domain.EventType(evType)
		if payee != nil {
			addr, err := scanAddress(*payee)
			if err != nil {
				return nil, 0, err
			}
			e.Payee = &addr
		}
		if value != nil {
			e.Value = new(uint256.Int)
			if err := scanAmount(e.Value, *value); err != nil {
				return nil, 0, err
			}
		}
		if e.Caller, err = scanAddress(caller); err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate event rows: %w", err)
	}

	return events, total, nil
}
