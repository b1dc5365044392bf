package postgres

import (
	"context"
	"fmt"

	"payee-treasury/internal/core/domain"
)

// DeliveryRepo implements ports.DeliveryRepository.
type DeliveryRepo struct {
	pool Pool
}

// NewDeliveryRepo creates a PostgreSQL-backed DeliveryRepository.
func NewDeliveryRepo(pool Pool) *DeliveryRepo {
	return &DeliveryRepo{pool: pool}
}

func (r *DeliveryRepo) Create(ctx context.Context, log *domain.EventDeliveryLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO event_deliveries
		 (id, event_seq, url, payload, http_status, attempt, status, next_retry_at, last_error, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		log.ID, log.EventSeq, log.URL, log.Payload, log.HTTPStatus, log.Attempt,
		string(log.Status), log.NextRetryAt, log.LastError, log.CreatedAt, log.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event delivery: %w", err)
	}
	return nil
}

func (r *DeliveryRepo) Update(ctx context.Context, log *domain.EventDeliveryLog) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE event_deliveries
		 SET http_status=$1, attempt=$2, status=$3, next_retry_at=$4, last_error=$5, updated_at=$6
		 WHERE id=$7`,
		log.HTTPStatus, log.Attempt, string(log.Status),
		log.NextRetryAt, log.LastError, log.UpdatedAt, log.ID,
	)
	if err != nil {
		return fmt.Errorf("update event delivery: %w", err)
	}
	return nil
}

func (r *DeliveryRepo) ListPending(ctx context.Context, limit int) ([]domain.EventDeliveryLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, event_seq, url, payload::text, http_status, attempt, status, next_retry_at, last_error, created_at, updated_at
		 FROM event_deliveries WHERE status = $1 ORDER BY event_seq, created_at LIMIT $2`,
		string(domain.DeliveryStatusPending), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query pending deliveries: %w", err)
	}
	defer rows.Close()

	var out []domain.EventDeliveryLog
	for rows.Next() {
		var d domain.EventDeliveryLog
		var status string
		if err := rows.Scan(&d.ID, &d.EventSeq, &d.URL, &d.Payload, &d.HTTPStatus, &d.Attempt,
			&status, &d.NextRetryAt, &d.LastError, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery row: %w", err)
		}
		d.Status = domain.DeliveryStatus(status)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate delivery rows: %w", err)
	}
	return out, nil
}
