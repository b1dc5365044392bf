package postgres

import (
	"context"
	"fmt"

	"payee-treasury/internal/core/domain"
)

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a PostgreSQL-backed AuditRepository.
func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	var caller *string
	if log.Caller != "" {
		caller = &log.Caller
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, caller, action, resource_type, resource_id, outcome, details, ip_address, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		log.ID, caller, string(log.Action), log.ResourceType,
		log.ResourceID, log.Outcome, log.Details, log.IPAddress, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
