package service

import (
	"context"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"

	"github.com/rs/zerolog"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService creates a new audit service.
// If repo is nil, audit logs are only written to the logger.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Log records an audit entry asynchronously (fire-and-forget).
func (s *auditService) Log(ctx context.Context, entry *domain.AuditLog) {
	go func() {
		ev := s.log.Info()
		if entry.Rejected() {
			ev = s.log.Warn()
		}
		ev.Str("action", string(entry.Action)).
			Str("caller", entry.Caller).
			Str("resource_type", entry.ResourceType).
			Str("resource_id", entry.ResourceID).
			Int("outcome", entry.Outcome).
			Str("ip", entry.IPAddress).
			Msg("audit")

		if s.repo != nil {
			if err := s.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
				s.log.Warn().Err(err).Str("action", string(entry.Action)).Msg("failed to persist audit log")
			}
		}
	}()
}
