package memory

import (
	"context"
	"fmt"
	"sort"

	"payee-treasury/internal/core/domain"

	"github.com/google/uuid"
)

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct{ store *Store }

func NewAuditRepo(s *Store) *AuditRepo { return &AuditRepo{store: s} }

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.store.auditMu.Lock()
	defer r.store.auditMu.Unlock()
	r.store.audits = append(r.store.audits, *log)
	return nil
}

// Entries returns a copy of every audit record in insertion order.
func (r *AuditRepo) Entries() []domain.AuditLog {
	r.store.auditMu.Lock()
	defer r.store.auditMu.Unlock()
	return append([]domain.AuditLog(nil), r.store.audits...)
}

// DeliveryRepo implements ports.DeliveryRepository.
type DeliveryRepo struct{ store *Store }

func NewDeliveryRepo(s *Store) *DeliveryRepo { return &DeliveryRepo{store: s} }

func (r *DeliveryRepo) Create(ctx context.Context, log *domain.EventDeliveryLog) error {
	r.store.auditMu.Lock()
	defer r.store.auditMu.Unlock()
	r.store.deliveries[log.ID] = *log
	return nil
}

func (r *DeliveryRepo) Update(ctx context.Context, log *domain.EventDeliveryLog) error {
	r.store.auditMu.Lock()
	defer r.store.auditMu.Unlock()
	if _, ok := r.store.deliveries[log.ID]; !ok {
		return fmt.Errorf("event delivery %s not found", log.ID)
	}
	r.store.deliveries[log.ID] = *log
	return nil
}

func (r *DeliveryRepo) ListPending(ctx context.Context, limit int) ([]domain.EventDeliveryLog, error) {
	r.store.auditMu.Lock()
	var out []domain.EventDeliveryLog
	for _, d := range r.store.deliveries {
		if d.Status == domain.DeliveryStatusPending {
			out = append(out, d)
		}
	}
	r.store.auditMu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].EventSeq != out[j].EventSeq {
			return out[i].EventSeq < out[j].EventSeq
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Get returns the delivery record with the given id.
func (r *DeliveryRepo) Get(id uuid.UUID) (domain.EventDeliveryLog, bool) {
	r.store.auditMu.Lock()
	defer r.store.auditMu.Unlock()
	d, ok := r.store.deliveries[id]
	return d, ok
}
