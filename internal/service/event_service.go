package service

import (
	"context"
	"fmt"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"
	"payee-treasury/pkg/apperror"
)

// eventQueryService implements ports.EventQueryService.
type eventQueryService struct {
	eventRepo ports.EventRepository
}

// NewEventQueryService creates a new event query service.
func NewEventQueryService(eventRepo ports.EventRepository) ports.EventQueryService {
	return &eventQueryService{eventRepo: eventRepo}
}

// ListEvents returns a page of the event log in ascending seq order.
func (s *eventQueryService) ListEvents(ctx context.Context, params ports.EventListParams) ([]domain.Event, int64, error) {
	if params.Type != nil && !params.Type.IsValid() {
		return nil, 0, apperror.InvalidInput(fmt.Sprintf("unknown event type %q", *params.Type))
	}
	if params.AfterSeq < 0 {
		return nil, 0, apperror.InvalidInput("after_seq must not be negative")
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > domain.MaxPageSize {
		params.PageSize = domain.DefaultPageSize
	}
	if params.Page > domain.MaxPage {
		return nil, 0, apperror.InvalidInput(fmt.Sprintf("page must not exceed %d", domain.MaxPage))
	}

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list events: %w", err))
	}
	if err := verifyPage(params, events); err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("event log integrity: %w", err))
	}
	return events, total, nil
}

// verifyPage rehashes every event on the page. Unfiltered pages are
// contiguous, so their links are checked too.
func verifyPage(params ports.EventListParams, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	if params.Type == nil && params.Payee == nil {
		return VerifyChain(events[0].PrevHash, events)
	}
	for i := range events {
		if err := VerifyChain(events[i].PrevHash, events[i:i+1]); err != nil {
			return err
		}
	}
	return nil
}
