package handler

import (
	"strconv"

	"payee-treasury/internal/adapter/http/dto"
	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"
	"payee-treasury/pkg/apperror"
	"payee-treasury/pkg/response"

	"github.com/gin-gonic/gin"
)

// EventHandler exposes the event log.
type EventHandler struct {
	eventSvc ports.EventQueryService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventSvc ports.EventQueryService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// List handles GET /api/v1/events.
// Filters: type, payee, after_seq. Results are ordered by sequence number.
func (h *EventHandler) List(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}
	params := ports.EventListParams{Page: page, PageSize: pageSize}

	if t := c.Query("type"); t != "" {
		et := domain.EventType(t)
		params.Type = &et
	}
	if p := c.Query("payee"); p != "" {
		addr, err := domain.ParseAddress(p)
		if err != nil {
			response.Error(c, apperror.InvalidInput(err.Error()))
			return
		}
		params.Payee = &addr
	}
	if s := c.Query("after_seq"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			response.Error(c, apperror.InvalidInput("after_seq must be an integer"))
			return
		}
		params.AfterSeq = v
	}

	events, total, err := h.eventSvc.ListEvents(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, dto.NewEventResponse(&events[i]))
	}
	response.OK(c, dto.EventListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: dto.TotalPages(total, pageSize),
	})
}
