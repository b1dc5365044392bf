package dto

import (
	"time"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"
)

// Amounts travel as base-10 strings in the smallest currency unit; JSON
// numbers cannot carry 256-bit values.

// AddPayeeRequest is the request body for registering one payee.
type AddPayeeRequest struct {
	Address     string `json:"address" binding:"required,eth_address"`
	Whitelisted bool   `json:"whitelisted"`
}

// AddPayeesRequest is the request body for registering a batch of payees.
// Length agreement is checked by the registry so the error code is the same
// for every entry point.
type AddPayeesRequest struct {
	Addresses   []string `json:"addresses" binding:"required,max=256,dive,eth_address"`
	Whitelisted []bool   `json:"whitelisted" binding:"required"`
}

// AmountRequest is the request body for deposit, withdrawals and the daily limit.
type AmountRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
}

// PayeeResponse is the full payee record.
type PayeeResponse struct {
	Address           string `json:"address"`
	Allowed           bool   `json:"allowed"`
	Whitelisted       bool   `json:"whitelisted"`
	WindowStart       int64  `json:"window_start"`
	WithdrawnInWindow string `json:"withdrawn_in_window"`
}

// NewPayeeResponse converts a domain payee.
func NewPayeeResponse(p *domain.Payee) PayeeResponse {
	return PayeeResponse{
		Address:           p.Address.Hex(),
		Allowed:           p.Allowed,
		Whitelisted:       p.Whitelisted,
		WindowStart:       p.WindowStart,
		WithdrawnInWindow: p.WithdrawnInWindow.Dec(),
	}
}

// AllowanceResponse is a payee record with what it may still withdraw in the
// current window. RemainingInWindow is omitted for whitelisted payees.
type AllowanceResponse struct {
	PayeeResponse
	RemainingInWindow *string `json:"remaining_in_window,omitempty"`
}

// NewAllowanceResponse converts the service allowance view.
func NewAllowanceResponse(a *ports.PayeeAllowance) AllowanceResponse {
	resp := AllowanceResponse{PayeeResponse: NewPayeeResponse(&a.Payee)}
	if a.Remaining != nil {
		remaining := a.Remaining.Dec()
		resp.RemainingInWindow = &remaining
	}
	return resp
}

// WhitelistedResponse answers isWhitelisted(address).
type WhitelistedResponse struct {
	Address     string `json:"address"`
	Whitelisted bool   `json:"whitelisted"`
}

// PayeeListResponse wraps a page of registered payees.
type PayeeListResponse struct {
	Items      []PayeeResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// DailyLimitResponse answers dailyLimit().
type DailyLimitResponse struct {
	DailyLimit string `json:"daily_limit"`
}

// TreasuryResponse is the treasury overview.
type TreasuryResponse struct {
	Admin         string `json:"admin"`
	DailyLimit    string `json:"daily_limit"`
	Balance       string `json:"balance"`
	EventSeq      int64  `json:"event_seq"`
	LastEventHash string `json:"last_event_hash"`
}

// NewTreasuryResponse converts the service overview.
func NewTreasuryResponse(o *ports.TreasuryOverview) TreasuryResponse {
	return TreasuryResponse{
		Admin:         o.Admin.Hex(),
		DailyLimit:    domain.FormatAmount(o.DailyLimit),
		Balance:       domain.FormatAmount(o.Balance),
		EventSeq:      o.EventSeq,
		LastEventHash: o.LastEventHash,
	}
}

// EventResponse is one entry of the event log.
type EventResponse struct {
	Seq       int64   `json:"seq"`
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Payee     *string `json:"payee,omitempty"`
	Value     *string `json:"value,omitempty"`
	Caller    string  `json:"caller"`
	PrevHash  string  `json:"prev_hash"`
	Hash      string  `json:"hash"`
	CreatedAt string  `json:"created_at"`
}

// NewEventResponse converts a domain event.
func NewEventResponse(e *domain.Event) EventResponse {
	resp := EventResponse{
		Seq:       e.Seq,
		ID:        e.ID.String(),
		Type:      string(e.Type),
		Caller:    e.Caller.Hex(),
		PrevHash:  e.PrevHash,
		Hash:      e.Hash,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.Payee != nil {
		s := e.Payee.Hex()
		resp.Payee = &s
	}
	if e.Value != nil {
		s := e.Value.Dec()
		resp.Value = &s
	}
	return resp
}

// EventListResponse wraps a page of events.
type EventListResponse struct {
	Items      []EventResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// SessionResponse is returned when a signed caller opens a JWT session.
type SessionResponse struct {
	Caller string `json:"caller"`
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// TotalPages computes the page count for a listing.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
