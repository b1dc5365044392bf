package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited request.
type AuditAction string

const (
	AuditActionAddPayee      AuditAction = "ADD_PAYEE"
	AuditActionAddPayees     AuditAction = "ADD_PAYEES"
	AuditActionWhitelist     AuditAction = "WHITELIST_PAYEE"
	AuditActionBlacklist     AuditAction = "BLACKLIST_PAYEE"
	AuditActionRemovePayee   AuditAction = "REMOVE_PAYEE"
	AuditActionSetDailyLimit AuditAction = "SET_DAILY_LIMIT"
	AuditActionDeposit       AuditAction = "DEPOSIT"
	AuditActionOwnerWithdraw AuditAction = "OWNER_WITHDRAW"
	AuditActionPayeeWithdraw AuditAction = "PAYEE_WITHDRAW"
	AuditActionOpenSession   AuditAction = "OPEN_SESSION"
)

// AuditLog records a single mutating request, accepted or rejected.
// Unlike the event log it also keeps rejected attempts. Outcome is the
// HTTP status returned to the caller.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Caller       string      `json:"caller,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Outcome      int         `json:"outcome"`
	Details      string      `json:"details,omitempty"`
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Rejected reports whether the audited request was refused.
func (a *AuditLog) Rejected() bool {
	return a.Outcome >= 400
}
