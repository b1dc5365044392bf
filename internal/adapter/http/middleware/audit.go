package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"
	"payee-treasury/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that records every mutating call,
// accepted or rejected. Requests rejected before authentication are
// recorded with an empty caller.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		var caller string
		if addr, ok := CallerFrom(c); ok {
			caller = addr.Hex()
		}

		details := map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}
		if id, ok := c.Get(response.CtxRequestID); ok {
			details["request_id"] = id
		}
		if len(c.Errors) > 0 {
			details["errors"] = c.Errors.String()
		}
		detailsJSON, _ := json.Marshal(details)

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Caller:       caller,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   c.Param("address"),
			Outcome:      c.Writer.Status(),
			Details:      string(detailsJSON),
			IPAddress:    c.ClientIP(),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	switch {
	case route == "/api/v1/payees" && method == http.MethodPost:
		return domain.AuditActionAddPayee, "payee"
	case route == "/api/v1/payees/batch" && method == http.MethodPost:
		return domain.AuditActionAddPayees, "payee"
	case route == "/api/v1/payees/:address/whitelist" && method == http.MethodPost:
		return domain.AuditActionWhitelist, "payee"
	case route == "/api/v1/payees/:address/blacklist" && method == http.MethodPost:
		return domain.AuditActionBlacklist, "payee"
	case route == "/api/v1/payees/:address" && method == http.MethodDelete:
		return domain.AuditActionRemovePayee, "payee"
	case route == "/api/v1/treasury/daily-limit" && method == http.MethodPut:
		return domain.AuditActionSetDailyLimit, "treasury"
	case route == "/api/v1/treasury/deposits" && method == http.MethodPost:
		return domain.AuditActionDeposit, "treasury"
	case route == "/api/v1/treasury/withdrawals/owner" && method == http.MethodPost:
		return domain.AuditActionOwnerWithdraw, "treasury"
	case route == "/api/v1/treasury/withdrawals/payee" && method == http.MethodPost:
		return domain.AuditActionPayeeWithdraw, "treasury"
	case route == "/api/v1/auth/session" && method == http.MethodPost:
		return domain.AuditActionOpenSession, "session"
	}
	return "", ""
}
