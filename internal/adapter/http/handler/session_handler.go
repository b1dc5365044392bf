package handler

import (
	"net/http"

	"payee-treasury/internal/adapter/http/dto"
	"payee-treasury/internal/core/ports"
	"payee-treasury/pkg/apperror"
	"payee-treasury/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionHandler exchanges a signed request for a JWT session.
type SessionHandler struct {
	tokenSvc ports.TokenService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(tokenSvc ports.TokenService) *SessionHandler {
	return &SessionHandler{tokenSvc: tokenSvc}
}

// Open handles POST /api/v1/auth/session. The route must sit behind
// SignatureAuth so a session can never be minted from another session.
func (h *SessionHandler) Open(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	token, expiry, err := h.tokenSvc.Generate(caller)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.OK(c, dto.SessionResponse{
		Caller: caller.Hex(),
		Token:  token,
		Expiry: expiry.Unix(),
	})
}

// HealthCheck returns a deep health check handler.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
