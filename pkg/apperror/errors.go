package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// CodeOf returns the error code of err, or "" when err is not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// ---- Access control (ACL) ----

func ErrUnauthorized() *AppError {
	return New("ACL_001", "Caller is not authorized for this operation", http.StatusForbidden)
}

// ---- Payee registry (REG) ----

func ErrAlreadyRegistered() *AppError {
	return New("REG_001", "Payee is already registered", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("REG_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrAlreadyWhitelisted() *AppError {
	return New("REG_003", "Payee is already whitelisted", http.StatusConflict)
}

func ErrNotWhitelisted() *AppError {
	return New("REG_004", "Payee is not whitelisted", http.StatusConflict)
}

// ---- Treasury (TRS) ----

func ErrLimitExceeded() *AppError {
	return New("TRS_001", "Daily withdrawal limit exceeded", http.StatusUnprocessableEntity)
}

func ErrAlreadyInitialized() *AppError {
	return New("TRS_002", "Treasury is already initialized", http.StatusConflict)
}

func ErrInsufficientFunds() *AppError {
	return New("TRS_003", "Insufficient treasury balance", http.StatusPaymentRequired)
}

func ErrNotInitialized() *AppError {
	return New("TRS_004", "Treasury is not initialized", http.StatusServiceUnavailable)
}

// ---- Validation (VAL) ----

// InvalidInput reports malformed arguments or a rejected no-op write.
func InvalidInput(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ---- Request authentication (SEC) ----

func ErrMissingCredentials() *AppError {
	return New("SEC_001", "Missing caller credentials", http.StatusUnauthorized)
}

func ErrInvalidSignature() *AppError {
	return New("SEC_002", "Invalid signature", http.StatusUnauthorized)
}

func ErrTimestampExpired() *AppError {
	return New("SEC_003", "Request timestamp expired", http.StatusForbidden)
}

func ErrNonceUsed() *AppError {
	return New("SEC_004", "Nonce has already been used", http.StatusForbidden)
}

func ErrInvalidToken() *AppError {
	return New("SEC_005", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrTransferFailed(err error) *AppError {
	return Wrap("SYS_003", "Value transfer failed", http.StatusBadGateway, err)
}

func ErrReentrantCall() *AppError {
	return New("SYS_004", "Re-entrant call rejected", http.StatusConflict)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
