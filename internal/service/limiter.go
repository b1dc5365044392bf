package service

import (
	"payee-treasury/internal/core/domain"
	"payee-treasury/pkg/apperror"

	"github.com/holiman/uint256"
)

// WithdrawalLimiter enforces the sliding daily limit for standard payees.
//
// The window is anchored at the first withdrawal after a reset, not at a
// calendar boundary. A window whose anchor is in the future (clock moved
// backwards) is kept as is.
type WithdrawalLimiter struct {
	// Window is the window length in seconds.
	Window int64
}

// NewWithdrawalLimiter returns a limiter with the given window length in
// seconds; non-positive values fall back to one day.
func NewWithdrawalLimiter(window int64) WithdrawalLimiter {
	if window <= 0 {
		window = domain.OneDay
	}
	return WithdrawalLimiter{Window: window}
}

// Apply charges amount against payee's window at time now and returns the
// updated record. payee is never modified; on error nothing needs undoing.
func (l WithdrawalLimiter) Apply(payee domain.Payee, now int64, amount, dailyLimit *uint256.Int) (domain.Payee, error) {
	next := payee
	if next.WindowStart == 0 || now-next.WindowStart >= l.Window {
		next.WindowStart = now
		next.WithdrawnInWindow.Clear()
	}

	var total uint256.Int
	if _, overflow := total.AddOverflow(&next.WithdrawnInWindow, amount); overflow {
		return payee, apperror.ErrLimitExceeded()
	}
	if total.Gt(dailyLimit) {
		return payee, apperror.ErrLimitExceeded()
	}

	next.WithdrawnInWindow = total
	return next, nil
}

// Remaining returns how much payee may still withdraw at time now.
func (l WithdrawalLimiter) Remaining(payee domain.Payee, now int64, dailyLimit *uint256.Int) *uint256.Int {
	if payee.WindowStart == 0 || now-payee.WindowStart >= l.Window {
		return new(uint256.Int).Set(dailyLimit)
	}
	if payee.WithdrawnInWindow.Gt(dailyLimit) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(dailyLimit, &payee.WithdrawnInWindow)
}
