package service

import (
	"payee-treasury/internal/core/domain"
	"payee-treasury/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
)

// AccessGuard checks the caller of a mutating entry point against one of the
// two roles: the administrator or a currently allowed payee. It has no side
// effects and must run against state read inside the call's transaction.
type AccessGuard struct{}

// RequireAdmin fails with ACL_001 unless caller is the administrator.
func (AccessGuard) RequireAdmin(state *domain.WalletState, caller common.Address) error {
	if state == nil || !state.IsAdmin(caller) {
		return apperror.ErrUnauthorized()
	}
	return nil
}

// RequirePayee fails with ACL_001 unless payee is the caller's record and allowed.
func (AccessGuard) RequirePayee(payee *domain.Payee, caller common.Address) error {
	if payee == nil || payee.Address != caller || !payee.Allowed {
		return apperror.ErrUnauthorized()
	}
	return nil
}
