package service

import (
	"context"

	"payee-treasury/pkg/apperror"
)

type transferScopeKey struct{}

// withinTransfer marks ctx as belonging to an in-flight value transfer.
func withinTransfer(ctx context.Context) context.Context {
	return context.WithValue(ctx, transferScopeKey{}, true)
}

// checkReentrancy rejects calls made from inside a value transfer. Such a call
// would otherwise wait on the lock held by the call that issued the transfer.
func checkReentrancy(ctx context.Context) error {
	if inTransfer, _ := ctx.Value(transferScopeKey{}).(bool); inTransfer {
		return apperror.ErrReentrantCall()
	}
	return nil
}
