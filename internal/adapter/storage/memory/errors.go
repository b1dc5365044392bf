package memory

import (
	"errors"
	"fmt"
)

var (
	errWalletStateMissing = errors.New("wallet state not found")
	errBalanceOverflow    = errors.New("ledger balance overflow")
	errBalanceNegative    = errors.New("ledger balance would go negative")
)

func errSeqGap(got, want int64) error {
	return fmt.Errorf("event seq %d out of order, want %d", got, want)
}
