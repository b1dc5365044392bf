package domain

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// WalletState is the single treasury-wide record. The balance is not part of
// it; the ledger owns the balance.
type WalletState struct {
	Admin      common.Address `json:"admin"`
	DailyLimit uint256.Int    `json:"-"`
	// EventSeq is the sequence number of the last appended event.
	EventSeq      int64     `json:"event_seq"`
	LastEventHash string    `json:"last_event_hash"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsAdmin reports whether caller is the treasury administrator.
func (w *WalletState) IsAdmin(caller common.Address) bool {
	return caller == w.Admin
}

// ErrStateExists is returned by storage when the wallet state row is already present.
var ErrStateExists = errors.New("wallet state already exists")
