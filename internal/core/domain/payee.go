package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Payee is the registry record of an address allowed to withdraw.
// The zero value is the record of an address that was never registered.
type Payee struct {
	Address     common.Address `json:"address"`
	Allowed     bool           `json:"allowed"`
	Whitelisted bool           `json:"whitelisted"`
	// WindowStart anchors the current rate-limit window (unix seconds, 0 = none open).
	WindowStart int64 `json:"window_start"`
	// WithdrawnInWindow is the cumulative amount withdrawn since WindowStart.
	WithdrawnInWindow uint256.Int `json:"-"`
}

// NewPayee returns the freshly registered record for addr.
func NewPayee(addr common.Address, whitelisted bool) Payee {
	return Payee{
		Address:     addr,
		Allowed:     true,
		Whitelisted: whitelisted,
	}
}

// UnregisteredPayee returns the default record for addr.
func UnregisteredPayee(addr common.Address) Payee {
	return Payee{Address: addr}
}

// IsRateLimited reports whether withdrawals by this payee go through the daily limiter.
func (p *Payee) IsRateLimited() bool {
	return p.Allowed && !p.Whitelisted
}
