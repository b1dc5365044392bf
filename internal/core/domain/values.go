package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// OneDay is the default length of a withdrawal window, in seconds.
const OneDay int64 = 86400

var (
	ErrMalformedAddress = errors.New("malformed address")
	ErrZeroAddress      = errors.New("zero address")
	ErrMalformedAmount  = errors.New("malformed amount")
)

// ParseAddress parses a 0x-prefixed 20-byte hex address. The zero address is rejected.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrMalformedAddress, s)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, ErrZeroAddress
	}
	return addr, nil
}

// ParseAmount parses a base-10 amount in the smallest currency unit.
func ParseAmount(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedAmount)
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedAmount, s, err)
	}
	return v, nil
}

// FormatAmount renders an amount in base 10; nil renders as "".
func FormatAmount(v *uint256.Int) string {
	if v == nil {
		return ""
	}
	return v.Dec()
}

// Page bounds for list views. MaxPage keeps row offsets far from int overflow.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

var ErrPageOutOfRange = errors.New("page out of range")

// PageOffset returns the number of rows preceding page.
func PageOffset(page, pageSize int) (int, error) {
	if page < 1 || page > MaxPage || pageSize < 1 || pageSize > MaxPageSize {
		return 0, fmt.Errorf("%w: page %d, page size %d", ErrPageOutOfRange, page, pageSize)
	}
	return (page - 1) * pageSize, nil
}
