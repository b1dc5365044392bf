package postgres

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// NUMERIC(78,0) columns are read as ::text and written as $n::numeric so
// amounts never pass through a float or a 64-bit integer.

func scanAmount(dst *uint256.Int, s string) error {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return fmt.Errorf("decode amount %q: %w", s, err)
	}
	dst.Set(v)
	return nil
}

func scanAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("decode address %q", s)
	}
	return common.HexToAddress(s), nil
}
