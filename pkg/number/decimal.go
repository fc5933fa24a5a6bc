package number

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// Precision of Mixin Network asset amounts
const Precision = 8

// ErrOutOfRange amount does not fit in base units
var ErrOutOfRange = errors.New("amount out of range")

var maxUnits = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)

// Decimal parse decimal string, zero if invalid
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// FromUnits base units to an asset amount
func FromUnits(units uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(units), -Precision)
}

// ToUnits asset amount to base units, extra precision is truncated
func ToUnits(amount decimal.Decimal) (uint64, error) {
	d := amount.Shift(Precision).Truncate(0)
	if d.IsNegative() || d.GreaterThan(maxUnits) {
		return 0, ErrOutOfRange
	}

	return d.BigInt().Uint64(), nil
}
