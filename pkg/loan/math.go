package loan

import (
	"lending/core"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	maxUint64   = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10000)
)

// Decimal uint64 as decimal
func Decimal(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

// Uint64 truncate d to an unsigned integer
func Uint64(d decimal.Decimal) (uint64, error) {
	d = d.Truncate(0)
	if d.IsNegative() || d.GreaterThan(maxUint64) {
		return 0, core.ErrArithmeticOverflow
	}

	return d.BigInt().Uint64(), nil
}

// Add checked a + b
func Add(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, core.ErrArithmeticOverflow
	}

	return a + b, nil
}

// Sub checked a - b
func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, core.ErrArithmeticOverflow
	}

	return a - b, nil
}

// Percent amount * pct / 100
func Percent(amount, pct uint64) (uint64, error) {
	return Uint64(Decimal(amount).Mul(Decimal(pct)).Div(hundred))
}

// Bps amount * bps / 10000
func Bps(amount, bps uint64) (uint64, error) {
	return Uint64(Decimal(amount).Mul(Decimal(bps)).Div(tenThousand))
}

// MaxLoan valuation * ltv / 100
func MaxLoan(valuation, ltv uint64) (uint64, error) {
	return Percent(valuation, ltv)
}

// RequiredCollateral amount * 100 / ltv
func RequiredCollateral(amount, ltv uint64) (uint64, error) {
	if ltv == 0 {
		return 0, core.ErrArithmeticOverflow
	}

	return Uint64(Decimal(amount).Mul(hundred).Div(Decimal(ltv)))
}

// HealthFactor valuation / debt, zero when there is no debt
func HealthFactor(valuation, debt uint64) decimal.Decimal {
	if debt == 0 {
		return decimal.Zero
	}

	return Decimal(valuation).Div(Decimal(debt)).Truncate(4)
}

// Underwater valuation * 100 < debt * threshold
func Underwater(valuation, debt, threshold uint64) bool {
	if debt == 0 {
		return false
	}

	lhs := Decimal(valuation).Mul(hundred)
	rhs := Decimal(debt).Mul(Decimal(threshold))
	return lhs.LessThan(rhs)
}
