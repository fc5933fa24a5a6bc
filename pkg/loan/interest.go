package loan

import (
	"lending/core"
	"math"
)

// SecondsPerYear 365 * 24 * 3600, no leap year adjustment
const SecondsPerYear int64 = 365 * 24 * 3600

// maxUint64Float 2^64, the first float64 that does not fit in uint64
const maxUint64Float = float64(1<<63) * 2

// CompoundInterest interest accrued on principal after elapsed seconds
//
// interest = principal * (1 + rate/100) ^ (elapsed / SecondsPerYear) - principal
//
// Evaluated in float64 and truncated. Negative elapsed time is clamped to zero.
func CompoundInterest(principal, rate uint64, elapsed int64) (uint64, error) {
	if elapsed <= 0 || principal == 0 || rate == 0 {
		return 0, nil
	}

	years := float64(elapsed) / float64(SecondsPerYear)
	p := float64(principal)
	interest := p*math.Pow(1+float64(rate)/100, years) - p

	if math.IsNaN(interest) || math.IsInf(interest, 0) || interest >= maxUint64Float {
		return 0, core.ErrArithmeticOverflow
	}

	if interest <= 0 {
		return 0, nil
	}

	return uint64(interest), nil
}

// Debt principal plus compound interest on it
func Debt(principal, rate uint64, elapsed int64) (uint64, error) {
	interest, err := CompoundInterest(principal, rate, elapsed)
	if err != nil {
		return 0, err
	}

	return Add(principal, interest)
}
