package loan

import (
	"lending/core"
	"math"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMaxLoan(t *testing.T) {
	v, err := MaxLoan(10000, 50)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), v)

	v, err = MaxLoan(999, 70)
	require.NoError(t, err)
	assert.Equal(t, uint64(699), v)

	v, err = MaxLoan(math.MaxUint64, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), v)
}

func TestRequiredCollateral(t *testing.T) {
	v, err := RequiredCollateral(1000, 50)
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), v)

	v, err = RequiredCollateral(1000, 70)
	require.NoError(t, err)
	assert.Equal(t, uint64(1428), v)

	_, err = RequiredCollateral(math.MaxUint64, 50)
	assert.Equal(t, core.ErrArithmeticOverflow, err)
}

func TestCheckedArithmetic(t *testing.T) {
	_, err := Add(math.MaxUint64, 1)
	assert.Equal(t, core.ErrArithmeticOverflow, err)

	_, err = Sub(1, 2)
	assert.Equal(t, core.ErrArithmeticOverflow, err)

	fee, err := Bps(5000, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), fee)

	reward, err := Percent(1000, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), reward)
}

func TestUnderwater(t *testing.T) {
	// 1200 * 100 == 1000 * 120, on the threshold is still healthy
	assert.Equal(t, false, Underwater(1200, 1000, 120))
	assert.Equal(t, true, Underwater(1199, 1000, 120))
	assert.Equal(t, false, Underwater(0, 0, 120))
	assert.Equal(t, "1.2", HealthFactor(1200, 1000).String())
	assert.Equal(t, true, HealthFactor(1, 0).Equal(decimal.Zero))
}
