package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestUnits(t *testing.T) {
	data := map[string]uint64{
		"1":           100000000,
		"0.00000001":  1,
		"0.000000019": 1,
		"12.5":        1250000000,
		"0":           0,
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			units, err := ToUnits(Decimal(k))
			assert.Equal(t, nil, err)
			assert.Equal(t, v, units, "should be truncated to units")
		})
	}

	assert.Equal(t, "12.5", FromUnits(1250000000).String())
	assert.Equal(t, "0.00000001", FromUnits(1).String())
}

func TestUnitsOutOfRange(t *testing.T) {
	_, err := ToUnits(Decimal("-1"))
	assert.Equal(t, ErrOutOfRange, err)

	_, err = ToUnits(Decimal("1000000000000"))
	assert.Equal(t, ErrOutOfRange, err)
}
