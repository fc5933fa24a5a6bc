package wallet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaySchemaURL(t *testing.T) {
	s := New(nil)

	u, err := s.PaySchemaURL(decimal.RequireFromString("0.5"), "asset", "recipient", "trace", "repay loan")
	require.Nil(t, err)
	assert.Equal(t, "mixin://pay?amount=0.5&asset=asset&recipient=recipient&trace=trace&memo=repay+loan", u)

	_, err = s.PaySchemaURL(decimal.Zero, "asset", "recipient", "trace", "")
	assert.NotNil(t, err)

	_, err = s.PaySchemaURL(decimal.NewFromInt(1), "asset", "recipient", "", "")
	assert.NotNil(t, err)
}
