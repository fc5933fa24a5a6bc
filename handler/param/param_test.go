package param

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct {
	Amount  uint64 `json:"amount" valid:"required"`
	TraceID string `json:"trace_id" valid:"uuid,optional"`
}

func TestBindingBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"amount":10,"trace_id":"6a1c4b1e-90a4-4cd4-a0f4-4a3e9b6f0d11"}`))

	var b body
	require.Nil(t, Binding(r, &b))
	assert.Equal(t, uint64(10), b.Amount)

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"amount":10,"trace_id":"x"}`))
	assert.NotNil(t, Binding(r, &body{}))

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"amount":`))
	assert.NotNil(t, Binding(r, &body{}))
}

func TestBindingQuery(t *testing.T) {
	var q struct {
		From  uint64 `json:"from"`
		Limit int    `json:"limit"`
	}

	r := httptest.NewRequest("GET", "/?from=5&limit=20&other=1", nil)
	require.Nil(t, Binding(r, &q))
	assert.Equal(t, uint64(5), q.From)
	assert.Equal(t, 20, q.Limit)
}
