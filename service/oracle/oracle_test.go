package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPullPriceTicker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v2/tickers/XAU":
			w.Write([]byte(`{"provider":"feed","price":"1900.5"}`))
		case "/api/v2/tickers/ZERO":
			w.Write([]byte(`{"price":"0"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := New(Config{Endpoint: srv.URL + "/"})
	ctx := context.Background()

	ticker, err := s.PullPriceTicker(ctx, "XAU")
	require.Nil(t, err)
	assert.Equal(t, "XAU", ticker.Symbol)
	assert.Equal(t, "1900.5", ticker.Price.String())

	_, err = s.PullPriceTicker(ctx, "ZERO")
	assert.Equal(t, ErrInvalidPrice, err)

	_, err = s.PullPriceTicker(ctx, "BTC")
	assert.NotNil(t, err)
}
