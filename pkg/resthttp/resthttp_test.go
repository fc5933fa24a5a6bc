package resthttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"request_id":"` + r.Header.Get(headerKeyRequestID) + `"}`))
	}))
	defer srv.Close()

	ctx := WithRequestID(context.Background(), "req-1")

	var body struct {
		RequestID string `json:"request_id"`
	}
	require.Nil(t, Get(ctx, srv.URL+"/ok", &body))
	assert.Equal(t, "req-1", body.RequestID)

	assert.NotNil(t, Get(ctx, srv.URL+"/missing", &body))
}
