package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedServer(capacity, refillRate int) *httptest.Server {
	h := RateLimitMiddleware(capacity, refillRate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return httptest.NewServer(h)
}

func get(t *testing.T, url string) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("exhausted bucket rejects", func(t *testing.T) {
		srv := limitedServer(1, 1)
		defer srv.Close()

		assert.Equal(t, http.StatusOK, get(t, srv.URL+"/v1/u1/stats"))
		assert.Equal(t, http.StatusTooManyRequests, get(t, srv.URL+"/v1/u1/stats"))
	})

	t.Run("health and metrics never limited", func(t *testing.T) {
		srv := limitedServer(1, 1)
		defer srv.Close()

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, get(t, srv.URL+"/health"))
			assert.Equal(t, http.StatusOK, get(t, srv.URL+"/metrics"))
		}
	})
}

func TestTokenBucket(t *testing.T) {
	tb := NewTokenBucket(2, 1)
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}
