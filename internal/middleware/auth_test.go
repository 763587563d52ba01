package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedServer(keys map[string]string) (*httptest.Server, *string) {
	var seenUser string
	h := APIKeyAuth(keys)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return httptest.NewServer(h), &seenUser
}

func doGet(t *testing.T, url, authHeader string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestAPIKeyAuth(t *testing.T) {
	keys := map[string]string{"secret-key": "u1"}

	t.Run("valid bearer key resolves user", func(t *testing.T) {
		srv, seen := authedServer(keys)
		defer srv.Close()

		resp := doGet(t, srv.URL+"/v1/u1/stats", "Bearer secret-key")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "u1", *seen)
	})

	t.Run("bare key accepted", func(t *testing.T) {
		srv, seen := authedServer(keys)
		defer srv.Close()

		resp := doGet(t, srv.URL+"/v1/u1/stats", "secret-key")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "u1", *seen)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		srv, _ := authedServer(keys)
		defer srv.Close()

		resp := doGet(t, srv.URL+"/v1/u1/stats", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		srv, _ := authedServer(keys)
		defer srv.Close()

		resp := doGet(t, srv.URL+"/v1/u1/stats", "Bearer wrong")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("health endpoint skips auth", func(t *testing.T) {
		srv, _ := authedServer(keys)
		defer srv.Close()

		resp := doGet(t, srv.URL+"/health", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
