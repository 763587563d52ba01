package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleBody = `{
	"status": "ok",
	"articles": [
		{"title": "First", "url": "https://example.com/1", "source": {"name": "Example"}, "publishedAt": "2026-03-01T08:00:00Z"},
		{"title": "", "url": "https://example.com/skip", "source": {"name": "Example"}},
		{"title": "Second", "url": "https://example.com/2", "source": {"name": "Other"}, "publishedAt": "2026-03-01T09:00:00Z"}
	]
}`

func TestFetch(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	f := NewFeed(srv.URL, "secret", "id", time.Minute, zap.NewNop())
	require.NoError(t, f.Fetch(context.Background()))

	assert.Equal(t, []string{"secret"}, gotQuery["apiKey"])
	assert.Equal(t, []string{"id"}, gotQuery["country"])

	hs := f.Headlines()
	require.Len(t, hs, 2) // untitled article dropped
	assert.Equal(t, "First", hs[0].Title)
	assert.Equal(t, "Example", hs[0].Source)
	assert.Equal(t, "Second", hs[1].Title)
}

func TestFetchKeepsStaleCacheOnFailure(t *testing.T) {
	fail := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	f := NewFeed(srv.URL, "secret", "us", time.Minute, zap.NewNop())
	require.NoError(t, f.Fetch(context.Background()))
	require.Len(t, f.Headlines(), 2)

	fail = true
	err := f.Fetch(context.Background())
	require.Error(t, err)
	assert.Len(t, f.Headlines(), 2)
}

func TestHeadlinesReturnsCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	f := NewFeed(srv.URL, "secret", "us", time.Minute, zap.NewNop())
	require.NoError(t, f.Fetch(context.Background()))

	hs := f.Headlines()
	hs[0].Title = "mutated"
	assert.Equal(t, "First", f.Headlines()[0].Title)
}

func TestNewFeedDefaults(t *testing.T) {
	f := NewFeed("", "k", "", 0, zap.NewNop())
	assert.Equal(t, defaultEndpoint, f.endpoint)
	assert.Equal(t, "us", f.country)
	assert.Equal(t, 5*time.Minute, f.refresh)
}
