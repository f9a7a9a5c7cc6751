package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopHeadlines(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/top-headlines", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "general", r.URL.Query().Get("category"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":38,"articles":[{"source":{"name":"Wire"},"title":"Hello","url":"https://x.test/a"}]}`))
	}))
	defer srv.Close()

	headlines, err := NewClient(srv.URL, "key", time.Second).TopHeadlines(context.Background(), "us", "general", 5)
	require.NoError(t, err)
	assert.Equal(t, 38, headlines.TotalResults)
	require.Len(t, headlines.Articles, 1)
	assert.Equal(t, "Wire", headlines.Articles[0].Source)
}

func TestTopHeadlines_ErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","message":"rate limited"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "key", time.Second).TopHeadlines(context.Background(), "us", "general", 5)
	assert.ErrorContains(t, err, "rate limited")
}

func TestTopHeadlines_NoKey(t *testing.T) {
	t.Parallel()

	client := NewClient("http://unused.invalid", "", time.Second)
	assert.False(t, client.Enabled())

	_, err := client.TopHeadlines(context.Background(), "us", "general", 5)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
