package db

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/httpclient"
)

func testArticle() domain.Article {
	return domain.Article{
		Title:     "Rates hold steady",
		URL:       "https://example.com/news/rates-hold-steady",
		Source:    "https://example.com/",
		Industry:  "finance",
		ScrapedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAPISaverPostsArticle(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/save", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	saver := NewAPISaver(srv.URL+"/", time.Second)
	require.NoError(t, saver.SaveArticle(context.Background(), testArticle(), "client-7"))

	assert.Equal(t, "Rates hold steady", got["title"])
	assert.Equal(t, "https://example.com/news/rates-hold-steady", got["url"])
	assert.Equal(t, "finance", got["industry"])
	assert.Equal(t, "client-7", got["clientId"])
	assert.Equal(t, "2026-03-01T12:00:00Z", got["scrapedAt"])
	assert.NotContains(t, got, "publishedAt")
}

func TestAPISaverRequiresCreated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewAPISaver(srv.URL, time.Second).SaveArticle(context.Background(), testArticle(), "")
	assert.ErrorIs(t, err, httpclient.ErrUnexpectedStatus)
}

func TestAPISaverUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	err := NewAPISaver(srv.URL, time.Second).SaveArticle(context.Background(), testArticle(), "")
	assert.Error(t, err)
}
