package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-crawler/pkg/dedup"
)

const homepage = `<html><body>
<nav><a href="/news/nav-story">Navigation story headline</a></nav>
<article><h2>Container story headline</h2><a href="/story/1">read</a><p>Container description</p></article>
<a href="/news/feed-story">Feed story also linked on the page</a>
</body></html>`

const feedXML = `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>
<item><title>Feed story</title><link>/news/feed-story</link><description>From the feed</description></item>
</channel></rss>`

func TestDefaultCrawlerEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			if r.URL.RawQuery != "" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(homepage))
		case "/feed":
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(feedXML))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewDefault(Settings{}, dedup.NewCache(0), nil)
	got, err := c.Crawl(context.Background(), srv.URL+"/", "technology")
	require.NoError(t, err)

	var paths []string
	for _, a := range got {
		paths = append(paths, strings.TrimPrefix(a.URL, srv.URL))
	}
	assert.Equal(t, []string{"/news/feed-story", "/story/1"}, paths)
	assert.Equal(t, "From the feed", got[0].Description)
	assert.Equal(t, "Container description", got[1].Description)
}

func TestDefaultCrawlerProbeTimeoutsKeepPageResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.URL.RawQuery == "" {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(homepage))
			return
		}
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := NewDefault(Settings{FeedTimeout: 20 * time.Millisecond}, dedup.NewCache(0), nil)
	got, err := c.Crawl(context.Background(), srv.URL+"/", "")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, srv.URL+"/story/1", got[0].URL)
	assert.Equal(t, srv.URL+"/news/feed-story", got[1].URL)
}

func TestDefaultCrawlerRetriesBlockedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" || r.URL.RawQuery != "" {
			http.NotFound(w, r)
			return
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "curl/") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(homepage))
	}))
	defer srv.Close()

	got, err := NewDefault(Settings{}, dedup.NewCache(0), nil).Crawl(context.Background(), srv.URL+"/", "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, srv.URL+"/story/1", got[0].URL)
}

func TestDefaultCrawlerCustomProbePaths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/custom.rss":
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(feedXML))
		case "/feed":
			t.Errorf("default feed path probed")
			http.NotFound(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewDefault(Settings{FeedPaths: []string{"/custom.rss"}, SitemapPaths: []string{"/none.xml"}}, dedup.NewCache(0), nil)
	got, err := c.Crawl(context.Background(), srv.URL+"/", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, srv.URL+"/news/feed-story", got[0].URL)
}
