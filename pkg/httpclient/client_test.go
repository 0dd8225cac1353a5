package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSetsProfileHeaders(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		_, _ = w.Write([]byte("<rss/>"))
	}))
	defer srv.Close()

	resp, err := NewClient(BotClient).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, BotUserAgent, gotUA)
	assert.Equal(t, "application/rss+xml", resp.ContentType())
	assert.Equal(t, "<rss/>", string(resp.Body))
	assert.True(t, resp.IsSuccess())

	_, err = NewClient(BrowserClient).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, BrowserUserAgent, gotUA)
	assert.Equal(t, "en-US,en;q=0.5", gotLang)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	resp, err := NewClient(BrowserClient).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())

	err = resp.CheckStatus()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := NewClient(BotClient, WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetchMaxBodyBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 100)))
	}))
	defer srv.Close()

	resp, err := NewClient(BotClient, WithMaxBodyBytes(10)).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, resp.Body, 10)
}

type stubFetcher struct {
	calls int
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	s.calls++
	return &Response{URL: url, StatusCode: http.StatusOK, Body: []byte("<html>plain</html>")}, nil
}

func TestRendererFallsBackWhenContextDone(t *testing.T) {
	fallback := &stubFetcher{}
	r := NewRenderer(fallback, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := r.Fetch(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, fallback.calls)
	assert.Equal(t, "<html>plain</html>", string(resp.Body))
}
