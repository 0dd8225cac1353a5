package strategy

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-crawler/pkg/httpclient"
)

func TestPageStrategy(t *testing.T) {
	srv := newSite(t, map[string]route{
		"/": {contentType: "text/html", body: `<html><body>
<article><h2>Title Text Here</h2><a href="/story/1">read</a><p>Some description over twenty chars</p></article>
</body></html>`},
	})

	articles, err := NewPageStrategy(httpclient.NewClient(httpclient.BrowserClient), nil, nil).Discover(context.Background(), srv.URL+"/", "science")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Title Text Here", articles[0].Title)
	assert.Equal(t, srv.URL+"/story/1", articles[0].URL)
	assert.Equal(t, "Some description over twenty chars", articles[0].Description)
	assert.Equal(t, srv.URL+"/", articles[0].Source)
	assert.Equal(t, "science", articles[0].Industry)
}

func TestPageStrategyErrorStatus(t *testing.T) {
	srv := newSite(t, map[string]route{"/": {status: http.StatusForbidden}})

	articles, err := NewPageStrategy(httpclient.NewClient(httpclient.BrowserClient), nil, nil).Discover(context.Background(), srv.URL+"/", "")
	assert.True(t, errors.Is(err, httpclient.ErrUnexpectedStatus))
	assert.Empty(t, articles)
}
