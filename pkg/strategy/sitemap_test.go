package strategy

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"news-crawler/pkg/httpclient"
	"news-crawler/pkg/logger"
)

func urlSet(entries ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9" xmlns:news="http://www.google.com/schemas/sitemap-news/0.9">`)
	for _, e := range entries {
		b.WriteString(e)
	}
	b.WriteString(`</urlset>`)
	return b.String()
}

func TestSitemapStrategyIndex(t *testing.T) {
	srv := newSite(t, map[string]route{})
	index := fmt.Sprintf(`<?xml version="1.0"?><sitemapindex>
<sitemap><loc>%[1]s/page-sitemap.xml</loc></sitemap>
<sitemap><loc>%[1]s/NEWS-1.xml</loc></sitemap>
<sitemap><loc>%[1]s/post-2.xml</loc></sitemap>
<sitemap><loc>%[1]s/news-3.xml</loc></sitemap>
<sitemap><loc>%[1]s/news-4.xml</loc></sitemap>
</sitemapindex>`, srv.URL)

	srv.routes["/sitemap.xml"] = route{contentType: "application/xml", body: index}
	srv.routes["/NEWS-1.xml"] = route{contentType: "text/plain", body: urlSet(
		`<url><loc>` + srv.URL + `/world/a</loc><news:news><news:title>Headline A</news:title></news:news></url>`,
	)}
	srv.routes["/post-2.xml"] = route{contentType: "application/xml", body: urlSet(
		`<url><loc>` + srv.URL + `/2024/an-untitled-story</loc></url>`,
	)}
	srv.routes["/news-3.xml"] = route{status: 500}

	articles, err := NewSitemapStrategy(httpclient.NewClient(httpclient.BotClient), nil).Discover(context.Background(), srv.URL, "finance")
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "Headline A", articles[0].Title)
	assert.Equal(t, srv.URL+"/world/a", articles[0].URL)
	assert.Equal(t, "An Untitled Story", articles[1].Title)
	assert.Empty(t, articles[1].Description)
	assert.Equal(t, "finance", articles[1].Industry)

	assert.Equal(t, 0, srv.hitCount("/page-sitemap.xml"))
	assert.Equal(t, 1, srv.hitCount("/news-3.xml"))
	assert.Equal(t, 0, srv.hitCount("/news-4.xml"))
	assert.Equal(t, 0, srv.hitCount("/sitemap_index.xml"))
}

func TestSitemapStrategyIndexFiltersBeforeCap(t *testing.T) {
	srv := newSite(t, map[string]route{})
	index := fmt.Sprintf(`<?xml version="1.0"?><sitemapindex>
<sitemap><loc>%[1]s/pages-1.xml</loc></sitemap>
<sitemap><loc>%[1]s/pages-2.xml</loc></sitemap>
<sitemap><loc>%[1]s/pages-3.xml</loc></sitemap>
<sitemap><loc>%[1]s/news-1.xml</loc></sitemap>
</sitemapindex>`, srv.URL)
	srv.routes["/sitemap.xml"] = route{contentType: "application/xml", body: index}
	srv.routes["/news-1.xml"] = route{contentType: "application/xml", body: urlSet(
		`<url><loc>` + srv.URL + `/world/late-child</loc></url>`,
	)}

	articles, err := NewSitemapStrategy(httpclient.NewClient(httpclient.BotClient), nil).Discover(context.Background(), srv.URL, "")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, srv.URL+"/world/late-child", articles[0].URL)
	assert.Equal(t, 0, srv.hitCount("/pages-1.xml"))
	assert.Equal(t, 1, srv.hitCount("/news-1.xml"))
}

func TestSitemapStrategyURLSetFiltersPaths(t *testing.T) {
	srv := newSite(t, map[string]route{})
	var entries []string
	for _, p := range []string{"/news/one", "/about", "/shop/item", "/blog/two", "/2025/05/three"} {
		entries = append(entries, `<url><loc>`+srv.URL+p+`</loc></url>`)
	}
	srv.routes["/sitemap.xml"] = route{contentType: "text/xml", body: urlSet(entries...)}

	articles, err := NewSitemapStrategy(httpclient.NewClient(httpclient.BotClient), nil).Discover(context.Background(), srv.URL, "")
	require.NoError(t, err)

	var got []string
	for _, a := range articles {
		got = append(got, strings.TrimPrefix(a.URL, srv.URL))
	}
	assert.Equal(t, []string{"/news/one", "/blog/two", "/2025/05/three"}, got)
}

func TestSitemapStrategyCapsEntries(t *testing.T) {
	srv := newSite(t, map[string]route{})
	var entries []string
	for i := 0; i < 130; i++ {
		entries = append(entries, fmt.Sprintf(`<url><loc>%s/news/story-%d</loc></url>`, srv.URL, i))
	}
	srv.routes["/news-sitemap.xml"] = route{contentType: "application/xml", body: urlSet(entries...)}

	articles, err := NewSitemapStrategy(httpclient.NewClient(httpclient.BotClient), nil).Discover(context.Background(), srv.URL, "")
	require.NoError(t, err)
	assert.Len(t, articles, 100)
}

func TestSitemapStrategyRequiresXMLContentType(t *testing.T) {
	srv := newSite(t, map[string]route{})
	srv.routes["/sitemap.xml"] = route{contentType: "text/html", body: urlSet(`<url><loc>` + srv.URL + `/news/x</loc></url>`)}

	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewFromZap(zap.New(core))

	articles, err := NewSitemapStrategy(httpclient.NewClient(httpclient.BotClient), log).Discover(context.Background(), srv.URL, "")
	require.NoError(t, err)
	assert.Empty(t, articles)
	assert.Equal(t, 1, srv.hitCount("/post-sitemap.xml"))

	skipped := logs.FilterMessage("Sitemap probe skipped").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, srv.URL+"/sitemap.xml", skipped[0].ContextMap()["url"])
	assert.Contains(t, skipped[0].ContextMap()["error"], "response is not XML")
}
