package crawler

import (
	"time"

	"news-crawler/pkg/dedup"
	"news-crawler/pkg/httpclient"
	"news-crawler/pkg/logger"
	"news-crawler/pkg/sites"
	"news-crawler/pkg/strategy"
)

const (
	DefaultFeedTimeout = 10 * time.Second
	DefaultPageTimeout = 15 * time.Second
)

// Settings configures the standard strategy set
type Settings struct {
	FeedTimeout   time.Duration
	PageTimeout   time.Duration
	MaxBodyBytes  int64
	RenderJS      bool
	RenderTimeout time.Duration
	Workers       int
	FeedPaths     []string // probe list overrides, empty keeps the defaults
	SitemapPaths  []string
}

// NewDefault wires feed, sitemap and page strategies, in that order.
// Feed and sitemap probes share a crawler-identified client; the page
// fetch uses browser headers, retried with curl headers on 403, optionally
// behind headless Chrome.
func NewDefault(s Settings, store dedup.Store, log logger.Interface) *Crawler {
	if log == nil {
		log = logger.NewNop()
	}
	if s.FeedTimeout <= 0 {
		s.FeedTimeout = DefaultFeedTimeout
	}
	if s.PageTimeout <= 0 {
		s.PageTimeout = DefaultPageTimeout
	}

	probeClient := httpclient.NewClient(httpclient.BotClient,
		httpclient.WithTimeout(s.FeedTimeout),
		httpclient.WithMaxBodyBytes(s.MaxBodyBytes),
	)

	var pageFetcher httpclient.Fetcher = httpclient.NewBlockedRetry(
		httpclient.NewClient(httpclient.BrowserClient,
			httpclient.WithTimeout(s.PageTimeout),
			httpclient.WithMaxBodyBytes(s.MaxBodyBytes),
		),
		httpclient.NewClient(httpclient.CloudflareClient,
			httpclient.WithTimeout(s.PageTimeout),
			httpclient.WithMaxBodyBytes(s.MaxBodyBytes),
		),
	)
	if s.RenderJS {
		pageFetcher = httpclient.NewRenderer(pageFetcher, s.RenderTimeout, log)
	}

	feed := strategy.NewFeedStrategy(probeClient, log)
	if len(s.FeedPaths) > 0 {
		feed.WithPaths(s.FeedPaths...)
	}
	sitemap := strategy.NewSitemapStrategy(probeClient, log)
	if len(s.SitemapPaths) > 0 {
		sitemap.WithPaths(s.SitemapPaths...)
	}

	strategies := []strategy.Strategy{
		feed,
		sitemap,
		strategy.NewPageStrategy(pageFetcher, sites.NewExtractor(sites.DefaultConfig()), log),
	}
	return New(strategies, store, WithLogger(log), WithWorkers(s.Workers))
}
