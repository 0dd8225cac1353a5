package strategy

import (
	"context"
	"net/http"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/httpclient"
	"news-crawler/pkg/logger"
	"news-crawler/pkg/parser"
	"news-crawler/pkg/urls"
)

// DefaultFeedPaths are probed in order until one yields articles.
var DefaultFeedPaths = []string{
	"/feed",
	"/rss",
	"/feed.xml",
	"/rss.xml",
	"/feeds/posts/default",
	"/atom.xml",
	"/index.xml",
	"/news/feed",
	"/blog/feed",
	"/?feed=rss2",
	"/feed/rss",
	"/rss/news",
}

const DefaultMaxFeedItems = 50

// FeedStrategy probes well-known feed locations
type FeedStrategy struct {
	fetcher  httpclient.Fetcher
	parser   *parser.FeedParser
	paths    []string
	maxItems int
	log      logger.Interface
}

// NewFeedStrategy creates a new feed strategy. fetcher should carry the
// feed timeout and a crawler user agent.
func NewFeedStrategy(fetcher httpclient.Fetcher, log logger.Interface) *FeedStrategy {
	return &FeedStrategy{
		fetcher:  fetcher,
		parser:   parser.NewFeedParser(),
		paths:    DefaultFeedPaths,
		maxItems: DefaultMaxFeedItems,
		log:      orNop(log).With("strategy", "feed"),
	}
}

// WithPaths overrides the probe list
func (s *FeedStrategy) WithPaths(paths ...string) *FeedStrategy {
	s.paths = paths
	return s
}

func (s *FeedStrategy) Name() string { return "feed" }

// Discover returns the articles of the first feed path that yields any.
func (s *FeedStrategy) Discover(ctx context.Context, origin, industry string) ([]domain.Article, error) {
	for _, p := range s.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		feedURL, err := urls.JoinPath(origin, p)
		if err != nil {
			return nil, err
		}

		articles := s.probe(ctx, feedURL, origin, industry)
		if len(articles) > 0 {
			s.log.Info("Feed found", "url", feedURL, "articles", len(articles))
			return articles, nil
		}
	}
	return nil, nil
}

func (s *FeedStrategy) probe(ctx context.Context, feedURL, origin, industry string) []domain.Article {
	resp, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		s.log.Debug("Feed probe failed", "url", feedURL, "error", err)
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	if err := parser.CheckFeed(resp.ContentType(), resp.Body); err != nil {
		s.log.Debug("Feed probe skipped", "url", feedURL, "error", err)
		return nil
	}

	items, err := s.parser.Parse(resp.Body, responseURL(resp, feedURL), s.maxItems)
	if err != nil {
		s.log.Debug("Feed parse failed", "url", feedURL, "error", err)
		return nil
	}

	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		a, err := domain.NewArticle(item.Title, item.Link, item.Description, origin, industry)
		if err != nil {
			continue
		}
		a.PublishedAt = item.Published
		articles = append(articles, a)
	}
	return articles
}
