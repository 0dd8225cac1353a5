// Package crawler runs the discovery strategies for a site and deduplicates their output.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"news-crawler/pkg/dedup"
	"news-crawler/pkg/domain"
	"news-crawler/pkg/logger"
	"news-crawler/pkg/strategy"
	"news-crawler/pkg/urls"
	"news-crawler/pkg/worker"
)

var ErrInvalidOrigin = errors.New("invalid origin URL")

// Crawler runs its strategies in order and filters the merged result
// through a shared dedup store
type Crawler struct {
	strategies  []strategy.Strategy
	store       dedup.Store
	workerCount int
	workers     *worker.Manager
	log         logger.Interface
}

// Option configures a Crawler
type Option func(*Crawler)

// WithLogger sets the logger
func WithLogger(log logger.Interface) Option {
	return func(c *Crawler) {
		if log != nil {
			c.log = log
		}
	}
}

// WithWorkers sets how many sources CrawlMany crawls at once
func WithWorkers(n int) Option {
	return func(c *Crawler) {
		c.workerCount = n
	}
}

// New creates a new crawler. Strategy order is the tie-break between
// strategies reporting the same URL: the earlier one wins.
func New(strategies []strategy.Strategy, store dedup.Store, opts ...Option) *Crawler {
	c := &Crawler{
		strategies: strategies,
		store:      store,
		log:        logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "crawler")
	c.workers = worker.NewManager(c.workerCount, c.log)
	return c
}

// StrategyNames lists the strategies in run order
func (c *Crawler) StrategyNames() []string {
	names := make([]string, 0, len(c.strategies))
	for _, s := range c.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Remembered returns how many fingerprints the dedup store holds
func (c *Crawler) Remembered(ctx context.Context) (int64, error) {
	return c.store.Len(ctx)
}

// Crawl discovers articles for origin. Strategy failures only shrink the
// result; an error is returned for an unusable origin or a cancelled context.
func (c *Crawler) Crawl(ctx context.Context, origin, industry string) ([]domain.Article, error) {
	origin = strings.TrimSpace(origin)
	if err := validateOrigin(origin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(industry) == "" {
		industry = domain.DefaultIndustry
	}

	if reset, err := c.store.ResetIfStale(ctx); err != nil {
		c.log.Warn("Dedup reset check failed", "error", err)
	} else if reset {
		c.log.Info("Dedup window elapsed, cache cleared")
	}

	var merged []domain.Article
	counts := make(map[string]int, len(c.strategies))
	for _, s := range c.strategies {
		found := c.run(ctx, s, origin, industry)
		counts[s.Name()] = len(found)
		merged = append(merged, found...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kept := c.filter(ctx, merged)
	c.log.Info("Crawl complete", "origin", origin, "found", counts, "kept", len(kept))
	return kept, nil
}

// run calls one strategy, turning errors and panics into an empty result
func (c *Crawler) run(ctx context.Context, s strategy.Strategy, origin, industry string) (articles []domain.Article) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("Strategy panicked", "strategy", s.Name(), "origin", origin, "panic", fmt.Sprint(r))
			articles = nil
		}
	}()

	articles, err := s.Discover(ctx, origin, industry)
	if err != nil {
		c.log.Warn("Strategy failed", "strategy", s.Name(), "origin", origin, "error", err)
		return nil
	}
	return articles
}

// filter drops empty URLs, repeats within this crawl and URLs the store has
// seen, marking survivors as seen
func (c *Crawler) filter(ctx context.Context, merged []domain.Article) []domain.Article {
	seen := urls.NewSeenSet()
	kept := make([]domain.Article, 0, len(merged))

	for _, a := range merged {
		if a.URL == "" || !seen.Add(a.URL) {
			continue
		}

		dup, err := c.store.IsDuplicate(ctx, a.URL)
		if err != nil {
			c.log.Warn("Dedup lookup failed", "url", a.URL, "error", err)
		}
		if dup {
			continue
		}

		kept = append(kept, a)
		if err := c.store.MarkSeen(ctx, a.URL); err != nil {
			c.log.Warn("Dedup mark failed", "url", a.URL, "error", err)
		}
	}
	return kept
}

// CrawlMany crawls every source and reports per-source outcomes. A failing
// source never stops the others. Articles keep source order.
func (c *Crawler) CrawlMany(ctx context.Context, sources []domain.Source) domain.CrawlResult {
	found := make([][]domain.Article, len(sources))
	failures := make([]error, len(sources))

	c.workers.Process(ctx, len(sources), func(ctx context.Context, i int) error {
		src := sources[i]
		c.log.Info("Crawling source", "url", src.URL, "spider_type", src.SpiderType, "industry", src.Industry)
		found[i], failures[i] = c.Crawl(ctx, src.URL, src.Industry)
		return failures[i]
	})

	result := domain.CrawlResult{
		Articles: []domain.Article{},
		Stats:    make(map[string]domain.SourceStats, len(sources)),
		Errors:   []domain.SourceError{},
	}
	for i, src := range sources {
		err := failures[i]
		if err == nil && found[i] == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		if err != nil {
			c.log.Warn("Source failed", "url", src.URL, "error", err)
			result.Stats[src.URL] = domain.SourceStats{Status: domain.StatusError, Error: err.Error()}
			result.Errors = append(result.Errors, domain.SourceError{URL: src.URL, Error: err.Error()})
			continue
		}
		result.Stats[src.URL] = domain.SourceStats{Count: len(found[i]), Status: domain.StatusSuccess}
		result.Articles = append(result.Articles, found[i]...)
	}
	return result
}

func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidOrigin, origin, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidOrigin, origin)
	}
	return nil
}
