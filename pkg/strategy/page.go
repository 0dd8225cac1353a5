package strategy

import (
	"context"
	"fmt"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/httpclient"
	"news-crawler/pkg/logger"
	"news-crawler/pkg/sites"
)

// PageStrategy scrapes the origin page itself with DOM heuristics
type PageStrategy struct {
	fetcher   httpclient.Fetcher
	extractor *sites.Extractor
	log       logger.Interface
}

// NewPageStrategy creates a new page strategy. fetcher should carry the page
// timeout and browser headers, or render JavaScript.
func NewPageStrategy(fetcher httpclient.Fetcher, extractor *sites.Extractor, log logger.Interface) *PageStrategy {
	if extractor == nil {
		extractor = sites.NewExtractor(sites.DefaultConfig())
	}
	return &PageStrategy{
		fetcher:   fetcher,
		extractor: extractor,
		log:       orNop(log).With("strategy", "page"),
	}
}

func (s *PageStrategy) Name() string { return "page" }

// Discover fetches origin and extracts article candidates from it
func (s *PageStrategy) Discover(ctx context.Context, origin, industry string) ([]domain.Article, error) {
	resp, err := s.fetcher.Fetch(ctx, origin)
	if err != nil {
		return nil, err
	}
	if err := resp.CheckStatus(); err != nil {
		return nil, err
	}

	candidates, err := s.extractor.ExtractHTML(resp.Body, responseURL(resp, origin))
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", origin, err)
	}

	articles := make([]domain.Article, 0, len(candidates))
	for _, c := range candidates {
		a, err := domain.NewArticle(c.Title, c.URL, c.Description, origin, industry)
		if err != nil {
			continue
		}
		articles = append(articles, a)
	}
	s.log.Debug("Page scraped", "url", origin, "articles", len(articles))
	return articles, nil
}
