package content

import (
	"context"
	"fmt"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/httpclient"
)

// Enricher fills in missing article descriptions from the article page
type Enricher struct {
	fetcher httpclient.Fetcher
}

// NewEnricher creates a new enricher
func NewEnricher(fetcher httpclient.Fetcher) *Enricher {
	return &Enricher{fetcher: fetcher}
}

// Enrich sets a.Description when it is empty. Articles that already have
// one are left untouched.
func (e *Enricher) Enrich(ctx context.Context, a *domain.Article) error {
	if a.Description != "" {
		return nil
	}

	resp, err := e.fetcher.Fetch(ctx, a.URL)
	if err != nil {
		return err
	}
	if err := resp.CheckStatus(); err != nil {
		return err
	}

	desc, err := ExtractDescription(string(resp.Body))
	if err != nil {
		return fmt.Errorf("failed to enrich %s: %w", a.URL, err)
	}
	a.Description = desc
	return nil
}
