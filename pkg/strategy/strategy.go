// Package strategy holds the independent article discovery methods run by the crawler.
package strategy

import (
	"context"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/httpclient"
	"news-crawler/pkg/logger"
)

// Strategy discovers articles for a site. Implementations are best-effort:
// an empty result is normal, and an error only explains why nothing came back.
type Strategy interface {
	Name() string
	Discover(ctx context.Context, origin, industry string) ([]domain.Article, error)
}

func orNop(log logger.Interface) logger.Interface {
	if log == nil {
		return logger.NewNop()
	}
	return log
}

// responseURL is the post-redirect URL, or requested when the fetcher left it blank
func responseURL(resp *httpclient.Response, requested string) string {
	if resp.URL != "" {
		return resp.URL
	}
	return requested
}
