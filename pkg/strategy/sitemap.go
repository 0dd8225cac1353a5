package strategy

import (
	"context"
	"net/http"
	"strings"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/httpclient"
	"news-crawler/pkg/logger"
	"news-crawler/pkg/parser"
	"news-crawler/pkg/urls"
)

// DefaultSitemapPaths are probed in order until one yields articles.
var DefaultSitemapPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/news-sitemap.xml",
	"/post-sitemap.xml",
}

var (
	// childSitemapMarkers select which children of an index are followed
	childSitemapMarkers = []string{"news", "post"}
	// articlePathMarkers filter entries of a plain URL set
	articlePathMarkers = []string{"/news/", "/article/", "/post/", "/blog/", "/story/", "202"}
)

const (
	DefaultMaxChildSitemaps = 3
	DefaultMaxSitemapURLs   = 100
)

// SitemapStrategy probes well-known sitemap locations
type SitemapStrategy struct {
	fetcher     httpclient.Fetcher
	paths       []string
	maxChildren int
	maxURLs     int
	pathFilter  urls.UrlFilter
	log         logger.Interface
}

// NewSitemapStrategy creates a new sitemap strategy
func NewSitemapStrategy(fetcher httpclient.Fetcher, log logger.Interface) *SitemapStrategy {
	return &SitemapStrategy{
		fetcher:     fetcher,
		paths:       DefaultSitemapPaths,
		maxChildren: DefaultMaxChildSitemaps,
		maxURLs:     DefaultMaxSitemapURLs,
		pathFilter:  urls.NewPathMarkerFilter(articlePathMarkers...),
		log:         orNop(log).With("strategy", "sitemap"),
	}
}

// WithPaths overrides the probe list
func (s *SitemapStrategy) WithPaths(paths ...string) *SitemapStrategy {
	s.paths = paths
	return s
}

func (s *SitemapStrategy) Name() string { return "sitemap" }

// Discover returns the articles of the first sitemap path that yields any.
func (s *SitemapStrategy) Discover(ctx context.Context, origin, industry string) ([]domain.Article, error) {
	for _, p := range s.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sitemapURL, err := urls.JoinPath(origin, p)
		if err != nil {
			return nil, err
		}

		doc, finalURL := s.load(ctx, sitemapURL, true)
		if doc == nil {
			continue
		}

		var articles []domain.Article
		if doc.IsIndex() {
			articles = s.fromIndex(ctx, doc, origin, industry)
		} else {
			articles = s.fromURLSet(ctx, doc, finalURL, origin, industry, true)
		}
		if len(articles) > 0 {
			s.log.Info("Sitemap found", "url", sitemapURL, "articles", len(articles))
			return articles, nil
		}
	}
	return nil, nil
}

// load fetches and decodes a sitemap. Probed paths must also declare an XML
// content type; children of an index only need a 200.
func (s *SitemapStrategy) load(ctx context.Context, sitemapURL string, requireXML bool) (*parser.SitemapDocument, string) {
	resp, err := s.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		s.log.Debug("Sitemap probe failed", "url", sitemapURL, "error", err)
		return nil, ""
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ""
	}
	if requireXML {
		if err := parser.CheckXML(resp.ContentType()); err != nil {
			s.log.Debug("Sitemap probe skipped", "url", sitemapURL, "error", err)
			return nil, ""
		}
	}

	doc, err := parser.ParseSitemap(resp.Body)
	if err != nil {
		s.log.Debug("Sitemap parse failed", "url", sitemapURL, "error", err)
		return nil, ""
	}
	return doc, responseURL(resp, sitemapURL)
}

// fromIndex follows up to maxChildren children whose URL mentions a marker.
// Filtering happens before the cap, so a news child listed after unrelated
// ones is still reached.
func (s *SitemapStrategy) fromIndex(ctx context.Context, doc *parser.SitemapDocument, origin, industry string) []domain.Article {
	var articles []domain.Article
	followed := 0
	for _, child := range doc.Sitemaps {
		if followed >= s.maxChildren || ctx.Err() != nil {
			break
		}
		if !containsFold(child, childSitemapMarkers) {
			continue
		}
		followed++

		childDoc, finalURL := s.load(ctx, child, false)
		if childDoc == nil {
			continue
		}
		articles = append(articles, s.fromURLSet(ctx, childDoc, finalURL, origin, industry, false)...)
	}
	return articles
}

func (s *SitemapStrategy) fromURLSet(ctx context.Context, doc *parser.SitemapDocument, sitemapURL, origin, industry string, filter bool) []domain.Article {
	entries := doc.URLs
	if len(entries) > s.maxURLs {
		entries = entries[:s.maxURLs]
	}

	articles := make([]domain.Article, 0, len(entries))
	for _, entry := range entries {
		loc, ok := urls.ResolveString(sitemapURL, entry.Location)
		if !ok {
			continue
		}
		if filter {
			if keep, _ := s.pathFilter.ShouldKeep(ctx, loc); !keep {
				continue
			}
		}

		title := entry.NewsTitle
		if title == "" {
			title = urls.TitleFromURL(loc)
		}
		a, err := domain.NewArticle(title, loc, "", origin, industry)
		if err != nil {
			continue
		}
		articles = append(articles, a)
	}
	return articles
}

func containsFold(s string, markers []string) bool {
	s = strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
