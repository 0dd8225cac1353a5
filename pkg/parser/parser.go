// Package parser turns raw feed, sitemap and source-list bytes into typed entries.
package parser

import "errors"

var (
	ErrNotXML  = errors.New("response is not XML")
	ErrNoItems = errors.New("document contains no entries")
)

// FeedItem is one RSS item or Atom entry
type FeedItem struct {
	Title       string
	Link        string // absolute
	Description string // plain text
	Published   string // verbatim pubDate/published/updated
}

// SitemapURL is one <url> entry of a sitemap
type SitemapURL struct {
	Location  string
	NewsTitle string // <news:title>, when present
}

// SitemapDocument is either a sitemap index (Sitemaps set) or a URL set
type SitemapDocument struct {
	Sitemaps []string
	URLs     []SitemapURL
}

// IsIndex reports whether the document lists child sitemaps
func (d *SitemapDocument) IsIndex() bool {
	return len(d.Sitemaps) > 0
}
