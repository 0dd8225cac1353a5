package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/urls"
)

// FeedParser handles RSS/Atom feed parsing operations
type FeedParser struct {
	feedParser *gofeed.Parser
}

// NewFeedParser creates a new feed parser
func NewFeedParser() *FeedParser {
	return &FeedParser{
		feedParser: gofeed.NewParser(),
	}
}

// Parse decodes an RSS or Atom document and returns at most limit items.
// Relative links are resolved against feedURL; items without a title or a
// usable link are skipped.
func (p *FeedParser) Parse(body []byte, feedURL string, limit int) ([]FeedItem, error) {
	feed, err := p.feedParser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	if feed == nil || len(feed.Items) == 0 {
		return nil, ErrNoItems
	}

	entries := feed.Items
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	items := make([]FeedItem, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		title := domain.CollapseSpace(entry.Title)
		link, ok := urls.ResolveString(feedURL, itemLink(entry))
		if title == "" || !ok {
			continue
		}
		items = append(items, FeedItem{
			Title:       title,
			Link:        link,
			Description: StripHTML(firstNonEmpty(entry.Description, entry.Content)),
			Published:   firstNonEmpty(entry.Published, entry.Updated),
		})
	}

	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

// itemLink prefers the translated link, then any raw link
func itemLink(item *gofeed.Item) string {
	if link := strings.TrimSpace(item.Link); link != "" {
		return link
	}
	for _, l := range item.Links {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return ""
}

// StripHTML returns the whitespace-collapsed text content of an HTML fragment
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return domain.CollapseSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return domain.CollapseSpace(fragment)
	}
	return domain.CollapseSpace(doc.Text())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
