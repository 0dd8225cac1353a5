package sites

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/urls"
)

// Candidate is a raw article found on a page
type Candidate struct {
	Title       string
	URL         string
	Description string
}

// Extractor finds article candidates on arbitrary listing pages
type Extractor struct {
	cfg      Config
	headings string
}

// NewExtractor creates a new DOM extractor
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{
		cfg:      cfg,
		headings: strings.Join(cfg.HeadingTags, ", "),
	}
}

// ExtractHTML parses body and runs Extract against pageURL
func (e *Extractor) ExtractHTML(body []byte, pageURL string) ([]Candidate, error) {
	page, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page URL: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return e.Extract(doc, page), nil
}

// Extract scans the document in two passes. The container pass walks the
// selector cascade and takes a heading, link and paragraph from each match.
// The anchor pass then keeps any remaining link the classifier accepts.
// Both passes share one seen set, and at most MaxArticles are returned.
func (e *Extractor) Extract(doc *goquery.Document, page *url.URL) []Candidate {
	if e.cfg.StripSelector != "" {
		doc.Find(e.cfg.StripSelector).Remove()
	}

	base := baseURL(doc, page)
	seen := urls.NewSeenSet()
	var out []Candidate

	for _, selector := range e.cfg.ContainerSelectors {
		if e.full(out) {
			break
		}
		doc.Find(selector).EachWithBreak(func(i int, container *goquery.Selection) bool {
			if i >= e.cfg.MaxPerSelector || e.full(out) {
				return false
			}
			if c, ok := e.fromContainer(container, base, seen); ok {
				out = append(out, c)
			}
			return true
		})
	}

	gate := []urls.UrlFilter{seen, urls.NewArticleFilter(page.String())}
	doc.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		if e.full(out) {
			return false
		}
		if c, ok := e.fromAnchor(link, base, gate, seen); ok {
			out = append(out, c)
		}
		return true
	})

	return out
}

func (e *Extractor) full(out []Candidate) bool {
	return e.cfg.MaxArticles > 0 && len(out) >= e.cfg.MaxArticles
}

func (e *Extractor) fromContainer(container *goquery.Selection, base *url.URL, seen *urls.SeenSet) (Candidate, bool) {
	title := e.containerTitle(container)
	if domain.Length(title) < e.cfg.MinContainerTitle {
		return Candidate{}, false
	}

	link, ok := firstLink(container, base)
	if !ok || !seen.Add(link) {
		return Candidate{}, false
	}

	return Candidate{
		Title:       title,
		URL:         link,
		Description: domain.Truncate(text(container.Find("p").First()), domain.MaxDescriptionLength),
	}, true
}

// containerTitle prefers headings by rank, then the first link's text
func (e *Extractor) containerTitle(container *goquery.Selection) string {
	for _, tag := range e.cfg.HeadingTags {
		if t := text(container.Find(tag).First()); t != "" {
			return t
		}
	}
	return text(container.Find("a").First())
}

func (e *Extractor) fromAnchor(link *goquery.Selection, base *url.URL, gate []urls.UrlFilter, seen *urls.SeenSet) (Candidate, bool) {
	href, _ := link.Attr("href")
	abs, ok := urls.Resolve(base, href)
	if !ok {
		return Candidate{}, false
	}
	if keep, _ := urls.KeepAll(context.Background(), abs, gate...); !keep {
		return Candidate{}, false
	}

	title := text(link)
	if domain.Length(title) < e.cfg.MinAnchorTitle {
		if heading := link.Closest(e.headings); heading.Length() > 0 {
			title = text(heading)
		}
	}
	if n := domain.Length(title); n < e.cfg.MinAnchorTitle || n > e.cfg.MaxAnchorTitle {
		return Candidate{}, false
	}

	seen.Add(abs)
	return Candidate{Title: title, URL: abs}, true
}

// firstLink returns the first usable href in or on the container
func firstLink(container *goquery.Selection, base *url.URL) (string, bool) {
	links := container.Filter("a[href]").AddSelection(container.Find("a[href]"))
	var found string
	links.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if abs, ok := urls.Resolve(base, href); ok {
			found = abs
			return false
		}
		return true
	})
	return found, found != ""
}

// baseURL honours a <base href> element, resolved against the page URL
func baseURL(doc *goquery.Document, page *url.URL) *url.URL {
	href, exists := doc.Find("base[href]").First().Attr("href")
	if !exists || strings.TrimSpace(href) == "" {
		return page
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return page
	}
	return page.ResolveReference(ref)
}

func text(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	return domain.CollapseSpace(s.Text())
}
