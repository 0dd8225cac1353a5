package urls

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"news-crawler/pkg/domain"
)

// minTitleSegmentLength drops short path segments like "en" or "www".
const minTitleSegmentLength = 4

var slugReplacer = strings.NewReplacer("-", " ", "_", " ")

// TitleFromURL derives a readable title from the last meaningful path segment,
// e.g. https://example.com/2024/a-long-article-slug -> "A Long Article Slug".
// It falls back to the raw URL when no segment qualifies.
func TitleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return domain.Truncate(rawURL, domain.MaxTitleLength)
	}

	var last string
	for _, seg := range strings.Split(u.Path, "/") {
		if domain.Length(seg) < minTitleSegmentLength || isDigits(seg) {
			continue
		}
		last = seg
	}
	if last == "" {
		return domain.Truncate(rawURL, domain.MaxTitleLength)
	}

	if unescaped, err := url.PathUnescape(last); err == nil {
		last = unescaped
	}
	title := cases.Title(language.English).String(slugReplacer.Replace(last))
	return domain.Truncate(domain.CollapseSpace(title), domain.MaxTitleLength)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
