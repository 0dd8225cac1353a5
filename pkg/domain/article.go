package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxTitleLength caps Article.Title, in characters
	MaxTitleLength = 200
	// MaxDescriptionLength caps Article.Description, in characters
	MaxDescriptionLength = 500
	// DefaultIndustry is used when the caller supplies none
	DefaultIndustry = "general"
)

var (
	ErrMissingTitle = errors.New("article title is empty")
	ErrMissingURL   = errors.New("article url is empty")
)

// Article is a single extracted news article
type Article struct {
	Title       string    `json:"title" bson:"title"`
	URL         string    `json:"url" bson:"url"`
	Description string    `json:"description" bson:"description"`
	Source      string    `json:"source" bson:"source"`
	Industry    string    `json:"industry" bson:"industry"`
	ScrapedAt   time.Time `json:"scrapedAt" bson:"scraped_at"`
	// PublishedAt is copied verbatim from the feed and never parsed.
	PublishedAt string `json:"publishedAt,omitempty" bson:"published_at,omitempty"`
}

// NewArticle builds a normalized article. Title and description are trimmed,
// whitespace-collapsed and capped; an empty industry becomes DefaultIndustry.
// It fails when the title or URL ends up empty.
func NewArticle(title, url, description, source, industry string) (Article, error) {
	a := Article{
		Title:       Truncate(CollapseSpace(title), MaxTitleLength),
		URL:         strings.TrimSpace(url),
		Description: Truncate(CollapseSpace(description), MaxDescriptionLength),
		Source:      source,
		Industry:    strings.TrimSpace(industry),
		ScrapedAt:   time.Now().UTC(),
	}
	if a.Industry == "" {
		a.Industry = DefaultIndustry
	}
	if a.Title == "" {
		return Article{}, ErrMissingTitle
	}
	if a.URL == "" {
		return Article{}, ErrMissingURL
	}
	return a, nil
}

// CollapseSpace trims s and folds every whitespace run into a single space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate returns at most n characters of s
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n]))
}

// Length returns the number of characters in s
func Length(s string) int {
	return utf8.RuneCountInString(s)
}
