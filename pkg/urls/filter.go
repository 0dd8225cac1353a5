package urls

import (
	"context"
	"net/url"
	"strings"
)

// UrlFilter defines the interface for URL filtering
type UrlFilter interface {
	ShouldKeep(ctx context.Context, url string) (bool, error)
}

// KeepAll reports whether every filter keeps urlStr. Filters run in order
// and stop at the first rejection or error.
func KeepAll(ctx context.Context, urlStr string, filters ...UrlFilter) (bool, error) {
	for _, f := range filters {
		keep, err := f.ShouldKeep(ctx, urlStr)
		if err != nil || !keep {
			return false, err
		}
	}
	return true, nil
}

// ArticleFilter keeps URLs accepted by IsArticleURL for a fixed origin
type ArticleFilter struct {
	origin string
}

// NewArticleFilter creates a new article filter anchored to origin
func NewArticleFilter(origin string) *ArticleFilter {
	return &ArticleFilter{origin: origin}
}

// ShouldKeep returns true if the URL looks like an article on origin's host
func (f *ArticleFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	return IsArticleURL(urlStr, f.origin), nil
}

// PathMarkerFilter keeps URLs whose path contains at least one marker
type PathMarkerFilter struct {
	markers []string
}

// NewPathMarkerFilter creates a new path marker filter
func NewPathMarkerFilter(markers ...string) *PathMarkerFilter {
	return &PathMarkerFilter{markers: markers}
}

// ShouldKeep returns true if the URL path contains one of the markers
func (f *PathMarkerFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false, nil
	}
	return containsAny(strings.ToLower(parsed.Path), f.markers), nil
}

// SeenSet tracks URL fingerprints within a single extraction pass.
// It is not safe for concurrent use.
type SeenSet struct {
	seen map[string]struct{}
}

// NewSeenSet creates an empty seen set
func NewSeenSet() *SeenSet {
	return &SeenSet{seen: make(map[string]struct{})}
}

// Seen reports whether urlStr was added before
func (s *SeenSet) Seen(urlStr string) bool {
	_, ok := s.seen[Fingerprint(urlStr)]
	return ok
}

// Add records urlStr and reports whether it was new
func (s *SeenSet) Add(urlStr string) bool {
	key := Fingerprint(urlStr)
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// ShouldKeep returns false if URL is already in the set
func (s *SeenSet) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	return !s.Seen(urlStr), nil
}
