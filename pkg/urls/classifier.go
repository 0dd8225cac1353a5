package urls

import (
	"net/url"
	"strings"
)

// Path markers used by IsArticleURL, matched against the lowercased path.
var (
	// RejectPathMarkers mark listing, account and static asset pages.
	RejectPathMarkers = []string{
		"/tag/", "/category/", "/author/", "/page/", "/search",
		"/about", "/contact", "/privacy", "/terms", "/login", "/register",
		"/cart", "/checkout", "/account", "/profile",
		".jpg", ".png", ".gif", ".pdf", ".css", ".js",
	}

	// ArticlePathMarkers mark paths that almost always hold a single article.
	ArticlePathMarkers = []string{
		"/news/", "/article/", "/post/", "/blog/", "/story/",
		"/press/", "/update/", "/release/", "/report/",
		"/2024/", "/2025/", "/2026/",
	}
)

// minSlugLength is the length above which a final segment counts as a slug
// even without hyphens.
const minSlugLength = 20

// IsArticleURL reports whether candidate plausibly points to an article page
// on the same site as origin. Rules run in order and the first match decides:
// foreign host rejects, a reject marker rejects, an article marker accepts,
// otherwise the path needs two or more segments ending in a slug.
func IsArticleURL(candidate, origin string) bool {
	c, err := url.Parse(candidate)
	if err != nil {
		return false
	}
	o, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if !strings.EqualFold(c.Host, o.Host) {
		return false
	}

	path := strings.ToLower(c.Path)
	if containsAny(path, RejectPathMarkers) {
		return false
	}
	if containsAny(path, ArticlePathMarkers) {
		return true
	}

	segments := pathSegments(path)
	if len(segments) < 2 {
		return false
	}
	last := segments[len(segments)-1]
	return strings.Contains(last, "-") || len(last) > minSlugLength
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func pathSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
