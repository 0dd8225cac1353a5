package urls

import (
	"net/url"
	"strings"
)

// skipHrefPrefixes are hrefs that never lead to another page.
var skipHrefPrefixes = []string{"#", "javascript:", "mailto:", "tel:"}

// Resolve turns href into an absolute URL against base, without fragment.
// It returns false for empty, fragment-only and script hrefs.
func Resolve(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	lower := strings.ToLower(href)
	for _, p := range skipHrefPrefixes {
		if strings.HasPrefix(lower, p) {
			return "", false
		}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	abs := ref
	if base != nil {
		abs = base.ResolveReference(ref)
	}
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	abs.Fragment = ""
	abs.RawFragment = ""
	return abs.String(), true
}

// ResolveString is Resolve with a string base
func ResolveString(base, href string) (string, bool) {
	b, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	return Resolve(b, href)
}

// JoinPath resolves a root-relative path such as "/feed" against origin.
func JoinPath(origin, p string) (string, error) {
	base, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(p)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
