package urls

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"sort"
	"strings"
)

// trackingParams are dropped by Normalize. Keys ending in "*" match by prefix.
var trackingParams = []string{
	"utm_*", "fbclid", "gclid", "dclid", "msclkid",
	"mc_cid", "mc_eid", "ref", "ref_src", "igshid", "_ga",
}

// Normalize returns the canonical form of rawURL used for deduplication.
// Scheme and host are lowercased, default ports, fragments and tracking
// parameters are dropped, the remaining query is sorted and the path is
// cleaned without a trailing slash.
func Normalize(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if (u.Scheme == "http" && u.Port() == "80") || (u.Scheme == "https" && u.Port() == "443") {
		u.Host = u.Hostname()
	}
	u.Fragment = ""
	u.RawFragment = ""

	if u.Path != "" {
		cleaned := path.Clean(u.Path)
		if cleaned == "/" || cleaned == "." {
			cleaned = ""
		}
		u.Path = cleaned
		u.RawPath = ""
	}

	u.RawQuery = canonicalQuery(u.Query())
	u.ForceQuery = false
	return u.String(), nil
}

// Fingerprint is the hex SHA-256 of the normalized URL, or of the trimmed
// input when it does not parse.
func Fingerprint(rawURL string) string {
	key, err := Normalize(rawURL)
	if err != nil {
		key = strings.TrimSpace(rawURL)
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func canonicalQuery(q url.Values) string {
	for key := range q {
		if isTrackingParam(key) {
			q.Del(key)
		}
	}
	if len(q) == 0 {
		return ""
	}
	keys := make([]string, 0, len(q))
	for key := range q {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		values := q[key]
		sort.Strings(values)
		for _, v := range values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

func isTrackingParam(key string) bool {
	key = strings.ToLower(key)
	for _, p := range trackingParams {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(key, prefix) {
				return true
			}
			continue
		}
		if key == p {
			return true
		}
	}
	return false
}
