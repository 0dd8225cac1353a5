package sites

// Config holds the selector cascade and limits used by the extractor.
// The defaults are tuned for generic news homepages.
type Config struct {
	// ContainerSelectors are tried in order during the container scan.
	ContainerSelectors []string
	// HeadingTags are checked in order for a container's title.
	HeadingTags []string
	// StripSelector removes non-content elements before extraction.
	StripSelector string

	MaxPerSelector    int
	MinContainerTitle int
	MinAnchorTitle    int
	MaxAnchorTitle    int
	MaxArticles       int
}

// DefaultConfig returns the standard selector cascade
func DefaultConfig() Config {
	return Config{
		ContainerSelectors: []string{
			"article",
			`[class*="article"]`,
			`[class*="post"]`,
			`[class*="story"]`,
			`[class*="news-item"]`,
			`[class*="card"]`,
			`[data-testid*="article"]`,
			`[data-test-id*="article"]`,
			`[role="article"]`,
			".entry",
			".item",
		},
		HeadingTags:       []string{"h1", "h2", "h3", "h4", "h5", "h6"},
		StripSelector:     "script, style, noscript, nav, footer, aside, header",
		MaxPerSelector:    50,
		MinContainerTitle: 10,
		MinAnchorTitle:    10,
		MaxAnchorTitle:    300,
		MaxArticles:       150,
	}
}
