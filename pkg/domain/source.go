package domain

import "strings"

// DefaultSpiderType is assigned to sources that do not name one
const DefaultSpiderType = "news"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Source is one site to crawl
type Source struct {
	URL        string `json:"url" yaml:"url"`
	SpiderType string `json:"spiderType" yaml:"spider_type"`
	Industry   string `json:"industry" yaml:"industry"`
}

// NewSource creates a source with defaults applied
func NewSource(url, spiderType, industry string) Source {
	s := Source{
		URL:        strings.TrimSpace(url),
		SpiderType: strings.TrimSpace(spiderType),
		Industry:   strings.TrimSpace(industry),
	}
	if s.SpiderType == "" {
		s.SpiderType = DefaultSpiderType
	}
	if s.Industry == "" {
		s.Industry = DefaultIndustry
	}
	return s
}

// SourceStats records the outcome of crawling one source
type SourceStats struct {
	Count  int    `json:"count"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SourceError is a per-source failure reported to the caller
type SourceError struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// CrawlResult is the aggregate outcome of crawling several sources
type CrawlResult struct {
	Articles []Article              `json:"articles"`
	Stats    map[string]SourceStats `json:"stats"`
	Errors   []SourceError          `json:"errors"`
}
