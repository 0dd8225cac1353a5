package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"news-crawler/pkg/crawler"
	"news-crawler/pkg/domain"
)

// defaultScrapeSource is crawled when a scrape request names no sources
var defaultScrapeSource = domain.NewSource("https://news.ycombinator.com", "news", "technology")

type scrapeRequest struct {
	Sources  []json.RawMessage `json:"sources"`
	ClientID string            `json:"clientId"`
	Save     bool              `json:"save"`
}

type scrapeStats struct {
	TotalArticles int                           `json:"total_articles"`
	Sources       map[string]domain.SourceStats `json:"sources"`
	Errors        []domain.SourceError          `json:"errors"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": s.timestamp(),
	})
}

func (s *Server) status(c *gin.Context) {
	remembered, err := s.crawler.Remembered(c.Request.Context())
	if err != nil {
		s.log.Warn("Dedup size unavailable", "error", err)
		remembered = -1
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "running",
		"service":       serviceName,
		"version":       serviceVersion,
		"scrapers":      s.crawler.StrategyNames(),
		"dedup_backend": s.opts.DedupBackend,
		"dedup_size":    remembered,
		"timestamp":     s.timestamp(),
		"endpoints": gin.H{
			"GET /health":            "Health check",
			"GET /api/status":        "Service status",
			"POST /api/scrape":       "Trigger scrape (all sources)",
			"POST /api/scrape/{url}": "Scrape specific URL",
		},
	})
}

func (s *Server) scrape(c *gin.Context) {
	var req scrapeRequest
	if c.Request.Body != nil {
		if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			s.fail(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}

	sources, err := parseSources(req.Sources)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if len(sources) == 0 {
		sources = []domain.Source{defaultScrapeSource}
	}

	s.log.Info("Starting scrape", "sources", len(sources))
	result := s.crawler.CrawlMany(c.Request.Context(), sources)

	resp := gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Scraped %d articles from %d sources", len(result.Articles), len(result.Stats)),
		"articles": result.Articles,
		"stats": scrapeStats{
			TotalArticles: len(result.Articles),
			Sources:       result.Stats,
			Errors:        result.Errors,
		},
		"timestamp": s.timestamp(),
	}

	if req.Save && s.delivery != nil {
		clientID := req.ClientID
		if clientID == "" {
			clientID = s.opts.DefaultClientID
		}
		stats := s.delivery.Deliver(c.Request.Context(), result.Articles, clientID)
		resp["saved"] = stats.Saved
		resp["save_failed"] = stats.Failed
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) scrapeURL(c *gin.Context) {
	target := strings.TrimPrefix(c.Param("url"), "/")
	if target == "" {
		s.fail(c, http.StatusBadRequest, errors.New("url is required"))
		return
	}
	if !strings.HasPrefix(target, "http") {
		target = "https://" + target
	}
	if c.Request.URL.RawQuery != "" {
		target += "?" + c.Request.URL.RawQuery
	}

	s.log.Info("Scraping specific URL", "url", target)
	articles, err := s.crawler.Crawl(c.Request.Context(), target, domain.DefaultIndustry)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, crawler.ErrInvalidOrigin) {
			code = http.StatusBadRequest
		}
		s.fail(c, code, err)
		return
	}

	preview := articles
	if len(preview) > singleURLPreview {
		preview = preview[:singleURLPreview]
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"url":            target,
		"articles_count": len(articles),
		"articles":       preview,
		"all_count":      len(articles),
		"timestamp":      s.timestamp(),
	})
}

// parseSources accepts "url" strings and [url, spiderType, industry] arrays.
// A bare string gets the default spider type and industry.
func parseSources(raw []json.RawMessage) ([]domain.Source, error) {
	sources := make([]domain.Source, 0, len(raw))
	for i, item := range raw {
		var single string
		if err := json.Unmarshal(item, &single); err == nil {
			if strings.TrimSpace(single) != "" {
				sources = append(sources, domain.NewSource(single, "", ""))
			}
			continue
		}

		var fields []string
		if err := json.Unmarshal(item, &fields); err != nil {
			return nil, fmt.Errorf("source %d: expected a url or [url, spiderType, industry]", i)
		}
		if len(fields) == 0 || strings.TrimSpace(fields[0]) == "" {
			return nil, fmt.Errorf("source %d: url is empty", i)
		}
		for len(fields) < 3 {
			fields = append(fields, "")
		}
		sources = append(sources, domain.NewSource(fields[0], fields[1], fields[2]))
	}
	return sources, nil
}
