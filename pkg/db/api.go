package db

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/httpclient"
)

// APISaver posts articles to an external HTTP API at {baseURL}/save
type APISaver struct {
	baseURL string
	client  *http.Client
}

// NewAPISaver creates a saver for the given API root
func NewAPISaver(baseURL string, timeout time.Duration) *APISaver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &APISaver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type savePayload struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Industry    string `json:"industry"`
	ClientID    string `json:"clientId"`
	ScrapedAt   string `json:"scrapedAt"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// SaveArticle sends the article. Only 201 Created counts as saved.
func (s *APISaver) SaveArticle(ctx context.Context, article domain.Article, clientID string) error {
	body, err := json.Marshal(savePayload{
		Title:       article.Title,
		URL:         article.URL,
		Description: article.Description,
		Source:      article.Source,
		Industry:    article.Industry,
		ClientID:    clientID,
		ScrapedAt:   article.ScrapedAt.UTC().Format(time.RFC3339),
		PublishedAt: article.PublishedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal article: %w", err)
	}

	endpoint := s.baseURL + "/save"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return &httpclient.StatusError{URL: endpoint, Code: resp.StatusCode}
	}
	return nil
}
