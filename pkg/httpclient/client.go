package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

// ClientType represents the type of HTTP client configuration
type ClientType string

const (
	// BrowserClient sends desktop Chrome headers, used for page scraping
	BrowserClient ClientType = "browser"

	// BotClient identifies itself as a crawler, used for feed and sitemap probes
	BotClient ClientType = "bot"

	// CloudflareClient uses curl-like headers for sites that block browser user agents
	CloudflareClient ClientType = "cloudflare"
)

const (
	BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	BotUserAgent     = "Mozilla/5.0 (compatible; NewsCrawlerBot/1.0)"

	DefaultMaxBodyBytes = 10 << 20
	maxRedirects        = 10
)

var ErrUnexpectedStatus = errors.New("unexpected status code")

// StatusError reports a non-2xx response
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %v: %d", e.URL, ErrUnexpectedStatus, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Response is a fully read HTTP response
type Response struct {
	URL        string // after redirects
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the media type of the response, lowercased, without parameters
func (r *Response) ContentType() string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mediaType
}

// IsSuccess reports whether the status code is 2xx
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// CheckStatus returns a *StatusError for non-2xx responses
func (r *Response) CheckStatus() error {
	if r.IsSuccess() {
		return nil
	}
	return &StatusError{URL: r.URL, Code: r.StatusCode}
}

// Fetcher retrieves a URL into memory
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// HTTPClient wraps an http.Client with configuration
type HTTPClient struct {
	client       *http.Client
	clientType   ClientType
	maxBodyBytes int64
}

// Option configures an HTTPClient
type Option func(*HTTPClient)

// WithTimeout bounds each request, including reading the body
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithMaxBodyBytes caps how much of a response body is read
func WithMaxBodyBytes(n int64) Option {
	return func(c *HTTPClient) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithTransport replaces the underlying round tripper
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) {
		c.client.Transport = rt
	}
}

// NewClient creates a new HTTP client with the specified type
func NewClient(clientType ClientType, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		clientType:   clientType,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes an HTTP request with the appropriate headers for the client type
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)
	return c.client.Do(req)
}

// Get is a convenience method for GET requests
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// Fetch performs a GET and reads the body. Non-2xx responses are returned
// without error; callers decide with IsSuccess or CheckStatus.
func (c *HTTPClient) Fetch(ctx context.Context, url string) (*Response, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Response{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// setHeaders sets the appropriate headers based on client type
func (c *HTTPClient) setHeaders(req *http.Request) {
	switch c.clientType {
	case BrowserClient:
		req.Header.Set("User-Agent", BrowserUserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")
		req.Header.Set("Connection", "keep-alive")
		req.Header.Set("Upgrade-Insecure-Requests", "1")

	case BotClient:
		req.Header.Set("User-Agent", BotUserAgent)
		req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.9, */*;q=0.8")

	case CloudflareClient:
		// Cloudflare lets curl through where it blocks browser-like agents
		req.Header.Set("User-Agent", "curl/8.7.1")

	default:
	}
}
