package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	supabase "github.com/supabase-community/supabase-go"

	"news-crawler/pkg/domain"
)

// SupabaseConfig holds configuration required to connect to Supabase.
type SupabaseConfig struct {
	// ConnectionString is the Supabase Postgres connection string.
	// If not provided, it is built from URL and Password.
	ConnectionString string

	// URL is the project URL, e.g. "https://[project-ref].supabase.co"
	URL string

	// Key is the API key used for the REST client. Use the service_role key server-side.
	Key string

	// Password is the database password, not the API key.
	Password string

	Pool PoolConfig
}

// SupabaseClient stores articles either through a direct Postgres
// connection or, when only URL and key are configured, the REST API.
type SupabaseClient struct {
	db  *sql.DB
	sdk *supabase.Client
	cfg SupabaseConfig
}

// NewSupabaseClient constructs a Supabase client.
func NewSupabaseClient(cfg SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{cfg: cfg}
}

// Connect initializes the REST client and, when credentials allow, the direct
// database connection. A failed direct connection falls back to REST mode
// when the REST client is available.
func (c *SupabaseClient) Connect(ctx context.Context) error {
	if c.cfg.URL != "" && c.cfg.Key != "" {
		sdk, err := supabase.NewClient(c.cfg.URL, c.cfg.Key, nil)
		if err != nil {
			return fmt.Errorf("initialize supabase SDK: %w", err)
		}
		c.sdk = sdk
	}

	connStr := c.cfg.ConnectionString
	if connStr == "" && c.cfg.Password != "" {
		built, err := buildConnectionString(c.cfg.URL, c.cfg.Password)
		if err != nil && c.sdk == nil {
			return fmt.Errorf("build connection string: %w", err)
		}
		connStr = built
	}

	if connStr != "" {
		// simple protocol without a statement cache, so parallel savers don't collide
		connStr = addConnectionParam(connStr, "statement_cache_capacity", "0")
		connStr = addConnectionParam(connStr, "default_query_exec_mode", "simple_protocol")

		db, err := openPgx(ctx, connStr, c.cfg.Pool)
		switch {
		case err == nil:
			c.db = db
		case c.sdk == nil:
			return fmt.Errorf("supabase postgres: %w", err)
		}
	}

	if c.db == nil && c.sdk == nil {
		return fmt.Errorf("either connection string/password or Supabase URL+key must be provided")
	}
	return nil
}

// Close closes the database connection.
func (c *SupabaseClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB exposes the direct handle. It is nil in REST-only mode.
func (c *SupabaseClient) DB() *sql.DB {
	return c.db
}

// HasDirectDB returns true if direct database connection is available.
func (c *SupabaseClient) HasDirectDB() bool {
	return c.db != nil
}

// SaveArticle inserts the article over REST. A row with the same fingerprint
// is left untouched and the duplicate is not an error, as with ArticleStore.
// Use an ArticleStore over DB() when a direct connection exists.
func (c *SupabaseClient) SaveArticle(ctx context.Context, article domain.Article, clientID string) error {
	if c.sdk == nil {
		return fmt.Errorf("supabase REST client not initialized")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	row := newArticleRow(article, clientID)
	_, _, err := c.sdk.From(articleTable).
		Insert(row, false, "", "minimal", "").
		Execute()
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("insert article %s: %w", article.URL, err)
	}
	return nil
}

// pgUniqueViolation is the Postgres error code behind a 409 from PostgREST
const pgUniqueViolation = "23505"

// isUniqueViolation matches postgrest-go's "(code) message" error format
func isUniqueViolation(err error) bool {
	return strings.HasPrefix(err.Error(), "("+pgUniqueViolation+")")
}

// buildConnectionString constructs a Supabase Postgres connection string from the project URL and password.
func buildConnectionString(projectURL, password string) (string, error) {
	if projectURL == "" {
		return "", fmt.Errorf("supabase URL is required when connection string is not provided")
	}
	if password == "" {
		return "", fmt.Errorf("supabase password is required when connection string is not provided")
	}

	parsedURL, err := url.Parse(projectURL)
	if err != nil {
		return "", fmt.Errorf("parse supabase URL: %w", err)
	}

	// "abc123.supabase.co" -> "abc123"
	parts := strings.Split(parsedURL.Host, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid supabase URL format: expected [project-ref].supabase.co")
	}

	return fmt.Sprintf("postgresql://postgres:%s@db.%s.supabase.co:5432/postgres?sslmode=require",
		url.QueryEscape(password), parts[0]), nil
}

// addConnectionParam adds a query parameter to the connection string if not already present.
func addConnectionParam(connStr, key, value string) string {
	if strings.Contains(connStr, key+"=") {
		return connStr
	}

	separator := "?"
	if strings.Contains(connStr, "?") {
		separator = "&"
	}
	return connStr + separator + key + "=" + value
}

// articleRow is the article table layout shared by the SQL and REST writers
type articleRow struct {
	Fingerprint string    `json:"fingerprint"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	Industry    string    `json:"industry"`
	ClientID    string    `json:"client_id"`
	PublishedAt string    `json:"published_at"`
	ScrapedAt   time.Time `json:"scraped_at"`
}
