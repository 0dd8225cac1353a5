package db

import (
	"context"
	"database/sql"
	"fmt"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/urls"
)

const articleTable = "article"

// ArticleStore writes articles to the Postgres article table
type ArticleStore struct {
	pg DBProvider
}

// NewArticleStore creates a store over any sql.DB provider
func NewArticleStore(pg DBProvider) *ArticleStore {
	return &ArticleStore{pg: pg}
}

func newArticleRow(a domain.Article, clientID string) articleRow {
	return articleRow{
		Fingerprint: urls.Fingerprint(a.URL),
		URL:         a.URL,
		Title:       a.Title,
		Description: a.Description,
		Source:      a.Source,
		Industry:    a.Industry,
		ClientID:    clientID,
		PublishedAt: a.PublishedAt,
		ScrapedAt:   a.ScrapedAt,
	}
}

// EnsureSchema creates the article table if it does not exist.
func (s *ArticleStore) EnsureSchema(ctx context.Context) error {
	if s.pg.DB() == nil {
		return fmt.Errorf("postgres DB not connected")
	}

	const ddl = `
CREATE TABLE IF NOT EXISTS article (
  fingerprint TEXT PRIMARY KEY,
  url TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  industry TEXT NOT NULL DEFAULT 'general',
  client_id TEXT NOT NULL DEFAULT '',
  published_at TEXT NOT NULL DEFAULT '',
  scraped_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

	if _, err := s.pg.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create article table: %w", err)
	}
	return nil
}

const insertArticleQuery = `
INSERT INTO article (fingerprint, url, title, description, source, industry, client_id, published_at, scraped_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (fingerprint) DO NOTHING`

func insertArticle(ctx context.Context, db *sql.DB, row articleRow) error {
	_, err := db.ExecContext(ctx, insertArticleQuery,
		row.Fingerprint, row.URL, row.Title, row.Description, row.Source,
		row.Industry, row.ClientID, row.PublishedAt, row.ScrapedAt)
	if err != nil {
		return fmt.Errorf("insert article url=%q: %w", row.URL, err)
	}
	return nil
}

// SaveArticle inserts one article. An already stored fingerprint is not an error.
func (s *ArticleStore) SaveArticle(ctx context.Context, article domain.Article, clientID string) error {
	if s.pg.DB() == nil {
		return fmt.Errorf("postgres DB not connected")
	}
	return insertArticle(ctx, s.pg.DB(), newArticleRow(article, clientID))
}
