// Package api exposes crawling over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/logger"
	"news-crawler/pkg/pipeline"
)

const (
	serviceName      = "news-crawler"
	serviceVersion   = "1.0.0"
	singleURLPreview = 10
	shutdownTimeout  = 10 * time.Second
)

// Crawler is the crawling surface the handlers need
type Crawler interface {
	Crawl(ctx context.Context, origin, industry string) ([]domain.Article, error)
	CrawlMany(ctx context.Context, sources []domain.Source) domain.CrawlResult
	StrategyNames() []string
	Remembered(ctx context.Context) (int64, error)
}

// Deliverer persists crawled articles
type Deliverer interface {
	Deliver(ctx context.Context, articles []domain.Article, clientID string) pipeline.DeliveryStats
}

// Options carries the values reported by /api/status and the save defaults
type Options struct {
	DedupBackend    string
	DefaultClientID string
}

// Server holds the gin engine and its dependencies
type Server struct {
	crawler  Crawler
	delivery Deliverer
	opts     Options
	log      logger.Interface
	engine   *gin.Engine
	now      func() time.Time
}

// NewServer builds the router. delivery may be nil, in which case save
// requests are answered without saving.
func NewServer(crawler Crawler, delivery Deliverer, opts Options, log logger.Interface) *Server {
	if log == nil {
		log = logger.NewNop()
	}

	s := &Server{
		crawler:  crawler,
		delivery: delivery,
		opts:     opts,
		log:      log,
		now:      time.Now,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), LoggerMiddleware(log), CORSMiddleware())
	engine.NoRoute(s.notFound)

	engine.GET("/health", s.health)

	api := engine.Group("/api")
	api.GET("/status", s.status)
	api.GET("/scrape", s.scrape)
	api.POST("/scrape", s.scrape)
	api.POST("/scrape/*url", s.scrapeURL)

	s.engine = engine
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting API server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown api server: %w", err)
	}
	return nil
}

func (s *Server) timestamp() string {
	return s.now().Format(time.RFC3339)
}

func (s *Server) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success":   false,
		"error":     "Endpoint not found",
		"timestamp": s.timestamp(),
	})
}

func (s *Server) fail(c *gin.Context, code int, err error) {
	_ = c.Error(err)
	c.JSON(code, gin.H{
		"success":   false,
		"error":     err.Error(),
		"timestamp": s.timestamp(),
	})
}
