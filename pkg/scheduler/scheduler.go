package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/logger"
	"news-crawler/pkg/pipeline"
)

// Runner crawls a batch of sources
type Runner interface {
	CrawlMany(ctx context.Context, sources []domain.Source) domain.CrawlResult
}

// Deliverer persists crawled articles
type Deliverer interface {
	Deliver(ctx context.Context, articles []domain.Article, clientID string) pipeline.DeliveryStats
}

// DefaultSources are crawled when no sources file is configured
func DefaultSources() []domain.Source {
	return []domain.Source{
		domain.NewSource("https://news.ycombinator.com", "news", "technology"),
		domain.NewSource("https://techcrunch.com", "news", "technology"),
		domain.NewSource("https://www.theverge.com", "news", "technology"),
	}
}

// Scheduler runs a crawl of a fixed source list on cron schedules
type Scheduler struct {
	cron     *cron.Cron
	sources  []domain.Source
	runner   Runner
	delivery Deliverer
	clientID string
	timeout  time.Duration
	log      logger.Interface

	mu      sync.Mutex
	lastRun time.Time
	last    domain.CrawlResult
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithDelivery saves each run's articles for clientID
func WithDelivery(d Deliverer, clientID string) Option {
	return func(s *Scheduler) {
		s.delivery = d
		s.clientID = clientID
	}
}

// WithRunTimeout bounds a single scheduled run
func WithRunTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		s.timeout = d
	}
}

// New registers runOnce under every spec. Overlapping runs are skipped.
func New(specs []string, sources []domain.Source, runner Runner, log logger.Interface, opts ...Option) (*Scheduler, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if len(sources) == 0 {
		sources = DefaultSources()
	}

	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sources: sources,
		runner:  runner,
		timeout: time.Hour,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, spec := range specs {
		if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
			return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
		}
	}
	return s, nil
}

// Start starts the cron loop in the background
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()), "sources", len(s.sources))
	s.cron.Start()
}

// Stop stops scheduling; the returned context is done once a running job finishes
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Next returns the next activation time, or the zero time when nothing is scheduled
func (s *Scheduler) Next() time.Time {
	var next time.Time
	for _, e := range s.cron.Entries() {
		if next.IsZero() || e.Next.Before(next) {
			next = e.Next
		}
	}
	return next
}

// Last returns the result of the most recent run and when it finished
func (s *Scheduler) Last() (domain.CrawlResult, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.lastRun
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce crawls every source now and delivers the articles when delivery is configured
func (s *Scheduler) RunOnce(ctx context.Context) domain.CrawlResult {
	s.log.Info("scheduled crawl starting", "sources", len(s.sources))

	result := s.runner.CrawlMany(ctx, s.sources)
	if s.delivery != nil && len(result.Articles) > 0 {
		stats := s.delivery.Deliver(ctx, result.Articles, s.clientID)
		s.log.Info("scheduled delivery", "saved", stats.Saved, "failed", stats.Failed)
	}

	s.mu.Lock()
	s.last = result
	s.lastRun = time.Now()
	s.mu.Unlock()

	s.log.Info("scheduled crawl done", "articles", len(result.Articles), "errors", len(result.Errors))
	return result
}
