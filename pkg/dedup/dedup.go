// Package dedup remembers which article URLs were already emitted.
//
// Expiry is whole-store: once the window has elapsed since the last reset,
// the next ResetIfStale clears everything at once. There is no per-entry TTL.
package dedup

import (
	"context"
	"sync"
	"time"

	"news-crawler/pkg/urls"
)

// DefaultWindow is how long fingerprints survive before a reset
const DefaultWindow = 30 * time.Minute

// Store is the deduplication state shared by all crawls of a process.
// Keys are URL fingerprints, so URLs differing only by tracking parameters
// or fragments collide.
type Store interface {
	IsDuplicate(ctx context.Context, rawURL string) (bool, error)
	MarkSeen(ctx context.Context, rawURL string) error
	// ResetIfStale clears the store when the window has elapsed and
	// reports whether it did.
	ResetIfStale(ctx context.Context) (bool, error)
	// Len returns the number of remembered fingerprints
	Len(ctx context.Context) (int64, error)
}

// Option configures a store
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Cache is an in-process Store. All methods are safe for concurrent use;
// a crawl's IsDuplicate/MarkSeen pair is not atomic, so two concurrent crawls
// may both admit the same URL once.
type Cache struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	resetAt time.Time
	window  time.Duration
	now     func() time.Time
}

// NewCache creates a new in-memory cache
func NewCache(window time.Duration, opts ...Option) *Cache {
	if window <= 0 {
		window = DefaultWindow
	}
	o := buildOptions(opts)
	return &Cache{
		seen:   make(map[string]struct{}),
		window: window,
		now:    o.now,
	}
}

func (c *Cache) IsDuplicate(ctx context.Context, rawURL string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()
	_, ok := c.seen[urls.Fingerprint(rawURL)]
	return ok, nil
}

func (c *Cache) MarkSeen(ctx context.Context, rawURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()
	c.seen[urls.Fingerprint(rawURL)] = struct{}{}
	return nil
}

func (c *Cache) ResetIfStale(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.touch() {
		return false, nil
	}

	now := c.now()
	if now.Sub(c.resetAt) <= c.window {
		return false, nil
	}
	c.seen = make(map[string]struct{})
	c.resetAt = now
	return true, nil
}

func (c *Cache) Len(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.seen)), nil
}

// touch starts the window on first use and reports whether it just did.
// Callers hold c.mu.
func (c *Cache) touch() bool {
	if !c.resetAt.IsZero() {
		return false
	}
	c.resetAt = c.now()
	return true
}
