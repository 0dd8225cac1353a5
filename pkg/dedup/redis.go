package dedup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"news-crawler/pkg/urls"
)

const DefaultKeyPrefix = "newscrawler:dedup"

// RedisCache is a Store shared by every process pointing at the same Redis.
// Fingerprints live in one set; the last reset time lives next to it.
type RedisCache struct {
	client   redis.UniversalClient
	setKey   string
	resetKey string
	window   time.Duration
	now      func() time.Time
}

// NewRedisCache creates a new Redis-backed store
func NewRedisCache(client redis.UniversalClient, keyPrefix string, window time.Duration, opts ...Option) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if window <= 0 {
		window = DefaultWindow
	}
	o := buildOptions(opts)
	return &RedisCache{
		client:   client,
		setKey:   keyPrefix + ":seen",
		resetKey: keyPrefix + ":reset_at",
		window:   window,
		now:      o.now,
	}
}

func (r *RedisCache) IsDuplicate(ctx context.Context, rawURL string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.setKey, urls.Fingerprint(rawURL)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check fingerprint: %w", err)
	}
	return ok, nil
}

func (r *RedisCache) MarkSeen(ctx context.Context, rawURL string) error {
	if err := r.client.SAdd(ctx, r.setKey, urls.Fingerprint(rawURL)).Err(); err != nil {
		return fmt.Errorf("failed to store fingerprint: %w", err)
	}
	return nil
}

// ResetIfStale clears the set inside a WATCH transaction on the reset key.
// Losing the race to another process counts as "not reset by us".
func (r *RedisCache) ResetIfStale(ctx context.Context) (bool, error) {
	reset := false
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		now := r.now()
		last, err := tx.Get(ctx, r.resetKey).Int64()
		if errors.Is(err, redis.Nil) {
			_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
				p.Set(ctx, r.resetKey, now.UnixNano(), 0)
				return nil
			})
			return err
		}
		if err != nil {
			return err
		}
		if now.Sub(time.Unix(0, last)) <= r.window {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Del(ctx, r.setKey)
			p.Set(ctx, r.resetKey, now.UnixNano(), 0)
			return nil
		})
		if err == nil {
			reset = true
		}
		return err
	}, r.resetKey)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to reset dedup set: %w", err)
	}
	return reset, nil
}

func (r *RedisCache) Len(ctx context.Context) (int64, error) {
	return r.client.SCard(ctx, r.setKey).Result()
}
