package cmd

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"news-crawler/pkg/config"
	"news-crawler/pkg/content"
	"news-crawler/pkg/crawler"
	"news-crawler/pkg/db"
	"news-crawler/pkg/dedup"
	"news-crawler/pkg/httpclient"
	"news-crawler/pkg/logger"
	"news-crawler/pkg/pipeline"
	"news-crawler/pkg/worker"
)

// deps holds everything a command needs, built from configuration
type deps struct {
	cfg      *config.Config
	log      logger.Interface
	crawler  *crawler.Crawler
	delivery *pipeline.Delivery
	closers  []func()
}

func newDeps(ctx context.Context, cfg *config.Config) (*deps, error) {
	d := &deps{
		cfg: cfg,
		log: logger.New(logger.Config{
			Level:       cfg.Log.Level,
			Encoding:    cfg.Log.Encoding,
			Development: cfg.Log.Development,
		}),
	}

	store, err := d.newStore(ctx)
	if err != nil {
		d.close()
		return nil, err
	}

	d.crawler = crawler.NewDefault(crawler.Settings{
		FeedTimeout:   cfg.Crawler.FeedTimeout,
		PageTimeout:   cfg.Crawler.PageTimeout,
		MaxBodyBytes:  cfg.Crawler.MaxBodyBytes,
		RenderJS:      cfg.Crawler.RenderJS,
		RenderTimeout: cfg.Crawler.RenderTimeout,
		Workers:       cfg.Crawler.Workers,
		FeedPaths:     cfg.Crawler.FeedPaths,
		SitemapPaths:  cfg.Crawler.SitemapPaths,
	}, store, d.log)

	saver, err := d.newSaver(ctx)
	if err != nil {
		d.close()
		return nil, err
	}
	if saver != nil {
		var processor pipeline.ContentProcessor
		if cfg.Delivery.Enrich {
			processor = content.NewEnricher(httpclient.NewClient(httpclient.BrowserClient,
				httpclient.WithTimeout(cfg.Crawler.PageTimeout),
				httpclient.WithMaxBodyBytes(cfg.Crawler.MaxBodyBytes)))
		}
		workers := worker.NewManager(cfg.Delivery.Workers, d.log)
		d.delivery = pipeline.NewDelivery(workers, processor, saver, d.log)
	}
	return d, nil
}

func (d *deps) newStore(ctx context.Context) (dedup.Store, error) {
	if d.cfg.Dedup.Backend != config.DedupRedis {
		return dedup.NewCache(d.cfg.Dedup.Window), nil
	}

	rc := d.cfg.Dedup.Redis
	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", rc.Addr, err)
	}
	d.closers = append(d.closers, func() { _ = client.Close() })
	return dedup.NewRedisCache(client, rc.KeyPrefix, d.cfg.Dedup.Window), nil
}

// newSaver returns nil when no sink is configured
func (d *deps) newSaver(ctx context.Context) (pipeline.ContentSaver, error) {
	sink := d.cfg.Sink
	switch sink.Type {
	case config.SinkAPI:
		return db.NewAPISaver(sink.APIURL, d.cfg.Crawler.PageTimeout), nil

	case config.SinkMongo:
		client, err := db.NewClient(sink.Mongo.URI, sink.Mongo.Database, sink.Mongo.Collection)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, func() { _ = client.Close(context.Background()) })
		if err := client.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		return client, nil

	case config.SinkPostgres:
		pg := db.NewPostgresClient(db.PostgresConfig{DSN: sink.Postgres.DSN})
		if err := pg.Connect(ctx); err != nil {
			return nil, err
		}
		d.closers = append(d.closers, func() { _ = pg.Close() })
		return d.articleStore(ctx, pg)

	case config.SinkSupabase:
		sb := db.NewSupabaseClient(db.SupabaseConfig{
			URL:      sink.Supabase.URL,
			Key:      sink.Supabase.Key,
			Password: sink.Supabase.DBPassword,
		})
		if err := sb.Connect(ctx); err != nil {
			return nil, err
		}
		d.closers = append(d.closers, func() { _ = sb.Close() })
		if !sb.HasDirectDB() {
			d.log.Info("Supabase in REST mode")
			return sb, nil
		}
		return d.articleStore(ctx, sb)
	}
	return nil, nil
}

func (d *deps) articleStore(ctx context.Context, provider db.DBProvider) (*db.ArticleStore, error) {
	store := db.NewArticleStore(provider)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	if l, ok := d.log.(*logger.Logger); ok {
		_ = l.Sync()
	}
}
