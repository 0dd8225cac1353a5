// Package config loads crawler settings from defaults, an optional YAML
// file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrInvalidDedupBackend = errors.New("invalid dedup backend")
	ErrInvalidSinkType     = errors.New("invalid sink type")
	ErrInvalidWorkers      = errors.New("workers must be positive")
	ErrInvalidDuration     = errors.New("duration must be positive")
)

// Dedup backends
const (
	DedupMemory = "memory"
	DedupRedis  = "redis"
)

// Sink types
const (
	SinkAPI      = "api"
	SinkMongo    = "mongo"
	SinkPostgres = "postgres"
	SinkSupabase = "supabase"
	SinkNone     = "none"
)

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Encoding    string `mapstructure:"encoding"`
	Development bool   `mapstructure:"development"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type CrawlerConfig struct {
	FeedTimeout   time.Duration `mapstructure:"feed_timeout"`
	PageTimeout   time.Duration `mapstructure:"page_timeout"`
	Workers       int           `mapstructure:"workers"`
	MaxBodyBytes  int64         `mapstructure:"max_body_bytes"`
	RenderJS      bool          `mapstructure:"render_js"`
	RenderTimeout time.Duration `mapstructure:"render_timeout"`
	FeedPaths     []string      `mapstructure:"feed_paths"`
	SitemapPaths  []string      `mapstructure:"sitemap_paths"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type DedupConfig struct {
	Backend string        `mapstructure:"backend"`
	Window  time.Duration `mapstructure:"window"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	Key        string `mapstructure:"key"`
	DBPassword string `mapstructure:"db_password"`
}

type SinkConfig struct {
	Type     string         `mapstructure:"type"`
	APIURL   string         `mapstructure:"api_url"`
	ClientID string         `mapstructure:"client_id"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
}

type DeliveryConfig struct {
	Workers int  `mapstructure:"workers"`
	Enrich  bool `mapstructure:"enrich"`
}

type SchedulerConfig struct {
	Specs       []string `mapstructure:"specs"`
	SourcesFile string   `mapstructure:"sources_file"`
}

// Config is the full application configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	Dedup     DedupConfig     `mapstructure:"dedup"`
	Sink      SinkConfig      `mapstructure:"sink"`
	Delivery  DeliveryConfig  `mapstructure:"delivery"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// Load reads configuration. An empty path searches for config.yaml in . and
// ./config; a missing file is not an error. A missing .env is ignored.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)

	v.SetDefault("server.port", 5000)

	v.SetDefault("crawler.feed_timeout", "10s")
	v.SetDefault("crawler.page_timeout", "15s")
	v.SetDefault("crawler.workers", 1)
	v.SetDefault("crawler.max_body_bytes", 10<<20)
	v.SetDefault("crawler.render_js", false)
	v.SetDefault("crawler.render_timeout", "30s")
	v.SetDefault("crawler.feed_paths", []string{})
	v.SetDefault("crawler.sitemap_paths", []string{})

	v.SetDefault("dedup.backend", DedupMemory)
	v.SetDefault("dedup.window", "30m")
	v.SetDefault("dedup.redis.addr", "localhost:6379")
	v.SetDefault("dedup.redis.password", "")
	v.SetDefault("dedup.redis.db", 0)
	v.SetDefault("dedup.redis.key_prefix", "newscrawler:dedup")

	v.SetDefault("sink.type", SinkAPI)
	v.SetDefault("sink.api_url", "http://localhost:3000/api/daily-insights")
	v.SetDefault("sink.client_id", "")
	v.SetDefault("sink.mongo.uri", "")
	v.SetDefault("sink.mongo.database", "news")
	v.SetDefault("sink.mongo.collection", "articles")
	v.SetDefault("sink.postgres.dsn", "")
	v.SetDefault("sink.supabase.url", "")
	v.SetDefault("sink.supabase.key", "")
	v.SetDefault("sink.supabase.db_password", "")

	v.SetDefault("delivery.workers", 4)
	v.SetDefault("delivery.enrich", false)

	v.SetDefault("scheduler.specs", []string{"0 2 * * *", "0 */6 * * *"})
	v.SetDefault("scheduler.sources_file", "")
}

// Validate checks enumerations and numeric bounds
func (c *Config) Validate() error {
	switch c.Dedup.Backend {
	case DedupMemory, DedupRedis:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDedupBackend, c.Dedup.Backend)
	}

	switch c.Sink.Type {
	case SinkAPI, SinkMongo, SinkPostgres, SinkSupabase, SinkNone:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSinkType, c.Sink.Type)
	}

	if c.Crawler.Workers < 1 {
		return fmt.Errorf("crawler: %w", ErrInvalidWorkers)
	}
	if c.Delivery.Workers < 1 {
		return fmt.Errorf("delivery: %w", ErrInvalidWorkers)
	}

	durations := map[string]time.Duration{
		"crawler.feed_timeout":   c.Crawler.FeedTimeout,
		"crawler.page_timeout":   c.Crawler.PageTimeout,
		"crawler.render_timeout": c.Crawler.RenderTimeout,
		"dedup.window":           c.Dedup.Window,
	}
	for key, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%s: %w", key, ErrInvalidDuration)
		}
	}
	return nil
}
