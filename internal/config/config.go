package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/voltmart/catalog-service/pkg/config"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"CATALOG_HTTP_PORT" envDefault:"8001"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"voltmart"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"voltmart_secret"`
	PostgresDB   string `env:"CATALOG_DB_NAME" envDefault:"catalog_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`

	// Redis search cache. TTL 0 disables caching.
	RedisHost          string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort          int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword      string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	SearchCacheTTLSecs int    `env:"SEARCH_CACHE_TTL_SECONDS" envDefault:"30"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Notification gateway
	NotifyGatewayURL string `env:"NOTIFY_GATEWAY_URL" envDefault:"http://localhost:8010"`
	NotifyRecipient  string `env:"NOTIFY_RECIPIENT" envDefault:"support@voltmart.example"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.PostgresHost == "" {
		return nil, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.PostgresUser == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS is required")
	}
	if cfg.SearchCacheTTLSecs < 0 {
		return nil, fmt.Errorf("SEARCH_CACHE_TTL_SECONDS must not be negative")
	}
	return cfg, nil
}

// SearchCacheTTL returns the search result cache TTL.
func (c *Config) SearchCacheTTL() time.Duration {
	return time.Duration(c.SearchCacheTTLSecs) * time.Second
}
