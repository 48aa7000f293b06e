package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8001, cfg.HTTPPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "localhost", cfg.PostgresHost)
	assert.Equal(t, "catalog_db", cfg.PostgresDB)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.SearchCacheTTL())
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("CATALOG_HTTP_PORT", "99999")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_NegativeCacheTTL(t *testing.T) {
	t.Setenv("SEARCH_CACHE_TTL_SECONDS", "-1")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCH_CACHE_TTL_SECONDS")
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("CATALOG_HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("SEARCH_CACHE_TTL_SECONDS", "0")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Duration(0), cfg.SearchCacheTTL())
}
