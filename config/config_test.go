package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "order_queue", cfg.OrderQueue)
	assert.Equal(t, "trade_events", cfg.TradeChannel)
	assert.Equal(t, "bbo_updates", cfg.BBOChannel)
	assert.Equal(t, "order_book_updates", cfg.L2Channel)
	assert.Equal(t, 10, cfg.L2Depth)
	assert.Equal(t, 1000, cfg.StatsPeriod)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestLoadOverridesFromEnv(t *testing.T) {
	os.Setenv("REDIS_ADDR", "redis.internal:6380")
	os.Setenv("L2_DEPTH", "25")
	defer os.Unsetenv("REDIS_ADDR")
	defer os.Unsetenv("L2_DEPTH")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6380", cfg.RedisAddr)
	assert.Equal(t, 25, cfg.L2Depth)
}

func TestNewLoggerRejectsInvalidLevel(t *testing.T) {
	cfg := &Config{LogLevel: "not-a-level"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLoggerAcceptsValidLevel(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
}
