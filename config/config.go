// Package config loads the engine's environment-driven configuration
// (SPEC_FULL.md §6.3) through viper, following the
// SetDefault/AutomaticEnv/Unmarshal shape the teacher's pack uses for
// service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds every environment-style setting named in spec §6.3, each
// with the default listed there.
type Config struct {
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`

	OrderQueue   string `mapstructure:"order_queue"`
	TradeChannel string `mapstructure:"trade_channel"`
	BBOChannel   string `mapstructure:"bbo_channel"`
	L2Channel    string `mapstructure:"l2_channel"`
	L2Depth      int    `mapstructure:"l2_depth"`

	StatsPeriod int    `mapstructure:"stats_period"`
	LogLevel    string `mapstructure:"log_level"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// Load reads configuration from environment variables, falling back to
// the defaults spec §6.3 names for anything unset. No config file is
// required: every setting this engine needs is small enough to live in
// the environment, unlike the teacher's multi-section YAML config.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)

	v.SetDefault("order_queue", "order_queue")
	v.SetDefault("trade_channel", "trade_events")
	v.SetDefault("bbo_channel", "bbo_updates")
	v.SetDefault("l2_channel", "order_book_updates")
	v.SetDefault("l2_depth", 10)

	v.SetDefault("stats_period", 1000)
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_addr", ":9090")
}

// NewLogger builds a zap logger at cfg.LogLevel, production-encoded
// (JSON, ISO8601 timestamps) as the pack's services do.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: invalid log_level %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("config: failed to build logger: %w", err)
	}
	return logger, nil
}
