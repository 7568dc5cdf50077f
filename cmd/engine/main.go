// Command engine is the production entrypoint: it wires configuration,
// logging, Redis, and the runner together (spec §6.3 startup sequence),
// following the startup order of the teacher's main.go.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lightning-exchange/config"
	"lightning-exchange/matching"
	"lightning-exchange/metrics"
	"lightning-exchange/runner"
	"lightning-exchange/transport"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine: failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine: failed to build logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	source, err := transport.NewRedisSource(redisClient, cfg.OrderQueue)
	if err != nil {
		logger.Error("redis_connection_failed", zap.Error(err))
		return 1
	}
	logger.Info("redis_connection_established", zap.String("addr", cfg.RedisAddr))

	publisherClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	basePublisher := transport.NewRedisPublisher(publisherClient)
	publisher := transport.NewResilientPublisher(basePublisher, logger)

	exchange := matching.NewExchange()
	collector := metrics.NewCollector(prometheus.DefaultRegisterer)

	runnerCfg := runner.Config{
		PopTimeout:    time.Second,
		TradeChannel:  cfg.TradeChannel,
		BBOChannel:    cfg.BBOChannel,
		L2Channel:     cfg.L2Channel,
		L2Depth:       cfg.L2Depth,
		StatsPeriod:   cfg.StatsPeriod,
		PublishOnNoop: true,
	}
	r := runner.New(exchange, source, publisher, logger, collector, runnerCfg)

	go serveMetrics(cfg.MetricsAddr, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown_signal_received")
		r.Stop()
		cancel()
	}()

	if err := r.Run(ctx); err != nil {
		logger.Error("runner_exited_with_error", zap.Error(err))
		return 1
	}
	return 0
}

// serveMetrics exposes the /metrics Prometheus endpoint (spec §6.3
// METRICS_ADDR); an observability surface, not part of matching
// semantics.
func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics_server_failed", zap.Error(err))
	}
}
