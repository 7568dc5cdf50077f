// Package metrics exposes Prometheus collectors for the matching
// engine's runner loop (spec §4.4 operation 6, §6.3 STATS_PERIOD),
// grounded on abdoElHodaky-tradSys/internal/monitoring/metrics.go's
// promauto-registered CounterVec/HistogramVec/GaugeVec pattern.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds every metric the runner updates while driving the
// engine.
type Collector struct {
	ordersProcessed *prometheus.CounterVec
	ordersSkipped   *prometheus.CounterVec
	tradesEmitted   *prometheus.CounterVec
	matchLatency    *prometheus.HistogramVec
	bookDepth       *prometheus.GaugeVec
	breakerState    *prometheus.GaugeVec
}

// NewCollector registers a fresh set of collectors against reg. Pass
// prometheus.NewRegistry() in tests to avoid cross-test collisions; pass
// prometheus.DefaultRegisterer in production.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		ordersProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "engine_orders_processed_total",
			Help: "Total number of orders successfully processed by the matching engine.",
		}, []string{"symbol", "order_type"}),

		ordersSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "engine_orders_skipped_total",
			Help: "Total number of inbound records skipped (malformed, precondition violation, or duplicate id).",
		}, []string{"reason"}),

		tradesEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "engine_trades_emitted_total",
			Help: "Total number of trades emitted by the matching engine.",
		}, []string{"symbol"}),

		matchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "engine_match_latency_seconds",
			Help:    "Latency of a single Engine.Process call.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 12),
		}, []string{"symbol"}),

		bookDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "engine_book_order_count",
			Help: "Current number of resting orders in a symbol's book.",
		}, []string{"symbol"}),

		breakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "engine_publish_circuit_breaker_state",
			Help: "Outbound publish circuit breaker state (0=closed, 1=half-open, 2=open).",
		}, []string{"breaker"}),
	}
}

// RecordProcessed records one successfully processed order.
func (c *Collector) RecordProcessed(symbol, orderType string, latency time.Duration) {
	c.ordersProcessed.WithLabelValues(symbol, orderType).Inc()
	c.matchLatency.WithLabelValues(symbol).Observe(latency.Seconds())
}

// RecordSkipped records one skipped inbound record (spec §7 kinds 2-4).
func (c *Collector) RecordSkipped(reason string) {
	c.ordersSkipped.WithLabelValues(reason).Inc()
}

// RecordTrades records tradeCount trades emitted for symbol.
func (c *Collector) RecordTrades(symbol string, tradeCount int) {
	if tradeCount <= 0 {
		return
	}
	c.tradesEmitted.WithLabelValues(symbol).Add(float64(tradeCount))
}

// SetBookDepth updates the current resting-order count for symbol.
func (c *Collector) SetBookDepth(symbol string, count int) {
	c.bookDepth.WithLabelValues(symbol).Set(float64(count))
}

// SetBreakerState records a circuit breaker's numeric gobreaker.State.
func (c *Collector) SetBreakerState(breaker string, state int) {
	c.breakerState.WithLabelValues(breaker).Set(float64(state))
}
