// Package runner drives a matching.Exchange from a transport.InboundSource
// and publishes the resulting market data through a transport.Publisher.
// This is the EngineRunner of SPEC_FULL.md §4.4: the single goroutine
// that calls Engine.Process, so the "exactly one thread mutates each
// book" invariant (spec §5) holds without any locking inside the engine
// or order book.
package runner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lightning-exchange/domain"
	"lightning-exchange/events"
	"lightning-exchange/matching"
	"lightning-exchange/metrics"
	"lightning-exchange/transport"
)

// Config controls the runner's polling cadence and publish channel
// names (spec §6.3).
type Config struct {
	PopTimeout    time.Duration
	TradeChannel  string
	BBOChannel    string
	L2Channel     string
	L2Depth       int
	StatsPeriod   int  // emit a stats log every StatsPeriod processed orders
	PublishOnNoop bool // publish BBO/L2 even when Process produced zero trades
}

// Runner is the single-threaded driver loop of spec §4.4.
type Runner struct {
	exchange  *matching.Exchange
	source    transport.InboundSource
	publisher transport.Publisher
	logger    *zap.Logger
	metrics   *metrics.Collector
	cfg       Config

	cancel context.CancelFunc

	processedCount int64
	tradeCount     int64
}

// New builds a Runner. cfg's zero-valued timeout, channel-name, depth and
// stats-period fields are replaced by spec §6.3 defaults; PublishOnNoop is
// used as given (false publishes BBO/L2 only after orders that traded).
func New(exchange *matching.Exchange, source transport.InboundSource, publisher transport.Publisher, logger *zap.Logger, collector *metrics.Collector, cfg Config) *Runner {
	if cfg.PopTimeout <= 0 {
		cfg.PopTimeout = time.Second
	}
	if cfg.TradeChannel == "" {
		cfg.TradeChannel = "trade_events"
	}
	if cfg.BBOChannel == "" {
		cfg.BBOChannel = "bbo_updates"
	}
	if cfg.L2Channel == "" {
		cfg.L2Channel = "order_book_updates"
	}
	if cfg.L2Depth <= 0 {
		cfg.L2Depth = 10
	}
	if cfg.StatsPeriod <= 0 {
		cfg.StatsPeriod = 1000
	}

	return &Runner{
		exchange:  exchange,
		source:    source,
		publisher: publisher,
		logger:    logger,
		metrics:   collector,
		cfg:       cfg,
	}
}

// Run executes the five-step loop (spec §4.4) until ctx is cancelled or
// Stop is called. It returns nil on a clean shutdown.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	defer cancel()

	r.logger.Info("engine_starting")

	for {
		select {
		case <-ctx.Done():
			r.logShutdownSummary()
			return nil
		default:
		}

		raw, ok, err := r.source.Pop(ctx, r.cfg.PopTimeout)
		if err != nil {
			if ctx.Err() != nil {
				r.logShutdownSummary()
				return nil
			}
			r.logger.Error("inbound_pop_failed", zap.Error(err))
			continue
		}
		if !ok {
			continue // timeout, no record — loop back and re-check ctx.Done()
		}

		r.processOne(ctx, raw)
	}
}

// processOne runs steps 2-5 of spec §4.4 for a single raw inbound
// record. A panic during matching (an internal invariant violation,
// spec §7 kind 5) is recovered once here and escalated to Fatal, since
// the engine offers no repair path for a book it can no longer trust.
func (r *Runner) processOne(ctx context.Context, raw []byte) {
	traceID := uuid.New().String()

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Fatal("internal_invariant_violation", zap.String("trace_id", traceID), zap.Any("panic", rec))
		}
	}()

	var inbound events.InboundOrder
	if err := json.Unmarshal(raw, &inbound); err != nil {
		r.logger.Warn("malformed_inbound_record", zap.String("trace_id", traceID), zap.Error(err))
		r.metrics.RecordSkipped("malformed")
		return
	}

	engine := r.exchange.Engine(inbound.Symbol)
	order, err := inbound.ToDomain(engine.NextSequence())
	if err != nil {
		r.logger.Warn("precondition_violation", zap.String("trace_id", traceID), zap.Error(err), zap.String("order_id", inbound.ID))
		r.metrics.RecordSkipped("precondition")
		return
	}

	start := time.Now()
	trades, err := engine.Process(order)
	latency := time.Since(start)
	if err != nil {
		r.logger.Error("duplicate_order_id", zap.String("trace_id", traceID), zap.Error(err), zap.String("order_id", order.ID))
		r.metrics.RecordSkipped("duplicate_id")
		if len(trades) > 0 {
			// Fills made before the order was rejected have already changed
			// the book; publish them rather than drop them.
			r.tradeCount += int64(len(trades))
			r.metrics.RecordTrades(order.Symbol, len(trades))
			r.publish(context.WithoutCancel(ctx), engine, order.Symbol, trades)
		}
		return
	}

	r.processedCount++
	r.metrics.RecordProcessed(order.Symbol, order.Type.String(), latency)
	r.metrics.RecordTrades(order.Symbol, len(trades))
	r.metrics.SetBookDepth(order.Symbol, engine.Book().OrderCount())

	if len(trades) > 0 || r.cfg.PublishOnNoop {
		// Stop does not cut short the publications of an order already processed.
		r.publish(context.WithoutCancel(ctx), engine, order.Symbol, trades)
	}
	r.tradeCount += int64(len(trades))

	if r.processedCount%int64(r.cfg.StatsPeriod) == 0 {
		r.logger.Info("engine_statistics",
			zap.Int64("orders_processed", r.processedCount),
			zap.Int64("trades_generated", r.tradeCount))
	}
}

// publish emits trades (in order), then a BBO snapshot, then an L2
// snapshot — spec §6.2's fixed publication order — through the
// Publisher, which retries an already-serialized payload verbatim on
// failure (spec §7 kind 1). Publish errors are logged but never abort
// processing: a stalled outbound channel must not stop the book from
// advancing.
func (r *Runner) publish(ctx context.Context, engine *matching.Engine, symbol string, trades []*domain.Trade) {
	now := time.Now().Unix()

	for _, t := range trades {
		r.publishOne(ctx, r.cfg.TradeChannel, events.NewTradeEvent(t))
	}

	bids, asks := engine.Book().L2Snapshot(1)
	bbo := domain.BBOSnapshot{Symbol: symbol, Timestamp: now}
	if len(bids) > 0 {
		bbo.Bid = &bids[0].Price
	}
	if len(asks) > 0 {
		bbo.Ask = &asks[0].Price
	}
	r.publishOne(ctx, r.cfg.BBOChannel, events.NewBBOEvent(bbo))

	l2Bids, l2Asks := engine.Book().L2Snapshot(r.cfg.L2Depth)
	l2 := domain.L2Snapshot{Symbol: symbol, Timestamp: now, Bids: l2Bids, Asks: l2Asks}
	r.publishOne(ctx, r.cfg.L2Channel, events.NewL2Event(l2))
}

func (r *Runner) publishOne(ctx context.Context, channel string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("event_marshal_failed", zap.String("channel", channel), zap.Error(err))
		return
	}
	if err := r.publisher.Publish(ctx, channel, payload); err != nil {
		r.logger.Error("publish_failed", zap.String("channel", channel), zap.Error(err))
	}
}

func (r *Runner) logShutdownSummary() {
	r.logger.Info("engine_shutdown",
		zap.Int64("orders_processed", r.processedCount),
		zap.Int64("trades_generated", r.tradeCount))
}

// Stop requests a graceful shutdown; Run finishes its current iteration
// (including any in-flight publish) and returns.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}
