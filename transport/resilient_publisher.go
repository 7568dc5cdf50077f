package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ResilientPublisher wraps an underlying Publisher with a circuit breaker
// and a paced retry loop, grounded on
// abdoElHodaky-tradSys/internal/architecture/fx/resilience/circuit_breaker.go's
// gobreaker.Settings/OnStateChange wiring, adapted from a generic RPC
// breaker to the outbound market-data publish path (spec §7 kind 1).
// Retries are bounded: a payload that still fails after maxAttempts is
// returned to the caller as an error and is not retried further.
type ResilientPublisher struct {
	inner   Publisher
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	logger  *zap.Logger

	maxAttempts int
}

// NewResilientPublisher wraps inner with a circuit breaker (opens after
// 5 consecutive failures, half-opens after 30s) and a limiter pacing
// retry attempts to at most 10/s, so a down outbound channel cannot spin
// the runner loop.
func NewResilientPublisher(inner Publisher, logger *zap.Logger) *ResilientPublisher {
	settings := gobreaker.Settings{
		Name:        "outbound-publish",
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit_breaker_state_change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &ResilientPublisher{
		inner:       inner,
		breaker:     gobreaker.NewCircuitBreaker(settings),
		limiter:     rate.NewLimiter(rate.Limit(10), 1),
		logger:      logger,
		maxAttempts: 5,
	}
}

// Publish sends the SAME already-serialized payload through the circuit
// breaker, retrying until it succeeds or maxAttempts attempts have failed.
// Every attempt first waits on the limiter; while the breaker is open an
// attempt fails at once and still counts. It never synthesizes a replacement payload
// on failure — the caller's already-computed snapshot is retried
// verbatim, per spec §7 kind 1.
func (p *ResilientPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	var lastErr error
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("transport: publish %s: rate limiter wait: %w", channel, err)
		}

		_, err := p.breaker.Execute(func() (interface{}, error) {
			return nil, p.inner.Publish(ctx, channel, payload)
		})
		if err == nil {
			return nil
		}
		lastErr = err
		p.logger.Warn("publish_retry",
			zap.String("channel", channel),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return fmt.Errorf("transport: publish %s failed after %d attempts: %w", channel, p.maxAttempts, lastErr)
}

// Close closes the wrapped publisher.
func (p *ResilientPublisher) Close() error { return p.inner.Close() }
