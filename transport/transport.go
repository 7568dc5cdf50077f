// Package transport defines the engine's two external collaborators: a
// bounded-wait inbound source and a retrying outbound publisher (spec
// §6.3/§7 kind 1), plus a Redis-backed and an in-memory implementation of
// each.
package transport

import (
	"context"
	"time"
)

// InboundSource pops the next raw inbound record, blocking up to timeout.
// Pop returns (nil, false, nil) on a timeout with no record available —
// not an error — so the runner loop can check ctx.Done() between polls
// without busy-waiting (spec §6.3 startup/shutdown, §7 kind 1 "if the
// inbound channel is down, block until it returns").
type InboundSource interface {
	Pop(ctx context.Context, timeout time.Duration) ([]byte, bool, error)
	Close() error
}

// Publisher publishes a raw payload to a named logical channel. A single
// implementation backs all three outbound channels (trades, bbo, l2);
// the channel name distinguishes them on the wire.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Close() error
}
