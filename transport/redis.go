package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSource pops inbound records from a Redis list via BLPOP, grounded
// on the teacher pack's redis.Client connection/Ping shape
// (DimaJoyti-ai-agentic-crypto-browser/pkg/database/redis.go).
type RedisSource struct {
	client *redis.Client
	queue  string
}

// NewRedisSource verifies connectivity (PING) before returning, so a
// down transport fails startup fast (spec §7 kind 1).
func NewRedisSource(client *redis.Client, queue string) (*RedisSource, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("transport: redis ping failed: %w", err)
	}
	return &RedisSource{client: client, queue: queue}, nil
}

// Pop issues BLPOP queue timeout. redis.Nil (no element within timeout)
// is translated to (nil, false, nil), never an error.
func (s *RedisSource) Pop(ctx context.Context, timeout time.Duration) ([]byte, bool, error) {
	result, err := s.client.BLPop(ctx, timeout, s.queue).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("transport: blpop %s: %w", s.queue, err)
	}
	// BLPOP replies [key, value]; the payload is the second element.
	if len(result) < 2 {
		return nil, false, nil
	}
	return []byte(result[1]), true, nil
}

// Close releases the underlying Redis client.
func (s *RedisSource) Close() error {
	return s.client.Close()
}

// RedisPublisher publishes to Redis Pub/Sub channels via PUBLISH.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher wraps an already-connected Redis client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish sends payload on channel, returning any transport-level error
// for the caller's retry/circuit-breaker wrapping (spec §7 kind 1).
func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("transport: publish %s: %w", channel, err)
	}
	return nil
}

// Close releases the underlying Redis client.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
