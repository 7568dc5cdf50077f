package transport

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type flakyPublisher struct {
	mu          sync.Mutex
	failUntil   int
	callCount   int
	lastPayload []byte
}

func (f *flakyPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount++
	f.lastPayload = payload
	if f.callCount <= f.failUntil {
		return errors.New("transient failure")
	}
	return nil
}

func (f *flakyPublisher) Close() error { return nil }

func TestResilientPublisherRetriesSamePayloadUntilSuccess(t *testing.T) {
	inner := &flakyPublisher{failUntil: 2}
	logger := zap.NewNop()
	pub := NewResilientPublisher(inner, logger)

	err := pub.Publish(context.Background(), "trades", []byte("payload-1"))
	require.NoError(t, err)
	assert.Equal(t, 3, inner.callCount)
	assert.Equal(t, "payload-1", string(inner.lastPayload))
}

func TestResilientPublisherFailsAfterMaxAttempts(t *testing.T) {
	inner := &flakyPublisher{failUntil: 100}
	logger := zap.NewNop()
	pub := NewResilientPublisher(inner, logger)

	err := pub.Publish(context.Background(), "trades", []byte("payload-1"))
	assert.Error(t, err)
}
