package ai

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hugohenrick/pedidozap/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedCompleter struct {
	calls   int
	failFor int
	reply   string
	delay   time.Duration
}

func (s *scriptedCompleter) Complete(ctx context.Context, _ string) (string, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.calls <= s.failFor {
		return "", errors.New("provider unavailable")
	}
	return s.reply, nil
}

func TestRetryCompleterSucceedsAfterFailures(t *testing.T) {
	inner := &scriptedCompleter{failFor: 2, reply: "Bolo|0.9"}
	rc := NewRetryCompleter(inner, RetryConfig{Attempts: 3, Delay: time.Millisecond}, logger.Nop{})

	reply, err := rc.Complete(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "Bolo|0.9", reply)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryCompleterReturnsLastErrorWhenExhausted(t *testing.T) {
	inner := &scriptedCompleter{failFor: 10}
	rc := NewRetryCompleter(inner, RetryConfig{Attempts: 2, Delay: time.Millisecond}, logger.Nop{})

	_, err := rc.Complete(context.Background(), "prompt")

	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestRetryCompleterStopsWhenContextCancelled(t *testing.T) {
	inner := &scriptedCompleter{failFor: 10}
	rc := NewRetryCompleter(inner, RetryConfig{Attempts: 5, Delay: time.Minute}, logger.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rc.Complete(ctx, "prompt")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryCompleterFiresSlowCallbackOnce(t *testing.T) {
	var slow atomic.Int32
	inner := &scriptedCompleter{reply: "ok", delay: 50 * time.Millisecond}
	rc := NewRetryCompleter(inner, RetryConfig{
		Attempts:  1,
		SlowAfter: 10 * time.Millisecond,
		OnSlow:    func() { slow.Add(1) },
	}, logger.Nop{})

	_, err := rc.Complete(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, int32(1), slow.Load())
}

func TestRetryCompleterSkipsSlowCallbackOnFastReply(t *testing.T) {
	var slow atomic.Int32
	inner := &scriptedCompleter{reply: "ok"}
	rc := NewRetryCompleter(inner, RetryConfig{
		Attempts:  1,
		SlowAfter: time.Second,
		OnSlow:    func() { slow.Add(1) },
	}, logger.Nop{})

	_, err := rc.Complete(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, int32(0), slow.Load())
}
