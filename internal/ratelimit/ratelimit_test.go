package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitWithin reports whether one Wait call returns inside d.
func waitWithin(l *Limiter, d time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return l.Wait(ctx) == nil
}

func TestNew_Defaults(t *testing.T) {
	l := New(Config{})
	// one token available immediately, none straight after
	assert.True(t, waitWithin(l, 100*time.Millisecond))
	assert.False(t, waitWithin(l, 50*time.Millisecond))
}

func TestWait_FirstCallImmediate(t *testing.T) {
	l := New(Config{RequestsPerSecond: 5, BurstSize: 1})

	start := time.Now()
	err := l.Wait(context.Background())

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWait_ContextCancelled(t *testing.T) {
	l := New(Config{RequestsPerSecond: 0.001, BurstSize: 1})
	require.NoError(t, l.Wait(context.Background())) // drain the bucket

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	assert.Error(t, err)
}

func TestRecordRateLimitError_BlocksWait(t *testing.T) {
	l := New(Config{RequestsPerSecond: 100, BurstSize: 10})

	l.RecordRateLimitError(30)

	assert.False(t, waitWithin(l, 20*time.Millisecond))
}

func TestRecordRateLimitError_DefaultBackoff(t *testing.T) {
	l := New(Config{RequestsPerSecond: 100, BurstSize: 10})

	l.RecordRateLimitError(0)

	// zero seconds falls back to the 60s default
	assert.False(t, waitWithin(l, 20*time.Millisecond))
}

func TestRecordRateLimitError_ExpiresAfterPause(t *testing.T) {
	l := New(Config{RequestsPerSecond: 100, BurstSize: 10})

	l.RecordRateLimitError(1)

	assert.True(t, waitWithin(l, 2*time.Second))
}
