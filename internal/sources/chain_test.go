package sources

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	name    string
	timeout time.Duration
	delay   time.Duration
	err     error
	calls   int32
}

func (f *fakeAdapter) Name() string           { return f.name }
func (f *fakeAdapter) Timeout() time.Duration { return f.timeout }

func (f *fakeAdapter) Fetch(ctx context.Context, req Request) (*Payload, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &Payload{Capability: CapabilityStats, Source: f.name}, nil
}

func (f *fakeAdapter) callCount() int32 { return atomic.LoadInt32(&f.calls) }

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestNewChain_RequiresAdapters(t *testing.T) {
	_, err := NewChain(CapabilityStats, testLogger())
	assert.Error(t, err)
}

func TestChain_FirstSuccessWins(t *testing.T) {
	primary := &fakeAdapter{name: "Primary", timeout: time.Second}
	fallback := &fakeAdapter{name: "Fallback", timeout: time.Second}

	chain, err := NewChain(CapabilityStats, testLogger(), primary, fallback)
	require.NoError(t, err)

	res, err := chain.Execute(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "Primary", res.Payload.Source)
	assert.Len(t, res.Attempts, 1)
	assert.EqualValues(t, 1, primary.callCount())
	assert.EqualValues(t, 0, fallback.callCount(), "later adapters must not be consulted after a success")
}

func TestChain_FallsThroughOnTransientFailure(t *testing.T) {
	tests := []struct {
		name       string
		primaryErr error
	}{
		{"timeout", ErrTimeout},
		{"malformed response", ErrMalformed},
		{"upstream error", &UpstreamError{Source: "Primary", Status: 503}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &fakeAdapter{name: "Primary", timeout: time.Second, err: tt.primaryErr}
			fallback := &fakeAdapter{name: "Fallback", timeout: time.Second}

			chain, err := NewChain(CapabilityStats, testLogger(), primary, fallback)
			require.NoError(t, err)

			res, err := chain.Execute(context.Background(), Request{})
			require.NoError(t, err)
			assert.Equal(t, "Fallback", res.Payload.Source)
			require.Len(t, res.Attempts, 2)
			assert.Error(t, res.Attempts[0].Err)
			assert.False(t, res.Attempts[0].Skipped)
		})
	}
}

func TestChain_SkipsUnconfiguredSources(t *testing.T) {
	primary := &fakeAdapter{name: "Primary", timeout: time.Second, err: ErrNotConfigured}
	fallback := &fakeAdapter{name: "Fallback", timeout: time.Second}

	chain, err := NewChain(CapabilityStats, testLogger(), primary, fallback)
	require.NoError(t, err)

	res, err := chain.Execute(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "Fallback", res.Payload.Source)
	require.Len(t, res.Attempts, 2)
	assert.True(t, res.Attempts[0].Skipped)
}

func TestChain_EnforcesPerAdapterTimeout(t *testing.T) {
	slow := &fakeAdapter{name: "Slow", timeout: 20 * time.Millisecond, delay: 5 * time.Second}
	fallback := &fakeAdapter{name: "Fallback", timeout: time.Second}

	chain, err := NewChain(CapabilityStats, testLogger(), slow, fallback)
	require.NoError(t, err)

	start := time.Now()
	res, err := chain.Execute(context.Background(), Request{})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, "Fallback", res.Payload.Source)
	assert.Less(t, elapsed, time.Second, "chain must not wait for a slow adapter past its deadline")
	require.Len(t, res.Attempts, 2)
	assert.ErrorIs(t, res.Attempts[0].Err, ErrTimeout)
}

func TestChain_ExhaustionWhenAllFail(t *testing.T) {
	a := &fakeAdapter{name: "A", timeout: time.Second, err: ErrTimeout}
	b := &fakeAdapter{name: "B", timeout: time.Second, err: &UpstreamError{Source: "B", Status: 500}}

	chain, err := NewChain(CapabilityStats, testLogger(), a, b)
	require.NoError(t, err)

	_, err = chain.Execute(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestChain_CancelledContextStopsExecution(t *testing.T) {
	primary := &fakeAdapter{name: "Primary", timeout: time.Second, delay: 5 * time.Second}
	fallback := &fakeAdapter{name: "Fallback", timeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	chain, err := NewChain(CapabilityStats, testLogger(), primary, fallback)
	require.NoError(t, err)

	_, err = chain.Execute(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 0, fallback.callCount())
}
