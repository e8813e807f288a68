package questiongen

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	mu    sync.Mutex
	calls int
}

func (r *countingRunner) Run(context.Context) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return &Result{Saved: 1}, nil
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler("every tuesday", &countingRunner{}, time.UTC, quiet)
	assert.ErrorContains(t, err, `schedule "every tuesday"`)
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	runner := &countingRunner{}
	s, err := NewScheduler("0 3 * * 1", runner, time.UTC, quiet)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return !s.NextRun().IsZero() }, time.Second, 5*time.Millisecond)
	next := s.NextRun().UTC()
	assert.Equal(t, time.Monday, next.Weekday())
	assert.Equal(t, 3, next.Hour())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	assert.Zero(t, runner.calls)
}

func TestScheduler_RunOnceLogsResult(t *testing.T) {
	runner := &countingRunner{}
	s, err := NewScheduler("0 3 * * 1", runner, time.UTC, quiet)
	require.NoError(t, err)

	s.runOnce()
	assert.Equal(t, 1, runner.calls)
}
