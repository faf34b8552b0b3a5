package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	return f.err
}

type fakeSweeper struct {
	runs   atomic.Int64
	err    error
	notify chan struct{}
}

func (f *fakeSweeper) ReconcileAll(ctx context.Context) error {
	f.runs.Add(1)
	if f.notify != nil {
		select {
		case f.notify <- struct{}{}:
		default:
		}
	}
	return f.err
}

func TestStartDisabledWhenPingFails(t *testing.T) {
	sweeper := &fakeSweeper{}
	s := New(&fakePinger{err: errors.New("connection refused")}, sweeper, time.Minute, zap.NewNop())

	// Start returns immediately instead of blocking on the ticker loop.
	s.Start(context.Background())

	assert.Equal(t, int64(0), sweeper.runs.Load())
}

func TestStartRunsImmediately(t *testing.T) {
	sweeper := &fakeSweeper{notify: make(chan struct{}, 1)}
	s := New(&fakePinger{}, sweeper, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	select {
	case <-sweeper.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep did not run at startup")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}

	assert.Equal(t, int64(1), sweeper.runs.Load())
}

func TestTickerKeepsRunningAfterSweepError(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("sweep failed"), notify: make(chan struct{}, 1)}
	s := New(&fakePinger{}, sweeper, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	// Wait for at least the immediate run plus one tick despite every
	// sweep returning an error.
	for i := 0; i < 2; i++ {
		select {
		case <-sweeper.notify:
		case <-time.After(2 * time.Second):
			t.Fatal("sweep stopped running after an error")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}

	require.GreaterOrEqual(t, sweeper.runs.Load(), int64(2))
}
