package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vocabflash/internal/worker"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := worker.NewPool(2, 8)
	pool.Start(context.Background())

	var (
		wg  sync.WaitGroup
		ran atomic.Int32
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := pool.Submit(funcJob{name: "count", fn: func(context.Context) error {
			defer wg.Done()
			ran.Add(1)
			if ran.Load() == 3 {
				return errors.New("failures are logged, not fatal")
			}
			return nil
		}})
		require.NoError(t, err)
	}
	wg.Wait()
	pool.Stop()

	assert.Equal(t, int32(5), ran.Load())
}

func TestPool_RejectsWhenFull(t *testing.T) {
	pool := worker.NewPool(1, 1)
	release := make(chan struct{})
	started := make(chan struct{})
	pool.Start(context.Background())
	defer pool.Stop()
	defer close(release)

	block := funcJob{name: "block", fn: func(ctx context.Context) error {
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}}
	require.NoError(t, pool.Submit(block))
	<-started

	noop := funcJob{name: "noop", fn: func(context.Context) error { return nil }}
	require.NoError(t, pool.Submit(noop))
	assert.ErrorIs(t, pool.Submit(noop), worker.ErrQueueFull)
	assert.Equal(t, 1, pool.QueueSize())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	err := pool.Submit(funcJob{name: "late", fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}

func TestPool_StopCancelsRunningJobs(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())

	started := make(chan struct{})
	require.NoError(t, pool.Submit(funcJob{name: "wait", fn: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}}))
	<-started

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}
