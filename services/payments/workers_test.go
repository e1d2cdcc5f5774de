package payments

import (
	// Go Internal Packages
	"context"
	"sync/atomic"
	"testing"
	"time"

	// Local Packages
	models "pay-stream/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWorkerPoolRunsTasks(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 2, 1, zap.NewNop())
	defer pool.Stop()

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		pool.Schedule(func(context.Context) { ran.Add(1) })
	}
	assert.Eventually(t, func() bool { return ran.Load() == 10 }, time.Second, 5*time.Millisecond)
}

func TestWorkerPoolScheduleNeverBlocks(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1, 0, zap.NewNop())
	defer pool.Stop()

	release := make(chan struct{})
	pool.Schedule(func(context.Context) { <-release })

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			pool.Schedule(func(context.Context) {})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Schedule blocked while the worker was busy")
	}
	close(release)
}

func TestWorkerPoolSurvivesPanics(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1, 4, zap.NewNop())
	defer pool.Stop()

	var ran atomic.Bool
	pool.Schedule(func(context.Context) { panic("boom") })
	pool.Schedule(func(context.Context) { ran.Store(true) })
	assert.Eventually(t, ran.Load, time.Second, 5*time.Millisecond)
}

func TestWorkerPoolStopDoesNotCancelRunningTask(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1, 1, zap.NewNop())

	started := make(chan struct{})
	finished := make(chan error, 1)
	pool.Schedule(func(ctx context.Context) {
		close(started)
		time.Sleep(20 * time.Millisecond)
		finished <- ctx.Err()
	})

	<-started
	pool.Stop()
	pool.Stop()
	require.NoError(t, <-finished)
}

func TestSimulatorOutcomes(t *testing.T) {
	sim := NewSimulator(0, 0, 0.9)

	sim.float = func() float64 { return 0.5 }
	status, err := sim.Settle(context.Background(), models.Transaction{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSettled, status)

	sim.float = func() float64 { return 0.95 }
	status, err = sim.Settle(context.Background(), models.Transaction{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, status)
}

func TestSimulatorRespectsContext(t *testing.T) {
	sim := NewSimulator(time.Hour, time.Hour, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := sim.Settle(ctx, models.Transaction{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
