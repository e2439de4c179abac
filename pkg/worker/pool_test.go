package worker_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/oxholm/drift/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WorkerPool_ProcessesQueuedWorkAcrossWakeups(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	queued := 0
	processed := 0

	pool := worker.NewWorkerPool()
	for i := 0; i < 3; i++ {
		label := fmt.Sprintf("test-worker-%d", i)
		require.NoError(t, pool.PushWorker(worker.NewWorker(label, func(_ worker.Worker) (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			if queued == 0 {
				return false, nil
			}

			queued--
			processed++
			return true, nil
		})))
	}

	require.NoError(t, pool.Start())
	t.Cleanup(pool.Close)

	for round := 0; round < 50; round++ {
		mu.Lock()
		queued += 2
		mu.Unlock()
		require.NoError(t, pool.WakeupWorkers())
	}

	// A wakeup sent while every worker is mid-transition can be lost,
	// so the poll keeps prodding rather than waking exactly once.
	assert.Eventually(t, func() bool {
		_ = pool.WakeupWorkers()

		mu.Lock()
		defer mu.Unlock()
		return processed == 100
	}, 5*time.Second, 5*time.Millisecond)
}

func Test_WorkerPool_LifecycleGuards(t *testing.T) {
	t.Parallel()
	pool := worker.NewWorkerPool()
	require.NoError(t, pool.PushWorker(worker.NewWorker("only", func(_ worker.Worker) (bool, error) {
		return false, nil
	})))

	assert.Error(t, pool.WakeupWorkers(), "waking a pool that has not started must fail")
	require.NoError(t, pool.Start())
	assert.Error(t, pool.Start(), "starting twice must fail")
	assert.Error(t, pool.PushWorker(worker.NewWorker("late", func(_ worker.Worker) (bool, error) {
		return false, nil
	})), "pushing after start must fail")

	pool.Close()
}
