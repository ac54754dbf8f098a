package dispatch_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/siteperm/internal/app/dispatch"
)

func TestQueueRunsTasksInOrder(t *testing.T) {
	q := dispatch.NewQueue(context.Background(), "control")
	defer q.Close()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		i := i
		wg.Add(1)
		require.NoError(t, q.Post(func(context.Context) {
			defer wg.Done()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}))
	}
	wg.Wait()

	for i, got := range order {
		assert.Equal(t, i, got, "tasks must run in posting order")
	}
}

func TestQueueTokenCheck(t *testing.T) {
	control := dispatch.NewQueue(context.Background(), "control")
	fastPath := dispatch.NewQueue(context.Background(), "fastpath")
	defer control.Close()
	defer fastPath.Close()

	// Outside any queue: no token.
	assert.Nil(t, dispatch.Current(context.Background()))
	assert.ErrorIs(t, control.Require(context.Background()), dispatch.ErrWrongContext)

	require.NoError(t, control.Sync(func(ctx context.Context) {
		assert.Same(t, control, dispatch.Current(ctx))
		assert.NoError(t, control.Require(ctx))
		assert.ErrorIs(t, fastPath.Require(ctx), dispatch.ErrWrongContext)
	}))
}

func TestQueueCloseDrainsPendingTasks(t *testing.T) {
	q := dispatch.NewQueue(context.Background(), "control")

	var ran int
	for i := 0; i < 10; i++ {
		require.NoError(t, q.Post(func(context.Context) { ran++ }))
	}
	q.Close()

	assert.Equal(t, 10, ran, "close must drain queued tasks")
	assert.ErrorIs(t, q.Post(func(context.Context) {}), dispatch.ErrQueueClosed)
}

func TestQueueSyncWaits(t *testing.T) {
	q := dispatch.NewQueue(context.Background(), "control")
	defer q.Close()

	value := 0
	require.NoError(t, q.Sync(func(context.Context) { value = 42 }))
	assert.Equal(t, 42, value)
}
