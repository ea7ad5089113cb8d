package scheduler_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iggydv12/localsync/scheduler"
)

func TestQueueRunsNothingUntilPumped(t *testing.T) {
	q := scheduler.NewQueue()

	ran := false
	q.Schedule(func() { ran = true })

	assert.False(t, ran)
	assert.Equal(t, 1, q.Len())

	require.True(t, q.Step())
	assert.True(t, ran)
	assert.Equal(t, 0, q.Len())
	assert.False(t, q.Step())
}

func TestQueueFIFOOrder(t *testing.T) {
	q := scheduler.NewQueue()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		q.Schedule(func() { order = append(order, i) })
	}

	assert.Equal(t, 5, q.Flush())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestQueueFlushRunsTasksScheduledByTasks(t *testing.T) {
	q := scheduler.NewQueue()

	var order []string
	q.Schedule(func() {
		order = append(order, "outer")
		q.Schedule(func() { order = append(order, "inner") })
	})

	assert.Equal(t, 2, q.Flush())
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestLoopRunsTasksInOrder(t *testing.T) {
	l := scheduler.NewLoop()
	t.Cleanup(l.Close)

	var mu sync.Mutex
	var order []int
	done := make(chan struct{})

	for i := 0; i < 10; i++ {
		i := i
		l.Schedule(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			if i == 9 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not drain")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestLoopNeverRunsInline(t *testing.T) {
	l := scheduler.NewLoop()
	t.Cleanup(l.Close)

	released := make(chan struct{})
	done := make(chan struct{})

	// If the task ran inline, Schedule would deadlock waiting on released.
	l.Schedule(func() {
		<-released
		close(done)
	})
	close(released)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}

func TestLoopCloseDrainsQueuedTasks(t *testing.T) {
	l := scheduler.NewLoop()

	var mu sync.Mutex
	count := 0
	for i := 0; i < 100; i++ {
		l.Schedule(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}

	l.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 100, count)
}

func TestLoopScheduleAfterCloseIsDropped(t *testing.T) {
	l := scheduler.NewLoop()
	l.Close()

	assert.NotPanics(t, func() {
		l.Schedule(func() { t.Fatal("task ran on closed loop") })
	})
	// Close is idempotent.
	assert.NotPanics(t, l.Close)
}
