// Package scheduler provides the deferred-execution primitives that back the
// adapter's asynchronous contract: work is queued and runs on a later turn,
// never inline with the caller.
package scheduler

import "sync"

// Scheduler accepts a task and arranges for it to run later, after the
// caller's stack unwinds. Tasks submitted to the same scheduler run in
// submission order, one at a time, each to completion.
type Scheduler interface {
	Schedule(task func())
}

// Loop executes scheduled tasks in FIFO order on a single goroutine.
// It is the cooperative "event loop" of the system: no two tasks ever
// run concurrently, and a task never runs on the goroutine that
// scheduled it.
type Loop struct {
	mu     sync.Mutex
	tasks  []func()
	wake   chan struct{}
	done   chan struct{}
	closed bool
}

// NewLoop creates a Loop and starts its worker goroutine.
func NewLoop() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

// Schedule enqueues a task. It never blocks. Scheduling on a closed
// loop silently drops the task.
func (l *Loop) Schedule(task func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Close stops the loop once all already-queued tasks have run.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	<-l.done
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		task, ok, closed := l.next()
		if ok {
			task()
			continue
		}
		if closed {
			return
		}
		<-l.wake
	}
}

func (l *Loop) next() (task func(), ok, closed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.tasks) > 0 {
		task = l.tasks[0]
		l.tasks = l.tasks[1:]
		return task, true, l.closed
	}
	return nil, false, l.closed
}

// Queue is a manually pumped scheduler for cooperative single-threaded
// embedding and for deterministic tests. Nothing runs until the owner
// calls Step or Flush.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule enqueues a task without running it.
func (q *Queue) Schedule(task func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Step runs the oldest pending task on the calling goroutine.
// Returns false if the queue was empty.
func (q *Queue) Step() bool {
	q.mu.Lock()
	if len(q.tasks) == 0 {
		q.mu.Unlock()
		return false
	}
	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	q.mu.Unlock()

	task()
	return true
}

// Flush runs pending tasks until the queue is empty, including tasks
// scheduled by the tasks themselves. Returns the number of tasks run.
func (q *Queue) Flush() int {
	n := 0
	for q.Step() {
		n++
	}
	return n
}
