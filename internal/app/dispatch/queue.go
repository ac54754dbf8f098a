// Package dispatch provides named serial execution contexts.
//
// The permission subsystem runs on two of them: "control" (durable storage,
// prompts, all store mutations) and "fastpath" (permission queries on behalf
// of untrusted content, never blocking on I/O or user interaction). Each queue
// runs tasks one at a time, in posting order, on its own goroutine. Tasks
// receive a context carrying the queue token, and entry points verify the
// token instead of relying on ambient thread checks.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/siteperm/internal/logging"
)

// ErrQueueClosed is returned when posting to a closed queue.
var ErrQueueClosed = errors.New("dispatch: queue closed")

// ErrWrongContext is returned when an entry point runs outside its queue.
var ErrWrongContext = errors.New("dispatch: wrong execution context")

// Task is a unit of work executed on a queue. The context carries the queue
// token and the process logger.
type Task func(ctx context.Context)

// Queue is a serial executor: one goroutine, FIFO task order.
type Queue struct {
	name  string
	tasks chan Task
	ctx   context.Context

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

type queueKey struct{}

// NewQueue creates and starts a queue. ctx supplies the logger attached to
// every task context.
func NewQueue(ctx context.Context, name string) *Queue {
	q := &Queue{
		name:  name,
		tasks: make(chan Task, 64),
		done:  make(chan struct{}),
	}
	q.ctx = context.WithValue(logging.WithComponent(ctx, "dispatch."+name), queueKey{}, q)

	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for task := range q.tasks {
		task(q.ctx)
	}
}

// Name returns the queue's name.
func (q *Queue) Name() string {
	return q.name
}

// Post enqueues a task for asynchronous execution in FIFO order.
func (q *Queue) Post(task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.tasks <- task
	return nil
}

// Sync runs fn on the queue and waits for it to finish. It must not be called
// from the queue itself.
func (q *Queue) Sync(fn Task) error {
	finished := make(chan struct{})
	err := q.Post(func(ctx context.Context) {
		defer close(finished)
		fn(ctx)
	})
	if err != nil {
		return err
	}
	<-finished
	return nil
}

// Current returns the queue the calling task is running on, or nil when the
// context carries no queue token.
func Current(ctx context.Context) *Queue {
	q, _ := ctx.Value(queueKey{}).(*Queue)
	return q
}

// Require verifies that ctx carries this queue's token.
func (q *Queue) Require(ctx context.Context) error {
	if Current(ctx) != q {
		return fmt.Errorf("%w: need %q", ErrWrongContext, q.name)
	}
	return nil
}

// Close stops accepting tasks, runs the ones already queued, and waits for
// the queue goroutine to exit.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()

	<-q.done
}
