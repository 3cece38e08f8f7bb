// Package workqueue provides the single background worker used for
// suggestion computation.
//
// A Queue owns exactly one goroutine and an unbounded FIFO task queue.
// Every task accepted by Submit runs exactly once, in submission order, on
// that goroutine and never on the caller's. Submit never blocks; tasks
// submitted after Shutdown are dropped silently.
package workqueue

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	gtdebug "github.com/vanderheijden86/glidetype/pkg/debug"
)

// State represents the lifecycle state of a Queue.
type State int

const (
	// StateRunning means the worker goroutine is accepting and executing tasks.
	StateRunning State = iota
	// StateDraining means Shutdown was called and already-accepted tasks are
	// still being executed.
	StateDraining
	// StateStopped means the worker goroutine has exited.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// DefaultShutdownTimeout bounds how long Shutdown waits for the drain.
const DefaultShutdownTimeout = 5 * time.Second

// Option configures a Queue.
type Option func(*Queue)

// WithShutdownTimeout sets how long Shutdown waits for pending tasks.
func WithShutdownTimeout(d time.Duration) Option {
	return func(q *Queue) {
		q.shutdownTimeout = d
	}
}

// WithName sets the queue name used in debug logging.
func WithName(name string) Option {
	return func(q *Queue) {
		q.name = name
	}
}

// Queue is a single-goroutine FIFO task executor.
type Queue struct {
	name            string
	shutdownTimeout time.Duration

	mu    sync.Mutex
	cond  *sync.Cond
	tasks []func()
	state State

	done chan struct{}
}

// New creates a Queue and starts its worker goroutine.
func New(opts ...Option) *Queue {
	q := &Queue{
		name:            "workqueue",
		shutdownTimeout: DefaultShutdownTimeout,
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.cond = sync.NewCond(&q.mu)

	go q.run()
	return q
}

// Submit enqueues a task for execution on the worker goroutine.
// Non-blocking for the caller. Returns false if the queue has begun
// shutdown, in which case the task is dropped and will never run.
func (q *Queue) Submit(task func()) bool {
	if task == nil {
		return false
	}

	q.mu.Lock()
	if q.state != StateRunning {
		q.mu.Unlock()
		gtdebug.Log("%s: task dropped after shutdown", q.name)
		return false
	}
	q.tasks = append(q.tasks, task)
	q.cond.Signal()
	q.mu.Unlock()
	return true
}

// Shutdown stops the queue after draining already-accepted tasks.
//
// Drain-then-stop is deliberate: an end-of-interaction suggestion request
// that was accepted before Shutdown still delivers its callback, so callers
// awaiting a finalize are not left hanging. Tasks submitted after Shutdown
// begins are dropped. Idempotent; waits at most the shutdown timeout and
// logs if the drain does not finish in time.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	if q.state != StateRunning {
		q.mu.Unlock()
		return
	}
	q.state = StateDraining
	q.cond.Signal()
	q.mu.Unlock()

	select {
	case <-q.done:
	case <-time.After(q.shutdownTimeout):
		gtdebug.Log("%s: shutdown timeout after %v", q.name, q.shutdownTimeout)
	}
}

// Done is closed when the worker goroutine has exited.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// State returns the current queue state.
func (q *Queue) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Len returns the number of tasks waiting to execute.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// run is the worker loop. Tasks execute strictly in submission order, one at
// a time to completion. A panicking task is logged and does not kill the
// worker.
func (q *Queue) run() {
	defer close(q.done)

	for {
		q.mu.Lock()
		for len(q.tasks) == 0 && q.state == StateRunning {
			q.cond.Wait()
		}
		if len(q.tasks) == 0 {
			// Draining and nothing left: stop.
			q.state = StateStopped
			q.mu.Unlock()
			return
		}
		task := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		q.safeRun(task)
	}
}

func (q *Queue) safeRun(task func()) {
	defer func() {
		if r := recover(); r != nil && gtdebug.Enabled() {
			// Only capture the stack when someone is listening.
			gtdebug.Log("%s: task panic: %s", q.name, fmt.Sprintf("%v\n%s", r, debug.Stack()))
		}
	}()
	task()
}
