package pool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute performs the work and returns an optional opaque result.
	// A nil result is discarded; anything else is queued for Drain.
	// A task that never returns permanently occupies its worker; the pool
	// cannot detect or reclaim it.
	Execute() any
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func() any

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute() any {
	return f()
}

// Pool is a fixed-size worker pool with a bounded, reject-on-full task queue
// and a drained result queue.
type Pool interface {
	// Submit appends a task to the waiting queue and wakes one worker.
	// Returns errors.ErrCapacityExceeded when the queue is full and
	// errors.ErrClosed once Shutdown has begun. A full queue is an expected,
	// recoverable outcome; callers retry or drop the task.
	Submit(task Task) error

	// Drain atomically removes and returns every result accumulated so far,
	// in completion order. Completion order is unrelated to submission order.
	// An empty result queue yields an empty slice.
	Drain() []any

	// IdleWorkers returns a point-in-time count of workers not currently
	// executing a task. It may be stale by the time the caller acts on it.
	IdleWorkers() int

	// QueueDepth returns the current waiting-queue length, same staleness caveat.
	QueueDepth() int

	// ResultCount returns the current result-queue length without draining.
	ResultCount() int

	// Size returns the configured worker count.
	Size() int

	// Capacity returns the configured maximum waiting-queue length.
	Capacity() int

	// Shutdown stops the pool and blocks until every worker has confirmed
	// exit. Queued tasks submitted before Shutdown still run. Safe to call
	// more than once; concurrent callers all return once shutdown completes.
	Shutdown()
}

// DefaultQueueCapacity bounds the waiting queue when Config.QueueCapacity is
// zero. It is a generous safety bound, not a tuned value.
const DefaultQueueCapacity = 65535

// Config holds configuration options for creating a pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Zero means runtime.NumCPU(). Negative values panic.
	WorkerCount int

	// QueueCapacity is the maximum number of tasks that can wait in the queue.
	// Zero means DefaultQueueCapacity. Negative values panic.
	QueueCapacity int

	// PanicHandler is called when a task panics during execution. The worker
	// survives either way; if nil, the panic is dropped and the task simply
	// produces no result.
	PanicHandler func(task Task, recovered any)

	// OnTaskComplete is called after a task finishes, with the worker slot
	// that ran it and the result it produced (nil when it produced none).
	OnTaskComplete func(workerID int, result any)
}

// queued is one slot in the waiting queue. A non-nil quit channel marks a
// shutdown marker; the worker that dequeues it closes the channel and exits.
type queued struct {
	task Task
	quit chan struct{}
}

// workerPool implements the Pool interface.
type workerPool struct {
	config Config

	// mu guards the waiting queue and closing flag. notEmpty is signaled
	// once per enqueued item.
	mu       sync.Mutex
	notEmpty *sync.Cond
	waiting  []queued
	closing  bool

	resultsMu sync.Mutex
	results   []any

	// idle holds one flag per worker slot, created at construction and never
	// removed. A terminated worker's flag freezes at its last value.
	idle []atomic.Bool

	shutdownOnce sync.Once
	workerWg     sync.WaitGroup
}

// New creates a pool with the given worker count and queue capacity.
// Zero values select the defaults: runtime.NumCPU() workers and
// DefaultQueueCapacity queue slots.
func New(workerCount, queueCapacity int) Pool {
	return NewWithConfig(Config{
		WorkerCount:   workerCount,
		QueueCapacity: queueCapacity,
	})
}

// NewWithConfig creates a pool with the specified configuration.
// Workers are spawned before it returns, each starting out idle.
func NewWithConfig(config Config) Pool {
	if config.WorkerCount < 0 {
		panic("pool: worker count cannot be negative")
	}
	if config.QueueCapacity < 0 {
		panic("pool: queue capacity cannot be negative")
	}
	if config.WorkerCount == 0 {
		config.WorkerCount = runtime.NumCPU()
	}
	if config.QueueCapacity == 0 {
		config.QueueCapacity = DefaultQueueCapacity
	}

	p := &workerPool{
		config: config,
		idle:   make([]atomic.Bool, config.WorkerCount),
	}
	p.notEmpty = sync.NewCond(&p.mu)

	for i := 0; i < config.WorkerCount; i++ {
		p.idle[i].Store(true)
		p.workerWg.Add(1)
		go p.worker(i)
	}

	return p
}
