/*
Package pool provides a fixed-size worker pool with non-blocking submission
and polled result collection.

A pool spawns its workers once, at construction, and keeps them for its whole
lifetime. Tasks enter a bounded FIFO queue; when the queue is full, Submit
fails fast instead of blocking. Workers race to dequeue, execute, and push any
non-nil result onto a result queue that callers drain wholesale whenever they
choose.

Basic usage:

	p := pool.New(4, 100) // 4 workers, queue capacity 100
	defer p.Shutdown()

	task := pool.TaskFunc(func() any {
		return compute()
	})

	if err := p.Submit(task); err != nil {
		// errors.ErrCapacityExceeded: queue full, retry later or drop
		log.Printf("submit failed: %v", err)
	}

	for _, result := range p.Drain() {
		use(result)
	}

Task Interface:

Tasks implement a single-method interface:

	type Task interface {
		Execute() any
	}

A nil return means "no result": the pool discards it and Drain never sees it.
Anything else is kept, in completion order, until the next Drain. The TaskFunc
type adapts plain functions:

	task := pool.TaskFunc(func() any { return 42 })

Collection Model:

Unlike channel-based pools, results are pulled, not pushed. Drain atomically
empties the result queue and returns what it held, which suits periodic
polling loops:

	for range time.Tick(time.Second) {
		for _, r := range p.Drain() {
			process(r)
		}
	}

Completion order is unrelated to submission order: workers race to dequeue and
tasks take however long they take.

State Inspection:

IdleWorkers, QueueDepth, and ResultCount report point-in-time snapshots. They
are advisory under concurrency; the counts may be stale by the time the caller
acts on them. A dispatching layer can use IdleWorkers to decide how many tasks
to feed without unbounded queuing (see the timeout package).

Error Handling:

A full queue surfaces as errors.ErrCapacityExceeded and submission after
Shutdown as errors.ErrClosed; both are ordinary return values, never panics.
Failures inside a task are the task's own concern: a task that needs to
report failure encodes it in its result value. Panics are recovered so the
worker survives; route them through Config.PanicHandler if you need to see
them.

Shutdown:

Shutdown injects one termination marker per worker through the ordinary queue,
waiting for each worker to confirm exit before injecting the next, and returns
only when all workers are gone. Markers compete with queued tasks in FIFO
order, so shutdown is not instantaneous while a backlog of slow tasks drains.
There is no forced cancellation: a task that never returns pins its worker
forever, and a pool with such a task cannot shut down.

Thread Safety:

All pool operations are safe for concurrent use from multiple goroutines.
*/
package pool
