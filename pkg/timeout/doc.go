/*
Package timeout layers countdown-based timeout semantics on top of a worker
pool. The core pool has no cancellation; this package is the layered answer:
tasks wait here, not in the pool's queue, and each carries a budget measured
in poll ticks.

Once per tick the layer ages every waiting task, asks the pool how many
workers are idle, and dispatches that many tasks from the head of the line.
A task whose budget ran out before dispatch runs its OnExpired path instead
of OnReady. It still runs exactly once, just down the other branch.

	tp := timeout.New(4)
	defer tp.Shutdown()

	tp.Submit(fetchTask, 5) // give it five ticks to reach a worker

	for _, r := range tp.Drain() {
		use(r)
	}

Because dispatch is throttled by the pool's idle count, this layer also keeps
the execution queue from backing up: a task is only handed over when a worker
can take it promptly.
*/
package timeout
