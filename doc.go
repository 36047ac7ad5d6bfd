/*
Package taskpool provides a fixed-size worker pool with non-blocking task
submission and polled result collection.

Core (pkg/pool):
  - pool: fixed worker set, bounded reject-on-full task queue, drained results

Layers (built on the core, never inside it):
  - timeout: countdown-based timeout dispatch driven by the pool's idle count
  - schedule: cron-driven recurring submission

Support:
  - metrics: Prometheus instrumentation
  - common/errors, common/validation: shared error and validation helpers

Example usage:

	import "github.com/vnykmshr/taskpool/pkg/pool"

	p := pool.New(4, 100) // 4 workers, queue capacity 100
	defer p.Shutdown()

	p.Submit(pool.TaskFunc(func() any {
		return compute()
	}))

	for _, r := range p.Drain() {
		use(r)
	}
*/
package taskpool
