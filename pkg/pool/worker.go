package pool

import (
	tperrors "github.com/vnykmshr/taskpool/pkg/common/errors"
	"github.com/vnykmshr/taskpool/pkg/common/validation"
)

// Submit appends a task to the waiting queue.
func (p *workerPool) Submit(task Task) error {
	if err := validation.ValidateNotNil("pool", "task", task); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closing {
		return tperrors.ErrClosed
	}
	if len(p.waiting) >= p.config.QueueCapacity {
		return tperrors.ErrCapacityExceeded
	}

	p.waiting = append(p.waiting, queued{task: task})
	p.notEmpty.Signal()
	return nil
}

// Drain removes and returns all accumulated results.
func (p *workerPool) Drain() []any {
	p.resultsMu.Lock()
	defer p.resultsMu.Unlock()

	results := p.results
	p.results = nil
	return results
}

// ResultCount returns the number of results waiting to be drained.
func (p *workerPool) ResultCount() int {
	p.resultsMu.Lock()
	defer p.resultsMu.Unlock()
	return len(p.results)
}

// QueueDepth returns the number of tasks waiting in the queue.
func (p *workerPool) QueueDepth() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiting)
}

// IdleWorkers returns the number of workers currently marked idle.
func (p *workerPool) IdleWorkers() int {
	n := 0
	for i := range p.idle {
		if p.idle[i].Load() {
			n++
		}
	}
	return n
}

// Size returns the configured worker count.
func (p *workerPool) Size() int {
	return p.config.WorkerCount
}

// Capacity returns the configured maximum queue length.
func (p *workerPool) Capacity() int {
	return p.config.QueueCapacity
}

// Shutdown stops the pool and waits for every worker to confirm exit.
func (p *workerPool) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.closing = true
		p.mu.Unlock()

		// One marker per worker slot, injected sequentially. Waiting for each
		// acknowledgement before injecting the next keeps shutdown live when
		// the queue capacity is smaller than the worker count. Markers skip
		// the capacity check so a backed-up queue can still be closed.
		for i := 0; i < p.config.WorkerCount; i++ {
			ack := make(chan struct{})
			p.mu.Lock()
			p.waiting = append(p.waiting, queued{quit: ack})
			p.notEmpty.Signal()
			p.mu.Unlock()
			<-ack
		}

		p.workerWg.Wait()
	})
}

// worker is the per-slot execution loop: wait for work, mark busy, execute,
// route the result, mark idle, repeat. Only a shutdown marker ends the loop;
// an ordinary task's outcome never does.
func (p *workerPool) worker(id int) {
	defer p.workerWg.Done()

	for {
		p.mu.Lock()
		for len(p.waiting) == 0 {
			p.notEmpty.Wait()
		}
		item := p.waiting[0]
		p.waiting[0] = queued{}
		p.waiting = p.waiting[1:]
		p.idle[id].Store(false)
		p.mu.Unlock()

		if item.quit != nil {
			// Confirm exit. The idle flag stays frozen at busy; no queries
			// are expected once disposal is under way.
			close(item.quit)
			return
		}

		result := p.run(item.task)
		if result != nil {
			p.resultsMu.Lock()
			p.results = append(p.results, result)
			p.resultsMu.Unlock()
		}
		if p.config.OnTaskComplete != nil {
			p.config.OnTaskComplete(id, result)
		}
		p.idle[id].Store(true)
	}
}

// run executes one task, containing any panic so the worker survives.
func (p *workerPool) run(task Task) (result any) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			if p.config.PanicHandler != nil {
				p.config.PanicHandler(task, r)
			}
		}
	}()

	return task.Execute()
}
