package timeout

import (
	"sync"
	"time"

	"github.com/vnykmshr/taskpool/pkg/common/validation"
	"github.com/vnykmshr/taskpool/pkg/pool"
)

// Task is a unit of work with a time budget. Exactly one of the two methods
// runs, depending on whether the budget was spent while the task waited for
// an idle worker.
type Task interface {
	// OnReady performs the work. Runs when the task is dispatched with budget
	// remaining. A nil result is discarded, like pool.Task.
	OnReady() any

	// OnExpired runs instead of OnReady when the task's budget reached zero
	// before it could be dispatched.
	OnExpired() any
}

// DefaultTick is the poll interval used when Config.Tick is zero.
const DefaultTick = time.Second

// Config holds configuration options for creating a timeout pool.
type Config struct {
	// Pool is the execution pool tasks are dispatched into. If nil, the
	// timeout pool creates and owns one with Workers workers.
	Pool pool.Pool

	// Workers configures the owned execution pool when Pool is nil.
	// Zero means the pool package default.
	Workers int

	// Tick is the poll interval: once per tick, every waiting task's budget
	// shrinks by one and up to IdleWorkers() tasks are dispatched.
	// Zero means DefaultTick. Negative values are invalid.
	Tick time.Duration
}

// Pool holds countdown tasks and feeds them into an execution pool only when
// idle workers exist, so waiting tasks age in this layer instead of occupying
// execution queue slots.
type Pool struct {
	inner     pool.Pool
	ownsInner bool
	tick      time.Duration

	mu      sync.Mutex
	waiting []*entry

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

type entry struct {
	task      Task
	remaining int
}

// New creates a timeout pool that owns an execution pool with the given
// worker count and polls at DefaultTick.
func New(workers int) *Pool {
	p, err := NewWithConfig(Config{Workers: workers})
	if err != nil {
		// Config built here is always valid.
		panic(err)
	}
	return p
}

// NewWithConfig creates a timeout pool with the specified configuration.
func NewWithConfig(config Config) (*Pool, error) {
	if config.Tick < 0 {
		return nil, validation.ValidateNonNegative("timeout", "Tick", int(config.Tick))
	}
	if config.Tick == 0 {
		config.Tick = DefaultTick
	}

	inner := config.Pool
	ownsInner := false
	if inner == nil {
		inner = pool.New(config.Workers, 0)
		ownsInner = true
	}

	p := &Pool{
		inner:     inner,
		ownsInner: ownsInner,
		tick:      config.Tick,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go p.loop()

	return p, nil
}

// Submit queues a task with a budget of the given number of ticks. A task
// submitted with budget zero can only ever run its expired path.
func (p *Pool) Submit(task Task, ticks int) error {
	if err := validation.ValidateNotNil("timeout", "task", task); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("timeout", "ticks", ticks); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.waiting = append(p.waiting, &entry{task: task, remaining: ticks})
	return nil
}

// Drain removes and returns all results accumulated by the execution pool.
func (p *Pool) Drain() []any {
	return p.inner.Drain()
}

// Pending returns the number of tasks still waiting to be dispatched.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiting)
}

// Shutdown stops the poller and, when the execution pool is owned by this
// layer, shuts it down too. Tasks still waiting are dropped without running
// either path.
func (p *Pool) Shutdown() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
	<-p.done

	if p.ownsInner {
		p.inner.Shutdown()
	}
}

func (p *Pool) loop() {
	defer close(p.done)

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.dispatch()
		}
	}
}

// dispatch ages every waiting task by one tick, then feeds the head of the
// line into the execution pool, at most one task per currently idle worker.
func (p *Pool) dispatch() {
	p.mu.Lock()
	for _, e := range p.waiting {
		if e.remaining > 0 {
			e.remaining--
		}
	}

	n := p.inner.IdleWorkers()
	if n > len(p.waiting) {
		n = len(p.waiting)
	}
	batch := make([]*entry, n)
	copy(batch, p.waiting[:n])
	p.waiting = p.waiting[n:]
	p.mu.Unlock()

	for i, e := range batch {
		expired := e.remaining == 0
		task := e.task
		err := p.inner.Submit(pool.TaskFunc(func() any {
			if expired {
				return task.OnExpired()
			}
			return task.OnReady()
		}))
		if err != nil {
			// The idle snapshot went stale; put the rest back at the head
			// of the line and try again next tick.
			p.mu.Lock()
			p.waiting = append(batch[i:], p.waiting...)
			p.mu.Unlock()
			return
		}
	}
}
