package schedule

import (
	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/taskpool/pkg/common/validation"
	"github.com/vnykmshr/taskpool/pkg/metrics"
	"github.com/vnykmshr/taskpool/pkg/pool"
)

// Config holds configuration options for creating a Scheduler.
type Config struct {
	// Pool is the pool fires are submitted into. Required.
	Pool pool.Pool

	// Name labels this scheduler in metrics. Empty means "default".
	Name string

	// WithSeconds enables the optional seconds field in cron expressions.
	WithSeconds bool

	// OnReject is called when a fire is dropped because the pool rejected
	// the submission (full queue or shutdown). The occurrence is lost; the
	// next fire happens on schedule.
	OnReject func(err error)

	// Metrics configures Prometheus instrumentation for fires and rejects.
	Metrics metrics.Config
}

// Scheduler submits tasks to a worker pool on cron schedules. Each fire is an
// ordinary submission: it competes for queue slots and is dropped, not
// queued up, when the pool is full.
type Scheduler struct {
	name     string
	pool     pool.Pool
	cron     *cron.Cron
	onReject func(err error)
	registry *metrics.Registry
	enabled  bool
}

// New creates a scheduler over the given pool with standard 5-field cron
// expressions and no metrics.
func New(p pool.Pool) (*Scheduler, error) {
	return NewWithConfig(Config{Pool: p})
}

// NewWithConfig creates a scheduler with the specified configuration.
func NewWithConfig(config Config) (*Scheduler, error) {
	if err := validation.ValidateNotNil("schedule", "Pool", config.Pool); err != nil {
		return nil, err
	}

	name := config.Name
	if name == "" {
		name = "default"
	}

	var opts []cron.Option
	if config.WithSeconds {
		opts = append(opts, cron.WithSeconds())
	}

	s := &Scheduler{
		name:     name,
		pool:     config.Pool,
		cron:     cron.New(opts...),
		onReject: config.OnReject,
	}

	if config.Metrics.Enabled {
		s.enabled = true
		s.registry = metrics.DefaultRegistry
		if config.Metrics.Registry != nil {
			s.registry = metrics.NewRegistry(config.Metrics.Registry)
		}
	}

	return s, nil
}

// Add schedules task on the given cron expression. The returned entry id can
// be passed to Remove.
func (s *Scheduler) Add(spec string, task pool.Task) (cron.EntryID, error) {
	if err := validation.ValidateNotEmpty("schedule", "spec", spec); err != nil {
		return 0, err
	}
	if err := validation.ValidateNotNil("schedule", "task", task); err != nil {
		return 0, err
	}

	return s.cron.AddFunc(spec, func() {
		s.fire(task)
	})
}

func (s *Scheduler) fire(task pool.Task) {
	if err := s.pool.Submit(task); err != nil {
		if s.enabled {
			s.registry.ScheduleRejected.WithLabelValues(s.name).Inc()
		}
		if s.onReject != nil {
			s.onReject(err)
		}
		return
	}
	if s.enabled {
		s.registry.ScheduleFires.WithLabelValues(s.name).Inc()
	}
}

// Remove deletes a scheduled entry. Unknown ids are ignored.
func (s *Scheduler) Remove(id cron.EntryID) {
	s.cron.Remove(id)
}

// Entries returns a snapshot of the scheduled entries.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// Start begins firing schedules in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts firing and waits for any in-flight fire to finish. The pool
// itself keeps running; shut it down separately.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
