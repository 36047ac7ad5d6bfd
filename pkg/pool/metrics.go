package pool

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	tperrors "github.com/vnykmshr/taskpool/pkg/common/errors"
	"github.com/vnykmshr/taskpool/pkg/metrics"
)

// MetricsPool wraps a Pool with Prometheus metrics collection.
type MetricsPool struct {
	pool     Pool
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a new pool with metrics enabled.
func NewWithMetrics(workerCount int, name string) Pool {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(Config{
		WorkerCount: workerCount,
	}, name, config)
}

// NewWithConfigAndMetrics creates a new pool with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) Pool {
	if !metricsConfig.Enabled {
		return NewWithConfig(config)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mp := &MetricsPool{
		name:     name,
		registry: registry,
		enabled:  true,
	}

	// Chain the panic handler so panics are counted before the caller's
	// handler runs.
	userHandler := config.PanicHandler
	config.PanicHandler = func(task Task, recovered any) {
		mp.registry.TasksPanicked.WithLabelValues(mp.name).Inc()
		if userHandler != nil {
			userHandler(task, recovered)
		}
	}

	mp.pool = NewWithConfig(config)
	mp.updateGauges()

	return mp
}

// updateGauges refreshes the current state gauges.
func (mp *MetricsPool) updateGauges() {
	if !mp.enabled {
		return
	}

	mp.registry.PoolWorkers.WithLabelValues(mp.name).Set(float64(mp.pool.Size()))
	mp.registry.PoolIdle.WithLabelValues(mp.name).Set(float64(mp.pool.IdleWorkers()))
	mp.registry.PoolQueued.WithLabelValues(mp.name).Set(float64(mp.pool.QueueDepth()))
	mp.registry.PoolResults.WithLabelValues(mp.name).Set(float64(mp.pool.ResultCount()))
}

// Submit appends a task to the waiting queue, counting the outcome.
func (mp *MetricsPool) Submit(task Task) error {
	var err error
	if task == nil {
		// Let the inner pool produce the usual validation error.
		err = mp.pool.Submit(nil)
	} else {
		err = mp.pool.Submit(&metricsTask{original: task, pool: mp})
	}

	if mp.enabled {
		switch {
		case err == nil:
			mp.registry.TasksSubmitted.WithLabelValues(mp.name).Inc()
		case errors.Is(err, tperrors.ErrCapacityExceeded):
			mp.registry.TasksRejected.WithLabelValues(mp.name).Inc()
		}
		mp.updateGauges()
	}

	return err
}

// metricsTask wraps a Task to collect execution metrics.
type metricsTask struct {
	original Task
	pool     *MetricsPool
}

// Execute runs the original task and records metrics.
func (mt *metricsTask) Execute() any {
	start := time.Now()

	result := mt.original.Execute()

	if mt.pool.enabled {
		reg := mt.pool.registry
		reg.TaskExecutionDuration.WithLabelValues(mt.pool.name).Observe(time.Since(start).Seconds())
		reg.TasksExecuted.WithLabelValues(mt.pool.name).Inc()
		if result == nil {
			reg.TasksDiscarded.WithLabelValues(mt.pool.name).Inc()
		}
		mt.pool.updateGauges()
	}

	return result
}

// Drain removes and returns all accumulated results.
func (mp *MetricsPool) Drain() []any {
	results := mp.pool.Drain()

	if mp.enabled {
		mp.registry.ResultsCollected.WithLabelValues(mp.name).Add(float64(len(results)))
		mp.updateGauges()
	}

	return results
}

// IdleWorkers returns the number of workers currently marked idle.
func (mp *MetricsPool) IdleWorkers() int {
	idle := mp.pool.IdleWorkers()

	if mp.enabled {
		mp.registry.PoolIdle.WithLabelValues(mp.name).Set(float64(idle))
	}

	return idle
}

// QueueDepth returns the number of tasks waiting in the queue.
func (mp *MetricsPool) QueueDepth() int {
	depth := mp.pool.QueueDepth()

	if mp.enabled {
		mp.registry.PoolQueued.WithLabelValues(mp.name).Set(float64(depth))
	}

	return depth
}

// ResultCount returns the number of results waiting to be drained.
func (mp *MetricsPool) ResultCount() int {
	count := mp.pool.ResultCount()

	if mp.enabled {
		mp.registry.PoolResults.WithLabelValues(mp.name).Set(float64(count))
	}

	return count
}

// Size returns the configured worker count.
func (mp *MetricsPool) Size() int {
	return mp.pool.Size()
}

// Capacity returns the configured maximum queue length.
func (mp *MetricsPool) Capacity() int {
	return mp.pool.Capacity()
}

// Shutdown stops the pool and waits for every worker to confirm exit.
func (mp *MetricsPool) Shutdown() {
	mp.pool.Shutdown()
	if mp.enabled {
		mp.updateGauges()
	}
}

// EnableMetrics enables metrics collection.
func (mp *MetricsPool) EnableMetrics(config metrics.Config) error {
	mp.enabled = config.Enabled

	if config.Registry != nil {
		mp.registry = metrics.NewRegistry(config.Registry)
	}

	if mp.enabled {
		mp.updateGauges()
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (mp *MetricsPool) DisableMetrics() {
	mp.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mp *MetricsPool) MetricsEnabled() bool {
	return mp.enabled
}
