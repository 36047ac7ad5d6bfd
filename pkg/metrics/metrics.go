// Package metrics provides Prometheus instrumentation for taskpool components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for taskpool components.
type Registry struct {
	// Worker Pool Metrics
	PoolWorkers    *prometheus.GaugeVec
	PoolIdle       *prometheus.GaugeVec
	PoolQueued     *prometheus.GaugeVec
	PoolResults    *prometheus.GaugeVec
	TasksSubmitted *prometheus.CounterVec
	TasksRejected  *prometheus.CounterVec
	TasksExecuted  *prometheus.CounterVec
	TasksDiscarded *prometheus.CounterVec
	TasksPanicked  *prometheus.CounterVec

	ResultsCollected      *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec

	// Timeout Layer Metrics
	TimeoutPending *prometheus.GaugeVec
	TimeoutExpired *prometheus.CounterVec

	// Schedule Metrics
	ScheduleFires    *prometheus.CounterVec
	ScheduleRejected *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by taskpool components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Worker Pool Metrics
		PoolWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "workers",
				Help:      "Configured worker count",
			},
			[]string{"pool_name"},
		),

		PoolIdle: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "idle_workers",
				Help:      "Number of workers currently idle",
			},
			[]string{"pool_name"},
		),

		PoolQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "queued_tasks",
				Help:      "Number of tasks waiting in the queue",
			},
			[]string{"pool_name"},
		),

		PoolResults: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "pending_results",
				Help:      "Number of results waiting to be drained",
			},
			[]string{"pool_name"},
		),

		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks accepted by the queue",
			},
			[]string{"pool_name"},
		),

		TasksRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "tasks_rejected_total",
				Help:      "Total number of submissions rejected by a full queue",
			},
			[]string{"pool_name"},
		),

		TasksExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "tasks_executed_total",
				Help:      "Total number of tasks executed by workers",
			},
			[]string{"pool_name"},
		),

		TasksDiscarded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "tasks_discarded_total",
				Help:      "Total number of tasks that produced no result",
			},
			[]string{"pool_name"},
		),

		TasksPanicked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "tasks_panicked_total",
				Help:      "Total number of tasks that panicked during execution",
			},
			[]string{"pool_name"},
		),

		ResultsCollected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "results_collected_total",
				Help:      "Total number of results returned by drains",
			},
			[]string{"pool_name"},
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		// Timeout Layer Metrics
		TimeoutPending: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskpool",
				Subsystem: "timeout",
				Name:      "pending_tasks",
				Help:      "Number of tasks waiting for an idle worker",
			},
			[]string{"pool_name"},
		),

		TimeoutExpired: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "timeout",
				Name:      "expired_total",
				Help:      "Total number of tasks dispatched on their expired path",
			},
			[]string{"pool_name"},
		),

		// Schedule Metrics
		ScheduleFires: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "schedule",
				Name:      "fires_total",
				Help:      "Total number of cron fires submitted to the pool",
			},
			[]string{"schedule_name"},
		),

		ScheduleRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "schedule",
				Name:      "rejected_total",
				Help:      "Total number of cron fires dropped by a full queue",
			},
			[]string{"schedule_name"},
		),
	}
}
