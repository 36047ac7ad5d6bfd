// Package metrics provides Prometheus instrumentation for taskpool components.
//
// The metrics package provides automatic instrumentation for:
//   - Worker pools (workers, idle workers, queue depth, pending results)
//   - Task outcomes (submitted, rejected, executed, discarded, panicked)
//   - The timeout dispatch layer (pending, expired)
//   - Cron schedules (fires, rejected fires)
//
// Enable metrics by using the metrics-enabled constructors:
//
//	p := pool.NewWithMetrics(4, "task_pool")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//	p := pool.NewWithConfigAndMetrics(pool.Config{WorkerCount: 4}, "task_pool", config)
package metrics
