package pool

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/taskpool/internal/testutil"
	tperrors "github.com/vnykmshr/taskpool/pkg/common/errors"
	"github.com/vnykmshr/taskpool/pkg/metrics"
)

func newMetricsPool(t *testing.T, config Config) *MetricsPool {
	t.Helper()
	p := NewWithConfigAndMetrics(config, "test_pool", metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	})
	mp, ok := p.(*MetricsPool)
	if !ok {
		t.Fatalf("expected *MetricsPool, got %T", p)
	}
	return mp
}

func TestMetricsPoolCounters(t *testing.T) {
	mp := newMetricsPool(t, Config{WorkerCount: 2, QueueCapacity: 10})
	defer mp.Shutdown()

	testutil.AssertNoError(t, mp.Submit(&TestTask{ID: 1}))
	testutil.AssertNoError(t, mp.Submit(&TestTask{ID: 2, NilResult: true}))

	testutil.Eventually(t, func() bool {
		return promtest.ToFloat64(mp.registry.TasksExecuted.WithLabelValues("test_pool")) == 2
	}, "executed counter never reached 2")

	testutil.AssertEqual(t, promtest.ToFloat64(mp.registry.TasksSubmitted.WithLabelValues("test_pool")), 2)
	testutil.AssertEqual(t, promtest.ToFloat64(mp.registry.TasksDiscarded.WithLabelValues("test_pool")), 1)

	testutil.Eventually(t, func() bool {
		return mp.ResultCount() == 1
	}, "result never arrived")
	testutil.AssertEqual(t, len(mp.Drain()), 1)
	testutil.AssertEqual(t, promtest.ToFloat64(mp.registry.ResultsCollected.WithLabelValues("test_pool")), 1)
}

func TestMetricsPoolRejections(t *testing.T) {
	mp := newMetricsPool(t, Config{WorkerCount: 1, QueueCapacity: 1})
	gate := make(chan struct{})
	defer func() {
		close(gate)
		mp.Shutdown()
	}()

	testutil.AssertNoError(t, mp.Submit(&TestTask{ID: 1, Gate: gate}))
	testutil.Eventually(t, func() bool {
		return mp.IdleWorkers() == 0 && mp.QueueDepth() == 0
	}, "worker never picked up the gated task")
	testutil.AssertNoError(t, mp.Submit(&TestTask{ID: 2, Gate: gate}))

	err := mp.Submit(&TestTask{ID: 3})
	if !errors.Is(err, tperrors.ErrCapacityExceeded) {
		t.Fatalf("Submit into full queue = %v, want ErrCapacityExceeded", err)
	}

	testutil.AssertEqual(t, promtest.ToFloat64(mp.registry.TasksRejected.WithLabelValues("test_pool")), 1)
	testutil.AssertEqual(t, promtest.ToFloat64(mp.registry.TasksSubmitted.WithLabelValues("test_pool")), 2)
}

func TestMetricsPoolPanics(t *testing.T) {
	var sawPanic atomic.Bool
	mp := newMetricsPool(t, Config{
		WorkerCount:   1,
		QueueCapacity: 5,
		PanicHandler: func(task Task, recovered any) {
			sawPanic.Store(true)
		},
	})
	defer mp.Shutdown()

	testutil.AssertNoError(t, mp.Submit(&TestTask{ID: 1, ShouldPanic: true}))

	testutil.Eventually(t, func() bool {
		return promtest.ToFloat64(mp.registry.TasksPanicked.WithLabelValues("test_pool")) == 1
	}, "panic counter never incremented")
	testutil.AssertEqual(t, sawPanic.Load(), true)
}

func TestMetricsDisabled(t *testing.T) {
	p := NewWithConfigAndMetrics(Config{WorkerCount: 1}, "plain", metrics.Config{Enabled: false})
	defer p.Shutdown()

	if _, ok := p.(*MetricsPool); ok {
		t.Error("disabled metrics should return the plain pool")
	}
}

func TestMetricsPoolInstrumentable(t *testing.T) {
	mp := newMetricsPool(t, Config{WorkerCount: 1})
	defer mp.Shutdown()

	testutil.AssertEqual(t, mp.MetricsEnabled(), true)
	mp.DisableMetrics()
	testutil.AssertEqual(t, mp.MetricsEnabled(), false)
	testutil.AssertNoError(t, mp.EnableMetrics(metrics.Config{Enabled: true, Registry: prometheus.NewRegistry()}))
	testutil.AssertEqual(t, mp.MetricsEnabled(), true)
}
