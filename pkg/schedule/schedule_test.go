package schedule

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/taskpool/internal/testutil"
	tperrors "github.com/vnykmshr/taskpool/pkg/common/errors"
	"github.com/vnykmshr/taskpool/pkg/metrics"
	"github.com/vnykmshr/taskpool/pkg/pool"
)

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	testutil.AssertError(t, err)
	if !errors.Is(err, tperrors.ErrInvalidConfiguration) {
		t.Errorf("New(nil) = %v, want a validation error", err)
	}
}

func TestAddValidation(t *testing.T) {
	p := pool.New(1, 10)
	defer p.Shutdown()

	s, err := New(p)
	testutil.AssertNoError(t, err)

	_, err = s.Add("", pool.TaskFunc(func() any { return nil }))
	testutil.AssertError(t, err)

	_, err = s.Add("@hourly", nil)
	testutil.AssertError(t, err)

	_, err = s.Add("not a cron spec", pool.TaskFunc(func() any { return nil }))
	testutil.AssertError(t, err)
}

func TestFireSubmits(t *testing.T) {
	p := pool.New(1, 10)
	defer p.Shutdown()

	s, err := NewWithConfig(Config{
		Pool: p,
		Name: "test_sched",
		Metrics: metrics.Config{
			Enabled:  true,
			Registry: prometheus.NewRegistry(),
		},
	})
	testutil.AssertNoError(t, err)

	var executed int32
	s.fire(pool.TaskFunc(func() any {
		atomic.AddInt32(&executed, 1)
		return nil
	}))

	testutil.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == 1
	}, "fired task never executed")
	testutil.AssertEqual(t, promtest.ToFloat64(s.registry.ScheduleFires.WithLabelValues("test_sched")), 1)
}

func TestFireRejectedByFullQueue(t *testing.T) {
	p := pool.New(1, 1)
	gate := make(chan struct{})
	defer func() {
		close(gate)
		p.Shutdown()
	}()

	// Pin the worker, then fill the only queue slot.
	testutil.AssertNoError(t, p.Submit(pool.TaskFunc(func() any { <-gate; return nil })))
	testutil.Eventually(t, func() bool {
		return p.IdleWorkers() == 0 && p.QueueDepth() == 0
	}, "worker never pinned")
	testutil.AssertNoError(t, p.Submit(pool.TaskFunc(func() any { <-gate; return nil })))

	var rejected int32
	s, err := NewWithConfig(Config{
		Pool: p,
		Name: "test_sched",
		OnReject: func(err error) {
			if errors.Is(err, tperrors.ErrCapacityExceeded) {
				atomic.AddInt32(&rejected, 1)
			}
		},
		Metrics: metrics.Config{
			Enabled:  true,
			Registry: prometheus.NewRegistry(),
		},
	})
	testutil.AssertNoError(t, err)

	s.fire(pool.TaskFunc(func() any { return nil }))

	testutil.AssertEqual(t, atomic.LoadInt32(&rejected), int32(1))
	testutil.AssertEqual(t, promtest.ToFloat64(s.registry.ScheduleRejected.WithLabelValues("test_sched")), 1)
}

func TestScheduledFiring(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping cron timing test in short mode")
	}

	p := pool.New(2, 10)
	defer p.Shutdown()

	s, err := NewWithConfig(Config{Pool: p, WithSeconds: true})
	testutil.AssertNoError(t, err)

	var fires int32
	id, err := s.Add("@every 1s", pool.TaskFunc(func() any {
		atomic.AddInt32(&fires, 1)
		return nil
	}))
	testutil.AssertNoError(t, err)

	s.Start()
	defer s.Stop()

	testutil.Eventually(t, func() bool {
		return atomic.LoadInt32(&fires) >= 1
	}, "cron entry never fired")

	s.Remove(id)
	testutil.AssertEqual(t, len(s.Entries()), 0)

	// No further fires after removal.
	count := atomic.LoadInt32(&fires)
	time.Sleep(1200 * time.Millisecond)
	if got := atomic.LoadInt32(&fires); got > count+1 {
		t.Errorf("fires after removal: %d, want at most one in flight", got-count)
	}
}
