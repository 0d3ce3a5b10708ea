package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()

	r, err := NewRecorder(reg)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	if r.loads == nil || r.problems == nil || r.duration == nil {
		t.Fatal("NewRecorder() left collectors nil")
	}
}

func TestRecorder_ObserveLoad(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	r.ObserveLoad(OutcomeOK, time.Millisecond)
	r.ObserveLoad(OutcomeOK, time.Millisecond)
	r.ObserveLoad(OutcomeInvalid, time.Millisecond)

	if got := testutil.ToFloat64(r.loads.WithLabelValues(OutcomeOK)); got != 2 {
		t.Errorf("loads{ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.loads.WithLabelValues(OutcomeInvalid)); got != 1 {
		t.Errorf("loads{invalid} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(r.duration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestRecorder_ObserveProblem(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	r.ObserveProblem("name", "missing")
	r.ObserveProblem("address", "missing")
	r.ObserveProblem("name", "missing")

	if got := testutil.ToFloat64(r.problems.WithLabelValues("name", "missing")); got != 2 {
		t.Errorf("problems{name,missing} = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(r.problems); got != 2 {
		t.Errorf("problem series = %d, want 2", got)
	}
}

func TestNewRecorder_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewRecorder(reg)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	second, err := NewRecorder(reg)
	if err != nil {
		t.Fatalf("second NewRecorder() error = %v", err)
	}

	first.ObserveLoad(OutcomeOK, 0)
	second.ObserveLoad(OutcomeOK, 0)

	if got := testutil.ToFloat64(first.loads.WithLabelValues(OutcomeOK)); got != 2 {
		t.Errorf("shared loads{ok} = %v, want 2", got)
	}
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	// Must not panic.
	r.ObserveLoad(OutcomeOK, time.Second)
	r.ObserveProblem("name", "missing")
}
