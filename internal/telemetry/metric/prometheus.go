package metric

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "envconfig"

// Load outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeReadError   = "read_error"
	OutcomeParseError  = "parse_error"
	OutcomeInvalid     = "invalid"
	OutcomeSchemaError = "schema_error"
)

// Recorder records assembly metrics. A nil Recorder is valid and records
// nothing.
type Recorder struct {
	loads    *prometheus.CounterVec
	problems *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	loads, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loads_total",
		Help:      "Configuration assembly runs by outcome.",
	}, []string{"outcome"}))
	if err != nil {
		return nil, err
	}

	problems, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "field_problems_total",
		Help:      "Field problems reported by failed assembly runs.",
	}, []string{"field", "category"}))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "load_duration_seconds",
		Help:      "Configuration assembly latency.",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
	}))
	if err != nil {
		return nil, err
	}

	return &Recorder{
		loads:    loads,
		problems: problems,
		duration: duration,
	}, nil
}

// register registers c, or returns the collector already registered under
// the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

// ObserveLoad records one finished run.
func (r *Recorder) ObserveLoad(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.loads.WithLabelValues(outcome).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// ObserveProblem records one field problem.
func (r *Recorder) ObserveProblem(field, category string) {
	if r == nil {
		return
	}
	r.problems.WithLabelValues(field, category).Inc()
}
