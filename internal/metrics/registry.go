package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	dto "github.com/prometheus/client_model/go"

	apperrors "github.com/agbru/pisanocalc/internal/errors"
	"github.com/agbru/pisanocalc/internal/orchestration"
)

const namespace = "pisanocalc"

// Registry owns the application's Prometheus collectors. All methods are
// safe on a nil *Registry, which records nothing.
type Registry struct {
	reg *prometheus.Registry

	periodsComputed prometheus.Counter
	periodDuration  prometheus.Histogram
	batchesStopped  prometheus.Counter
	batchSize       prometheus.Gauge
	primesGenerated prometheus.Counter
}

// NewRegistry creates a registry with the application metrics and the Go
// runtime collector.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		periodsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "periods_computed_total",
			Help:      "Number of Pisano periods computed.",
		}),
		periodDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "period_duration_seconds",
			Help:      "Time spent searching for a single Pisano period.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		batchesStopped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_stopped_total",
			Help:      "Number of period batches that ended before processing every prime.",
		}),
		batchSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of primes submitted in the last period batch.",
		}),
		primesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "primes_generated_total",
			Help:      "Number of primes produced by the sieve.",
		}),
	}
	r.reg.MustRegister(
		r.periodsComputed,
		r.periodDuration,
		r.batchesStopped,
		r.batchSize,
		r.primesGenerated,
		collectors.NewGoCollector(),
	)
	return r
}

// ObservePeriod records one computed period.
func (r *Registry) ObservePeriod(_ uint64, d time.Duration) {
	if r == nil {
		return
	}
	r.periodsComputed.Inc()
	r.periodDuration.Observe(d.Seconds())
}

// ObserveBatch records the outcome of a finished batch.
func (r *Registry) ObserveBatch(b orchestration.BatchResult) {
	if r == nil {
		return
	}
	r.batchSize.Set(float64(b.Total))
	if b.Stopped {
		r.batchesStopped.Inc()
	}
}

// ObservePrimes records the size of a generated prime list.
func (r *Registry) ObservePrimes(n int) {
	if r == nil {
		return
	}
	r.primesGenerated.Add(float64(n))
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.reg
}

// WriteTextfile writes every metric to path in the text exposition format
// read by node_exporter's textfile collector. The file is replaced
// atomically.
func (r *Registry) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return apperrors.FileError{Op: "write metrics to", Path: path, Cause: err}
	}
	return nil
}

// Value returns the current value of the counter or gauge named name
// (including the namespace prefix), or of a histogram's sample count.
func (r *Registry) Value(name string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	families, err := r.reg.Gather()
	if err != nil {
		return 0, false
	}
	for _, mf := range families {
		if mf.GetName() != name || len(mf.GetMetric()) == 0 {
			continue
		}
		return metricValue(mf.GetType(), mf.GetMetric()[0])
	}
	return 0, false
}

func metricValue(t dto.MetricType, m *dto.Metric) (float64, bool) {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue(), true
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue(), true
	case dto.MetricType_HISTOGRAM:
		return float64(m.GetHistogram().GetSampleCount()), true
	}
	return 0, false
}
