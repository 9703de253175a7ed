package promcollector

import (
	"strconv"
	"time"

	"github.com/hupe1980/tweetclust"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeConverged  = "converged"
	outcomeCapReached = "cap_reached"
	outcomeError      = "error"
)

var _ tweetclust.MetricsCollector = (*Collector)(nil)

// Collector implements tweetclust.MetricsCollector on Prometheus metrics.
type Collector struct {
	fits             *prometheus.CounterVec
	fitLatency       *prometheus.HistogramVec
	fitIterations    prometheus.Histogram
	iterationLatency *prometheus.HistogramVec
	sweeps           prometheus.Counter
	sweepExperiments prometheus.Counter
	sweepFailed      prometheus.Counter
	sweepLatency     prometheus.Histogram
}

type options struct {
	namespace string
}

// Option configures a Collector.
type Option func(*options)

// WithNamespace prefixes all metric names. Default: "tweetclust".
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// New creates a Collector and registers its metrics with reg.
// A nil reg leaves the metrics unregistered.
func New(reg prometheus.Registerer, optFns ...Option) *Collector {
	o := options{namespace: "tweetclust"}
	for _, fn := range optFns {
		fn(&o)
	}

	f := promauto.With(reg)

	return &Collector{
		fits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "fits_total",
			Help:      "Number of completed fits by outcome.",
		}, []string{"k", "outcome"}),
		fitLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "fit_duration_seconds",
			Help:      "Wall time of a fit.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"k"}),
		fitIterations: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "fit_iterations",
			Help:      "Iterations run by successful fits.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 89},
		}),
		iterationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "iteration_duration_seconds",
			Help:      "Wall time of one assignment and update pass.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"k"}),
		sweeps: f.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "sweeps_total",
			Help:      "Number of experiment sweeps.",
		}),
		sweepExperiments: f.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "sweep_experiments_total",
			Help:      "Fits requested by experiment sweeps.",
		}),
		sweepFailed: f.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "sweep_failed_experiments_total",
			Help:      "Fits of experiment sweeps that failed.",
		}),
		sweepLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Wall time of an experiment sweep.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}
}

// RecordFit implements tweetclust.MetricsCollector.
func (c *Collector) RecordFit(k, iterations int, converged bool, duration time.Duration, err error) {
	label := strconv.Itoa(k)

	outcome := outcomeCapReached
	switch {
	case err != nil:
		outcome = outcomeError
	case converged:
		outcome = outcomeConverged
	}

	c.fits.WithLabelValues(label, outcome).Inc()
	c.fitLatency.WithLabelValues(label).Observe(duration.Seconds())
	if err == nil {
		c.fitIterations.Observe(float64(iterations))
	}
}

// RecordIteration implements tweetclust.MetricsCollector.
func (c *Collector) RecordIteration(k int, duration time.Duration) {
	c.iterationLatency.WithLabelValues(strconv.Itoa(k)).Observe(duration.Seconds())
}

// RecordSweep implements tweetclust.MetricsCollector.
func (c *Collector) RecordSweep(experiments, failed int, duration time.Duration) {
	c.sweeps.Inc()
	c.sweepExperiments.Add(float64(experiments))
	c.sweepFailed.Add(float64(failed))
	c.sweepLatency.Observe(duration.Seconds())
}
