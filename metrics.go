package tweetclust

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordFit is called after each fit.
	// iterations is the number of completed iterations, converged reports
	// whether the centroids stabilized before the cap, err is nil if successful.
	RecordFit(k, iterations int, converged bool, duration time.Duration, err error)

	// RecordIteration is called after each completed fit iteration.
	RecordIteration(k int, duration time.Duration)

	// RecordSweep is called after each experiment sweep.
	// experiments is the number of fits attempted, failed the number that failed.
	RecordSweep(experiments, failed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFit(int, int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(int, time.Duration)             {}
func (NoopMetricsCollector) RecordSweep(int, int, time.Duration)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FitCount            atomic.Int64
	FitErrors           atomic.Int64
	FitConverged        atomic.Int64
	FitTotalNanos       atomic.Int64
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	SweepCount          atomic.Int64
	SweepExperiments    atomic.Int64
	SweepFailed         atomic.Int64
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(k, iterations int, converged bool, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FitErrors.Add(1)
		return
	}
	if converged {
		b.FitConverged.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(k int, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
}

// RecordSweep implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSweep(experiments, failed int, duration time.Duration) {
	b.SweepCount.Add(1)
	b.SweepExperiments.Add(int64(experiments))
	b.SweepFailed.Add(int64(failed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FitCount:          b.FitCount.Load(),
		FitErrors:         b.FitErrors.Load(),
		FitConverged:      b.FitConverged.Load(),
		FitAvgNanos:       avgNanos(b.FitTotalNanos.Load(), b.FitCount.Load()),
		IterationCount:    b.IterationCount.Load(),
		IterationAvgNanos: avgNanos(b.IterationTotalNanos.Load(), b.IterationCount.Load()),
		SweepCount:        b.SweepCount.Load(),
		SweepExperiments:  b.SweepExperiments.Load(),
		SweepFailed:       b.SweepFailed.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FitCount          int64
	FitErrors         int64
	FitConverged      int64
	FitAvgNanos       int64
	IterationCount    int64
	IterationAvgNanos int64
	SweepCount        int64
	SweepExperiments  int64
	SweepFailed       int64
}
