package tweetclust

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"
)

const (
	// DefaultK is the default number of clusters.
	DefaultK = 4
	// DefaultMaxIterations is the default iteration cap.
	DefaultMaxIterations = 50
)

type options struct {
	k                int
	maxIterations    int
	workers          int
	seed             *int64
	rng              *rand.Rand
	initialCentroids []int
	history          bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Model.
type Option func(*options)

// WithK sets the number of clusters. Default: 4.
func WithK(k int) Option {
	return func(o *options) {
		o.k = k
	}
}

// WithMaxIterations caps the number of fit iterations. Default: 50.
// Reaching the cap is a normal outcome, not an error.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithWorkers bounds the goroutines used inside one iteration.
// If workers <= 0, GOMAXPROCS is used.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithSeed makes the initial centroid draw and the disjoint-vocabulary
// fallback reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = &seed
		o.rng = nil
	}
}

// WithRand injects the random source. The model takes ownership of rng;
// it must not be used concurrently elsewhere. Unlike WithSeed, repeated
// fits keep drawing from rng where the previous fit stopped.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
		o.seed = nil
	}
}

// WithInitialCentroids replaces the random initial draw with the documents
// at the given indices of the collection passed to Fit.
func WithInitialCentroids(indices ...int) Option {
	return func(o *options) {
		o.initialCentroids = slices.Clone(indices)
	}
}

// WithHistory records a Snapshot per iteration, see Model.History.
func WithHistory(enabled bool) Option {
	return func(o *options) {
		o.history = enabled
	}
}

// WithMetricsCollector configures a metrics collector for monitoring fits.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &tweetclust.BasicMetricsCollector{}
//	m, _ := tweetclust.New(tweetclust.WithMetricsCollector(metrics))
//	// ... fit ...
//	stats := metrics.GetStats()
//	fmt.Printf("Fits: %d, Avg latency: %dns\n", stats.FitCount, stats.FitAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for fits.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := tweetclust.NewJSONLogger(slog.LevelInfo)
//	m, _ := tweetclust.New(tweetclust.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(base options, optFns []Option) options {
	o := base
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func defaultOptions() options {
	return options{
		k:                DefaultK,
		maxIterations:    DefaultMaxIterations,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

func (o options) validate() error {
	if o.k <= 0 {
		return &ConfigError{Field: "k", Value: o.k}
	}
	if o.maxIterations <= 0 {
		return &ConfigError{Field: "max iterations", Value: o.maxIterations}
	}
	if n := len(o.initialCentroids); n > o.k {
		return &ConfigError{
			Field: "initial centroids",
			Value: n,
			cause: fmt.Errorf("invalid configuration: %d initial centroids for k=%d", n, o.k),
		}
	}
	for _, idx := range o.initialCentroids {
		if idx < 0 {
			return &ConfigError{
				Field: "initial centroids",
				Value: idx,
				cause: fmt.Errorf("invalid configuration: negative initial centroid %d", idx),
			}
		}
	}
	return nil
}

// random resolves the random source: an injected generator, a seeded one,
// or one seeded from the clock.
func (o options) random() *rand.Rand {
	switch {
	case o.rng != nil:
		return o.rng
	case o.seed != nil:
		return rand.New(rand.NewSource(*o.seed)) // nolint gosec
	default:
		return rand.New(rand.NewSource(time.Now().UnixNano())) // nolint gosec
	}
}
