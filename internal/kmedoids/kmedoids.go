package kmedoids

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/tweetclust/model"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidConfig is returned when the fit configuration cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError describes the offending configuration field.
type ConfigError struct {
	Field string
	Value int
	Limit int // upper bound, only set for k > documents
}

func (e *ConfigError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("%v: %s %d exceeds %d available documents", ErrInvalidConfig, e.Field, e.Value, e.Limit)
	}
	return fmt.Sprintf("%v: %s must be positive, got %d", ErrInvalidConfig, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Status is the terminal (or current) state of a fit.
type Status int

const (
	StatusUninitialized Status = iota
	StatusIterating
	StatusConverged
	StatusCapReached
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusIterating:
		return "iterating"
	case StatusConverged:
		return "converged"
	case StatusCapReached:
		return "cap-reached"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Member is a document index routed to a cluster and its distance to the
// centroid it was assigned to.
type Member struct {
	Doc      int
	Distance float64
}

// Assignment is dense over cluster labels: Assignment[label] lists the
// members of that label, and an empty slice marks a label nobody was routed to.
type Assignment [][]Member

// Size returns the number of assigned documents.
func (a Assignment) Size() int {
	n := 0
	for _, members := range a {
		n += len(members)
	}
	return n
}

// State is the value threaded through the fit loop.
type State struct {
	Iteration int
	// Centroids are document indices, position = cluster label.
	Centroids []int
	// Previous are the centroids the current Assignment was computed against.
	Previous   []int
	Assignment Assignment
	Status     Status
}

// IterationFunc observes each completed iteration.
type IterationFunc func(s State, elapsed time.Duration)

// Config holds the fit parameters.
type Config struct {
	K             int
	MaxIterations int
	// Workers bounds the goroutines used inside one iteration.
	// If 0, defaults to GOMAXPROCS.
	Workers int
	// Rand drives the initial draw and the disjoint-vocabulary fallback.
	// Required.
	Rand *rand.Rand
	// InitialCentroids replaces the random initial draw when set.
	InitialCentroids []int
	// History keeps a copy of every iteration's State in the Result.
	History     bool
	OnIteration IterationFunc
}

// Validate checks the configuration against a corpus of n documents.
func (c Config) Validate(n int) error {
	if c.K <= 0 {
		return &ConfigError{Field: "k", Value: c.K}
	}
	if c.MaxIterations <= 0 {
		return &ConfigError{Field: "max iterations", Value: c.MaxIterations}
	}
	if c.K > n {
		return &ConfigError{Field: "k", Value: c.K, Limit: n}
	}
	if c.Rand == nil {
		return fmt.Errorf("%w: random source is nil", ErrInvalidConfig)
	}
	if c.InitialCentroids != nil {
		if len(c.InitialCentroids) == 0 || len(c.InitialCentroids) > c.K {
			return fmt.Errorf("%w: %d initial centroids for k=%d", ErrInvalidConfig, len(c.InitialCentroids), c.K)
		}
		for _, idx := range c.InitialCentroids {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: initial centroid %d out of range [0,%d)", ErrInvalidConfig, idx, n)
			}
		}
	}
	return nil
}

func (c Config) initialCentroids(n int) []int {
	if c.InitialCentroids != nil {
		return slices.Clone(c.InitialCentroids)
	}
	return InitCentroids(c.Rand, n, c.K)
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// InitCentroids draws k random indices in [0,n). A duplicate draw is
// discarded without retry, so fewer than k indices may be returned.
func InitCentroids(rng *rand.Rand, n, k int) []int {
	drawn := make(map[int]struct{}, k)
	centroids := make([]int, 0, k)

	for range k {
		idx := rng.Intn(n)
		if _, ok := drawn[idx]; ok {
			continue
		}
		drawn[idx] = struct{}{}
		centroids = append(centroids, idx)
	}

	return centroids
}

// grainSize splits n items into chunks of reasonable size per worker.
func grainSize(n, workers int) int {
	const minGrain = 16
	grain := n / (workers * 4)
	if grain < minGrain {
		return minGrain
	}
	return grain
}

// Assign routes every document to its nearest centroid and returns a new
// assignment over k labels. Documents sharing no token with any centroid
// are sent to a uniformly random label in [0,k).
func Assign(ctx context.Context, c *Corpus, centroids []int, k int, rng *rand.Rand, workers int) (Assignment, error) {
	if len(centroids) == 0 {
		return nil, fmt.Errorf("%w: no centroids to assign against", ErrInvalidConfig)
	}
	if workers <= 0 {
		workers = 1
	}

	n := c.Len()
	best := make([]int, n)
	minDist := make([]float64, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	grain := grainSize(n, workers)
	for start := 0; start < n; start += grain {
		end := min(start+grain, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				pos, d, err := c.nearest(i, centroids)
				if err != nil {
					return fmt.Errorf("assign document %d: %w", i, err)
				}
				best[i] = pos
				minDist[i] = d
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Random fallbacks are drawn in document order so a seeded source
	// yields the same assignment for any worker count.
	a := make(Assignment, k)
	for i := range a {
		a[i] = []Member{}
	}
	for i := range n {
		label := best[i]
		if minDist[i] == 1 {
			label = rng.Intn(k)
		}
		a[label] = append(a[label], Member{Doc: i, Distance: minDist[i]})
	}

	return a, nil
}

// Medoid returns the member whose summed distance to all other members is
// minimal. Each pair is evaluated once. Ties keep the earlier member.
func Medoid(ctx context.Context, c *Corpus, members []Member) (int, error) {
	m := len(members)
	if m == 0 {
		return -1, errors.New("medoid of empty cluster")
	}
	if m == 1 {
		return members[0].Doc, nil
	}

	sums := make([]float64, m)
	for i := 0; i < m; i++ {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		for j := i + 1; j < m; j++ {
			d, err := c.Distance(members[i].Doc, members[j].Doc)
			if err != nil {
				return -1, err
			}
			sums[i] += d
			sums[j] += d
		}
	}

	best := 0
	for i := 1; i < m; i++ {
		if sums[i] < sums[best] {
			best = i
		}
	}

	return members[best].Doc, nil
}

// Update recomputes one medoid per non-empty cluster, in ascending label
// order. Clusters are processed concurrently.
func Update(ctx context.Context, c *Corpus, a Assignment, workers int) ([]int, error) {
	if workers <= 0 {
		workers = 1
	}

	medoids := make([]int, len(a))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for label, members := range a {
		if len(members) == 0 {
			medoids[label] = -1
			continue
		}
		g.Go(func() error {
			m, err := Medoid(gctx, c, members)
			if err != nil {
				return fmt.Errorf("update cluster %d: %w", label, err)
			}
			medoids[label] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	centroids := make([]int, 0, len(a))
	for _, m := range medoids {
		if m >= 0 {
			centroids = append(centroids, m)
		}
	}

	return centroids, nil
}

// Converged reports whether both centroid lists are non-empty, equally long
// and element-wise identical token sequences.
func Converged(previous, current []model.Document) bool {
	if len(previous) == 0 || len(current) == 0 {
		return false
	}
	if len(previous) != len(current) {
		return false
	}
	for i := range current {
		if !previous[i].Equal(current[i]) {
			return false
		}
	}
	return true
}

// SSE sums the squared member distances of an assignment.
func SSE(a Assignment) float64 {
	var sse float64
	for _, members := range a {
		for _, m := range members {
			sse += m.Distance * m.Distance
		}
	}
	return sse
}

// Step runs one assignment and one medoid update on top of s.
// s is not modified.
func Step(ctx context.Context, c *Corpus, s State, cfg Config) (State, error) {
	workers := cfg.workers()

	a, err := Assign(ctx, c, s.Centroids, cfg.K, cfg.Rand, workers)
	if err != nil {
		return s, err
	}

	next, err := Update(ctx, c, a, workers)
	if err != nil {
		return s, err
	}

	return State{
		Iteration:  s.Iteration + 1,
		Centroids:  next,
		Previous:   s.Centroids,
		Assignment: a,
		Status:     StatusIterating,
	}, nil
}

// Result is the outcome of a completed fit.
type Result struct {
	State
	History []State

	sseOnce sync.Once
	sse     float64
}

// SSE returns the sum of squared errors of the last assignment pass.
// It is computed on first use and cached.
func (r *Result) SSE() float64 {
	r.sseOnce.Do(func() {
		r.sse = SSE(r.Assignment)
	})
	return r.sse
}

// Fit draws initial centroids and iterates until the centroids stop
// changing or the iteration cap is reached.
func Fit(ctx context.Context, c *Corpus, cfg Config) (*Result, error) {
	if err := cfg.Validate(c.Len()); err != nil {
		return nil, err
	}

	s := State{
		Centroids: cfg.initialCentroids(c.Len()),
		Status:    StatusIterating,
	}

	var history []State
	converged := false

	for s.Iteration < cfg.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		next, err := Step(ctx, c, s, cfg)
		if err != nil {
			return nil, err
		}
		s = next

		if cfg.History {
			history = append(history, s)
		}
		if cfg.OnIteration != nil {
			cfg.OnIteration(s, time.Since(start))
		}

		if Converged(c.Documents(s.Previous), c.Documents(s.Centroids)) {
			converged = true
			break
		}
	}

	if converged {
		s.Status = StatusConverged
	} else {
		s.Status = StatusCapReached
	}

	return &Result{
		State:   s,
		History: history,
	}, nil
}
