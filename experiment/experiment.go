package experiment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/tweetclust"
	"github.com/hupe1980/tweetclust/codec"
	"github.com/hupe1980/tweetclust/model"
	"github.com/hupe1980/tweetclust/resource"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called after every finished fit. Calls are serialized.
type ProgressFunc func(done, total int)

// Config describes a sweep over k in [StartK, StartK+Experiments).
type Config struct {
	StartK        int
	Experiments   int
	MaxIterations int
	Seed          int64

	// Parallelism bounds the number of concurrent fits when Controller is nil.
	// If 0, defaults to GOMAXPROCS.
	Parallelism int
	// Workers bounds the goroutines inside one fit. If 0, 1 is used so the
	// sweep itself is the unit of parallelism.
	Workers int

	Controller *resource.Controller
	Logger     *tweetclust.Logger
	Metrics    tweetclust.MetricsCollector
	OnProgress ProgressFunc
}

func (c Config) validate(n int) error {
	if c.StartK <= 0 {
		return &tweetclust.ConfigError{Field: "start k", Value: c.StartK}
	}
	if c.Experiments <= 0 {
		return &tweetclust.ConfigError{Field: "experiments", Value: c.Experiments}
	}
	if c.MaxIterations < 0 {
		return &tweetclust.ConfigError{Field: "max iterations", Value: c.MaxIterations}
	}
	if last := c.StartK + c.Experiments - 1; last > n {
		return fmt.Errorf("%w: largest k %d exceeds %d documents", tweetclust.ErrInvalidConfiguration, last, n)
	}
	return nil
}

// Point is the outcome of the fit for one k.
type Point struct {
	K          int           `json:"k"`
	SSE        float64       `json:"sse"`
	Iterations int           `json:"iterations"`
	Converged  bool          `json:"converged"`
	Duration   time.Duration `json:"duration_ns"`
}

// Report collects the points of a sweep, sorted by k.
type Report struct {
	Documents int           `json:"documents"`
	Seed      int64         `json:"seed"`
	Points    []Point       `json:"points"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// Encode renders the report with c, or codec.Default if c is nil.
func (r *Report) Encode(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(r)
}

// Elbow returns the k where the SSE curve bends the most, measured as the
// largest second difference. ok is false with fewer than three points.
func (r *Report) Elbow() (k int, ok bool) {
	if len(r.Points) < 3 {
		return 0, false
	}

	best := 0.0
	for i := 1; i < len(r.Points)-1; i++ {
		bend := r.Points[i-1].SSE - 2*r.Points[i].SSE + r.Points[i+1].SSE
		if !ok || bend > best {
			best = bend
			k = r.Points[i].K
			ok = true
		}
	}
	return k, ok
}

// Run fits one model per k and returns their SSE. A failing fit cancels the
// remaining ones and fails the sweep.
func Run(ctx context.Context, docs []model.Document, cfg Config) (*Report, error) {
	start := time.Now()

	log := cfg.Logger
	if log == nil {
		log = tweetclust.NoopLogger()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = tweetclust.NoopMetricsCollector{}
	}

	if err := cfg.validate(len(docs)); err != nil {
		log.LogSweep(ctx, cfg.Experiments, time.Since(start), err)
		return nil, err
	}

	rc := cfg.Controller
	if rc == nil {
		rc = resource.NewController(resource.Config{MaxWorkers: int64(cfg.Parallelism)})
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	maxIterations := cfg.MaxIterations
	if maxIterations == 0 {
		maxIterations = tweetclust.DefaultMaxIterations
	}

	points := make([]Point, cfg.Experiments)

	var (
		failed   atomic.Int64
		mu       sync.Mutex
		finished int
	)

	g, gctx := errgroup.WithContext(ctx)

	for i := range cfg.Experiments {
		k := cfg.StartK + i

		if err := rc.AcquireWorker(gctx); err != nil {
			break
		}

		g.Go(func() error {
			defer rc.ReleaseWorker()

			p, err := fit(gctx, docs, k, tweetclust.WithMaxIterations(maxIterations),
				tweetclust.WithSeed(cfg.Seed+int64(k)),
				tweetclust.WithWorkers(workers),
				tweetclust.WithLogger(log),
				tweetclust.WithMetricsCollector(metrics),
			)
			if err != nil {
				failed.Add(1)
				return fmt.Errorf("k=%d: %w", k, err)
			}
			points[i] = p

			if cfg.OnProgress != nil {
				mu.Lock()
				finished++
				cfg.OnProgress(finished, cfg.Experiments)
				mu.Unlock()
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	elapsed := time.Since(start)
	log.WithCount(len(docs)).LogSweep(ctx, cfg.Experiments, elapsed, err)
	metrics.RecordSweep(cfg.Experiments, int(failed.Load()), elapsed)

	if err != nil {
		return nil, err
	}

	sort.Slice(points, func(i, j int) bool { return points[i].K < points[j].K })

	return &Report{
		Documents: len(docs),
		Seed:      cfg.Seed,
		Points:    points,
		Elapsed:   elapsed,
	}, nil
}

func fit(ctx context.Context, docs []model.Document, k int, optFns ...tweetclust.Option) (Point, error) {
	start := time.Now()

	m, err := tweetclust.New(append(optFns, tweetclust.WithK(k))...)
	if err != nil {
		return Point{}, err
	}
	if err := m.Fit(ctx, docs); err != nil {
		return Point{}, err
	}

	sse, err := m.SSE()
	if err != nil {
		return Point{}, err
	}

	return Point{
		K:          k,
		SSE:        sse,
		Iterations: m.Iterations(),
		Converged:  m.Converged(),
		Duration:   time.Since(start),
	}, nil
}
