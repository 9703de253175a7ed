package tweetclust

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/tweetclust/internal/kmedoids"
	"github.com/hupe1980/tweetclust/model"
)

// Status is the state of a Model's fit.
type Status = kmedoids.Status

const (
	StatusUninitialized = kmedoids.StatusUninitialized
	StatusIterating     = kmedoids.StatusIterating
	StatusConverged     = kmedoids.StatusConverged
	StatusCapReached    = kmedoids.StatusCapReached
)

// Snapshot is the observable state after one fit iteration.
type Snapshot struct {
	Iteration int
	// Centroids are the medoids computed at the end of the iteration.
	Centroids []model.Document
	// ClusterSizes is dense over labels [0,k).
	ClusterSizes []int
	SSE          float64
}

// Model clusters token documents around k medoids.
//
// A Model is safe for concurrent use. Fit and Reset are serialized; the
// accessors stay available while a fit runs and report StatusIterating.
// Independent models share no state, so many of them can be fitted in
// parallel.
type Model struct {
	// fitMu serializes Fit and Reset. mu guards opts and the fit state.
	fitMu sync.Mutex
	mu    sync.RWMutex

	opts options
	rng  *rand.Rand

	runID  uuid.UUID
	corpus *kmedoids.Corpus
	result *kmedoids.Result
	status Status
}

// New creates an unfitted Model.
// It returns an error matching ErrInvalidConfiguration if k or the
// iteration cap is not positive.
func New(optFns ...Option) (*Model, error) {
	o := applyOptions(defaultOptions(), optFns)
	if err := o.validate(); err != nil {
		return nil, err
	}

	return &Model{
		opts:   o,
		rng:    o.random(),
		status: StatusUninitialized,
	}, nil
}

// K returns the configured number of clusters.
func (m *Model) K() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opts.k
}

// MaxIterations returns the configured iteration cap.
func (m *Model) MaxIterations() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opts.maxIterations
}

// Fit clusters docs. Any previous result is discarded, also when Fit fails.
// A model configured WithSeed restarts its random source on every call, so
// repeated fits of the same input give the same result.
//
// Errors match ErrInvalidConfiguration (k larger than len(docs)) or
// ErrEmptyDocument (a document without tokens). Reaching the iteration cap
// is not an error; see Status.
func (m *Model) Fit(ctx context.Context, docs []model.Document) error {
	m.fitMu.Lock()
	defer m.fitMu.Unlock()

	start := time.Now()
	k := m.opts.k
	runID := uuid.New()

	if m.opts.seed != nil {
		m.rng = m.opts.random()
	}

	m.mu.Lock()
	m.runID = runID
	m.corpus = nil
	m.result = nil
	m.status = StatusUninitialized
	m.mu.Unlock()

	log := m.opts.logger.WithK(k).WithCount(len(docs)).WithRunID(runID)
	log.DebugContext(ctx, "fit started", "max_iterations", m.opts.maxIterations)

	fail := func(err error) error {
		err = translateError(err)
		m.setStatus(StatusUninitialized)
		log.LogFit(ctx, StatusUninitialized, 0, 0, err)
		m.opts.metricsCollector.RecordFit(k, 0, false, time.Since(start), err)
		return err
	}

	corpus, err := kmedoids.NewCorpus(cloneDocuments(docs))
	if err != nil {
		return fail(err)
	}

	cfg := kmedoids.Config{
		K:                k,
		MaxIterations:    m.opts.maxIterations,
		Workers:          m.opts.workers,
		Rand:             m.rng,
		InitialCentroids: m.opts.initialCentroids,
		History:          m.opts.history,
		OnIteration: func(s kmedoids.State, elapsed time.Duration) {
			if s.Iteration == 1 && len(s.Previous) < k {
				log.DebugContext(ctx, "initial draw produced fewer centroids than k",
					"centroids", len(s.Previous),
				)
			}
			log.LogIteration(ctx, s.Iteration, len(s.Centroids), elapsed)
			m.opts.metricsCollector.RecordIteration(k, elapsed)
		},
	}

	m.setStatus(StatusIterating)
	res, err := kmedoids.Fit(ctx, corpus, cfg)
	if err != nil {
		return fail(err)
	}

	m.mu.Lock()
	m.corpus = corpus
	m.result = res
	m.status = res.Status
	m.mu.Unlock()

	log.LogFit(ctx, res.Status, res.Iteration, res.SSE(), nil)
	m.opts.metricsCollector.RecordFit(k, res.Iteration, res.Status == StatusConverged, time.Since(start), nil)

	return nil
}

func (m *Model) setStatus(s Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = s
}

// Reset clears the fit result and applies optFns on top of the current
// configuration, so the model can be reused with a new k, seed, or dataset.
// On error the model is left unchanged.
func (m *Model) Reset(optFns ...Option) error {
	m.fitMu.Lock()
	defer m.fitMu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	o := applyOptions(m.opts, optFns)
	if err := o.validate(); err != nil {
		return err
	}

	if o.seed != nil || o.rng != m.opts.rng {
		m.rng = o.random()
	}
	m.opts = o
	m.corpus = nil
	m.result = nil
	m.status = StatusUninitialized

	return nil
}

// Status returns the state of the current or last fit. It is
// StatusIterating while Fit runs.
func (m *Model) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Converged reports whether the last fit stopped because the centroids
// stabilized.
func (m *Model) Converged() bool {
	return m.Status() == StatusConverged
}

// Iterations returns the number of iterations of the last fit.
func (m *Model) Iterations() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.result == nil {
		return 0
	}
	return m.result.Iteration
}

// RunID identifies the last fit in logs. It is the zero UUID before the
// first fit.
func (m *Model) RunID() uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runID
}

// Centroids returns the final medoids, ordered by cluster label.
// There may be fewer than k of them.
func (m *Model) Centroids() ([]model.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.result == nil {
		return nil, ErrNotFitted
	}
	return cloneDocuments(m.corpus.Documents(m.result.Centroids)), nil
}

// Clusters returns the last assignment pass, one entry per label in [0,k).
// Labels nobody was routed to have no members.
func (m *Model) Clusters() ([]model.Cluster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.result == nil {
		return nil, ErrNotFitted
	}

	assigned := m.result.Previous
	clusters := make([]model.Cluster, len(m.result.Assignment))
	for label, members := range m.result.Assignment {
		c := model.Cluster{
			Label:   label,
			Members: make([]model.Member, len(members)),
		}
		if label < len(assigned) {
			c.Centroid = m.corpus.Document(assigned[label]).Clone()
		}
		for i, mem := range members {
			c.Members[i] = model.Member{
				Document: m.corpus.Document(mem.Doc).Clone(),
				Distance: mem.Distance,
			}
		}
		clusters[label] = c
	}

	return clusters, nil
}

// SSE returns the sum of squared member distances of the last assignment
// pass. It fails with ErrNotFitted before a completed fit.
func (m *Model) SSE() (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.result == nil {
		return 0, ErrNotFitted
	}
	return m.result.SSE(), nil
}

// History returns one Snapshot per iteration of the last fit.
// It is empty unless the model was configured WithHistory(true).
func (m *Model) History() ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.result == nil {
		return nil, ErrNotFitted
	}

	out := make([]Snapshot, len(m.result.History))
	for i, s := range m.result.History {
		sizes := make([]int, len(s.Assignment))
		for label, members := range s.Assignment {
			sizes[label] = len(members)
		}
		out[i] = Snapshot{
			Iteration:    s.Iteration,
			Centroids:    cloneDocuments(m.corpus.Documents(s.Centroids)),
			ClusterSizes: sizes,
			SSE:          kmedoids.SSE(s.Assignment),
		}
	}

	return out, nil
}

func cloneDocuments(docs []model.Document) []model.Document {
	if docs == nil {
		return nil
	}
	out := make([]model.Document, len(docs))
	for i, d := range docs {
		out[i] = d.Clone()
	}
	return out
}
