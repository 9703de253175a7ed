package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/tweetclust/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// Vocabulary returns size distinct tokens for topic, e.g. "t2w5".
func Vocabulary(topic, size int) []string {
	words := make([]string, size)
	for i := range words {
		words[i] = fmt.Sprintf("t%dw%d", topic, i)
	}
	return words
}

// Document draws length tokens from words with Zipfian frequencies,
// so low-index words are shared by most documents.
func (r *RNG) Document(words []string, length int) model.Document {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := make(model.Document, length)
	for i := range doc {
		doc[i] = words[r.zipfLocked(len(words), 1.0)]
	}
	return doc
}

// TopicDocuments generates num documents spread round-robin over topics
// disjoint vocabularies of vocabSize words each. Every document starts with
// its topic's first word, so documents of one topic always overlap.
// labels[i] is the topic of docs[i].
func (r *RNG) TopicDocuments(num, topics, vocabSize int) (docs []model.Document, labels []int) {
	vocabs := make([][]string, topics)
	for t := range vocabs {
		vocabs[t] = Vocabulary(t, vocabSize)
	}

	docs = make([]model.Document, num)
	labels = make([]int, num)
	for i := range num {
		t := i % topics
		docs[i] = append(model.Document{vocabs[t][0]}, r.Document(vocabs[t], 1+r.Intn(4))...)
		labels[i] = t
	}

	return docs, labels
}

// Duplicates returns copies copies of each document, in order.
func Duplicates(docs []model.Document, copies int) []model.Document {
	out := make([]model.Document, 0, len(docs)*copies)
	for _, d := range docs {
		for range copies {
			out = append(out, d.Clone())
		}
	}
	return out
}

// Purity is the fraction of documents whose cluster's majority topic
// matches their own. clusters[i] and labels[i] belong to the same document.
func Purity(clusters, labels []int) float64 {
	if len(clusters) == 0 {
		return 0
	}

	counts := make(map[int]map[int]int)
	for i, c := range clusters {
		if counts[c] == nil {
			counts[c] = make(map[int]int)
		}
		counts[c][labels[i]]++
	}

	var hits int
	for _, byTopic := range counts {
		best := 0
		for _, n := range byTopic {
			best = max(best, n)
		}
		hits += best
	}

	return float64(hits) / float64(len(clusters))
}
