package kmedoids

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/tweetclust/distance"
	"github.com/hupe1980/tweetclust/model"
)

// EmptyDocumentError reports a document without tokens.
type EmptyDocumentError struct {
	Index int
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("document %d has no tokens", e.Index)
}

func (e *EmptyDocumentError) Unwrap() error { return distance.ErrEmptyDocument }

// Corpus is the read-only input of a fit: the documents and their token sets.
type Corpus struct {
	docs []model.Document
	sets []*roaring.Bitmap
	dist distance.Func
}

// NewCorpus interns the tokens of docs into a fresh vocabulary.
// It fails with an *EmptyDocumentError on the first document without tokens.
func NewCorpus(docs []model.Document) (*Corpus, error) {
	vocab := model.NewVocabulary()
	sets := make([]*roaring.Bitmap, len(docs))
	for i, d := range docs {
		if d.Empty() {
			return nil, &EmptyDocumentError{Index: i}
		}
		sets[i] = vocab.Set(d)
	}

	dist, err := distance.Provider(distance.MetricJaccard)
	if err != nil {
		return nil, err
	}

	return &Corpus{
		docs: docs,
		sets: sets,
		dist: dist,
	}, nil
}

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.docs) }

// Document returns the i-th document.
func (c *Corpus) Document(i int) model.Document { return c.docs[i] }

// Documents resolves document indices.
func (c *Corpus) Documents(indices []int) []model.Document {
	if indices == nil {
		return nil
	}
	out := make([]model.Document, len(indices))
	for i, idx := range indices {
		out[i] = c.docs[idx]
	}
	return out
}

// Distance returns the Jaccard distance between documents i and j.
func (c *Corpus) Distance(i, j int) (float64, error) {
	return c.dist(c.sets[i], c.sets[j])
}

// nearest scans centroids in order and returns the position of the closest
// one. An exact token-sequence match wins immediately with distance 0;
// otherwise only a strictly smaller distance replaces the current best.
func (c *Corpus) nearest(doc int, centroids []int) (int, float64, error) {
	best := -1
	minDist := math.Inf(1)

	for pos, ci := range centroids {
		if c.docs[ci].Equal(c.docs[doc]) {
			return pos, 0, nil
		}

		d, err := c.Distance(ci, doc)
		if err != nil {
			return -1, 0, err
		}
		if d < minDist {
			minDist = d
			best = pos
		}
	}

	return best, minDist, nil
}
