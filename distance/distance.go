package distance

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrEmptyDocument is returned when both token sets are empty.
var ErrEmptyDocument = errors.New("empty document")

// Jaccard calculates the Jaccard distance between two token sets.
// The result lies in [0, 1]: 0 for identical vocabularies, 1 for disjoint ones.
func Jaccard(a, b *roaring.Bitmap) (float64, error) {
	union := a.OrCardinality(b)
	if union == 0 {
		return 0, ErrEmptyDocument
	}
	inter := a.AndCardinality(b)
	return 1 - float64(inter)/float64(union), nil
}

// JaccardTokens calculates the Jaccard distance between two token slices.
// Duplicate tokens collapse; order is irrelevant.
func JaccardTokens(a, b []string) (float64, error) {
	ids := make(map[string]uint32, len(a)+len(b))
	toSet := func(tokens []string) *roaring.Bitmap {
		rb := roaring.New()
		for _, t := range tokens {
			id, ok := ids[t]
			if !ok {
				id = uint32(len(ids))
				ids[t] = id
			}
			rb.Add(id)
		}
		return rb
	}
	return Jaccard(toSet(a), toSet(b))
}

// Metric represents the distance metric used for document comparison.
type Metric int

const (
	MetricJaccard Metric = iota
)

func (m Metric) String() string {
	switch m {
	case MetricJaccard:
		return "Jaccard"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation on token sets.
type Func func(a, b *roaring.Bitmap) (float64, error)

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricJaccard:
		return Jaccard, nil
	default:
		return nil, fmt.Errorf("unsupported metric for token sets: %v", m)
	}
}
