package model

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Document is an ordered sequence of tokens.
//
// Distance uses the token set (duplicates collapse), while Equal compares
// the full ordered sequence.
type Document []string

// NewDocument creates a document from the given tokens.
func NewDocument(tokens ...string) Document {
	return Document(slices.Clone(tokens))
}

// Len returns the number of tokens, duplicates included.
func (d Document) Len() int { return len(d) }

// Empty reports whether the document has no tokens.
func (d Document) Empty() bool { return len(d) == 0 }

// Equal reports whether both documents hold the same tokens in the same order.
func (d Document) Equal(other Document) bool {
	return slices.Equal(d, other)
}

// Clone returns a copy that does not share the backing array.
func (d Document) Clone() Document {
	return slices.Clone(d)
}

// String returns the tokens joined by a single space.
func (d Document) String() string {
	return strings.Join(d, " ")
}

// Member is a document assigned to a cluster.
type Member struct {
	Document Document
	// Distance is the Jaccard distance to the cluster's centroid at assignment time.
	Distance float64
}

// Cluster is the outcome of the last assignment pass for one label.
type Cluster struct {
	// Label is the cluster's position in the centroid list used for assignment.
	Label int
	// Centroid is the exemplar the members were assigned to. It is nil when
	// the label had no centroid (random fallback into an unused label).
	Centroid Document
	Members  []Member
}

// Size returns the number of members.
func (c Cluster) Size() int { return len(c.Members) }

// String returns a short summary of the cluster.
func (c Cluster) String() string {
	return fmt.Sprintf("Cluster(%d: %d members, centroid=%q)", c.Label, len(c.Members), c.Centroid.String())
}

// Vocabulary interns tokens to dense uint32 ids.
// It is safe for concurrent use.
type Vocabulary struct {
	mu  sync.RWMutex
	ids map[string]uint32
}

// NewVocabulary creates an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		ids: make(map[string]uint32),
	}
}

// Len returns the number of distinct tokens seen so far.
func (v *Vocabulary) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.ids)
}

// ID returns the id for token, assigning a new one if needed.
func (v *Vocabulary) ID(token string) uint32 {
	v.mu.RLock()
	id, ok := v.ids[token]
	v.mu.RUnlock()
	if ok {
		return id
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if id, ok := v.ids[token]; ok {
		return id
	}
	id = uint32(len(v.ids))
	v.ids[token] = id
	return id
}

// Set returns the token set of d as a bitmap of interned ids.
func (v *Vocabulary) Set(d Document) *roaring.Bitmap {
	rb := roaring.New()
	for _, t := range d {
		rb.Add(v.ID(t))
	}
	rb.RunOptimize()
	return rb
}
