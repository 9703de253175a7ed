package testutil

import (
	"strings"
	"testing"

	"github.com/hupe1980/tweetclust/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_Reproducible(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)

	docsA, labelsA := a.TopicDocuments(40, 3, 5)
	docsB, labelsB := b.TopicDocuments(40, 3, 5)
	assert.Equal(t, docsA, docsB)
	assert.Equal(t, labelsA, labelsB)

	a.Reset()
	again, _ := a.TopicDocuments(40, 3, 5)
	assert.Equal(t, docsA, again)
	assert.Equal(t, int64(7), a.Seed())
}

func TestTopicDocuments(t *testing.T) {
	rng := NewRNG(1)
	docs, labels := rng.TopicDocuments(30, 3, 4)
	require.Len(t, docs, 30)
	require.Len(t, labels, 30)

	for i, d := range docs {
		assert.GreaterOrEqual(t, d.Len(), 2)
		assert.LessOrEqual(t, d.Len(), 5)
		prefix := "t" + string(rune('0'+labels[i])) + "w"
		assert.Equal(t, prefix+"0", d[0])
		for _, tok := range d {
			assert.True(t, strings.HasPrefix(tok, prefix), tok)
		}
	}
}

func TestDocument_FavorsLowIndexWords(t *testing.T) {
	rng := NewRNG(3)
	words := Vocabulary(0, 5)

	counts := make(map[string]int)
	for _, tok := range rng.Document(words, 2000) {
		counts[tok]++
	}
	assert.Greater(t, counts["t0w0"], counts["t0w4"])
	assert.Equal(t, model.Document{"t0w0", "t0w0"}, rng.Document(words[:1], 2))
}

func TestDuplicates(t *testing.T) {
	rng := NewRNG(2)
	docs, _ := rng.TopicDocuments(3, 1, 4)
	dup := Duplicates(docs, 2)
	require.Len(t, dup, 6)
	assert.Equal(t, docs[0], dup[1])
	assert.Equal(t, docs[2], dup[5])
}

func TestPurity(t *testing.T) {
	assert.Equal(t, 1.0, Purity([]int{0, 0, 1, 1}, []int{5, 5, 7, 7}))
	assert.Equal(t, 0.75, Purity([]int{0, 0, 1, 1}, []int{5, 7, 7, 7}))
	assert.Equal(t, 0.0, Purity(nil, nil))
}
