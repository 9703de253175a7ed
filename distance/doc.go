// Package distance provides set distance calculations for token documents.
//
// # Supported Metrics
//
//   - MetricJaccard: 1 - |A∩B| / |A∪B| over token sets (default)
//
// Token sets are roaring bitmaps of interned token ids (see model.Vocabulary),
// so intersection and union sizes come straight from bitmap cardinalities.
//
// # Usage
//
//	vocab := model.NewVocabulary()
//	d, err := distance.Jaccard(vocab.Set(a), vocab.Set(b))
//
//	// one-off comparison of raw token slices
//	d, err := distance.JaccardTokens([]string{"a", "b"}, []string{"b", "c"})
package distance
