// Package testutil provides testing utilities for tweetclust.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for synthetic
// corpora with a known topic structure.
//
// # Synthetic Corpora
//
//	rng := testutil.NewRNG(seed)
//	docs, labels := rng.TopicDocuments(200, 4, 6)
//
// Every topic owns a disjoint vocabulary, so documents of different topics
// are at Jaccard distance 1 from each other.
package testutil
