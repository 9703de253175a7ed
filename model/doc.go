// Package model defines core types used throughout tweetclust.
//
// # Documents
//
//   - Document: ordered token sequence for one clustered post
//   - Vocabulary: interns tokens to dense ids so token sets become roaring bitmaps
//
// # Clustering Results
//
//   - Member: a document routed to a cluster together with its distance
//   - Cluster: label, centroid, and members produced by the last assignment pass
//
// Documents are compared structurally:
//
//	a := model.NewDocument("breast", "cancer", "risk")
//	b := model.NewDocument("breast", "cancer", "risk")
//	a.Equal(b) // true
package model
