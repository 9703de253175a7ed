// Package kmedoids implements exemplar-based clustering of token documents.
//
// Centroids are always real documents (medoids) chosen to minimize the total
// Jaccard distance to the other members of their cluster. The fit loop is
// expressed as pure steps over an explicit State, so callers can inspect the
// full iteration history:
//
//	corpus, _ := kmedoids.NewCorpus(docs)
//	res, _ := kmedoids.Fit(ctx, corpus, kmedoids.Config{K: 4, MaxIterations: 50, Rand: rng})
//	fmt.Println(res.Status, res.SSE())
//
// Assignment is parallel per document chunk and the medoid update is parallel
// per cluster; iterations themselves are strictly sequential.
package kmedoids
