// Package tweetclust clusters short text posts with k-medoids over Jaccard distance.
//
// Each post is a bag of tokens (model.Document). A fit draws k random posts
// as initial exemplars, then alternates two steps until the exemplars stop
// changing or the iteration cap is reached:
//
//   - assignment: every post joins its nearest exemplar; posts sharing no
//     token with any exemplar join a random cluster
//   - update: every cluster's new exemplar is its medoid, the member with
//     the smallest total distance to the other members
//
// Exemplars are always real posts, never synthesized averages.
//
// # Quick Start
//
//	ctx := context.Background()
//	docs := []model.Document{
//	    preprocess.Tokenize("Breast cancer risk test devised http://bbc.in/1CimpJF"),
//	    // ...
//	}
//
//	m, _ := tweetclust.New(tweetclust.WithK(4), tweetclust.WithSeed(42))
//	if err := m.Fit(ctx, docs); err != nil {
//	    return err
//	}
//
//	centroids, _ := m.Centroids()
//	sse, _ := m.SSE()
//	fmt.Println(m.Status(), len(centroids), sse)
//
// # Choosing k
//
// The experiment package fits several models (k, k+1, ...) concurrently and
// reports the SSE per k for an elbow plot:
//
//	report, _ := experiment.Run(ctx, docs, experiment.Config{StartK: 2, Experiments: 8})
//
// # Errors
//
//   - ErrInvalidConfiguration: k or max iterations not positive, or k larger
//     than the number of documents
//   - ErrEmptyDocument: a document without tokens
//   - ErrNotFitted: results requested before a completed fit
//
// Reaching the iteration cap is a normal outcome reported by Status.
package tweetclust
