// Package experiment runs the elbow-method sweep: one independent fit per
// cluster count k over the same corpus, reporting the SSE of each.
//
//	report, err := experiment.Run(ctx, docs, experiment.Config{
//		StartK:      2,
//		Experiments: 8,
//		Seed:        42,
//	})
//	for _, p := range report.Points {
//		fmt.Println(p.K, p.SSE)
//	}
//
// Fits run concurrently, bounded by the worker slots of a
// resource.Controller. Every fit uses its own model and random source
// seeded with Seed+k, so a report is reproducible regardless of scheduling.
package experiment
