// Package promcollector exports fit and sweep metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	m, _ := tweetclust.New(tweetclust.WithMetricsCollector(promcollector.New(reg)))
package promcollector
