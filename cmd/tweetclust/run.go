package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/hupe1980/tweetclust"
	"github.com/hupe1980/tweetclust/codec"
	"github.com/hupe1980/tweetclust/corpus"
	"github.com/hupe1980/tweetclust/experiment"
	"github.com/hupe1980/tweetclust/model"
	"github.com/hupe1980/tweetclust/promcollector"
	"github.com/hupe1980/tweetclust/resource"
)

// ClusterSummary is the JSON form of one cluster of a single fit.
type ClusterSummary struct {
	Label    int    `json:"label"`
	Centroid string `json:"centroid"`
	Size     int    `json:"size"`
}

// FitSummary is the JSON form of a single fit.
type FitSummary struct {
	RunID      string           `json:"run_id"`
	K          int              `json:"k"`
	Documents  int              `json:"documents"`
	Status     string           `json:"status"`
	Iterations int              `json:"iterations"`
	SSE        float64          `json:"sse"`
	Clusters   []ClusterSummary `json:"clusters"`
}

func run(ctx context.Context, cfg Config, stdout, stderr io.Writer) error {
	level, err := cfg.level()
	if err != nil {
		return err
	}
	logger := tweetclust.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	reg := prometheus.NewRegistry()
	metrics := promcollector.New(reg)

	rc := resource.NewController(resource.Config{
		MaxWorkers:         int64(cfg.Parallelism),
		IOLimitBytesPerSec: cfg.IOLimit,
	})

	format, err := corpus.ParseFormat(cfg.InputFormat)
	if err != nil {
		return err
	}

	start := time.Now()
	records, err := corpus.Load(ctx, cfg.Paths,
		corpus.WithFormat(format),
		corpus.WithResourceController(rc),
	)
	if err != nil {
		return err
	}
	docs := corpus.Documents(records)
	logger.WithCount(len(docs)).InfoContext(ctx, "corpus loaded",
		"records", len(records),
		"elapsed", time.Since(start),
	)

	if cfg.Experiments > 1 {
		err = sweep(ctx, cfg, docs, rc, logger, metrics, stdout)
	} else {
		err = single(ctx, cfg, docs, logger, metrics, stdout)
	}
	if err != nil {
		return err
	}

	if cfg.Metrics {
		return dumpMetrics(reg, stderr)
	}
	return nil
}

func single(ctx context.Context, cfg Config, docs []model.Document, logger *tweetclust.Logger, metrics tweetclust.MetricsCollector, w io.Writer) error {
	optFns := []tweetclust.Option{
		tweetclust.WithK(cfg.K),
		tweetclust.WithMaxIterations(cfg.MaxIterations),
		tweetclust.WithWorkers(cfg.Workers),
		tweetclust.WithLogger(logger),
		tweetclust.WithMetricsCollector(metrics),
	}
	if cfg.Seed != nil {
		optFns = append(optFns, tweetclust.WithSeed(*cfg.Seed))
	}

	m, err := tweetclust.New(optFns...)
	if err != nil {
		return err
	}
	if err := m.Fit(ctx, docs); err != nil {
		return err
	}

	clusters, err := m.Clusters()
	if err != nil {
		return err
	}
	sse, err := m.SSE()
	if err != nil {
		return err
	}

	summary := FitSummary{
		RunID:      m.RunID().String(),
		K:          m.K(),
		Documents:  len(docs),
		Status:     m.Status().String(),
		Iterations: m.Iterations(),
		SSE:        sse,
		Clusters:   make([]ClusterSummary, len(clusters)),
	}
	for i, c := range clusters {
		summary.Clusters[i] = ClusterSummary{
			Label:    c.Label,
			Centroid: c.Centroid.String(),
			Size:     c.Size(),
		}
	}

	if cfg.Format == "json" {
		return encode(w, summary)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLUSTER\tSIZE\tCENTROID")
	for _, c := range summary.Clusters {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", c.Label, c.Size, c.Centroid)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\nstatus=%s iterations=%d sse=%.4f\n", summary.Status, summary.Iterations, summary.SSE)
	return err
}

func sweep(ctx context.Context, cfg Config, docs []model.Document, rc *resource.Controller, logger *tweetclust.Logger, metrics tweetclust.MetricsCollector, w io.Writer) error {
	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	report, err := experiment.Run(ctx, docs, experiment.Config{
		StartK:        cfg.K,
		Experiments:   cfg.Experiments,
		MaxIterations: cfg.MaxIterations,
		Seed:          seed,
		Workers:       cfg.Workers,
		Controller:    rc,
		Logger:        logger,
		Metrics:       metrics,
		OnProgress: func(done, total int) {
			logger.InfoContext(ctx, "experiment finished", "done", done, "total", total)
		},
	})
	if err != nil {
		return err
	}

	if cfg.Format == "json" {
		return encode(w, report)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "K\tSSE\tITERATIONS\tCONVERGED\tDURATION")
	for _, p := range report.Points {
		fmt.Fprintf(tw, "%d\t%.4f\t%d\t%t\t%s\n", p.K, p.SSE, p.Iterations, p.Converged, p.Duration.Round(time.Millisecond))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if k, ok := report.Elbow(); ok {
		_, err = fmt.Fprintf(w, "\nelbow at k=%d\n", k)
	}
	return err
}

func encode(w io.Writer, v any) error {
	b, err := codec.Indented{Codec: codec.Default}.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func dumpMetrics(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
