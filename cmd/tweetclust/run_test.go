package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tweetclust/codec"
	"github.com/hupe1980/tweetclust/experiment"
)

const feed = `1|Thu Apr 09 01:31:50 +0000 2015|ebola vaccine trial http://x.co/1
2|Thu Apr 09 01:32:50 +0000 2015|ebola vaccine trial http://x.co/2
3|Thu Apr 09 01:33:50 +0000 2015|ebola vaccine results http://x.co/3
4|Thu Apr 09 01:34:50 +0000 2015|flu season peaks http://x.co/4
5|Thu Apr 09 01:35:50 +0000 2015|flu season peaks http://x.co/5
6|Thu Apr 09 01:36:50 +0000 2015|flu season ends http://x.co/6
`

func corpusDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feed.txt"), []byte(feed), 0o600))
	return dir
}

func testConfig(t *testing.T) Config {
	cfg := defaultConfig()
	seed := int64(1)
	cfg.Seed = &seed
	cfg.K = 2
	cfg.LogLevel = "error"
	cfg.Paths = []string{corpusDir(t)}
	return cfg
}

func TestRun_SingleText(t *testing.T) {
	var stdout, stderr bytes.Buffer

	require.NoError(t, run(context.Background(), testConfig(t), &stdout, &stderr))

	out := stdout.String()
	assert.Contains(t, out, "CLUSTER")
	assert.Contains(t, out, "status=")
	assert.Equal(t, 3, strings.Count(out, "\n")-2)
}

func TestRun_SingleJSON(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = "json"

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &stdout, &stderr))

	var summary FitSummary
	require.NoError(t, codec.JSON{}.Unmarshal(stdout.Bytes(), &summary))
	assert.Equal(t, 2, summary.K)
	assert.Equal(t, 6, summary.Documents)
	assert.Len(t, summary.Clusters, 2)
	assert.Equal(t, 6, summary.Clusters[0].Size+summary.Clusters[1].Size)
}

func TestRun_SweepJSONWithMetrics(t *testing.T) {
	cfg := testConfig(t)
	cfg.K = 1
	cfg.Experiments = 3
	cfg.Format = "json"
	cfg.Metrics = true

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &stdout, &stderr))

	var report experiment.Report
	require.NoError(t, codec.JSON{}.Unmarshal(stdout.Bytes(), &report))
	require.Len(t, report.Points, 3)
	assert.Equal(t, 1, report.Points[0].K)
	assert.Equal(t, 3, report.Points[2].K)

	assert.Contains(t, stderr.String(), "tweetclust_sweeps_total 1")
	assert.Contains(t, stderr.String(), "tweetclust_fits_total")
}

func TestRun_SweepText(t *testing.T) {
	cfg := testConfig(t)
	cfg.K = 1
	cfg.Experiments = 4

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "ITERATIONS")
	assert.Contains(t, stdout.String(), "elbow at k=")
}

func TestRun_Errors(t *testing.T) {
	cfg := testConfig(t)
	cfg.K = 10

	var stdout, stderr bytes.Buffer
	assert.Error(t, run(context.Background(), cfg, &stdout, &stderr))

	cfg = testConfig(t)
	cfg.Paths = []string{filepath.Join(t.TempDir(), "missing")}
	assert.Error(t, run(context.Background(), cfg, &stdout, &stderr))
}
