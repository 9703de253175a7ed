package tweetclust

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tweetclust/model"
)

func TestBasicMetricsCollector(t *testing.T) {
	var mc BasicMetricsCollector

	mc.RecordFit(2, 3, true, 2*time.Millisecond, nil)
	mc.RecordFit(2, 50, false, 4*time.Millisecond, nil)
	mc.RecordFit(2, 0, false, 0, errors.New("boom"))
	mc.RecordIteration(2, time.Millisecond)
	mc.RecordSweep(4, 1, time.Second)

	stats := mc.GetStats()
	assert.Equal(t, int64(3), stats.FitCount)
	assert.Equal(t, int64(1), stats.FitErrors)
	assert.Equal(t, int64(1), stats.FitConverged)
	assert.Equal(t, int64(2*time.Millisecond), stats.FitAvgNanos)
	assert.Equal(t, int64(1), stats.IterationCount)
	assert.Equal(t, int64(1), stats.SweepCount)
	assert.Equal(t, int64(4), stats.SweepExperiments)
	assert.Equal(t, int64(1), stats.SweepFailed)
}

func TestBasicMetricsCollector_Empty(t *testing.T) {
	var mc BasicMetricsCollector
	assert.Equal(t, BasicMetricsStats{}, mc.GetStats())
}

func TestModel_RecordsMetrics(t *testing.T) {
	mc := &BasicMetricsCollector{}
	m, err := New(WithK(2), WithSeed(3), WithMetricsCollector(mc))
	require.NoError(t, err)

	docs := []model.Document{{"a", "b"}, {"a", "b"}, {"x", "y"}, {"x", "y"}}
	require.NoError(t, m.Fit(context.Background(), docs))

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.FitCount)
	assert.Equal(t, int64(0), stats.FitErrors)
	assert.Equal(t, int64(m.Iterations()), stats.IterationCount)

	require.Error(t, m.Fit(context.Background(), []model.Document{{"a"}, {}}))
	assert.Equal(t, int64(1), mc.GetStats().FitErrors)
}
