package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tweetclust"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tweetclust.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := parseArgs([]string{"data.txt"})
	require.NoError(t, err)

	assert.Equal(t, tweetclust.DefaultK, cfg.K)
	assert.Equal(t, tweetclust.DefaultMaxIterations, cfg.MaxIterations)
	assert.Equal(t, 1, cfg.Experiments)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "auto", cfg.InputFormat)
	assert.Equal(t, []string{"data.txt"}, cfg.Paths)
}

func TestParseArgs_Flags(t *testing.T) {
	cfg, err := parseArgs([]string{
		"-k", "7", "--max-iterations", "9", "--experiments", "3",
		"--seed", "42", "--format", "json", "--input-format", "csv",
		"--metrics", "a.csv", "b.csv",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.K)
	assert.Equal(t, 9, cfg.MaxIterations)
	assert.Equal(t, 3, cfg.Experiments)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "csv", cfg.InputFormat)
	assert.True(t, cfg.Metrics)
	assert.Equal(t, []string{"a.csv", "b.csv"}, cfg.Paths)
}

func TestParseArgs_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
k: 6
max_iterations: 20
seed: 3
format: json
log_level: debug
paths:
  - dataset
`)

	cfg, err := parseArgs([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.K)
	assert.Equal(t, 20, cfg.MaxIterations)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(3), *cfg.Seed)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"dataset"}, cfg.Paths)

	// flags that are set win over the file
	cfg, err = parseArgs([]string{"--config", path, "-k", "2", "other"})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.K)
	assert.Equal(t, 20, cfg.MaxIterations)
	assert.Equal(t, []string{"other"}, cfg.Paths)
}

func TestParseArgs_Errors(t *testing.T) {
	_, err := parseArgs([]string{})
	assert.Error(t, err)

	_, err = parseArgs([]string{"-k", "0", "data.txt"})
	assert.ErrorIs(t, err, tweetclust.ErrInvalidConfiguration)

	_, err = parseArgs([]string{"--config", writeConfig(t, "k: [")})
	assert.Error(t, err)

	_, err = parseArgs([]string{"--config", writeConfig(t, "log_level: loud\npaths: [x]")})
	assert.Error(t, err)
}
