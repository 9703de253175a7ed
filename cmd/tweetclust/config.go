package main

import (
	"fmt"
	"log/slog"
	"os"

	flags "github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/tweetclust"
	"github.com/hupe1980/tweetclust/corpus"
)

// Options are the command line flags. Flags that are set override the
// values of the configuration file.
type Options struct {
	ConfigFile    string `long:"config" description:"YAML configuration file"`
	K             int    `short:"k" long:"clusters" description:"Number of clusters (first k of a sweep)" default:"4"`
	MaxIterations int    `long:"max-iterations" description:"Iteration cap per fit" default:"50"`
	Experiments   int    `long:"experiments" description:"Number of consecutive k values to fit" default:"1"`
	Seed          int64  `long:"seed" description:"Random seed (default: clock)"`
	Workers       int    `long:"workers" description:"Goroutines per fit (default: GOMAXPROCS)"`
	Parallelism   int    `long:"parallelism" description:"Concurrent fits of a sweep (default: GOMAXPROCS)"`
	Format        string `long:"format" description:"Output format" choice:"text" choice:"json" default:"text"`
	InputFormat   string `long:"input-format" description:"Corpus format" choice:"auto" choice:"feed" choice:"csv" default:"auto"`
	IOLimit       int64  `long:"io-limit" description:"Corpus read limit in bytes per second (0: unlimited)"`
	LogLevel      string `long:"log-level" description:"Log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	Metrics       bool   `long:"metrics" description:"Dump Prometheus metrics to stderr on exit"`

	Args struct {
		Paths []string `positional-arg-name:"PATH" description:"Corpus files or directories"`
	} `positional-args:"yes"`
}

// Config is the resolved run configuration.
type Config struct {
	K             int      `yaml:"k"`
	MaxIterations int      `yaml:"max_iterations"`
	Experiments   int      `yaml:"experiments"`
	Seed          *int64   `yaml:"seed"`
	Workers       int      `yaml:"workers"`
	Parallelism   int      `yaml:"parallelism"`
	Format        string   `yaml:"format"`
	InputFormat   string   `yaml:"input_format"`
	IOLimit       int64    `yaml:"io_limit_bytes_per_sec"`
	LogLevel      string   `yaml:"log_level"`
	Metrics       bool     `yaml:"metrics"`
	Paths         []string `yaml:"paths"`
}

func defaultConfig() Config {
	return Config{
		K:             tweetclust.DefaultK,
		MaxIterations: tweetclust.DefaultMaxIterations,
		Experiments:   1,
		Format:        "text",
		InputFormat:   "auto",
		LogLevel:      "info",
	}
}

// LoadConfig reads a YAML file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// parseArgs parses args and resolves them against the configuration file.
func parseArgs(args []string) (Config, error) {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] PATH..."

	if _, err := parser.ParseArgs(args); err != nil {
		return Config{}, err
	}

	cfg := defaultConfig()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = LoadConfig(opts.ConfigFile); err != nil {
			return Config{}, err
		}
	}

	set := func(name string) bool {
		o := parser.FindOptionByLongName(name)
		return o != nil && o.IsSet() && !o.IsSetDefault()
	}

	if set("clusters") || cfg.K == 0 {
		cfg.K = opts.K
	}
	if set("max-iterations") || cfg.MaxIterations == 0 {
		cfg.MaxIterations = opts.MaxIterations
	}
	if set("experiments") || cfg.Experiments == 0 {
		cfg.Experiments = opts.Experiments
	}
	if set("seed") {
		seed := opts.Seed
		cfg.Seed = &seed
	}
	if set("workers") {
		cfg.Workers = opts.Workers
	}
	if set("parallelism") {
		cfg.Parallelism = opts.Parallelism
	}
	if set("format") || cfg.Format == "" {
		cfg.Format = opts.Format
	}
	if set("input-format") || cfg.InputFormat == "" {
		cfg.InputFormat = opts.InputFormat
	}
	if set("io-limit") {
		cfg.IOLimit = opts.IOLimit
	}
	if set("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Metrics {
		cfg.Metrics = true
	}
	if len(opts.Args.Paths) > 0 {
		cfg.Paths = opts.Args.Paths
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if len(c.Paths) == 0 {
		return fmt.Errorf("no corpus path given")
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	if _, err := corpus.ParseFormat(c.InputFormat); err != nil {
		return err
	}
	if _, err := c.level(); err != nil {
		return err
	}
	if c.K <= 0 {
		return &tweetclust.ConfigError{Field: "k", Value: c.K}
	}
	if c.MaxIterations <= 0 {
		return &tweetclust.ConfigError{Field: "max iterations", Value: c.MaxIterations}
	}
	if c.Experiments <= 0 {
		return &tweetclust.ConfigError{Field: "experiments", Value: c.Experiments}
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}
