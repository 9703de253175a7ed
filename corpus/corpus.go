package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/tweetclust/internal/mmap"
	"github.com/hupe1980/tweetclust/model"
	"github.com/hupe1980/tweetclust/resource"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format selects the input layout.
type Format int

const (
	FormatAuto Format = iota
	FormatFeed
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatFeed:
		return "feed"
	case FormatCSV:
		return "csv"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "auto", "feed" or "csv".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "feed", "txt":
		return FormatFeed, nil
	case "csv":
		return FormatCSV, nil
	default:
		return FormatAuto, fmt.Errorf("unknown corpus format %q", s)
	}
}

// Record is one post.
type Record struct {
	ID     string
	Time   time.Time
	Text   string
	Link   string
	Tokens model.Document
	// Source is the file the record was read from.
	Source string
}

type options struct {
	format     Format
	column     string
	controller *resource.Controller
}

// Option configures loading.
type Option func(*options)

// WithFormat forces the input format instead of detecting it from the extension.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithTextColumn sets the CSV column holding the post text. Default: "tweet".
func WithTextColumn(name string) Option {
	return func(o *options) {
		o.column = name
	}
}

// WithResourceController throttles reads through rc's IO budget.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		format: FormatAuto,
		column: "tweet",
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Documents returns the token documents of records, skipping records
// without tokens.
func Documents(records []Record) []model.Document {
	docs := make([]model.Document, 0, len(records))
	for _, r := range records {
		if r.Tokens.Empty() {
			continue
		}
		docs = append(docs, r.Tokens)
	}
	return docs
}

// LoadFile reads all records of one file.
func LoadFile(ctx context.Context, path string, optFns ...Option) ([]Record, error) {
	o := applyOptions(optFns)

	r, closeFn, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	format := o.format
	if format == FormatAuto {
		format = detect(path)
	}

	records, err := Read(ctx, resource.NewRateLimitedReader(ctx, r, o.controller), format, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	for i := range records {
		records[i].Source = path
	}
	return records, nil
}

// LoadDir reads every regular file in dir, in lexical file name order.
func LoadDir(ctx context.Context, dir string, optFns ...Option) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var records []Record
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rs, err := LoadFile(ctx, filepath.Join(dir, e.Name()), optFns...)
		if err != nil {
			return nil, err
		}
		records = append(records, rs...)
	}
	return records, nil
}

// Load reads paths, which may be files or directories.
func Load(ctx context.Context, paths []string, optFns ...Option) ([]Record, error) {
	var records []Record
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		var rs []Record
		if fi.IsDir() {
			rs, err = LoadDir(ctx, p, optFns...)
		} else {
			rs, err = LoadFile(ctx, p, optFns...)
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rs...)
	}
	return records, nil
}

// Read parses records from r. FormatAuto is treated as FormatFeed.
func Read(ctx context.Context, r io.Reader, format Format, optFns ...Option) ([]Record, error) {
	o := applyOptions(optFns)
	switch format {
	case FormatCSV:
		return readCSV(ctx, r, o.column)
	case FormatAuto, FormatFeed:
		return readFeed(ctx, r)
	default:
		return nil, fmt.Errorf("unsupported format %v", format)
	}
}

func compression(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gz", ".zst", ".lz4":
		return ext
	default:
		return ""
	}
}

func detect(path string) Format {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if compression(path) == "" {
		base = path
	}
	if strings.EqualFold(filepath.Ext(base), ".csv") {
		return FormatCSV
	}
	return FormatFeed
}

func open(path string) (io.Reader, func() error, error) {
	if compression(path) == "" {
		m, err := mmap.Open(path)
		if err != nil {
			return nil, nil, err
		}
		_ = m.Advise(mmap.AccessSequential)
		return m.Reader(), m.Close, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	switch compression(path) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		return gz, func() error {
			gz.Close()
			return f.Close()
		}, nil
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("zstd %s: %w", path, err)
		}
		return dec, func() error {
			dec.Close()
			return f.Close()
		}, nil
	default:
		return lz4.NewReader(f), f.Close, nil
	}
}
