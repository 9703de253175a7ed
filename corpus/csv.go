package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hupe1980/tweetclust/preprocess"
)

// defaultTextColumn is used when the header has no column of the configured name.
const defaultTextColumn = 3

const csvTimeLayout = "2006-01-02 15:04:05"

func readCSV(ctx context.Context, r io.Reader, column string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}

	idx := columns(header)
	textCol, ok := idx[strings.ToLower(column)]
	if !ok {
		textCol = defaultTextColumn
	}

	var records []Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		if textCol >= len(row) {
			continue
		}

		rec := Record{
			Text:   row[textCol],
			ID:     field(row, idx, "id"),
			Link:   field(row, idx, "links"),
			Tokens: preprocess.Split(row[textCol]),
		}
		if date := field(row, idx, "date"); date != "" {
			if ts, err := time.Parse(csvTimeLayout, date+" "+field(row, idx, "time")); err == nil {
				rec.Time = ts
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

func columns(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
