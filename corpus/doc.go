// Package corpus loads posts from news-feed dumps into token documents.
//
// # Formats
//
//   - FormatFeed: one post per line, "id|Thu Apr 09 01:31:50 +0000 2015|text url".
//     Malformed lines are skipped.
//   - FormatCSV: a header row followed by id, date, time, tweet, links, ...
//     columns. The text column is located by name ("tweet" by default).
//
// FormatAuto picks the format from the file extension (.txt or .csv).
//
// # Compression
//
// Files ending in .gz, .zst or .lz4 are decompressed on the fly
// (gzip and zstd via klauspost/compress, lz4 via pierrec/lz4). Plain files
// are memory-mapped.
//
// # Usage
//
//	records, err := corpus.LoadDir(ctx, "dataset/original")
//	docs := corpus.Documents(records)
package corpus
