package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/tweetclust/model"
	"github.com/hupe1980/tweetclust/resource"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feed = `585978391360221184|Thu Apr 09 01:31:50 +0000 2015|Breast cancer risk test devised http://bbc.in/1CimpJF
garbage line without separators
585947808772960257|not a date|Workplace wellness schemes http://bbc.in/1BfGXie
585947807816650752|Thu Apr 09 00:30:35 +0000 2015|RT @NBCNews: #Ebola vaccine trial begins http://nbcnews.to/x

585866060991078401|Wed Apr 08 19:05:50 +0000 2015|http://bbc.in/1E6XmXL
`

const table = `id,date,time,tweet,links
1,2015-04-09,01:31:50,breast cancer risk test devised,http://bbc.in/1CimpJF
2,2015-04-09,00:30:35,ebola vaccine trial begins,http://nbcnews.to/x
3,2015-04-08,19:05:50,,http://bbc.in/1E6XmXL
`

func writeFile(t *testing.T, dir, name string, write func(f *os.File)) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	write(f)
	require.NoError(t, f.Close())
	return path
}

func plain(content string) func(f *os.File) {
	return func(f *os.File) {
		_, err := f.WriteString(content)
		if err != nil {
			panic(err)
		}
	}
}

func TestParseFeedLine(t *testing.T) {
	rec, ok := ParseFeedLine("585978391360221184|Thu Apr 09 01:31:50 +0000 2015|Breast cancer risk test devised http://bbc.in/1CimpJF")
	require.True(t, ok)

	assert.Equal(t, "585978391360221184", rec.ID)
	assert.True(t, rec.Time.Equal(time.Date(2015, time.April, 9, 1, 31, 50, 0, time.UTC)))
	assert.Equal(t, "Breast cancer risk test devised", rec.Text)
	assert.Equal(t, "http://bbc.in/1CimpJF", rec.Link)
	assert.Equal(t, model.Document{"breast", "cancer", "risk", "test", "devised"}, rec.Tokens)
}

func TestParseFeedLine_Malformed(t *testing.T) {
	for _, line := range []string{
		"",
		"no separators",
		"1|only two parts",
		"1|Apr 9 2015|text url",
	} {
		_, ok := ParseFeedLine(line)
		assert.False(t, ok, line)
	}
}

func TestRead_Feed(t *testing.T) {
	records, err := Read(context.Background(), strings.NewReader(feed), FormatFeed)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, model.Document{"rt", "vaccine", "trial", "begins"}, records[1].Tokens)
	assert.Empty(t, records[2].Tokens)

	docs := Documents(records)
	assert.Len(t, docs, 2)
}

func TestRead_CSV(t *testing.T) {
	records, err := Read(context.Background(), strings.NewReader(table), FormatCSV)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, model.Document{"breast", "cancer", "risk", "test", "devised"}, records[0].Tokens)
	assert.Equal(t, "http://bbc.in/1CimpJF", records[0].Link)
	assert.True(t, records[0].Time.Equal(time.Date(2015, time.April, 9, 1, 31, 50, 0, time.UTC)))

	assert.Len(t, Documents(records), 2)
}

func TestRead_CSVCustomColumn(t *testing.T) {
	in := "Text,other\nhello world,x\n"
	records, err := Read(context.Background(), strings.NewReader(in), FormatCSV, WithTextColumn("text"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.Document{"hello", "world"}, records[0].Tokens)
}

func TestRead_CSVEmpty(t *testing.T) {
	records, err := Read(context.Background(), strings.NewReader(""), FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRead_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Read(ctx, strings.NewReader(feed), FormatFeed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFile_Compression(t *testing.T) {
	dir := t.TempDir()

	files := map[string]func(f *os.File){
		"plain.txt": plain(feed),
		"feed.txt.gz": func(f *os.File) {
			w := gzip.NewWriter(f)
			_, err := w.Write([]byte(feed))
			require.NoError(t, err)
			require.NoError(t, w.Close())
		},
		"feed.txt.zst": func(f *os.File) {
			w, err := zstd.NewWriter(f)
			require.NoError(t, err)
			_, err = w.Write([]byte(feed))
			require.NoError(t, err)
			require.NoError(t, w.Close())
		},
		"feed.txt.lz4": func(f *os.File) {
			w := lz4.NewWriter(f)
			_, err := w.Write([]byte(feed))
			require.NoError(t, err)
			require.NoError(t, w.Close())
		},
	}

	for name, write := range files {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, name, write)

			records, err := LoadFile(context.Background(), path)
			require.NoError(t, err)
			require.Len(t, records, 3)
			assert.Equal(t, path, records[0].Source)
			assert.Equal(t, "585978391360221184", records[0].ID)
		})
	}
}

func TestLoadFile_DetectCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tweets.csv.gz", func(f *os.File) {
		w := gzip.NewWriter(f)
		_, err := w.Write([]byte(table))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	})

	records, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadFile_EmptyAndMissing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.txt", plain(""))

	records, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = LoadFile(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestLoadFile_RateLimited(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "feed.txt", plain(feed))

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	records, err := LoadFile(context.Background(), path, WithResourceController(rc))
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", plain(table))
	writeFile(t, dir, "a.txt", plain(feed))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	records, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, filepath.Join(dir, "a.txt"), records[0].Source)
	assert.Equal(t, filepath.Join(dir, "b.csv"), records[5].Source)

	all, err := Load(context.Background(), []string{dir, filepath.Join(dir, "a.txt")})
	require.NoError(t, err)
	assert.Len(t, all, 9)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
	assert.Equal(t, "feed", FormatFeed.String())
}
