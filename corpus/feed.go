package corpus

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/hupe1980/tweetclust/preprocess"
)

// FeedTimeLayout is the timestamp layout of the raw feed format.
const FeedTimeLayout = "Mon Jan 02 15:04:05 -0700 2006"

const maxLineSize = 1 << 20

// ParseFeedLine parses "id|timestamp|text url". The last whitespace
// separated word of the text is taken as the link. ok is false for
// malformed lines.
func ParseFeedLine(line string) (Record, bool) {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), "|")
	if len(parts) < 3 {
		return Record{}, false
	}

	ts, err := time.Parse(FeedTimeLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return Record{}, false
	}

	words := strings.Split(strings.Join(parts[2:], ""), " ")
	text := strings.Join(words[:len(words)-1], " ")
	link := words[len(words)-1]

	return Record{
		ID:     parts[0],
		Time:   ts,
		Text:   text,
		Link:   link,
		Tokens: preprocess.Tokenize(text),
	}, true
}

func readFeed(ctx context.Context, r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []Record
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, ok := ParseFeedLine(line)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
