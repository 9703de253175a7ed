package preprocess

import (
	"regexp"
	"strings"

	"github.com/hupe1980/tweetclust/model"
)

var (
	mentionPattern = regexp.MustCompile(`@([a-zA-Z0-9_-]+)`)
	hashtagPattern = regexp.MustCompile(`#([a-zA-Z0-9_-]+)`)
	urlPattern     = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
)

// Post is a cleaned post with the entities extracted from it.
type Post struct {
	Text     string
	Mentions []string
	Hashtags []string
	URLs     []string
}

// Extract cleans text and returns the mentions, hashtags and URLs it held,
// in order of appearance and without their @/# prefixes.
func Extract(text string) Post {
	var p Post

	p.URLs = urlPattern.FindAllString(text, -1)
	text = urlPattern.ReplaceAllString(text, " ")

	p.Mentions = submatches(mentionPattern, text)
	text = mentionPattern.ReplaceAllString(text, " ")

	p.Hashtags = submatches(hashtagPattern, text)
	text = hashtagPattern.ReplaceAllString(text, " ")

	text = strings.ReplaceAll(text, " : ", " ")
	p.Text = strings.Join(strings.Fields(strings.ToLower(text)), " ")

	return p
}

// Clean returns the lowercased text without mentions, hashtags and URLs,
// with runs of whitespace collapsed.
func Clean(text string) string {
	return Extract(text).Text
}

// Tokenize cleans text and splits it into a document.
func Tokenize(text string) model.Document {
	return model.Document(strings.Fields(Clean(text)))
}

// Split splits already cleaned text on whitespace.
func Split(text string) model.Document {
	return model.Document(strings.Fields(text))
}

func submatches(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m[1]
	}
	return out
}
