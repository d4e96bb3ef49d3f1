package news

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// Defaults used when a source record is missing a field. A record is never
// dropped for missing metadata; only the batch-level fetch can fail.
const (
	defaultTitle = "No title"
	defaultDate  = "No date"
	defaultLink  = "No link"
)

// Normalizer converts raw Tagesschau entries into cacheable Articles.
type Normalizer struct {
	summarizer Summarizer
}

func NewNormalizer(summarizer Summarizer) *Normalizer {
	return &Normalizer{summarizer: summarizer}
}

// Normalize maps every raw record to exactly one Article. Text segments are
// concatenated, stripped of markup and summarized; an article with no text
// content yields an empty summary rather than an error.
func (n *Normalizer) Normalize(ctx context.Context, raw []RawArticle) []Article {
	articles := make([]Article, 0, len(raw))

	for _, r := range raw {
		a := Article{
			Title: r.Title,
			Date:  r.Date,
			Link:  r.DetailsWeb,
		}
		if a.Title == "" {
			a.Title = defaultTitle
		}
		if a.Date == "" {
			a.Date = defaultDate
		}
		if a.Link == "" {
			a.Link = defaultLink
		}

		text := stripHTML(joinTextSegments(r.Content))

		summary, err := n.summarizer.Summarize(ctx, text)
		if err != nil {
			logrus.Warnf("summarization failed for %q, keeping full text: %v", a.Title, err)
			summary = text
		}
		a.TextContent = summary

		articles = append(articles, a)
	}

	return articles
}

func joinTextSegments(segments []ContentSegment) string {
	var parts []string
	for _, seg := range segments {
		if seg.Type == "text" && seg.Value != "" {
			parts = append(parts, seg.Value)
		}
	}
	return strings.Join(parts, " ")
}

// stripHTML removes tags and collapses whitespace.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
