package news

import (
	"context"
	"errors"
	"time"
)

// ErrNoTimestamp is returned by a Store when no refresh has ever been recorded.
var ErrNoTimestamp = errors.New("no refresh timestamp recorded")

// Article is the normalized news record served from the cache.
type Article struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	TextContent string `json:"text_content"`
	Link        string `json:"link"`
}

// RawArticle mirrors the relevant parts of a Tagesschau homepage entry.
// Fields are frequently missing or empty upstream; the Normalizer fills
// defaults instead of failing.
type RawArticle struct {
	Title      string           `json:"title"`
	Date       string           `json:"date"`
	DetailsWeb string           `json:"detailsweb"`
	Content    []ContentSegment `json:"content"`
}

// ContentSegment is one piece of an article body; only "text" segments carry
// prose, the rest (video, images, boxes) are skipped.
type ContentSegment struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Source abstracts the upstream news feed.
type Source interface {
	Fetch(ctx context.Context) ([]RawArticle, error)
}

// Store is the contract the persistent news cache must satisfy. ReplaceAll
// swaps the whole article set and the refresh timestamp in one transaction.
type Store interface {
	ReplaceAll(articles []Article) error
	ReadAll() ([]Article, error)
	ReadTimestamp() (time.Time, error)
}
