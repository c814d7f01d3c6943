// Package feedtree holds the in-memory feed/article tree shown by the UI.
//
// A Tree is owned by a single goroutine (the UI event loop). Every exported
// method enters a busy guard and panics when two goroutines overlap.
package feedtree

import (
	"time"

	"github.com/tesso57/rsstream/internal/domain/reading"
)

// Node is either a *FeedNode or an *ArticleNode.
type Node interface {
	node()
}

// FeedNode is a top-level node owning the articles of one subscription.
type FeedNode struct {
	URL       string
	Title     string
	Articles  []ArticleNode
	Err       error
	FetchedAt time.Time
	Cached    bool
}

// ArticleNode is a leaf under a FeedNode.
type ArticleNode struct {
	Label     string
	Title     string
	Link      string
	Content   string
	Published time.Time
}

func (*FeedNode) node()    {}
func (*ArticleNode) node() {}

// Failed reports whether the last refresh of the feed failed.
func (f *FeedNode) Failed() bool { return f != nil && f.Err != nil }

func (f *FeedNode) clone() *FeedNode {
	c := *f
	c.Articles = append([]ArticleNode(nil), f.Articles...)
	return &c
}

// Ref addresses one node in the tree. Article is -1 for the feed node itself.
type Ref struct {
	FeedURL string
	Article int
}

// FeedRef addresses the feed node for url.
func FeedRef(url string) Ref { return Ref{FeedURL: url, Article: -1} }

// ArticleRef addresses the i-th article of the feed at url.
func ArticleRef(url string, i int) Ref { return Ref{FeedURL: url, Article: i} }

// IsFeed reports whether the ref points at a feed node.
func (r Ref) IsFeed() bool { return r.Article < 0 }

func newFeedNode(feed *reading.Feed, now time.Time) *FeedNode {
	n := &FeedNode{
		URL:       feed.URL,
		Title:     feed.DisplayTitle(),
		Articles:  make([]ArticleNode, 0, len(feed.Articles)),
		FetchedAt: now,
	}
	for _, a := range feed.Articles {
		n.Articles = append(n.Articles, ArticleNode{
			Label:     a.Label,
			Title:     a.Title,
			Link:      a.Link,
			Content:   a.Content,
			Published: a.Published,
		})
	}
	return n
}
