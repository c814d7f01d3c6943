package feedtree

import (
	"fmt"
	"slices"
	"time"

	"github.com/tesso57/rsstream/internal/domain/reading"
)

// Outcome reports what ApplyFetchResult did.
type Outcome int

const (
	// Discarded means the result was older than one already applied.
	Discarded Outcome = iota
	// Inserted means a new FeedNode was added.
	Inserted
	// Replaced means an existing FeedNode was swapped for a fresh one.
	Replaced
	// FailureRecorded means the error was attached to the feed, data untouched.
	FailureRecorded
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Replaced:
		return "replaced"
	case FailureRecorded:
		return "failure"
	default:
		return "discarded"
	}
}

// Tree is the root of the feed tree.
type Tree struct {
	guard   ownerGuard
	feeds   []*FeedNode
	index   map[string]int
	lastSeq map[string]uint64
	rank    map[string]int
	now     func() time.Time
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		index:   make(map[string]int),
		lastSeq: make(map[string]uint64),
		rank:    make(map[string]int),
		now:     time.Now,
	}
}

// SetOrder sets the subscription order FeedNodes are kept in.
func (t *Tree) SetOrder(urls []string) {
	defer t.guard.enter()()
	t.rank = make(map[string]int, len(urls))
	for i, url := range urls {
		if _, ok := t.rank[url]; !ok {
			t.rank[url] = i
		}
	}
	t.sort()
}

// ApplyFetchResult merges one fetch result into the tree.
//
// A failure keeps the existing articles and only records the error. A success
// replaces the FeedNode for the URL in place, or inserts one.
func (t *Tree) ApplyFetchResult(r reading.FetchResult) Outcome {
	defer t.guard.enter()()

	url := r.URL()
	if seq := r.Seq(); seq != 0 {
		if seq < t.lastSeq[url] {
			return Discarded
		}
		t.lastSeq[url] = seq
	}

	pos, exists := t.index[url]
	if !r.OK() {
		if exists {
			t.feeds[pos].Err = r.Err()
			return FailureRecorded
		}
		t.insert(&FeedNode{URL: url, Title: url, Err: r.Err()})
		return FailureRecorded
	}

	fresh := newFeedNode(r.Feed(), t.now())
	fresh.URL = url
	if exists {
		t.feeds[pos] = fresh
		return Replaced
	}
	t.insert(fresh)
	return Inserted
}

// Restore inserts a cached snapshot when the URL has no node yet.
func (t *Tree) Restore(feed *reading.Feed, fetchedAt time.Time) bool {
	defer t.guard.enter()()
	if feed == nil || feed.URL == "" {
		return false
	}
	if _, exists := t.index[feed.URL]; exists {
		return false
	}
	n := newFeedNode(feed, fetchedAt)
	n.Cached = true
	t.insert(n)
	return true
}

// RemoveFeed removes the FeedNode for url with all its articles.
func (t *Tree) RemoveFeed(url string) error {
	return t.RemoveNode(FeedRef(url))
}

// RemoveNode removes the feed addressed by ref. Article refs are rejected.
func (t *Tree) RemoveNode(ref Ref) error {
	defer t.guard.enter()()
	if !ref.IsFeed() {
		return fmt.Errorf("remove %q article %d: only feeds can be removed: %w", ref.FeedURL, ref.Article, reading.ErrInvalidSelection)
	}
	pos, ok := t.index[ref.FeedURL]
	if !ok {
		return fmt.Errorf("remove %q: no such feed: %w", ref.FeedURL, reading.ErrInvalidSelection)
	}
	t.feeds = slices.Delete(t.feeds, pos, pos+1)
	t.reindex()
	return nil
}

// FindFeedNode returns a copy of the FeedNode for url.
func (t *Tree) FindFeedNode(url string) (*FeedNode, bool) {
	defer t.guard.enter()()
	pos, ok := t.index[url]
	if !ok {
		return nil, false
	}
	return t.feeds[pos].clone(), true
}

// Lookup resolves a ref to a copy of the node it addresses.
func (t *Tree) Lookup(ref Ref) (Node, bool) {
	defer t.guard.enter()()
	pos, ok := t.index[ref.FeedURL]
	if !ok {
		return nil, false
	}
	feed := t.feeds[pos]
	if ref.IsFeed() {
		return feed.clone(), true
	}
	if ref.Article >= len(feed.Articles) {
		return nil, false
	}
	a := feed.Articles[ref.Article]
	return &a, true
}

// Root returns copies of all FeedNodes in display order.
func (t *Tree) Root() []*FeedNode {
	defer t.guard.enter()()
	out := make([]*FeedNode, len(t.feeds))
	for i, f := range t.feeds {
		out[i] = f.clone()
	}
	return out
}

// Len returns the number of FeedNodes.
func (t *Tree) Len() int {
	defer t.guard.enter()()
	return len(t.feeds)
}

func (t *Tree) insert(n *FeedNode) {
	t.feeds = append(t.feeds, n)
	t.sort()
}

func (t *Tree) sort() {
	slices.SortStableFunc(t.feeds, func(a, b *FeedNode) int {
		return t.rankOf(a.URL) - t.rankOf(b.URL)
	})
	t.reindex()
}

func (t *Tree) rankOf(url string) int {
	if r, ok := t.rank[url]; ok {
		return r
	}
	return len(t.rank)
}

func (t *Tree) reindex() {
	clear(t.index)
	for i, f := range t.feeds {
		t.index[f.URL] = i
	}
}
