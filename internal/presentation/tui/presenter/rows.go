// Package presenter builds view models for the TUI.
package presenter

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/tesso57/rsstream/internal/domain/feedtree"
)

// Row is one line of the feed tree.
type Row struct {
	Ref      feedtree.Ref
	Label    string
	Link     string
	Count    int
	Expanded bool
	Failed   bool
	Cached   bool
	Pending  bool
}

// FilterValue implements list.Item.
func (r *Row) FilterValue() string { return r.Label }

// Title returns the row label.
func (r *Row) Title() string { return r.Label }

// IsFeed reports whether the row is a feed title.
func (r *Row) IsFeed() bool { return r.Ref.IsFeed() }

// Depth returns the indentation level.
func (r *Row) Depth() int {
	if r.IsFeed() {
		return 0
	}
	return 1
}

// TreeOptions controls how the tree is flattened.
type TreeOptions struct {
	Collapsed map[string]bool
	InFlight  func(url string) bool
}

// BuildRows flattens the tree into list rows: each feed followed by its
// articles unless collapsed.
func BuildRows(feeds []*feedtree.FeedNode, opts TreeOptions) []*Row {
	rows := make([]*Row, 0, len(feeds))
	for _, f := range feeds {
		expanded := !opts.Collapsed[f.URL]
		rows = append(rows, &Row{
			Ref:      feedtree.FeedRef(f.URL),
			Label:    f.Title,
			Link:     f.URL,
			Count:    len(f.Articles),
			Expanded: expanded,
			Failed:   f.Failed(),
			Cached:   f.Cached,
			Pending:  opts.InFlight != nil && opts.InFlight(f.URL),
		})
		if !expanded {
			continue
		}
		for i, a := range f.Articles {
			rows = append(rows, &Row{
				Ref:   feedtree.ArticleRef(f.URL, i),
				Label: a.Label,
				Link:  a.Link,
			})
		}
	}
	return rows
}

// ApplyRows replaces the list items.
func ApplyRows(model *list.Model, rows []*Row) {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = r
	}
	model.SetItems(items)
}

// RowAt returns the row at index, if any.
func RowAt(model *list.Model, index int) (*Row, bool) {
	items := model.Items()
	if index < 0 || index >= len(items) {
		return nil, false
	}
	r, ok := items[index].(*Row)
	return r, ok
}

// FindRow locates the row for a previous selection: the same article by
// label, else its feed. It returns -1 when the feed is gone.
func FindRow(rows []*Row, ref feedtree.Ref, label string) int {
	feedIdx := -1
	for i, r := range rows {
		if r.Ref.FeedURL != ref.FeedURL {
			continue
		}
		if r.IsFeed() {
			feedIdx = i
			if ref.IsFeed() {
				return i
			}
			continue
		}
		if !ref.IsFeed() && r.Label == label {
			return i
		}
	}
	return feedIdx
}
