// Package listview provides list item delegates for the view layer.
package listview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/rsstream/internal/presentation/tui/presenter"
	"github.com/tesso57/rsstream/internal/presentation/tui/textutil"
	"github.com/tesso57/rsstream/internal/presentation/tui/theme"
)

// Markers drawn in front of rows.
const (
	ExpandedMarker  = "▾"
	CollapsedMarker = "▸"
	FailedMarker    = "✗"
	PendingMarker   = "…"
)

// TreeDelegate renders feed and article rows of the tree.
type TreeDelegate struct {
	Palette theme.Palette
}

// NewTreeDelegate creates a delegate drawing with palette.
func NewTreeDelegate(palette theme.Palette) *TreeDelegate {
	return &TreeDelegate{Palette: palette}
}

// Height returns the height of the item.
func (d *TreeDelegate) Height() int { return 1 }

// Spacing returns the spacing between items.
func (d *TreeDelegate) Spacing() int { return 0 }

// Update handles messages for the delegate.
func (d *TreeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders the item.
func (d *TreeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(*presenter.Row)
	if !ok {
		return
	}

	text := RowText(row)
	style := d.Palette.Article
	if row.IsFeed() {
		style = d.Palette.Feed
		if row.Failed {
			style = d.Palette.Failed
		}
	}
	if index == m.Index() {
		style = d.Palette.Selected
	}
	renderItemText(w, style, truncateItemText(m, style, text))
}

// RowText returns the unstyled text of a row.
func RowText(row *presenter.Row) string {
	label := textutil.SingleLine(row.Label)
	if !row.IsFeed() {
		return strings.Repeat("  ", row.Depth()) + label
	}

	marker := ExpandedMarker
	if !row.Expanded {
		marker = CollapsedMarker
	}
	var b strings.Builder
	b.WriteString(marker)
	b.WriteString(" ")
	if row.Failed {
		b.WriteString(FailedMarker)
		b.WriteString(" ")
	}
	b.WriteString(label)
	if !row.Expanded && row.Count > 0 {
		fmt.Fprintf(&b, " (%d)", row.Count)
	}
	if row.Pending {
		b.WriteString(" ")
		b.WriteString(PendingMarker)
	}
	return b.String()
}
