package update

import (
	"github.com/tesso57/rsstream/internal/presentation/tui/presenter"
	"github.com/tesso57/rsstream/internal/presentation/tui/state"
)

const (
	emptyTreeHint = "No feeds yet.\n\nPress **a** to add a feed URL."
	loadingHint   = "Loading feeds..."
)

// RebuildTree redraws the tree rows and reconciles the selection: the same
// article by label, else its feed row, else the nearest row.
func RebuildTree(s *state.ModelState) {
	rows := presenter.BuildRows(s.Tree.Root(), presenter.TreeOptions{
		Collapsed: s.Collapsed,
		InFlight:  func(url string) bool { return s.Awaiting[url] },
	})
	prev := s.TreeList.Index()
	presenter.ApplyRows(&s.TreeList, rows)

	idx := -1
	if s.Selection.Valid {
		idx = presenter.FindRow(rows, s.Selection.Ref, s.Selection.Label)
	}
	if idx < 0 {
		idx = min(prev, len(rows)-1)
	}
	if idx >= 0 {
		s.TreeList.Select(idx)
	}
	ApplySelection(s)
}

// ApplySelection syncs the selection and content pane with the list cursor.
func ApplySelection(s *state.ModelState) {
	row, ok := presenter.RowAt(&s.TreeList, s.TreeList.Index())
	if !ok {
		s.Selection = state.Selection{}
		s.ContentMarkdown = ""
		RenderContent(s)
		return
	}
	node, ok := s.Tree.Lookup(row.Ref)
	if !ok {
		s.Selection = state.Selection{}
		s.ContentMarkdown = ""
		RenderContent(s)
		return
	}

	md, link := presenter.NodeMarkdown(node)
	next := state.Selection{Ref: row.Ref, Label: row.Label, ArticleLink: link, Valid: true}
	moved := next.Ref != s.Selection.Ref || next.Label != s.Selection.Label
	changed := md != s.ContentMarkdown
	s.Selection = next
	s.ContentMarkdown = md
	if changed {
		RenderContent(s)
	}
	if moved {
		s.Viewport.GotoTop()
	}
}

// RenderContent renders the content pane markdown at the viewport width.
func RenderContent(s *state.ModelState) {
	md := s.ContentMarkdown
	if md == "" {
		md = emptyTreeHint
		if len(s.Awaiting) > 0 {
			md = loadingHint
		}
	}
	s.Viewport.SetContent(s.Markdown.Render(md, s.Viewport.Width, s.Palette.GlamourBG))
}
