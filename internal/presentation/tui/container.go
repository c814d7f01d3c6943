// Package tui provides the main user interface model and view components.
package tui

import (
	"fmt"

	"github.com/tesso57/rsstream/internal/domain/feedtree"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/rsstream/internal/presentation/tui/components/main"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/modal"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/toast"
	"github.com/tesso57/rsstream/internal/presentation/tui/metrics"
	"github.com/tesso57/rsstream/internal/presentation/tui/state"
	"github.com/tesso57/rsstream/internal/presentation/tui/textutil"
	"github.com/tesso57/rsstream/internal/presentation/tui/update"
	"github.com/tesso57/rsstream/internal/presentation/tui/view"
)

const sidebarTitle = "rsstream"

func (m *Model) buildProps() view.Props {
	return view.Props{
		Sidebar: m.buildSidebarProps(),
		Header:  m.buildHeaderProps(),
		Main:    m.buildMainProps(),
		Modal:   m.buildModalProps(),
		Toasts:  m.buildToastProps(),
		Help:    update.FooterHelp(m.state),
		Width:   m.state.Width,
		Height:  m.state.Height,
	}
}

func (m *Model) buildSidebarProps() sidebar.Props {
	width, height := update.SidebarSize(m.state)
	spin := ""
	if len(m.state.Awaiting) > 0 {
		spin = m.state.Spinner.View()
	}
	return sidebar.Props{
		View:    m.state.TreeList.View(),
		Width:   width,
		Height:  height,
		Title:   sidebarTitle,
		Spinner: spin,
		Border:  m.state.Palette.Border,
		Accent:  m.state.Palette.Accent,
	}
}

func (m *Model) buildHeaderProps() header.Props {
	sel := m.state.Selection
	if !sel.Valid {
		return header.Props{}
	}
	feed, ok := m.state.Tree.FindFeedNode(sel.Ref.FeedURL)
	if !ok {
		return header.Props{}
	}

	width, _ := update.MainSize(m.state)
	available := width - metrics.MainLeftPadding - headerPrefixWidth
	link := feed.URL
	if sel.IsArticle() {
		link = sel.ArticleLink
	}
	return header.Props{
		Visible:   true,
		Link:      headerLine(link, available),
		FeedTitle: headerLine(feed.Title, available),
		Style:     m.state.Palette.Header,
	}
}

// headerPrefixWidth is the icon and spacing before header text.
const headerPrefixWidth = 4

func (m *Model) buildMainProps() mainview.Props {
	width, height := update.MainSize(m.state)
	body := m.state.Viewport.View()
	if m.state.Err != nil {
		body = m.state.Palette.Failed.Render(fmt.Sprintf("Error: %v", m.state.Err)) + "\n" + body
	}
	return mainview.Props{
		Width:  width,
		Height: height,
		Body:   body,
	}
}

func (m *Model) buildModalProps() modal.Props {
	p := modal.Props{
		Width:  m.state.Width,
		Height: m.state.Height,
		Accent: m.state.Palette.Accent,
		Border: m.state.Palette.Border,
	}
	switch {
	case m.state.Session == state.AddingFeedView:
		p.Visible, p.Kind = true, modal.AddFeed
		p.Body = fmt.Sprintf("Enter Feed URL:\n\n%s\n\n(enter to add, esc to cancel)", m.state.TextInput.View())
	case m.state.Session == state.RemoveFeedView:
		p.Visible, p.Kind = true, modal.RemoveFeed
		p.Body = fmt.Sprintf("Remove this feed?\n\n%s\n\n(y/n)", m.removeTarget())
	case m.state.Session == state.QuitView:
		p.Visible, p.Kind = true, modal.Quit
		p.Body = "Are you sure you want to quit?\n\n(y/n)"
	case m.state.Help.ShowAll:
		p.Visible, p.Kind = true, modal.Help
		p.Body = m.state.Help.FullHelpView(m.state.Keys.FullHelp())
	}
	return p
}

func (m *Model) removeTarget() string {
	url := m.state.Selection.Ref.FeedURL
	n, ok := m.state.Tree.Lookup(feedtree.FeedRef(url))
	if feed, isFeed := n.(*feedtree.FeedNode); ok && isFeed && feed.Title != url {
		return feed.Title + "\n" + url
	}
	return url
}

func (m *Model) buildToastProps() toast.Props {
	items := make([]toast.Item, len(m.state.Toasts))
	for i, t := range m.state.Toasts {
		items[i] = toast.Item{Text: t.Text, Error: t.Level == state.Error}
	}
	return toast.Props{
		Items:    items,
		Style:    m.state.Palette.Toast,
		ErrStyle: m.state.Palette.ToastErr,
	}
}

func headerLine(text string, width int) string {
	return textutil.Truncate(textutil.SingleLine(text), width)
}
