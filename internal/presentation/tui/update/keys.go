package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/rsstream/internal/domain/reading"
	"github.com/tesso57/rsstream/internal/presentation/tui/intent"
	"github.com/tesso57/rsstream/internal/presentation/tui/state"
	"github.com/tesso57/rsstream/internal/presentation/tui/theme"
	listview "github.com/tesso57/rsstream/internal/presentation/tui/view/list"
)

// HandleKeyMsg dispatches a key press. It returns false when the key should
// fall through to the tree list.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch s.Session {
	case state.AddingFeedView:
		return handleAddingFeedView(s, msg, deps)
	case state.RemoveFeedView:
		return handleRemoveFeedView(s, msg, deps)
	case state.QuitView:
		return handleQuitView(s, msg)
	}

	parsed := intent.FromKeyMsg(msg, s.Keys)
	if s.Help.ShowAll {
		return handleHelpView(s, msg, parsed), true
	}
	if parsed.Type == intent.Quit {
		s.Previous = s.Session
		s.Session = state.QuitView
		return nil, true
	}
	return handleTreeViewIntent(s, parsed, deps)
}

// handleHelpView closes the help modal on esc, ? or q and swallows other keys.
func handleHelpView(s *state.ModelState, msg tea.KeyMsg, in intent.Intent) tea.Cmd {
	if msg.String() == "esc" || in.Type == intent.ToggleHelp || in.Type == intent.Quit {
		s.Help.ShowAll = false
		UpdateLayout(s)
	}
	return nil
}

func handleTreeViewIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.ToggleHelp:
		s.Help.ShowAll = !s.Help.ShowAll
		UpdateLayout(s)
		return nil, true
	case intent.AddFeed:
		s.Session = state.AddingFeedView
		s.TextInput.Reset()
		s.TextInput.Focus()
		return textinput.Blink, true
	case intent.RemoveFeed:
		return beginRemove(s), true
	case intent.Toggle:
		if s.Selection.IsFeed() {
			url := s.Selection.Ref.FeedURL
			s.Collapsed[url] = !s.Collapsed[url]
			RebuildTree(s)
		}
		return nil, true
	case intent.ScrollDown:
		s.Viewport.LineDown(1)
		return nil, true
	case intent.ScrollUp:
		s.Viewport.LineUp(1)
		return nil, true
	case intent.OpenLink:
		if !s.Selection.IsArticle() || s.Selection.ArticleLink == "" {
			return Notify(s, "Select an article with a link to open it.", state.Warn), true
		}
		return tea.Batch(
			Notify(s, "Opening browser...", state.Info),
			OpenLinkCmd(deps.OpenBrowser, s.Selection.ArticleLink),
		), true
	case intent.Refresh:
		return StartRefresh(s, deps), true
	case intent.ToggleDark:
		SetDarkMode(s, !s.DarkMode)
		return nil, true
	}
	return nil, false
}

// SetDarkMode switches the palette and re-renders the content pane.
func SetDarkMode(s *state.ModelState, dark bool) {
	s.DarkMode = dark
	s.Palette = theme.Resolve(s.Theme, dark)
	s.TreeList.SetDelegate(listview.NewTreeDelegate(s.Palette))
	RenderContent(s)
}

func beginRemove(s *state.ModelState) tea.Cmd {
	switch {
	case s.Selection.IsFeed():
		s.Session = state.RemoveFeedView
		return nil
	case s.Selection.IsArticle():
		s.Err = fmt.Errorf("remove %q: %w", s.Selection.Label, reading.ErrInvalidSelection)
		return Notify(s, "Select a Feed title to remove it.", state.Warn)
	default:
		return nil
	}
}

func handleAddingFeedView(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		raw := s.TextInput.Value()
		s.TextInput.Reset()
		s.TextInput.Blur()
		s.Session = state.TreeView
		if strings.TrimSpace(raw) == "" {
			return nil, true
		}
		return addFeed(s, raw, deps), true
	case "esc":
		s.TextInput.Reset()
		s.TextInput.Blur()
		s.Session = state.TreeView
		return nil, true
	}

	var cmd tea.Cmd
	s.TextInput, cmd = s.TextInput.Update(msg)
	return cmd, true
}

func addFeed(s *state.ModelState, raw string, deps Deps) tea.Cmd {
	url, feeds, err := deps.Subscriptions.Add(raw)
	switch {
	case errors.Is(err, reading.ErrDuplicateSubscription):
		s.Err = err
		return Notify(s, "Feed already exists.", state.Warn)
	case err != nil:
		s.Err = err
		deps.log().Warnw("add feed failed", "url", url, "error", err)
		return Notify(s, "Cannot add feed: "+err.Error(), state.Error)
	}

	s.Err = nil
	s.Feeds = feeds
	s.Tree.SetOrder(feeds)
	deps.log().Infow("feed added", "url", url)

	cmds := []tea.Cmd{Notify(s, "Added: "+url, state.Info)}
	if deps.Scheduler != nil && deps.Scheduler.RefreshOne(url) {
		s.Awaiting[url] = true
		cmds = append(cmds, s.Spinner.Tick)
	}
	RebuildTree(s)
	return tea.Batch(cmds...)
}

func handleRemoveFeedView(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		s.Session = state.TreeView
		return removeFeed(s, s.Selection.Ref.FeedURL, deps), true
	case "n", "N", "esc", "q", "Q":
		s.Session = state.TreeView
		return nil, true
	}
	return nil, true
}

func removeFeed(s *state.ModelState, url string, deps Deps) tea.Cmd {
	if err := s.Tree.RemoveFeed(url); err != nil {
		s.Err = err
		return Notify(s, "Select a Feed title to remove it.", state.Warn)
	}
	delete(s.Collapsed, url)
	delete(s.Awaiting, url)

	feeds, err := deps.Subscriptions.Remove(url)
	if err != nil {
		s.Err = err
		deps.log().Warnw("remove feed failed", "url", url, "error", err)
		RebuildTree(s)
		return Notify(s, "Cannot remove feed: "+err.Error(), state.Error)
	}

	s.Err = nil
	s.Feeds = feeds
	s.Tree.SetOrder(feeds)
	deps.log().Infow("feed removed", "url", url)

	RebuildTree(s)
	return tea.Batch(
		Notify(s, "Removed: "+url, state.Info),
		ForgetCmd(deps.Reading, url),
		finishRefresh(s),
	)
}

func handleQuitView(s *state.ModelState, msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		return tea.Quit, true
	case "n", "N", "esc", "q", "Q":
		s.Session = s.Previous
		return nil, true
	}
	return nil, true
}
