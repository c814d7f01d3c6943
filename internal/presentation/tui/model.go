package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/rsstream/internal/application/settings"
	"github.com/tesso57/rsstream/internal/application/usecase"
	"github.com/tesso57/rsstream/internal/domain/feedtree"
	"github.com/tesso57/rsstream/internal/presentation/tui/state"
	"github.com/tesso57/rsstream/internal/presentation/tui/theme"
	"github.com/tesso57/rsstream/internal/presentation/tui/update"
	"github.com/tesso57/rsstream/internal/presentation/tui/view"
	listview "github.com/tesso57/rsstream/internal/presentation/tui/view/list"
	"go.uber.org/zap"
)

// Options wires a Model.
type Options struct {
	Settings      settings.Settings
	Subscriptions usecase.SubscriptionService
	Reading       usecase.ReadingService
	Scheduler     update.Scheduler
	// Tree may hold nodes restored from the cache. Nil starts empty.
	Tree        *feedtree.Tree
	Log         *zap.SugaredLogger
	OpenBrowser func(string) error
}

// Model represents the main application state.
type Model struct {
	settings      settings.Settings
	subscriptions usecase.SubscriptionService
	reading       usecase.ReadingService
	scheduler     update.Scheduler
	log           *zap.SugaredLogger
	openBrowser   func(string) error
	state         *state.ModelState
}

// NewModel creates a new application model.
func NewModel(opts Options) *Model {
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = openBrowser
	}
	m := &Model{
		settings:      opts.Settings,
		subscriptions: opts.Subscriptions,
		reading:       opts.Reading,
		scheduler:     opts.Scheduler,
		log:           opts.Log,
		openBrowser:   opts.OpenBrowser,
		state:         newModelState(opts.Settings, opts.Tree),
	}
	update.RebuildTree(m.state)
	return m
}

// Init starts the initial refresh and the result loop.
func (m *Model) Init() tea.Cmd {
	deps := m.deps()
	var wait tea.Cmd
	if m.scheduler != nil {
		wait = update.WaitForResult(m.scheduler.Results())
	}
	return tea.Batch(wait, update.StartRefresh(m.state, deps))
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps())
		if handled {
			return m, cmd
		}
		return m, m.updateTreeList(msg)
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg)
		return m, nil
	case update.FetchResultMsg:
		return m, update.HandleFetchResultMsg(m.state, msg, m.deps())
	case update.ResultsClosedMsg:
		m.log.Debugw("results channel closed")
		return m, nil
	case update.ToastExpiredMsg:
		update.HandleToastExpired(m.state, msg)
		return m, nil
	case update.CacheWrittenMsg:
		update.HandleCacheWritten(msg, m.deps())
		return m, nil
	case update.BrowserOpenedMsg:
		return m, update.HandleBrowserOpened(m.state, msg, m.deps())
	case spinner.TickMsg:
		if len(m.state.Awaiting) == 0 {
			return m, nil
		}
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd
	}

	if m.state.Session == state.AddingFeedView {
		m.state.TextInput, cmd = m.state.TextInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(m.buildProps())
}

// Settings returns the settings with the UI preferences changed at runtime.
func (m *Model) Settings() settings.Settings {
	cfg := m.settings
	cfg.DarkMode = m.state.DarkMode
	cfg.Feeds = append([]string(nil), m.state.Feeds...)
	return cfg
}

func (m *Model) updateTreeList(msg tea.Msg) tea.Cmd {
	prev := m.state.TreeList.Index()
	var cmd tea.Cmd
	m.state.TreeList, cmd = m.state.TreeList.Update(msg)
	if m.state.TreeList.Index() != prev {
		m.state.Err = nil
		update.ApplySelection(m.state)
	}
	return cmd
}

func (m *Model) deps() update.Deps {
	return update.Deps{
		Subscriptions: &m.subscriptions,
		Reading:       &m.reading,
		Scheduler:     m.scheduler,
		OpenBrowser:   m.openBrowser,
		Log:           m.log,
	}
}

func newModelState(cfg settings.Settings, tree *feedtree.Tree) *state.ModelState {
	st := state.NewModelState()
	if tree != nil {
		st.Tree = tree
	}
	st.Theme = cfg.Theme
	st.DarkMode = cfg.DarkMode
	st.Palette = theme.Resolve(cfg.Theme, cfg.DarkMode)
	st.Keys = state.NewKeyMap(cfg.KeyMap)
	st.Feeds = append([]string(nil), cfg.Feeds...)
	st.Tree.SetOrder(st.Feeds)

	st.TreeList = newTreeList(st)
	st.TextInput = newTextInput()
	st.Viewport = viewport.New(0, 0)
	st.Help = help.New()
	st.Spinner = newSpinner(st.Palette)
	return st
}

func newTreeList(st *state.ModelState) list.Model {
	l := list.New([]list.Item{}, listview.NewTreeDelegate(st.Palette), 0, 0)
	l.Title = "Feeds"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	l.KeyMap.CursorUp = st.Keys.Up
	l.KeyMap.CursorDown = st.Keys.Down
	l.KeyMap.PrevPage = st.Keys.UpPage
	l.KeyMap.NextPage = st.Keys.DownPage
	return l
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "https://example.com/feed.xml (RSS/Atom)"
	ti.CharLimit = 512
	ti.Width = 48
	return ti
}

func newSpinner(p theme.Palette) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = s.Style.Foreground(p.Accent)
	return s
}
