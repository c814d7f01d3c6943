package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/tesso57/rsstream/internal/domain/feedtree"
	"github.com/tesso57/rsstream/internal/presentation/tui/markdown"
	"github.com/tesso57/rsstream/internal/presentation/tui/theme"
)

// ModelState holds the presentation state for the TUI. It is only touched
// from the bubbletea update goroutine.
type ModelState struct {
	Session   Session
	Previous  Session
	Tree      *feedtree.Tree
	TreeList  list.Model
	TextInput textinput.Model
	Viewport  viewport.Model
	Help      help.Model
	Spinner   spinner.Model
	Keys      KeyMap
	Width     int
	Height    int

	// Feeds is the subscription list in display order.
	Feeds []string
	// Collapsed marks feeds whose articles are hidden.
	Collapsed map[string]bool

	Selection Selection
	// ContentMarkdown is the source of the content pane.
	ContentMarkdown string

	// Awaiting holds URLs whose fetch result has not arrived yet.
	Awaiting        map[string]bool
	Refreshing      bool
	RefreshFailures int

	DarkMode bool
	Theme    string
	Palette  theme.Palette
	Markdown *markdown.Renderer

	Toasts    []Toast
	NextToast int

	Err error
}

// NewModelState returns a state with its maps initialized.
func NewModelState() *ModelState {
	return &ModelState{
		Session:   TreeView,
		Tree:      feedtree.New(),
		Collapsed: make(map[string]bool),
		Awaiting:  make(map[string]bool),
		DarkMode:  true,
		Palette:   theme.Resolve("", true),
		Markdown:  markdown.NewRenderer(),
	}
}
