// Package intent parses user input into UI intents.
package intent

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/rsstream/internal/presentation/tui/state"
)

// Type represents a user intent.
type Type int

const (
	None Type = iota
	Quit
	ToggleHelp
	AddFeed
	RemoveFeed
	Toggle
	ScrollDown
	ScrollUp
	OpenLink
	Refresh
	ToggleDark
)

// Intent represents a parsed user intent.
type Intent struct {
	Type Type
}

// FromKeyMsg maps a key message to an intent. Cursor movement is left to
// the tree list and maps to None.
func FromKeyMsg(msg tea.KeyMsg, keys state.KeyMap) Intent {
	switch {
	case key.Matches(msg, keys.Quit):
		return Intent{Type: Quit}
	case key.Matches(msg, keys.Help):
		return Intent{Type: ToggleHelp}
	case key.Matches(msg, keys.AddFeed):
		return Intent{Type: AddFeed}
	case key.Matches(msg, keys.RemoveFeed):
		return Intent{Type: RemoveFeed}
	case key.Matches(msg, keys.Toggle):
		return Intent{Type: Toggle}
	case key.Matches(msg, keys.ScrollDown):
		return Intent{Type: ScrollDown}
	case key.Matches(msg, keys.ScrollUp):
		return Intent{Type: ScrollUp}
	case key.Matches(msg, keys.OpenLink):
		return Intent{Type: OpenLink}
	case key.Matches(msg, keys.Refresh):
		return Intent{Type: Refresh}
	case key.Matches(msg, keys.ToggleDark):
		return Intent{Type: ToggleDark}
	default:
		return Intent{Type: None}
	}
}
