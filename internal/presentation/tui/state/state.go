// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tesso57/rsstream/internal/application/settings"
)

// Session represents the current view state.
type Session int

const (
	TreeView Session = iota
	AddingFeedView
	RemoveFeedView
	QuitView
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	UpPage     key.Binding
	DownPage   key.Binding
	Toggle     key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
	OpenLink   key.Binding
	AddFeed    key.Binding
	RemoveFeed key.Binding
	Refresh    key.Binding
	ToggleDark key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.AddFeed, k.RemoveFeed, k.Refresh, k.OpenLink}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.UpPage, k.DownPage, k.Toggle},
		{k.ScrollDown, k.ScrollUp, k.OpenLink},
		{k.AddFeed, k.RemoveFeed, k.Refresh},
		{k.ToggleDark, k.Help, k.Quit},
	}
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Up:         binding(cfg.Up, "up"),
		Down:       binding(cfg.Down, "down"),
		UpPage:     binding(cfg.UpPage, "pgup"),
		DownPage:   binding(cfg.DownPage, "pgdn"),
		Toggle:     binding(cfg.Toggle, "expand/collapse"),
		ScrollDown: binding(cfg.ScrollDown, "scroll down"),
		ScrollUp:   binding(cfg.ScrollUp, "scroll up"),
		OpenLink:   binding(cfg.OpenLink, "open link"),
		AddFeed:    binding(cfg.AddFeed, "add"),
		RemoveFeed: binding(cfg.RemoveFeed, "remove"),
		Refresh:    binding(cfg.Refresh, "refresh"),
		ToggleDark: binding(cfg.ToggleDark, "dark mode"),
		Help:       binding(cfg.Help, "toggle help"),
		Quit:       binding(cfg.Quit, "quit"),
	}
}

func binding(keys, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(splitKeys(keys)...),
		key.WithHelp(keys, desc),
	)
}

func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		switch keyName {
		case "space":
			// bubbletea reports the space bar as a literal space.
			out = append(out, " ")
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		}
		out = append(out, keyName)
	}
	return out
}
