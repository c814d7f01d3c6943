// Package modal provides modal dialog components.
package modal

import (
	"github.com/charmbracelet/lipgloss"
)

// Kind represents the type of modal.
type Kind int

const (
	// None indicates no modal.
	None Kind = iota
	// AddFeed shows the URL prompt.
	AddFeed
	// RemoveFeed asks to confirm an unsubscribe.
	RemoveFeed
	// Quit asks to confirm exit.
	Quit
	// Help shows the key bindings.
	Help
)

// Props defines the properties for the modal component.
type Props struct {
	Visible bool
	Kind    Kind
	Body    string
	Width   int
	Height  int
	Accent  lipgloss.Color
	Border  lipgloss.Color
}

// Render renders the modal centered in the window.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2)

	switch p.Kind {
	case AddFeed:
		box = box.Width(dialogWidth(p.Width, 60)).BorderForeground(p.Accent)
	case RemoveFeed, Quit:
		box = box.Width(dialogWidth(p.Width, 50)).BorderForeground(p.Accent)
	}

	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, box.Render(p.Body))
}

func dialogWidth(window, preferred int) int {
	if window > 0 && window-4 < preferred {
		return max(window-4, 10)
	}
	return preferred
}
