// Package sidebar provides the feed tree pane component.
package sidebar

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the sidebar component.
type Props struct {
	View    string
	Width   int
	Height  int
	Title   string
	Spinner string
	Border  lipgloss.Color
	Accent  lipgloss.Color
}

// Render renders the sidebar component.
func Render(p Props) string {
	sidebarStyle := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(p.Border)

	titleStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		PaddingBottom(1).
		Foreground(p.Accent)

	title := p.Title
	if p.Spinner != "" {
		title = p.Spinner + " " + title
	}

	return sidebarStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(title),
		p.View,
	))
}
