// Package layout places the panes and the footer in the terminal window.
package layout

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the layout component.
// Zero Width or Height leaves that dimension unconstrained.
type Props struct {
	Sidebar string
	Main    string
	Footer  string
	Width   int
	Height  int
}

// Render puts the sidebar left of the main pane and keeps the footer on the
// last lines of the window. Panes taller than the room left are cut.
func Render(p Props) string {
	panes := lipgloss.JoinHorizontal(lipgloss.Top, p.Sidebar, p.Main)

	if p.Height > 0 {
		room := max(p.Height-footerLines(p.Footer), 0)
		panes = lipgloss.NewStyle().Height(room).MaxHeight(room).Render(panes)
	}
	out := panes
	if p.Footer != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, panes, p.Footer)
	}
	if p.Width > 0 {
		out = lipgloss.NewStyle().MaxWidth(p.Width).Render(out)
	}
	return out
}

func footerLines(footer string) int {
	if footer == "" {
		return 0
	}
	return lipgloss.Height(footer)
}
