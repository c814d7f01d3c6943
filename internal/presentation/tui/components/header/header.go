// Package header provides the content pane header component.
package header

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the header component.
type Props struct {
	Visible   bool
	Link      string
	FeedTitle string
	Style     lipgloss.Style
}

// Render renders the header component.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}
	lines := make([]string, 0, 2)
	if p.Link != "" {
		lines = append(lines, "🔗 "+p.Link)
	}
	if p.FeedTitle != "" {
		lines = append(lines, "🏷️  "+p.FeedTitle)
	}
	if len(lines) == 0 {
		return ""
	}
	return p.Style.Render(strings.Join(lines, "\n"))
}
