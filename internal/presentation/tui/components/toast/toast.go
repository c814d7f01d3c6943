// Package toast renders transient notifications.
package toast

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Item is one notification line.
type Item struct {
	Text  string
	Error bool
}

// Props defines the properties for the toast component.
type Props struct {
	Items    []Item
	Style    lipgloss.Style
	ErrStyle lipgloss.Style
}

// Lines returns one styled line per notification, oldest first.
func Lines(p Props) []string {
	out := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		text := strings.TrimSpace(it.Text)
		if text == "" {
			continue
		}
		style := p.Style
		if it.Error {
			style = p.ErrStyle
		}
		out = append(out, style.Render(text))
	}
	return out
}
