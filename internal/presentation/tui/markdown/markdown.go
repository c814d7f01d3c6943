// Package markdown renders content-pane markdown with glamour.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is used before the first window size arrives.
const DefaultWidth = 80

type rendererKey struct {
	width int
	style string
}

// Renderer caches glamour renderers per wrap width and style.
type Renderer struct {
	cache map[rendererKey]*glamour.TermRenderer
}

// NewRenderer returns an empty renderer cache.
func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[rendererKey]*glamour.TermRenderer)}
}

// Render converts md to styled terminal text. It falls back to the raw
// markdown when glamour fails.
func (r *Renderer) Render(md string, width int, style string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	tr, err := r.renderer(width, style)
	if err != nil {
		return md
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (r *Renderer) renderer(width int, style string) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if style == "" {
		style = "dark"
	}
	key := rendererKey{width: width, style: style}
	if tr, ok := r.cache[key]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.cache[key] = tr
	return tr, nil
}
