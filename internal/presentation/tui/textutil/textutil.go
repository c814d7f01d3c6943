// Package textutil cleans feed-supplied text for one-line terminal cells.
package textutil

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks text cut by Truncate.
const Ellipsis = "…"

// SingleLine drops escape sequences and control characters that a feed may
// carry, then collapses whitespace into single spaces.
func SingleLine(text string) string {
	if text == "" {
		return ""
	}
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, ansi.Strip(text))
	return strings.Join(strings.Fields(clean), " ")
}

// Truncate cuts text to width terminal cells, ending with Ellipsis when cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, Ellipsis)
}
