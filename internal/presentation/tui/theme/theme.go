// Package theme holds the light and dark palettes.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of styles the views draw with.
type Palette struct {
	Name      string
	Dark      bool
	Accent    lipgloss.Color
	Border    lipgloss.Color
	Feed      lipgloss.Style
	Article   lipgloss.Style
	Selected  lipgloss.Style
	Failed    lipgloss.Style
	Muted     lipgloss.Style
	Header    lipgloss.Style
	Toast     lipgloss.Style
	ToastErr  lipgloss.Style
	GlamourBG string
}

// Resolve returns the palette for a theme name and mode. The mode wins over
// a "-dark"/"-light" suffix in the name; unknown families fall back to textual.
func Resolve(name string, dark bool) Palette {
	family := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(name), "-dark"), "-light")
	if family == "" {
		family = "textual"
	}
	if dark {
		return darkPalette(family + "-dark")
	}
	return lightPalette(family + "-light")
}

func darkPalette(name string) Palette {
	accent := lipgloss.Color("#cba6f7")
	text := lipgloss.Color("#cdd6f4")
	subtle := lipgloss.Color("#7f849c")
	surface := lipgloss.Color("#313244")
	red := lipgloss.Color("#f38ba8")
	return Palette{
		Name:      name,
		Dark:      true,
		Accent:    accent,
		Border:    lipgloss.Color("#45475a"),
		Feed:      lipgloss.NewStyle().Bold(true).Foreground(text),
		Article:   lipgloss.NewStyle().Foreground(lipgloss.Color("#bac2de")),
		Selected:  lipgloss.NewStyle().Background(surface).Foreground(accent),
		Failed:    lipgloss.NewStyle().Foreground(red),
		Muted:     lipgloss.NewStyle().Foreground(subtle),
		Header:    lipgloss.NewStyle().Foreground(subtle),
		Toast:     lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		ToastErr:  lipgloss.NewStyle().Foreground(red).Bold(true),
		GlamourBG: "dark",
	}
}

func lightPalette(name string) Palette {
	accent := lipgloss.Color("#8839ef")
	text := lipgloss.Color("#4c4f69")
	subtle := lipgloss.Color("#8c8fa1")
	surface := lipgloss.Color("#ccd0da")
	red := lipgloss.Color("#d20f39")
	return Palette{
		Name:      name,
		Dark:      false,
		Accent:    accent,
		Border:    lipgloss.Color("#bcc0cc"),
		Feed:      lipgloss.NewStyle().Bold(true).Foreground(text),
		Article:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5c5f77")),
		Selected:  lipgloss.NewStyle().Background(surface).Foreground(accent),
		Failed:    lipgloss.NewStyle().Foreground(red),
		Muted:     lipgloss.NewStyle().Foreground(subtle),
		Header:    lipgloss.NewStyle().Foreground(subtle),
		Toast:     lipgloss.NewStyle().Foreground(lipgloss.Color("#40a02b")),
		ToastErr:  lipgloss.NewStyle().Foreground(red).Bold(true),
		GlamourBG: "light",
	}
}
