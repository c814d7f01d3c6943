// Package view orchestrates the composition of UI components.
package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/header"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/layout"
	mainview "github.com/tesso57/rsstream/internal/presentation/tui/components/main"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/modal"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/toast"
)

// Props aggregates properties for all UI components.
type Props struct {
	Sidebar sidebar.Props
	Header  header.Props
	Main    mainview.Props
	Modal   modal.Props
	Toasts  toast.Props
	Help    string
	// Width and Height are the window size; zero leaves the layout unconstrained.
	Width  int
	Height int
}

// Render renders the complete UI view based on the provided props.
func Render(p Props) string {
	if p.Modal.Visible {
		return modal.Render(p.Modal)
	}

	p.Main.Header = header.Render(p.Header)

	return layout.Render(layout.Props{
		Sidebar: sidebar.Render(p.Sidebar),
		Main:    mainview.Render(p.Main),
		Footer:  Footer(p.Toasts, p.Help),
		Width:   p.Width,
		Height:  p.Height,
	})
}

// Footer stacks notifications above the help line.
func Footer(t toast.Props, help string) string {
	lines := toast.Lines(t)
	if help != "" {
		lines = append(lines, help)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
