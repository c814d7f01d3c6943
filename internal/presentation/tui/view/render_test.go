package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/rsstream/internal/presentation/tui/components/main"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/modal"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/rsstream/internal/presentation/tui/components/toast"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		props     Props
		wantParts []string
		without   []string
	}{
		{
			name: "modal overlay",
			props: Props{
				Sidebar: sidebar.Props{View: "SIDEBAR_CONTENT", Width: 20, Height: 10},
				Modal:   modal.Props{Visible: true, Kind: modal.Quit, Body: "QUIT_CONTENT", Width: 100, Height: 50},
			},
			wantParts: []string{"QUIT_CONTENT"},
			without:   []string{"SIDEBAR_CONTENT"},
		},
		{
			name: "standard layout",
			props: Props{
				Sidebar: sidebar.Props{View: "SIDEBAR_CONTENT", Width: 20, Height: 10},
				Header:  header.Props{Visible: true, Link: "LINK", FeedTitle: "FEED"},
				Main:    mainview.Props{Width: 80, Height: 10, Body: "MAIN_CONTENT"},
				Toasts: toast.Props{
					Items: []toast.Item{{Text: "TOAST"}},
					Style: lipgloss.NewStyle(), ErrStyle: lipgloss.NewStyle(),
				},
				Help: "FOOTER_HELP",
			},
			wantParts: []string{"SIDEBAR_CONTENT", "LINK", "FEED", "MAIN_CONTENT", "TOAST", "FOOTER_HELP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.props)
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Render() missing %q", part)
				}
			}
			for _, part := range tt.without {
				if strings.Contains(got, part) {
					t.Errorf("Render() should not contain %q", part)
				}
			}
		})
	}
}

func TestFooterOrdersToastsAboveHelp(t *testing.T) {
	got := Footer(toast.Props{Items: []toast.Item{{Text: "one"}, {Text: "two"}}}, "help")
	lines := strings.Split(got, "\n")
	if len(lines) != 3 || strings.TrimSpace(lines[0]) != "one" || strings.TrimSpace(lines[2]) != "help" {
		t.Fatalf("unexpected footer %q", got)
	}
}
