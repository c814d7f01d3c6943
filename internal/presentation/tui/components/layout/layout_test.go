package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestRenderPlacesPanesAboveFooter(t *testing.T) {
	got := Render(Props{Sidebar: "TREE", Main: "ARTICLE", Footer: "? toggle help"})

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "TREEARTICLE") {
		t.Errorf("Expected sidebar left of main, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "? toggle help") {
		t.Errorf("Expected footer last, got %q", lines[1])
	}
}

func TestRenderPinsFooterToWindowBottom(t *testing.T) {
	got := Render(Props{
		Sidebar: "feed\narticle",
		Main:    "body",
		Footer:  "Feeds updated.\nhelp",
		Height:  8,
	})

	lines := strings.Split(got, "\n")
	if len(lines) != 8 {
		t.Fatalf("Expected window height 8, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[6], "Feeds updated.") || !strings.HasPrefix(lines[7], "help") {
		t.Errorf("Expected footer on the last two lines, got %q", lines[6:])
	}
}

func TestRenderCutsOversizedPanes(t *testing.T) {
	got := Render(Props{
		Sidebar: strings.Repeat("row\n", 9) + "row",
		Main:    strings.Repeat("x", 40),
		Footer:  "help",
		Width:   12,
		Height:  4,
	})

	if h := lipgloss.Height(got); h != 4 {
		t.Errorf("Expected height 4, got %d", h)
	}
	for i, line := range strings.Split(got, "\n") {
		if w := ansi.StringWidth(line); w > 12 {
			t.Errorf("line %d is %d cells wide, limit 12", i, w)
		}
	}
	if !strings.HasSuffix(strings.TrimRight(got, " "), "help") {
		t.Errorf("Expected footer kept, got %q", got)
	}
}
