package textutil

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSingleLine(t *testing.T) {
	tests := map[string]string{
		"":                             "",
		"  Breaking:\n\tnews  today ":  "Breaking: news today",
		"\x1b[31mred\x1b[0m title":     "red title",
		"bell\x07 and\x00 nul":         "bell and nul",
		"2024-01-02 |  hello\r\nworld": "2024-01-02 | hello world",
	}
	for in, want := range tests {
		if got := SingleLine(in); got != want {
			t.Errorf("SingleLine(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Expected untouched text, got %q", got)
	}
	got := Truncate("a very long feed title", 8)
	if ansi.StringWidth(got) > 8 {
		t.Errorf("Truncate exceeded width: %q", got)
	}
	if got != "a very "+Ellipsis {
		t.Errorf("Expected ellipsis, got %q", got)
	}
	if got := Truncate("anything", 0); got != "" {
		t.Errorf("Expected empty for zero width, got %q", got)
	}
}
