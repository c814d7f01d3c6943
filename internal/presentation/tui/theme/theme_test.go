package theme

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		dark     bool
		wantName string
		wantBG   string
	}{
		{name: "textual-dark", dark: true, wantName: "textual-dark", wantBG: "dark"},
		{name: "textual-dark", dark: false, wantName: "textual-light", wantBG: "light"},
		{name: "", dark: true, wantName: "textual-dark", wantBG: "dark"},
		{name: "nord", dark: false, wantName: "nord-light", wantBG: "light"},
	}
	for _, tt := range tests {
		p := Resolve(tt.name, tt.dark)
		if p.Name != tt.wantName || p.GlamourBG != tt.wantBG || p.Dark != tt.dark {
			t.Errorf("Resolve(%q, %v) = %q/%q, want %q/%q", tt.name, tt.dark, p.Name, p.GlamourBG, tt.wantName, tt.wantBG)
		}
	}
}
