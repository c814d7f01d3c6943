package update

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/rsstream/internal/presentation/tui/metrics"
	"github.com/tesso57/rsstream/internal/presentation/tui/state"
)

type layoutMetrics struct {
	sidebarWidth      int
	mainWidth         int
	sidebarListHeight int
	mainHeight        int
	contentHeight     int
}

// UpdateLayout sizes the tree list and the content viewport.
func UpdateLayout(s *state.ModelState) {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}

	layout := buildLayoutMetrics(s)
	s.TreeList.SetSize(layout.sidebarWidth, layout.sidebarListHeight)
	s.Viewport.Width = clampMin(layout.mainWidth-metrics.MainLeftPadding, 1)
	s.Viewport.Height = layout.contentHeight
}

// MainSize returns the width and height of the content pane.
func MainSize(s *state.ModelState) (width, height int) {
	layout := buildLayoutMetrics(s)
	return layout.mainWidth, layout.mainHeight
}

// SidebarSize returns the width and height of the tree pane.
func SidebarSize(s *state.ModelState) (width, height int) {
	layout := buildLayoutMetrics(s)
	return layout.sidebarWidth, layout.mainHeight
}

func buildLayoutMetrics(s *state.ModelState) layoutMetrics {
	availableHeight := clampMin(s.Height-footerHeight(s), 1)

	sidebarWidth := s.Width / 3
	mainWidth := clampMin(s.Width-sidebarWidth-metrics.SidebarRightBorderWidth, 1)

	sidebarListHeight := clampMin(availableHeight-metrics.SidebarTitleLines, 1)
	sidebarListHeight = reservePaginationSpace(s.TreeList, sidebarListHeight)

	return layoutMetrics{
		sidebarWidth:      sidebarWidth,
		mainWidth:         mainWidth,
		sidebarListHeight: sidebarListHeight,
		mainHeight:        availableHeight,
		contentHeight:     clampMin(availableHeight-metrics.HeaderLines, 1),
	}
}

func footerHeight(s *state.ModelState) int {
	return lipgloss.Height(FooterHelp(s)) + len(s.Toasts)
}

// FooterHelp returns the one-line key help shown under the panes.
func FooterHelp(s *state.ModelState) string {
	s.Help.Width = s.Width
	return s.Help.ShortHelpView(s.Keys.ShortHelp())
}

func reservePaginationSpace(m list.Model, height int) int {
	if height <= 1 || !m.ShowPagination() {
		return height
	}

	statusHeight := 0
	if m.ShowStatusBar() {
		statusHeight = 1
	}

	availHeight := height - statusHeight
	if availHeight < 1 {
		return height
	}

	if len(m.VisibleItems()) > availHeight {
		return height - 1
	}
	return height
}

func clampMin(value, min int) int {
	if value < min {
		return min
	}
	return value
}
