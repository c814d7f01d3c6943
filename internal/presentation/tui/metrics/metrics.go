// Package metrics centralizes layout constants for the TUI.
package metrics

const (
	// HeaderLines is the link and feed line plus the gap under them.
	HeaderLines             = 3
	SidebarTitleLines       = 2
	SidebarRightBorderWidth = 1
	MainLeftPadding         = 1

	ItemRightPadding  = 1
	ItemSafetyPadding = 1
)
