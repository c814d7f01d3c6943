// Package settings defines application-level configuration data.
package settings

import (
	"strings"
	"time"
)

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Up         string `yaml:"up" kong:"help='Cursor up key',default='up'"`
	Down       string `yaml:"down" kong:"help='Cursor down key',default='down'"`
	UpPage     string `yaml:"up_page" kong:"help='Page Up key',default='pgup'"`
	DownPage   string `yaml:"down_page" kong:"help='Page Down key',default='pgdown'"`
	Toggle     string `yaml:"toggle" kong:"help='Expand/collapse feed key',default='enter,space'"`
	ScrollDown string `yaml:"scroll_down" kong:"help='Scroll article down key',default='j'"`
	ScrollUp   string `yaml:"scroll_up" kong:"help='Scroll article up key',default='k'"`
	OpenLink   string `yaml:"open_link" kong:"help='Open article in browser key',default='o'"`
	AddFeed    string `yaml:"add_feed" kong:"help='Add feed key',default='a'"`
	RemoveFeed string `yaml:"remove_feed" kong:"help='Remove feed key',default='d'"`
	Refresh    string `yaml:"refresh" kong:"help='Refresh key',default='r'"`
	ToggleDark string `yaml:"toggle_dark" kong:"help='Toggle dark mode key',default='t'"`
	Help       string `yaml:"help" kong:"help='Toggle help key',default='?'"`
	Quit       string `yaml:"quit" kong:"help='Quit key',default='q'"`
}

// Feed parser backends.
const (
	BackendGofeed = "gofeed"
	BackendRSS    = "rss"
)

// FetchConfig tunes the refresh scheduler and the feed parser.
type FetchConfig struct {
	Backend        string `yaml:"backend" kong:"help='Feed parser backend (gofeed/rss)',default='gofeed'"`
	MaxConcurrent  int    `yaml:"max_concurrent" kong:"help='Maximum simultaneous fetches (0 = unbounded)',default='8'"`
	TimeoutSeconds int    `yaml:"timeout_seconds" kong:"help='Per-fetch timeout in seconds',default='10'"`
	Retries        int    `yaml:"retries" kong:"help='Retries for network failures',default='1'"`
}

// Timeout returns the per-fetch timeout, never less than one second.
func (c FetchConfig) Timeout() time.Duration {
	return time.Duration(max(c.TimeoutSeconds, 1)) * time.Second
}

// ParserBackend returns the configured backend, defaulting to gofeed.
func (c FetchConfig) ParserBackend() string {
	if strings.EqualFold(strings.TrimSpace(c.Backend), BackendRSS) {
		return BackendRSS
	}
	return BackendGofeed
}

// LogConfig defines where diagnostics are written.
type LogConfig struct {
	Level string `yaml:"level" kong:"help='Log level (debug/info/warn/error)',default='info'"`
	File  string `yaml:"file" kong:"help='Log file path'"`
}

// Settings represents the application configuration.
type Settings struct {
	Feeds     []string     `yaml:"feeds" kong:"help='RSS/Atom Feed URLs'"`
	Theme     string       `yaml:"theme" kong:"help='Color theme name',default='textual-dark'"`
	DarkMode  bool         `yaml:"dark_mode" kong:"help='Use the dark palette',default='true'"`
	KeyMap    KeyMapConfig `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	Fetch     FetchConfig  `yaml:"fetch" kong:"embed,prefix='fetch.'"`
	Log       LogConfig    `yaml:"log" kong:"embed,prefix='log.'"`
	CacheFile string       `yaml:"cache_file" kong:"help='Feed cache database path'"`
}

// Defaults returns the settings used when no config file can be read.
func Defaults() Settings {
	return Settings{
		Feeds:    []string{},
		Theme:    "textual-dark",
		DarkMode: true,
		KeyMap: KeyMapConfig{
			Up:         "up",
			Down:       "down",
			UpPage:     "pgup",
			DownPage:   "pgdown",
			Toggle:     "enter,space",
			ScrollDown: "j",
			ScrollUp:   "k",
			OpenLink:   "o",
			AddFeed:    "a",
			RemoveFeed: "d",
			Refresh:    "r",
			ToggleDark: "t",
			Help:       "?",
			Quit:       "q",
		},
		Fetch: FetchConfig{
			Backend:        BackendGofeed,
			MaxConcurrent:  8,
			TimeoutSeconds: 10,
			Retries:        1,
		},
		Log: LogConfig{Level: "info"},
	}
}
