// Package config handles configuration loading and saving.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/tesso57/rsstream/internal/application/settings"
	"github.com/tesso57/rsstream/internal/domain/reading"
	"github.com/tesso57/rsstream/internal/domain/subscription"
	"gopkg.in/yaml.v3"
)

const appName = "rsstream"

// LoadError reports a config file that could not be read. The file has been
// moved to Backup and defaults are in effect.
type LoadError struct {
	Path   string
	Backup string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Backup != "" {
		return fmt.Sprintf("config %s unreadable, moved to %s: %v", e.Path, e.Backup, e.Err)
	}
	return fmt.Sprintf("config %s unreadable: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a failure to write the config file.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save config %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Store manages persisted application settings.
type Store struct {
	Settings settings.Settings
	// Recovered is set when the file on disk was malformed and defaults were used.
	Recovered *LoadError
	// Unsaved is set when the defaults could not be written at load time. The
	// store keeps working in memory and every Save tries the file again.
	Unsaved    *SaveError
	configPath string
}

// DefaultPath returns ~/.config/rsstream/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.yaml"), nil
}

// Load loads the configuration from the specified path or default location.
// A malformed or unwritable file never fails the load: defaults are used and
// the reason is kept on Store.Recovered or Store.Unsaved.
func Load(customPath ...string) (*Store, error) {
	var configPath string
	if len(customPath) > 0 && customPath[0] != "" {
		configPath = customPath[0]
	} else {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}

	store := &Store{configPath: configPath}
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		store.Unsaved = &SaveError{Path: configPath, Err: fmt.Errorf("create config directory: %w", err)}
	}

	_, statErr := os.Stat(configPath)
	exists := statErr == nil

	cfg, err := parse(configPath, exists)
	if err != nil {
		store.Recovered = recoverFile(configPath, err)
		cfg = settings.Defaults()
		exists = false
	}

	store.Settings = cfg
	store.Settings.Feeds = normalizeFeeds(cfg.Feeds)
	if strings.TrimSpace(store.Settings.CacheFile) == "" {
		store.Settings.CacheFile = filepath.Join(xdgDir("XDG_CACHE_HOME", ".cache"), appName, "cache.db")
	}
	if strings.TrimSpace(store.Settings.Log.File) == "" {
		store.Settings.Log.File = filepath.Join(xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state")), appName, appName+".log")
	}

	if !exists && store.Unsaved == nil {
		if err := store.Save(); err != nil {
			var se *SaveError
			if !errors.As(err, &se) {
				se = &SaveError{Path: configPath, Err: err}
			}
			store.Unsaved = se
		}
	}

	return store, nil
}

func parse(configPath string, exists bool) (settings.Settings, error) {
	cfg := settings.Settings{}
	var options []kong.Option

	if exists {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return cfg, err
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, err
		}
		options = append(options, kong.Configuration(yamlKongLoader, configPath))
	}

	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return cfg, err
	}
	if _, err := parser.Parse([]string{}); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func recoverFile(configPath string, cause error) *LoadError {
	le := &LoadError{Path: configPath, Err: cause}
	backup := configPath + ".bak"
	if err := os.Rename(configPath, backup); err == nil {
		le.Backup = backup
	}
	return le
}

func normalizeFeeds(feeds []string) []string {
	split := make([]string, 0, len(feeds))
	for _, feed := range feeds {
		split = append(split, strings.Fields(feed)...)
	}
	return subscription.Dedupe(split)
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, fallback)
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			if v, ok := lookup(values, strings.Split(name, ".")); ok {
				return v, nil
			}
		}
		return nil, nil
	}
	return f, nil
}

func lookup(values map[string]any, path []string) (any, bool) {
	curr := values
	for i, part := range path {
		v, ok := curr[part]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		curr = next
	}
	return nil, false
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.configPath }

// List returns the currently configured feed URLs.
func (s *Store) List() ([]string, error) {
	feeds := make([]string, len(s.Settings.Feeds))
	copy(feeds, s.Settings.Feeds)
	return feeds, nil
}

// Add appends a new feed URL and saves the configuration.
func (s *Store) Add(url string) error {
	if subscription.Contains(s.Settings.Feeds, url) {
		return reading.ErrDuplicateSubscription
	}
	s.Settings.Feeds = append(s.Settings.Feeds, url)
	return s.Save()
}

// Remove deletes a feed by URL and saves the configuration.
func (s *Store) Remove(url string) error {
	if !subscription.Contains(s.Settings.Feeds, url) {
		return fmt.Errorf("remove %q: %w", url, reading.ErrInvalidSelection)
	}
	s.Settings.Feeds = subscription.Without(s.Settings.Feeds, url)
	return s.Save()
}

// Save writes the current settings to the config file.
func (s *Store) Save() error {
	f, err := os.Create(s.configPath)
	if err != nil {
		return &SaveError{Path: s.configPath, Err: err}
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(s.Settings); err != nil {
		return &SaveError{Path: s.configPath, Err: err}
	}
	if err := enc.Close(); err != nil {
		return &SaveError{Path: s.configPath, Err: err}
	}
	return nil
}
