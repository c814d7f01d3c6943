// Command rsstream is a terminal RSS/Atom reader.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/rsstream/internal/application/refresh"
	"github.com/tesso57/rsstream/internal/application/settings"
	"github.com/tesso57/rsstream/internal/application/usecase"
	"github.com/tesso57/rsstream/internal/domain/feedtree"
	"github.com/tesso57/rsstream/internal/infrastructure/cache"
	"github.com/tesso57/rsstream/internal/infrastructure/config"
	"github.com/tesso57/rsstream/internal/infrastructure/feed"
	"github.com/tesso57/rsstream/internal/logger"
	"github.com/tesso57/rsstream/internal/presentation/tui"
	"go.uber.org/zap"
)

const (
	shutdownGrace  = 2 * time.Second
	startupTimeout = 5 * time.Second
)

// CLI holds the command-line flags. Flags override the config file for this
// run only; they are never written back.
type CLI struct {
	Config        string        `help:"Config file path." type:"path" placeholder:"PATH"`
	LogLevel      string        `help:"Log level (debug/info/warn/error)." placeholder:"LEVEL"`
	LogFile       string        `help:"Log file path." type:"path" placeholder:"PATH"`
	MaxConcurrent int           `help:"Maximum simultaneous fetches." placeholder:"N"`
	Timeout       time.Duration `help:"Per-fetch timeout, e.g. 10s." placeholder:"DURATION"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("rsstream"),
		kong.Description("A terminal RSS/Atom reader."),
		kong.UsageOnError(),
	)
	if err := run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "rsstream: %v\n", err)
		os.Exit(1)
	}
}

func run(cli CLI) error {
	store, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	runtimeCfg := applyFlags(store.Settings, cli)

	logErr := logger.Init(logger.Config{Level: runtimeCfg.Log.Level, File: runtimeCfg.Log.File})
	defer logger.Sync()
	log := logger.Named("main")
	log.Infow("starting", "config", store.Path(), "feeds", len(store.Settings.Feeds))
	if store.Recovered != nil {
		log.Warnw("config was malformed, defaults loaded", "path", store.Recovered.Path, "backup", store.Recovered.Backup, "error", store.Recovered.Err)
	}
	if store.Unsaved != nil {
		log.Warnw("config not written, running from memory", "path", store.Unsaved.Path, "error", store.Unsaved.Err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := openCache(ctx, runtimeCfg.CacheFile, log)
	if closer, ok := snapshots.(*cache.Store); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Warnw("close cache", "error", err)
			}
		}()
	}

	readingSvc := usecase.NewReadingService(snapshots, time.Now)
	tree := feedtree.New()
	tree.SetOrder(store.Settings.Feeds)
	restoreCtx, restoreCancel := context.WithTimeout(ctx, startupTimeout)
	restored, err := readingSvc.Restore(restoreCtx, tree, store.Settings.Feeds)
	restoreCancel()
	if err != nil {
		log.Warnw("restore cache", "error", err)
	} else {
		log.Infow("restored cached feeds", "count", restored)
	}

	source := feed.New(runtimeCfg.Fetch.ParserBackend(), http.DefaultClient)
	scheduler := refresh.New(ctx, source, refresh.Options{
		MaxConcurrent: runtimeCfg.Fetch.MaxConcurrent,
		Timeout:       runtimeCfg.Fetch.Timeout(),
		Retries:       runtimeCfg.Fetch.Retries,
	}, logger.Named("refresh"))

	model := tui.NewModel(tui.Options{
		Settings:      runtimeCfg,
		Subscriptions: usecase.NewSubscriptionService(store),
		Reading:       readingSvc,
		Scheduler:     scheduler,
		Tree:          tree,
		Log:           logger.Named("tui"),
	})

	_, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()

	if err := scheduler.Shutdown(shutdownGrace); err != nil {
		log.Warnw("scheduler shutdown", "error", err)
	}

	store.Settings.DarkMode = model.Settings().DarkMode
	if err := store.Save(); err != nil {
		var saveErr *config.SaveError
		if errors.As(err, &saveErr) {
			log.Errorw("save config", "path", saveErr.Path, "error", saveErr.Err)
		}
		fmt.Fprintf(os.Stderr, "rsstream: %v\n", err)
	}

	if logErr != nil {
		fmt.Fprintf(os.Stderr, "rsstream: logging disabled: %v\n", logErr)
	}
	if runErr != nil {
		return fmt.Errorf("tui: %w", runErr)
	}
	log.Infow("bye")
	return nil
}

// openCache returns nil when the cache cannot be opened; the reader then runs
// without restoring or remembering feeds.
func openCache(ctx context.Context, path string, log *zap.SugaredLogger) usecase.SnapshotRepository {
	db, err := cache.Open(ctx, path)
	if err != nil {
		log.Warnw("cache unavailable, running without it", "path", path, "error", err)
		return nil
	}
	return db
}

func applyFlags(cfg settings.Settings, cli CLI) settings.Settings {
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFile != "" {
		cfg.Log.File = cli.LogFile
	}
	if cli.MaxConcurrent > 0 {
		cfg.Fetch.MaxConcurrent = cli.MaxConcurrent
	}
	if cli.Timeout > 0 {
		cfg.Fetch.TimeoutSeconds = int(max(cli.Timeout.Round(time.Second), time.Second) / time.Second)
	}
	return cfg
}
