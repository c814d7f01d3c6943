// Package update holds UI update logic for the TUI.
package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/rsstream/internal/application/usecase"
	"github.com/tesso57/rsstream/internal/domain/reading"
	"github.com/tesso57/rsstream/internal/presentation/tui/state"
	"go.uber.org/zap"
)

// cacheTimeout bounds one snapshot write.
const cacheTimeout = 5 * time.Second

// Scheduler is the part of the refresh scheduler the UI drives.
type Scheduler interface {
	RefreshAll(urls []string) int
	RefreshOne(url string) bool
	Results() <-chan reading.FetchResult
}

// Deps groups external dependencies for updates.
type Deps struct {
	Subscriptions *usecase.SubscriptionService
	Reading       *usecase.ReadingService
	Scheduler     Scheduler
	OpenBrowser   func(string) error
	Log           *zap.SugaredLogger
}

func (d Deps) log() *zap.SugaredLogger {
	if d.Log == nil {
		return zap.NewNop().Sugar()
	}
	return d.Log
}

// FetchResultMsg carries one scheduler result into the event loop.
type FetchResultMsg struct {
	Result reading.FetchResult
}

// ResultsClosedMsg is emitted when the results channel is closed.
type ResultsClosedMsg struct{}

// ToastExpiredMsg removes a notification.
type ToastExpiredMsg struct {
	ID int
}

// CacheWrittenMsg reports a snapshot save or delete.
type CacheWrittenMsg struct {
	URL     string
	Deleted bool
	Err     error
}

// BrowserOpenedMsg reports the outcome of opening a link.
type BrowserOpenedMsg struct {
	URL string
	Err error
}

// WaitForResult blocks on the results channel for the next result.
func WaitForResult(results <-chan reading.FetchResult) tea.Cmd {
	if results == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-results
		if !ok {
			return ResultsClosedMsg{}
		}
		return FetchResultMsg{Result: r}
	}
}

// RememberCmd writes a feed snapshot to the cache. The snapshot is stamped
// now, on the UI goroutine, so a slower write of an older result cannot
// replace a newer one.
func RememberCmd(readingSvc *usecase.ReadingService, feed *reading.Feed) tea.Cmd {
	if readingSvc == nil || feed == nil {
		return nil
	}
	at := readingSvc.Stamp()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
		defer cancel()
		return CacheWrittenMsg{URL: feed.URL, Err: readingSvc.RememberAt(ctx, feed, at)}
	}
}

// ForgetCmd drops the cached snapshot of url.
func ForgetCmd(readingSvc *usecase.ReadingService, url string) tea.Cmd {
	if readingSvc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
		defer cancel()
		return CacheWrittenMsg{URL: url, Deleted: true, Err: readingSvc.Forget(ctx, url)}
	}
}

// OpenLinkCmd opens url with the platform browser.
func OpenLinkCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if open == nil {
			return BrowserOpenedMsg{URL: url}
		}
		return BrowserOpenedMsg{URL: url, Err: open(url)}
	}
}

// HandleWindowSize records the new size and re-lays out the panes.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg) {
	s.Width = msg.Width
	s.Height = msg.Height
	UpdateLayout(s)
	RenderContent(s)
}

// HandleCacheWritten logs cache failures; they never reach the user.
func HandleCacheWritten(msg CacheWrittenMsg, deps Deps) {
	if msg.Err == nil {
		return
	}
	if msg.Deleted {
		deps.log().Warnw("cache delete failed", "url", msg.URL, "error", msg.Err)
		return
	}
	deps.log().Warnw("cache save failed", "url", msg.URL, "error", msg.Err)
}

// HandleBrowserOpened reports a browser failure.
func HandleBrowserOpened(s *state.ModelState, msg BrowserOpenedMsg, deps Deps) tea.Cmd {
	if msg.Err == nil {
		return nil
	}
	deps.log().Warnw("open browser failed", "url", msg.URL, "error", msg.Err)
	s.Err = msg.Err
	return Notify(s, "Cannot open browser: "+msg.Err.Error(), state.Error)
}
