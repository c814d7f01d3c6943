package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/rsstream/internal/domain/feedtree"
	"github.com/tesso57/rsstream/internal/domain/subscription"
	"github.com/tesso57/rsstream/internal/presentation/tui/state"
)

// StartRefresh dispatches a fetch for every subscription.
func StartRefresh(s *state.ModelState, deps Deps) tea.Cmd {
	if len(s.Feeds) == 0 {
		return Notify(s, "No feeds yet. Press a to add one.", state.Info)
	}
	if deps.Scheduler == nil {
		return nil
	}
	started := deps.Scheduler.RefreshAll(s.Feeds)
	for _, url := range s.Feeds {
		s.Awaiting[url] = true
	}
	deps.log().Infow("refresh all", "feeds", len(s.Feeds), "started", started)

	wasRefreshing := s.Refreshing
	s.Refreshing = true
	if !wasRefreshing {
		s.RefreshFailures = 0
	}
	RebuildTree(s)
	return tea.Batch(Notify(s, "Refreshing feeds...", state.Info), s.Spinner.Tick)
}

// HandleFetchResultMsg applies one result to the tree and waits for the next.
func HandleFetchResultMsg(s *state.ModelState, msg FetchResultMsg, deps Deps) tea.Cmd {
	r := msg.Result
	url := r.URL()
	cmds := []tea.Cmd{waitNext(deps)}
	delete(s.Awaiting, url)

	if !subscription.Contains(s.Feeds, url) {
		deps.log().Debugw("result for unsubscribed feed dropped", "url", url, "seq", r.Seq())
		return tea.Batch(append(cmds, finishRefresh(s))...)
	}

	outcome := s.Tree.ApplyFetchResult(r)
	switch {
	case outcome == feedtree.Discarded:
		deps.log().Debugw("stale result discarded", "url", url, "seq", r.Seq())
	case r.OK():
		deps.log().Debugw("feed applied", "url", url, "seq", r.Seq(), "outcome", outcome.String())
		cmds = append(cmds, RememberCmd(deps.Reading, r.Feed()))
	default:
		deps.log().Warnw("feed fetch failed", "url", url, "seq", r.Seq(), "error", r.Err())
		if s.Refreshing {
			s.RefreshFailures++
		} else {
			cmds = append(cmds, Notify(s, fmt.Sprintf("Fetch failed: %s", url), state.Error))
		}
	}

	RebuildTree(s)
	cmds = append(cmds, finishRefresh(s))
	return tea.Batch(cmds...)
}

func waitNext(deps Deps) tea.Cmd {
	if deps.Scheduler == nil {
		return nil
	}
	return WaitForResult(deps.Scheduler.Results())
}

func finishRefresh(s *state.ModelState) tea.Cmd {
	if !s.Refreshing || len(s.Awaiting) > 0 {
		return nil
	}
	s.Refreshing = false
	if s.RefreshFailures == 0 {
		return Notify(s, "Feeds updated.", state.Info)
	}
	return Notify(s, fmt.Sprintf("Feeds updated (%d failed).", s.RefreshFailures), state.Warn)
}
