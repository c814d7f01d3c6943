package tui

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/tesso57/rsstream/internal/application/refresh"
	"github.com/tesso57/rsstream/internal/application/usecase"
	"github.com/tesso57/rsstream/internal/domain/feedtree"
	"github.com/tesso57/rsstream/internal/domain/reading"
	"github.com/tesso57/rsstream/internal/presentation/tui/state"
	"github.com/tesso57/rsstream/internal/presentation/tui/update"
)

const (
	feedA = "https://a.example"
	feedB = "https://b.example"
)

func TestRefreshWithSlowFeedShowsHealthyFeed(t *testing.T) {
	src := funcSource(func(ctx context.Context, url string) (*reading.Feed, error) {
		if url == feedA {
			return &reading.Feed{URL: feedA, Title: "Feed A", Articles: []reading.Article{
				{Label: "2024-01-02 | one", Title: "one", Link: "https://a.example/1", Content: "hi"},
			}}, nil
		}
		<-ctx.Done()
		return nil, ctx.Err()
	})
	sched := refresh.New(context.Background(), src, refresh.Options{MaxConcurrent: 2, Timeout: 50 * time.Millisecond}, nil)
	t.Cleanup(func() { _ = sched.Shutdown(time.Second) })

	m := newTestModel(t, &stubSubscriptionRepo{feeds: []string{feedA, feedB}}, sched)
	m.Init()
	if !m.state.Refreshing {
		t.Fatal("Expected refresh to start on Init")
	}
	if got := m.state.LastToast(); got != "Refreshing feeds..." {
		t.Errorf("Unexpected toast %q", got)
	}

	drain(t, m, sched.Results(), 2)

	if m.state.Refreshing || len(m.state.Awaiting) != 0 {
		t.Errorf("Expected refresh finished, awaiting %v", m.state.Awaiting)
	}
	if got := m.state.LastToast(); got != "Feeds updated (1 failed)." {
		t.Errorf("Unexpected toast %q", got)
	}

	b, ok := m.state.Tree.FindFeedNode(feedB)
	if !ok {
		t.Fatal("Expected a node for the slow feed")
	}
	if !b.Failed() || len(b.Articles) != 0 {
		t.Errorf("Expected failed empty node, got %+v", b)
	}
	var fe *reading.FetchError
	if !errors.As(b.Err, &fe) || fe.Kind != reading.KindTimeout {
		t.Fatalf("Expected timeout failure, got %v", b.Err)
	}

	m.state.TreeList.Select(0)
	update.ApplySelection(m.state)
	press(m, "down")

	if m.state.Selection.Ref != feedtree.ArticleRef(feedA, 0) {
		t.Errorf("Expected first article selected, got %+v", m.state.Selection.Ref)
	}
	if m.state.Selection.ArticleLink != "https://a.example/1" {
		t.Errorf("Unexpected link %q", m.state.Selection.ArticleLink)
	}
	if !strings.Contains(m.state.ContentMarkdown, "hi") {
		t.Errorf("Expected article content rendered, got %q", m.state.ContentMarkdown)
	}
	if !strings.Contains(m.View(), "Feed A") {
		t.Error("Expected healthy feed in view")
	}
}

func TestAddDuplicateFeedDoesNotFetch(t *testing.T) {
	sched := newFakeScheduler()
	m := newTestModel(t, &stubSubscriptionRepo{feeds: []string{feedA}}, sched)

	press(m, "a")
	if m.state.Session != state.AddingFeedView {
		t.Fatalf("Expected add prompt, got session %v", m.state.Session)
	}
	typeText(m, " "+feedA+" ")
	press(m, "enter")

	if m.state.Session != state.TreeView {
		t.Errorf("Expected prompt closed, got session %v", m.state.Session)
	}
	if got := m.state.LastToast(); got != "Feed already exists." {
		t.Errorf("Unexpected toast %q", got)
	}
	if !errors.Is(m.state.Err, reading.ErrDuplicateSubscription) {
		t.Errorf("Expected duplicate error, got %v", m.state.Err)
	}
	if _, one := sched.calls(); one != 0 {
		t.Errorf("Expected no fetch, got %d", one)
	}
	if !slices.Equal(m.state.Feeds, []string{feedA}) {
		t.Errorf("Unexpected feeds %v", m.state.Feeds)
	}
}

func TestAddFeedFetchesOnce(t *testing.T) {
	sched := newFakeScheduler()
	repo := &stubSubscriptionRepo{feeds: []string{feedA}}
	m := newTestModel(t, repo, sched)

	press(m, "a")
	typeText(m, feedB)
	press(m, "enter")

	want := []string{feedA, feedB}
	if !slices.Equal(m.state.Feeds, want) || !slices.Equal(repo.feeds, want) {
		t.Errorf("Expected feeds %v, got state %v repo %v", want, m.state.Feeds, repo.feeds)
	}
	if got := m.state.LastToast(); got != "Added: "+feedB {
		t.Errorf("Unexpected toast %q", got)
	}
	if !slices.Equal(sched.one, []string{feedB}) {
		t.Errorf("Expected one fetch for the new feed, got %v", sched.one)
	}
	if !m.state.Awaiting[feedB] {
		t.Error("Expected new feed to be awaited")
	}

	deliver(m, reading.Succeeded(feedB, 1, sampleFeed(feedB, "Feed B", "x")))
	if len(m.state.Awaiting) != 0 {
		t.Errorf("Expected nothing awaited, got %v", m.state.Awaiting)
	}
	node, ok := m.state.Tree.FindFeedNode(feedB)
	if !ok || len(node.Articles) != 1 {
		t.Fatalf("Expected new feed with one article, got %+v", node)
	}
}

func TestAddEmptyInputClosesPrompt(t *testing.T) {
	sched := newFakeScheduler()
	m := newTestModel(t, &stubSubscriptionRepo{}, sched)

	press(m, "a", "enter")
	if m.state.Session != state.TreeView {
		t.Errorf("Expected prompt closed, got session %v", m.state.Session)
	}
	if _, one := sched.calls(); one != 0 {
		t.Errorf("Expected no fetch, got %d", one)
	}

	press(m, "a", "esc")
	if m.state.Session != state.TreeView {
		t.Errorf("Expected esc to close prompt, got session %v", m.state.Session)
	}
}

func TestAddFeedRepositoryError(t *testing.T) {
	repo := &stubSubscriptionRepo{}
	repo.On("List").Return([]string{}, nil)
	repo.On("Add", feedA).Return(errors.New("disk full"))
	m := newTestModel(t, repo, newFakeScheduler())

	press(m, "a")
	typeText(m, feedA)
	press(m, "enter")

	if m.state.Err == nil || m.state.Err.Error() != "disk full" {
		t.Errorf("Expected repository error, got %v", m.state.Err)
	}
	if got := m.state.LastToast(); got != "Cannot add feed: disk full" {
		t.Errorf("Unexpected toast %q", got)
	}
	if len(m.state.Feeds) != 0 {
		t.Errorf("Expected no feeds, got %v", m.state.Feeds)
	}
}

func TestResultForUnsubscribedFeedIsDropped(t *testing.T) {
	m := newTestModel(t, &stubSubscriptionRepo{feeds: []string{feedA}}, newFakeScheduler())

	deliver(m, reading.Succeeded(feedB, 1, sampleFeed(feedB, "B", "x")))
	if n := m.state.Tree.Len(); n != 0 {
		t.Errorf("Expected empty tree, got %d feeds", n)
	}
}

func TestStaleResultIsDiscarded(t *testing.T) {
	m := newTestModel(t, &stubSubscriptionRepo{feeds: []string{feedA}}, newFakeScheduler())

	deliver(m, reading.Succeeded(feedA, 5, sampleFeed(feedA, "new", "fresh")))
	deliver(m, reading.Succeeded(feedA, 3, sampleFeed(feedA, "old", "stale", "older")))

	node, ok := m.state.Tree.FindFeedNode(feedA)
	if !ok {
		t.Fatal("Expected feed node")
	}
	if node.Title != "new" || len(node.Articles) != 1 {
		t.Errorf("Expected newest result kept, got %q with %d articles", node.Title, len(node.Articles))
	}
}

func TestSelectionSurvivesReplace(t *testing.T) {
	m := newTestModel(t, &stubSubscriptionRepo{feeds: []string{feedA}}, newFakeScheduler())

	deliver(m, reading.Succeeded(feedA, 1, sampleFeed(feedA, "A", "one", "two")))
	m.state.TreeList.Select(2)
	update.ApplySelection(m.state)
	if m.state.Selection.Ref != feedtree.ArticleRef(feedA, 1) {
		t.Fatalf("Expected second article selected, got %+v", m.state.Selection.Ref)
	}
	label := m.state.Selection.Label

	// "two" moves to the front after the refresh.
	fresh := sampleFeed(feedA, "A", "zero", "one")
	fresh.Articles = append([]reading.Article{sampleFeed(feedA, "A", "x", "two").Articles[1]}, fresh.Articles...)
	deliver(m, reading.Succeeded(feedA, 2, fresh))

	if m.state.Selection.Label != label {
		t.Errorf("Expected label %q kept, got %q", label, m.state.Selection.Label)
	}
	if m.state.Selection.Ref != feedtree.ArticleRef(feedA, 0) {
		t.Errorf("Expected selection to follow the article, got %+v", m.state.Selection.Ref)
	}
	if m.state.Selection.ArticleLink != feedA+"/two" {
		t.Errorf("Unexpected link %q", m.state.Selection.ArticleLink)
	}
}

func TestSelectionFallsBackToFeedWhenArticleGone(t *testing.T) {
	m := newTestModel(t, &stubSubscriptionRepo{feeds: []string{feedA}}, newFakeScheduler())

	deliver(m, reading.Succeeded(feedA, 1, sampleFeed(feedA, "A", "one")))
	m.state.TreeList.Select(1)
	update.ApplySelection(m.state)
	if !m.state.Selection.IsArticle() {
		t.Fatal("Expected article selected")
	}

	deliver(m, reading.Succeeded(feedA, 2, sampleFeed(feedA, "A")))

	if !m.state.Selection.IsFeed() || m.state.Selection.Ref.FeedURL != feedA {
		t.Errorf("Expected fallback to the feed row, got %+v", m.state.Selection)
	}
	if m.state.Selection.ArticleLink != "" {
		t.Errorf("Expected link cleared, got %q", m.state.Selection.ArticleLink)
	}
}

func TestFailureKeepsArticles(t *testing.T) {
	m := newTestModel(t, &stubSubscriptionRepo{feeds: []string{feedA}}, newFakeScheduler())

	deliver(m, reading.Succeeded(feedA, 1, sampleFeed(feedA, "A", "one")))
	deliver(m, reading.Failed(feedA, 2, reading.NewFetchError(feedA, context.DeadlineExceeded)))

	node, ok := m.state.Tree.FindFeedNode(feedA)
	if !ok {
		t.Fatal("Expected feed node")
	}
	if !node.Failed() || len(node.Articles) != 1 {
		t.Errorf("Expected failed node with its article, got %+v", node)
	}
	if got := m.state.LastToast(); got != "Fetch failed: "+feedA {
		t.Errorf("Unexpected toast %q", got)
	}
}

func TestToggleCollapsesFeed(t *testing.T) {
	m := newTestModel(t, &stubSubscriptionRepo{feeds: []string{feedA}}, newFakeScheduler())
	deliver(m, reading.Succeeded(feedA, 1, sampleFeed(feedA, "A", "one", "two")))
	if n := len(m.state.TreeList.Items()); n != 3 {
		t.Fatalf("Expected 3 rows, got %d", n)
	}

	press(m, "enter")
	if !m.state.Collapsed[feedA] || len(m.state.TreeList.Items()) != 1 {
		t.Errorf("Expected collapsed feed, got %d rows", len(m.state.TreeList.Items()))
	}

	press(m, "space")
	if m.state.Collapsed[feedA] || len(m.state.TreeList.Items()) != 3 {
		t.Errorf("Expected expanded feed, got %d rows", len(m.state.TreeList.Items()))
	}
}

func TestScrollKeysMoveContent(t *testing.T) {
	m := newTestModel(t, &stubSubscriptionRepo{feeds: []string{feedA}}, newFakeScheduler())
	long := sampleFeed(feedA, "A", "one")
	long.Articles[0].Content = strings.Repeat("line\n\n", 200)
	deliver(m, reading.Succeeded(feedA, 1, long))
	press(m, "down")
	if !m.state.Selection.IsArticle() {
		t.Fatal("Expected article selected")
	}

	press(m, "j", "j")
	if m.state.Viewport.YOffset != 2 {
		t.Errorf("Expected offset 2, got %d", m.state.Viewport.YOffset)
	}
	press(m, "k")
	if m.state.Viewport.YOffset != 1 {
		t.Errorf("Expected offset 1, got %d", m.state.Viewport.YOffset)
	}
}

func TestOpenLink(t *testing.T) {
	var opened []string
	repo := &stubSubscriptionRepo{feeds: []string{feedA}}
	m := newTestModel(t, repo, newFakeScheduler())
	m.openBrowser = func(url string) error {
		opened = append(opened, url)
		return nil
	}
	deliver(m, reading.Succeeded(feedA, 1, sampleFeed(feedA, "A", "one")))

	send(m, keyMsg("o"))
	if got := m.state.LastToast(); got != "Select an article with a link to open it." {
		t.Errorf("Unexpected toast on feed row %q", got)
	}

	press(m, "down")
	if cmd := send(m, keyMsg("o")); cmd == nil {
		t.Fatal("Expected open command")
	}
	if got := m.state.LastToast(); got != "Opening browser..." {
		t.Errorf("Unexpected toast %q", got)
	}

	msg := update.OpenLinkCmd(m.openBrowser, m.state.Selection.ArticleLink)()
	if msg != (update.BrowserOpenedMsg{URL: feedA + "/one"}) {
		t.Errorf("Unexpected message %#v", msg)
	}
	if !slices.Equal(opened, []string{feedA + "/one"}) {
		t.Errorf("Unexpected opened links %v", opened)
	}
}

func TestBrowserFailureIsReported(t *testing.T) {
	m := newTestModel(t, &stubSubscriptionRepo{}, newFakeScheduler())
	send(m, update.BrowserOpenedMsg{URL: "u", Err: errors.New("no browser")})
	if m.state.Err == nil || m.state.Err.Error() != "no browser" {
		t.Errorf("Expected browser error, got %v", m.state.Err)
	}
	if got := m.state.LastToast(); got != "Cannot open browser: no browser" {
		t.Errorf("Unexpected toast %q", got)
	}
}

func TestRefreshKeyDispatchesAllFeeds(t *testing.T) {
	sched := newFakeScheduler()
	m := newTestModel(t, &stubSubscriptionRepo{feeds: []string{feedA, feedB}}, sched)

	press(m, "r")
	if all, _ := sched.calls(); all != 1 {
		t.Fatalf("Expected one refresh, got %d", all)
	}
	if !slices.Equal(sched.all[0], []string{feedA, feedB}) {
		t.Errorf("Unexpected refresh set %v", sched.all[0])
	}
	if !m.state.Refreshing {
		t.Error("Expected refreshing")
	}

	deliver(m, reading.Succeeded(feedA, 1, sampleFeed(feedA, "A")))
	if !m.state.Refreshing {
		t.Error("Expected refresh to wait for the second feed")
	}
	deliver(m, reading.Succeeded(feedB, 2, sampleFeed(feedB, "B")))
	if m.state.Refreshing {
		t.Error("Expected refresh finished")
	}
	if got := m.state.LastToast(); got != "Feeds updated." {
		t.Errorf("Unexpected toast %q", got)
	}
}

func TestRefreshWithoutFeeds(t *testing.T) {
	sched := newFakeScheduler()
	m := newTestModel(t, &stubSubscriptionRepo{}, sched)

	press(m, "r")
	if all, _ := sched.calls(); all != 0 {
		t.Errorf("Expected no refresh, got %d", all)
	}
	if m.state.Refreshing {
		t.Error("Expected not refreshing")
	}
	if got := m.state.LastToast(); got != "No feeds yet. Press a to add one." {
		t.Errorf("Unexpected toast %q", got)
	}
}

func TestToggleDarkMode(t *testing.T) {
	m := newTestModel(t, &stubSubscriptionRepo{}, newFakeScheduler())
	if !m.state.DarkMode {
		t.Fatal("Expected dark mode by default")
	}

	press(m, "t")
	if m.state.DarkMode || m.state.Palette.Dark {
		t.Error("Expected light palette")
	}
	if m.Settings().DarkMode {
		t.Error("Expected settings to carry the toggled mode")
	}
}

func TestHelpModal(t *testing.T) {
	m := newTestModel(t, &stubSubscriptionRepo{}, newFakeScheduler())

	press(m, "?")
	if !m.state.Help.ShowAll {
		t.Fatal("Expected help open")
	}
	if !strings.Contains(m.View(), "dark mode") {
		t.Error("Expected full key help in view")
	}

	press(m, "r")
	if !m.state.Help.ShowAll {
		t.Error("Other keys must be ignored while help is open")
	}

	press(m, "esc")
	if m.state.Help.ShowAll {
		t.Error("Expected esc to close help")
	}
}

func TestToastExpires(t *testing.T) {
	m := newTestModel(t, &stubSubscriptionRepo{}, newFakeScheduler())
	press(m, "r")
	if len(m.state.Toasts) != 1 {
		t.Fatalf("Expected one toast, got %d", len(m.state.Toasts))
	}

	send(m, update.ToastExpiredMsg{ID: m.state.Toasts[0].ID})
	if len(m.state.Toasts) != 0 {
		t.Errorf("Expected toast expired, got %v", m.state.Toasts)
	}
}

func TestRestoredTreeIsShownBeforeRefresh(t *testing.T) {
	tree := feedtree.New()
	tree.Restore(sampleFeed(feedA, "Cached A", "one"), time.Now())

	m := NewModel(Options{
		Settings:      testSettings(feedA),
		Subscriptions: usecase.NewSubscriptionService(&stubSubscriptionRepo{feeds: []string{feedA}}),
		Tree:          tree,
	})
	if n := len(m.state.TreeList.Items()); n != 2 {
		t.Fatalf("Expected feed and article rows, got %d", n)
	}
	if !m.state.Selection.IsFeed() {
		t.Error("Expected feed row selected")
	}
	if !strings.Contains(m.state.ContentMarkdown, "cached copy") {
		t.Errorf("Expected cached note, got %q", m.state.ContentMarkdown)
	}
}
