package tui

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"
	"github.com/tesso57/rsstream/internal/application/settings"
	"github.com/tesso57/rsstream/internal/application/usecase"
	"github.com/tesso57/rsstream/internal/domain/reading"
	"github.com/tesso57/rsstream/internal/presentation/tui/update"
)

type stubSubscriptionRepo struct {
	mock.Mock
	feeds []string
}

func (s *stubSubscriptionRepo) List() ([]string, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called()
		feeds, _ := args.Get(0).([]string)
		return feeds, args.Error(1)
	}
	return slices.Clone(s.feeds), nil
}

func (s *stubSubscriptionRepo) Add(url string) error {
	if len(s.ExpectedCalls) > 0 {
		return s.Called(url).Error(0)
	}
	s.feeds = append(s.feeds, url)
	return nil
}

func (s *stubSubscriptionRepo) Remove(url string) error {
	if len(s.ExpectedCalls) > 0 {
		return s.Called(url).Error(0)
	}
	s.feeds = slices.DeleteFunc(s.feeds, func(f string) bool { return f == url })
	return nil
}

// fakeScheduler records dispatches; tests feed results by hand.
type fakeScheduler struct {
	mu      sync.Mutex
	all     [][]string
	one     []string
	results chan reading.FetchResult
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{results: make(chan reading.FetchResult, 16)}
}

func (f *fakeScheduler) RefreshAll(urls []string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.all = append(f.all, slices.Clone(urls))
	return len(urls)
}

func (f *fakeScheduler) RefreshOne(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.one = append(f.one, url)
	return true
}

func (f *fakeScheduler) Results() <-chan reading.FetchResult { return f.results }

func (f *fakeScheduler) calls() (all, one int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.all), len(f.one)
}

type funcSource func(ctx context.Context, url string) (*reading.Feed, error)

func (f funcSource) Fetch(ctx context.Context, url string) (*reading.Feed, error) {
	return f(ctx, url)
}

func testSettings(feeds ...string) settings.Settings {
	cfg := settings.Defaults()
	cfg.Feeds = feeds
	return cfg
}

func newTestModel(t *testing.T, repo *stubSubscriptionRepo, sched update.Scheduler) *Model {
	t.Helper()
	m := NewModel(Options{
		Settings:      testSettings(repo.feeds...),
		Subscriptions: usecase.NewSubscriptionService(repo),
		Reading:       usecase.NewReadingService(nil, time.Now),
		Scheduler:     sched,
		OpenBrowser:   func(string) error { return nil },
	})
	send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		send(m, keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func deliver(m *Model, r reading.FetchResult) {
	send(m, update.FetchResultMsg{Result: r})
}

// drain applies n results from the channel, failing after a deadline.
func drain(t *testing.T, m *Model, results <-chan reading.FetchResult, n int) {
	t.Helper()
	for range n {
		select {
		case r := <-results:
			deliver(m, r)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for a fetch result")
		}
	}
}

func sampleFeed(url, title string, articles ...string) *reading.Feed {
	f := &reading.Feed{URL: url, Title: title}
	for i, a := range articles {
		f.Articles = append(f.Articles, reading.Article{
			Label:   "2024-01-0" + string(rune('1'+i)) + " | " + a,
			Title:   a,
			Link:    url + "/" + a,
			Content: "body of " + a,
		})
	}
	return f
}
