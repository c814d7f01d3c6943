// Package refresh runs feed fetches concurrently and delivers their results
// on a single channel consumed by the UI goroutine.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tesso57/rsstream/internal/domain/reading"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// DefaultTimeout bounds a single fetch attempt.
const DefaultTimeout = 10 * time.Second

// ErrShutdownTimeout is returned when workers outlive the shutdown grace period.
var ErrShutdownTimeout = errors.New("refresh: workers still running after grace period")

// Source performs a blocking fetch of one feed.
type Source interface {
	Fetch(ctx context.Context, url string) (*reading.Feed, error)
}

// Options configures a Scheduler.
type Options struct {
	// MaxConcurrent caps simultaneous fetches. Zero or less means unbounded.
	MaxConcurrent int
	// Timeout bounds each attempt. Zero uses DefaultTimeout.
	Timeout time.Duration
	// Retries is the number of extra attempts for network failures.
	Retries int
	// Buffer is the capacity of the results channel.
	Buffer int
	// RetryInterval is the initial backoff between attempts.
	RetryInterval time.Duration
}

// Scheduler dispatches one task per URL and coalesces requests for URLs that
// are already in flight: the running fetch answers the new request.
//
// Every result is tagged with a monotonic sequence number so the consumer can
// drop a result that is older than one it already applied for the same URL.
type Scheduler struct {
	source  Source
	opts    Options
	log     *zap.SugaredLogger
	ctx     context.Context
	cancel  context.CancelFunc
	sem     *semaphore.Weighted
	results chan reading.FetchResult
	seq     atomic.Uint64
	wg      sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]uint64
	closed   bool
}

// New creates a scheduler bound to parent. Cancelling parent has the same
// effect as Shutdown without waiting.
func New(parent context.Context, source Source, opts Options, log *zap.SugaredLogger) *Scheduler {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 64
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 500 * time.Millisecond
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(parent)
	s := &Scheduler{
		source:   source,
		opts:     opts,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		results:  make(chan reading.FetchResult, opts.Buffer),
		inflight: make(map[string]uint64),
	}
	if opts.MaxConcurrent > 0 {
		s.sem = semaphore.NewWeighted(int64(opts.MaxConcurrent))
	}
	return s
}

// Results is the delivery channel. It has exactly one consumer.
func (s *Scheduler) Results() <-chan reading.FetchResult {
	return s.results
}

// RefreshAll starts a fetch for every URL not already in flight and returns
// the number started.
func (s *Scheduler) RefreshAll(urls []string) int {
	started := 0
	for _, url := range urls {
		if s.RefreshOne(url) {
			started++
		}
	}
	return started
}

// RefreshOne starts a fetch for url. It returns false when the URL is blank,
// already in flight, or the scheduler is shut down.
func (s *Scheduler) RefreshOne(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ctx.Err() != nil {
		return false
	}
	if seq, busy := s.inflight[url]; busy {
		s.log.Debugw("refresh coalesced", "url", url, "seq", seq)
		return false
	}
	seq := s.seq.Add(1)
	s.inflight[url] = seq

	s.log.Debugw("refresh dispatched", "url", url, "seq", seq)
	// Added under mu: Shutdown marks closed under mu before it waits.
	s.wg.Go(func() { s.run(url, seq) })
	return true
}

// InFlight reports whether a fetch for url has not delivered yet.
func (s *Scheduler) InFlight(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[strings.TrimSpace(url)]
	return ok
}

// Pending returns the number of fetches in flight.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight)
}

// Shutdown abandons in-flight fetches and waits up to grace for the workers.
func (s *Scheduler) Shutdown(grace time.Duration) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(grace):
		return fmt.Errorf("%w (%d pending)", ErrShutdownTimeout, s.Pending())
	}
}

func (s *Scheduler) run(url string, seq uint64) {
	if s.sem != nil {
		if err := s.sem.Acquire(s.ctx, 1); err != nil {
			s.finish(url)
			return
		}
	}

	feed, err := s.fetch(url)
	if s.sem != nil {
		s.sem.Release(1)
	}

	// Leave the in-flight set before delivering so a refresh requested after
	// this result is consumed always starts a new fetch.
	s.finish(url)

	var result reading.FetchResult
	if err != nil {
		s.log.Warnw("refresh failed", "url", url, "seq", seq, "error", err)
		result = reading.Failed(url, seq, reading.NewFetchError(url, err))
	} else {
		s.log.Debugw("refresh fetched", "url", url, "seq", seq, "articles", len(feed.Articles))
		result = reading.Succeeded(url, seq, feed)
	}
	s.deliver(result)
}

func (s *Scheduler) fetch(url string) (*reading.Feed, error) {
	var feed *reading.Feed
	operation := func() error {
		f, err := s.attempt(url)
		if err != nil {
			if s.ctx.Err() != nil || !reading.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		feed = f
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.opts.RetryInterval
	retries := uint64(max(s.opts.Retries, 0))
	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, retries), s.ctx))
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, fmt.Errorf("fetch %s: source returned no feed: %w", url, reading.ErrParse)
	}
	return feed, nil
}

type attemptResult struct {
	feed *reading.Feed
	err  error
}

// attempt runs one bounded fetch. A source that ignores its context is
// abandoned when the deadline passes.
func (s *Scheduler) attempt(url string) (*reading.Feed, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.Timeout)
	defer cancel()

	done := make(chan attemptResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- attemptResult{err: fmt.Errorf("feed source panicked: %v", r)}
			}
		}()
		feed, err := s.source.Fetch(ctx, url)
		done <- attemptResult{feed: feed, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(r.err, context.DeadlineExceeded) {
			r.err = fmt.Errorf("%w: %v", context.DeadlineExceeded, r.err)
		}
		return r.feed, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Scheduler) finish(url string) {
	s.mu.Lock()
	delete(s.inflight, url)
	s.mu.Unlock()
}

func (s *Scheduler) deliver(r reading.FetchResult) {
	if s.ctx.Err() != nil {
		s.log.Debugw("refresh result discarded after shutdown", "url", r.URL(), "seq", r.Seq())
		return
	}
	select {
	case s.results <- r:
	case <-s.ctx.Done():
		s.log.Debugw("refresh result discarded after shutdown", "url", r.URL(), "seq", r.Seq())
	}
}
