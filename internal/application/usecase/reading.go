package usecase

import (
	"context"
	"time"

	"github.com/tesso57/rsstream/internal/domain/feedtree"
	"github.com/tesso57/rsstream/internal/domain/reading"
	"github.com/tesso57/rsstream/internal/domain/subscription"
)

// SnapshotRepository persists the last-known-good copy of each feed.
type SnapshotRepository interface {
	LoadAll(ctx context.Context) ([]reading.Snapshot, error)
	Save(ctx context.Context, feed *reading.Feed, fetchedAt time.Time) error
	Delete(ctx context.Context, url string) error
}

// ReadingService keeps the feed tree and the snapshot cache in step.
// A nil repository turns every method into a no-op.
type ReadingService struct {
	Snapshots SnapshotRepository
	Now       func() time.Time
}

// NewReadingService constructs a ReadingService.
func NewReadingService(snapshots SnapshotRepository, now func() time.Time) ReadingService {
	return ReadingService{
		Snapshots: snapshots,
		Now:       now,
	}
}

// Restore seeds tree with cached snapshots of subscribed feeds and returns
// how many were restored.
func (s ReadingService) Restore(ctx context.Context, tree *feedtree.Tree, subscribed []string) (int, error) {
	if s.Snapshots == nil || tree == nil {
		return 0, nil
	}
	snapshots, err := s.Snapshots.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	restored := 0
	for _, snap := range snapshots {
		if snap.Feed == nil || !subscription.Contains(subscribed, snap.Feed.URL) {
			continue
		}
		if tree.Restore(snap.Feed, snap.FetchedAt) {
			restored++
		}
	}
	return restored, nil
}

// Remember stores a freshly fetched feed stamped with the current time.
func (s ReadingService) Remember(ctx context.Context, feed *reading.Feed) error {
	return s.RememberAt(ctx, feed, s.now())
}

// RememberAt stores feed as fetched at the given time. The repository keeps
// the newest stamp, so callers writing concurrently should stamp in the order
// the results were applied.
func (s ReadingService) RememberAt(ctx context.Context, feed *reading.Feed, fetchedAt time.Time) error {
	if s.Snapshots == nil || feed == nil {
		return nil
	}
	return s.Snapshots.Save(ctx, feed, fetchedAt)
}

// Stamp returns the service clock reading.
func (s ReadingService) Stamp() time.Time {
	return s.now()
}

// Forget drops the snapshot of an unsubscribed feed.
func (s ReadingService) Forget(ctx context.Context, url string) error {
	if s.Snapshots == nil {
		return nil
	}
	return s.Snapshots.Delete(ctx, url)
}

func (s ReadingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
