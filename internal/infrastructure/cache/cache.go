// Package cache stores the last successfully fetched copy of every feed in
// SQLite so the tree can be shown before the first refresh completes.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
	"github.com/samber/lo"
	"github.com/tesso57/rsstream/internal/domain/reading"
	_ "modernc.org/sqlite"
)

// insertBatch keeps multi-row inserts under SQLite's bound-parameter limit.
const insertBatch = 500

var schema = []string{
	`PRAGMA busy_timeout = 5000`,
	`CREATE TABLE IF NOT EXISTS feeds (
		url        TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS articles (
		feed_url  TEXT NOT NULL,
		position  INTEGER NOT NULL,
		label     TEXT NOT NULL,
		title     TEXT NOT NULL,
		link      TEXT NOT NULL,
		content   TEXT NOT NULL,
		published INTEGER,
		PRIMARY KEY (feed_url, position)
	)`,
}

// Store is a SQLite-backed snapshot repository.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	// modernc/sqlite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init cache schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the snapshot for feed.URL. A snapshot older than the stored
// one is ignored, so concurrent writers cannot roll the cache back.
func (s *Store) Save(ctx context.Context, feed *reading.Feed, fetchedAt time.Time) error {
	if feed == nil || feed.URL == "" {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	newer, err := storedAfter(ctx, tx, feed.URL, fetchedAt)
	if err != nil {
		return err
	}
	if newer {
		return nil
	}
	if err := deleteFeed(ctx, tx, feed.URL); err != nil {
		return err
	}

	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.InsertInto("feeds").Cols("url", "title", "fetched_at").
		Values(feed.URL, feed.Title, fetchedAt.UnixNano())
	query, args := ib.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert feed %s: %w", feed.URL, err)
	}

	for i, chunk := range lo.Chunk(feed.Articles, insertBatch) {
		ib := sqlbuilder.SQLite.NewInsertBuilder()
		ib.InsertInto("articles").Cols("feed_url", "position", "label", "title", "link", "content", "published")
		for j, a := range chunk {
			ib.Values(feed.URL, i*insertBatch+j, a.Label, a.Title, a.Link, a.Content, unixOrNull(a.Published))
		}
		query, args := ib.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert articles %s: %w", feed.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Delete removes the snapshot for url.
func (s *Store) Delete(ctx context.Context, url string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteFeed(ctx, tx, url); err != nil {
		return err
	}
	return tx.Commit()
}

func storedAfter(ctx context.Context, tx *sql.Tx, url string, at time.Time) (bool, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("fetched_at").From("feeds").Where(sb.Equal("url", url))
	query, args := sb.Build()

	var stored int64
	switch err := tx.QueryRowContext(ctx, query, args...).Scan(&stored); {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("read snapshot time %s: %w", url, err)
	}
	return stored > at.UnixNano(), nil
}

func deleteFeed(ctx context.Context, tx *sql.Tx, url string) error {
	for _, table := range []struct{ name, key string }{
		{"articles", "feed_url"},
		{"feeds", "url"},
	} {
		del := sqlbuilder.SQLite.NewDeleteBuilder()
		del.DeleteFrom(table.name).Where(del.Equal(table.key, url))
		query, args := del.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s %s: %w", table.name, url, err)
		}
	}
	return nil
}

// LoadAll returns every snapshot ordered by URL, articles in fetch order.
func (s *Store) LoadAll(ctx context.Context) ([]reading.Snapshot, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("url", "title", "fetched_at").From("feeds").OrderBy("url")
	query, args := sb.Build()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query feeds: %w", err)
	}
	var snapshots []reading.Snapshot
	byURL := make(map[string]*reading.Feed)
	for rows.Next() {
		var (
			feed      reading.Feed
			fetchedAt int64
		)
		if err := rows.Scan(&feed.URL, &feed.Title, &fetchedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan feed: %w", err)
		}
		f := new(feed)
		byURL[f.URL] = f
		snapshots = append(snapshots, reading.Snapshot{Feed: f, FetchedAt: time.Unix(0, fetchedAt)})
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sb = sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("feed_url", "label", "title", "link", "content", "published").
		From("articles").OrderBy("feed_url", "position")
	query, args = sb.Build()

	rows, err = s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			feedURL   string
			a         reading.Article
			published sql.NullInt64
		)
		if err := rows.Scan(&feedURL, &a.Label, &a.Title, &a.Link, &a.Content, &published); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		if published.Valid {
			a.Published = time.Unix(0, published.Int64).UTC()
		}
		if f, ok := byURL[feedURL]; ok {
			f.Articles = append(f.Articles, a)
		}
	}
	return snapshots, rows.Err()
}

func unixOrNull(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UnixNano()
}
