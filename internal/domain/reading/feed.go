// Package reading defines core reading models.
package reading

import (
	"strings"
	"time"
)

// Placeholders used when an entry is missing a field.
const (
	UnknownDate = "Unknown"
	NoTitle     = "No Title"
	NoContent   = "No Content"
)

// Article represents a single feed entry reduced to plain text.
type Article struct {
	Label     string
	Title     string
	Link      string
	Content   string
	Published time.Time
}

// Feed represents a parsed feed.
type Feed struct {
	URL      string
	Title    string
	Articles []Article
}

// ArticleLabel builds the tree label "<date> | <title>".
func ArticleLabel(published time.Time, title string) string {
	date := UnknownDate
	if !published.IsZero() {
		date = published.Format("2006-01-02")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = NoTitle
	}
	return date + " | " + title
}

// Clone returns a deep copy of the feed.
func (f *Feed) Clone() *Feed {
	if f == nil {
		return nil
	}
	return new(Feed{
		URL:      f.URL,
		Title:    f.Title,
		Articles: append([]Article(nil), f.Articles...),
	})
}

// DisplayTitle returns the feed title, falling back to its URL.
func (f *Feed) DisplayTitle() string {
	if f == nil {
		return ""
	}
	if t := strings.TrimSpace(f.Title); t != "" {
		return t
	}
	return f.URL
}

// Snapshot is the last successfully fetched copy of a feed.
type Snapshot struct {
	Feed      *Feed
	FetchedAt time.Time
}
