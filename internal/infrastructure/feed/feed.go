// Package feed fetches RSS/Atom feeds and reduces them to plain-text articles.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tesso57/rsstream/internal/application/settings"
	"github.com/tesso57/rsstream/internal/domain/reading"
)

// UserAgent is sent with every feed request.
const UserAgent = "rsstream/1.0"

const feedAcceptHeader = "application/atom+xml, application/rss+xml, application/feed+json, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

// fetchTransport sets feed request headers and remembers whether the last
// round trip failed at the HTTP level, so callers can tell a transport
// failure apart from a document that does not parse. One per Fetch call.
type fetchTransport struct {
	ctx    context.Context
	base   http.RoundTripper
	netErr error
}

func (t *fetchTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	ctx := req.Context()
	if t.ctx != nil {
		ctx = t.ctx
	}
	clone := req.Clone(ctx)
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	clone.Header.Set("User-Agent", UserAgent)

	resp, err := base.RoundTrip(clone)
	switch {
	case err != nil:
		t.netErr = err
	case resp.StatusCode < 200 || resp.StatusCode >= 400:
		t.netErr = &reading.StatusError{Code: resp.StatusCode, Status: resp.Status}
	default:
		t.netErr = nil
	}
	return resp, err
}

func newClient(ctx context.Context, base *http.Client) (*http.Client, *fetchTransport) {
	tr := &fetchTransport{ctx: ctx}
	client := &http.Client{Transport: tr}
	if base != nil {
		tr.base = base.Transport
		client.CheckRedirect = base.CheckRedirect
		client.Jar = base.Jar
	}
	return client, tr
}

// classify turns a backend error into one the scheduler can reason about:
// transport failures keep their chain, anything else is a parse failure.
func classify(ctx context.Context, url string, tr *fetchTransport, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("fetch %s: %w", url, ctxErr)
	}
	if tr.netErr != nil {
		return fmt.Errorf("fetch %s: %w", url, tr.netErr)
	}
	return fmt.Errorf("parse %s: %v: %w", url, err, reading.ErrParse)
}

// Item is the backend-neutral shape of one entry.
type Item struct {
	Title     string
	Link      string
	Summary   string
	Content   string
	Published time.Time
}

// toArticle reduces an entry to a plain-text article with its tree label.
func toArticle(it Item) reading.Article {
	title := strings.TrimSpace(it.Title)
	if title == "" {
		title = reading.NoTitle
	}
	body := it.Content
	if strings.TrimSpace(body) == "" {
		body = it.Summary
	}
	content := HTMLToText(body)
	if content == "" {
		content = reading.NoContent
	}
	return reading.Article{
		Label:     reading.ArticleLabel(it.Published, title),
		Title:     title,
		Link:      strings.TrimSpace(it.Link),
		Content:   content,
		Published: it.Published,
	}
}

// New returns the Source for the configured backend.
func New(backend string, client *http.Client) Source {
	if backend == settings.BackendRSS {
		return RSS{Client: client}
	}
	return Gofeed{Client: client}
}

// Source matches refresh.Source.
type Source interface {
	Fetch(ctx context.Context, url string) (*reading.Feed, error)
}

func prepare(ctx context.Context, url string) (context.Context, string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, "", reading.ErrEmptyURL
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, url, nil
}
