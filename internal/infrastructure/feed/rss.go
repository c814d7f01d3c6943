package feed

import (
	"context"
	"net/http"

	"github.com/SlyMarbo/rss"
	"github.com/samber/lo"
	"github.com/tesso57/rsstream/internal/domain/reading"
)

// RSS fetches feeds with SlyMarbo/rss.
type RSS struct {
	Client *http.Client
}

// Fetch downloads and parses the feed at url. The library has no context
// support of its own, so ctx is injected by the transport.
func (r RSS) Fetch(ctx context.Context, url string) (*reading.Feed, error) {
	ctx, url, err := prepare(ctx, url)
	if err != nil {
		return nil, err
	}

	client, tr := newClient(ctx, r.Client)
	parsed, err := rss.FetchByClient(url, client)
	if err != nil {
		return nil, classify(ctx, url, tr, err)
	}
	return new(reading.Feed{
		URL:   url,
		Title: parsed.Title,
		Articles: lo.Map(parsed.Items, func(item *rss.Item, _ int) reading.Article {
			return toArticle(Item{
				Title:     item.Title,
				Link:      item.Link,
				Summary:   item.Summary,
				Content:   item.Content,
				Published: item.Date,
			})
		}),
	}), nil
}
