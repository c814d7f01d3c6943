package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
	"github.com/tesso57/rsstream/internal/domain/reading"
)

// Gofeed fetches feeds with mmcdole/gofeed.
type Gofeed struct {
	Client *http.Client
}

// Fetch downloads and parses the feed at url.
func (g Gofeed) Fetch(ctx context.Context, url string) (*reading.Feed, error) {
	ctx, url, err := prepare(ctx, url)
	if err != nil {
		return nil, err
	}

	client, tr := newClient(ctx, g.Client)
	fp := gofeed.NewParser()
	fp.UserAgent = UserAgent
	fp.Client = client

	parsed, err := fp.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, classify(ctx, url, tr, err)
	}
	return fromGofeed(url, parsed), nil
}

func fromGofeed(url string, parsed *gofeed.Feed) *reading.Feed {
	return new(reading.Feed{
		URL:   url,
		Title: parsed.Title,
		Articles: lo.Map(parsed.Items, func(item *gofeed.Item, _ int) reading.Article {
			return toArticle(Item{
				Title:     item.Title,
				Link:      item.Link,
				Summary:   item.Description,
				Content:   item.Content,
				Published: gofeedDate(item),
			})
		}),
	})
}

func gofeedDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}
