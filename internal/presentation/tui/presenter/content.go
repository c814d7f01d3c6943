package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/tesso57/rsstream/internal/domain/feedtree"
	"github.com/tesso57/rsstream/internal/domain/reading"
)

// ArticleMarkdown renders an article for the content pane.
func ArticleMarkdown(a *feedtree.ArticleNode) string {
	if a == nil {
		return ""
	}
	title := strings.TrimSpace(a.Title)
	if title == "" {
		title = reading.NoTitle
	}
	content := strings.TrimSpace(a.Content)
	if content == "" {
		content = reading.NoContent
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	if a.Link != "" {
		fmt.Fprintf(&b, "**[Read Original Article](%s)**\n", a.Link)
	}
	b.WriteString("\n---\n\n")
	b.WriteString(content)
	return b.String()
}

// FeedMarkdown summarizes a feed for the content pane.
func FeedMarkdown(f *feedtree.FeedNode) string {
	if f == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", f.Title, f.URL)
	switch n := len(f.Articles); n {
	case 1:
		b.WriteString("1 article")
	default:
		fmt.Fprintf(&b, "%d articles", n)
	}
	if !f.FetchedAt.IsZero() {
		fmt.Fprintf(&b, ", updated %s", f.FetchedAt.Local().Format(time.DateTime))
	}
	b.WriteString("\n")
	if f.Cached {
		b.WriteString("\n_Showing the cached copy until the next refresh completes._\n")
	}
	if f.Err != nil {
		fmt.Fprintf(&b, "\n**Last refresh failed:** %v\n", f.Err)
	}
	return b.String()
}

// NodeMarkdown dispatches on the node kind.
func NodeMarkdown(n feedtree.Node) (markdown, link string) {
	switch v := n.(type) {
	case *feedtree.ArticleNode:
		return ArticleMarkdown(v), v.Link
	case *feedtree.FeedNode:
		return FeedMarkdown(v), ""
	default:
		return "", ""
	}
}
