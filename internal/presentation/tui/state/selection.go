package state

import "github.com/tesso57/rsstream/internal/domain/feedtree"

// Selection is the highlighted tree node. Label identifies an article
// across refreshes; ArticleLink is empty unless an article is selected.
type Selection struct {
	Ref         feedtree.Ref
	Label       string
	ArticleLink string
	Valid       bool
}

// IsArticle reports whether an article row is selected.
func (s Selection) IsArticle() bool { return s.Valid && !s.Ref.IsFeed() }

// IsFeed reports whether a feed row is selected.
func (s Selection) IsFeed() bool { return s.Valid && s.Ref.IsFeed() }
