// Package subscription defines feed subscription models.
package subscription

import (
	"strings"

	"github.com/samber/lo"
)

// Normalize trims a URL and reports whether it is usable.
func Normalize(url string) (string, bool) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t\r\n") {
		return trimmed, false
	}
	return trimmed, true
}

// Contains reports whether url is already in feeds.
func Contains(feeds []string, url string) bool {
	return lo.Contains(feeds, url)
}

// Without returns feeds minus url, preserving order.
func Without(feeds []string, url string) []string {
	return lo.Without(feeds, url)
}

// Dedupe drops blank and repeated URLs, keeping first occurrences in order.
func Dedupe(feeds []string) []string {
	out := make([]string, 0, len(feeds))
	for _, feed := range feeds {
		if url, ok := Normalize(feed); ok {
			out = append(out, url)
		}
	}
	return lo.Uniq(out)
}
