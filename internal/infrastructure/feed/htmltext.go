package feed

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
)

// HTMLToText strips markup from an HTML fragment, keeping paragraph breaks.
// Plain text passes through with entities decoded.
func HTMLToText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return strings.TrimSpace(html.UnescapeString(raw))
	}

	var b strings.Builder
	writeText(&b, doc)
	return tidy(b.String())
}

func writeText(b *strings.Builder, node *nethtml.Node) {
	switch node.Type {
	case nethtml.TextNode:
		b.WriteString(node.Data)
		return
	case nethtml.ElementNode:
		switch strings.ToLower(node.Data) {
		case "script", "style", "head", "noscript":
			return
		case "br":
			b.WriteString("\n")
			return
		case "li":
			b.WriteString("\n- ")
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeText(b, child)
	}
	if node.Type == nethtml.ElementNode && isBlockElement(node.Data) {
		b.WriteString("\n\n")
	}
}

func isBlockElement(tag string) bool {
	switch strings.ToLower(tag) {
	case "h1", "h2", "h3", "h4", "h5", "h6",
		"p", "div", "section", "article", "main", "header", "footer", "aside",
		"blockquote", "ul", "ol", "table", "tr", "pre", "figure", "hr":
		return true
	default:
		return false
	}
}

// tidy collapses runs of spaces within lines and of blank lines between
// paragraphs.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if len(out) > 0 && !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		if line == "-" {
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
