package render

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var skipTextTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true,
}

// PlainText flattens an HTML fragment to collapsed text, truncated to at
// most limit runes (0 means no limit). Unparseable input yields "".
func PlainText(fragment string, limit int) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode && skipTextTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(doc)

	text := strings.Join(strings.Fields(sb.String()), " ")
	if limit > 0 && utf8.RuneCountInString(text) > limit {
		runes := []rune(text)
		text = strings.TrimSpace(string(runes[:limit])) + "…"
	}
	return text
}
