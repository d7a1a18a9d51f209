package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Elements whose text never shows up on the rendered page.
// noscript stays: its fallback content is where some pages put the date.
var invisible = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
}

// PageText returns the visible text of an html document, every text node
// separated by a single space.
func PageText(doc string) (string, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", err
	}

	return visibleText(d.Selection), nil
}

// Text nodes are joined with a space so "<b>07/01</b>2026" doesn't glue words together,
// then all whitespace runs collapse into one space.
func visibleText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			parts = append(parts, n.Data)
			return
		case html.ElementNode:
			if invisible[n.Data] {
				return
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}

	return collapse(strings.Join(parts, " "))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
