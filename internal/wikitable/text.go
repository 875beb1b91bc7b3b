package wikitable

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var multiSpaceRe = regexp.MustCompile(`\s+`)

// CollapseSpace folds every whitespace run into a single space and trims
// the result.
func CollapseSpace(s string) string {
	if s == "" {
		return ""
	}
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// nodeText returns the concatenated text of n and its descendants with
// whitespace collapsed. Script and style contents are ignored.
func nodeText(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b)
	return CollapseSpace(b.String())
}

func collectText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style":
			return
		case "br":
			b.WriteByte(' ')
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether n's class attribute lists class.
func HasClass(n *html.Node, class string) bool {
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// FindFirst returns the first descendant of n (depth-first, document order)
// accepted by match, or nil.
func FindFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := FindFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// FirstChild returns the first direct child of n accepted by match, or nil.
func FirstChild(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
	}
	return nil
}

// FindAll returns every descendant of n accepted by match in document order.
func FindAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// IsElement returns a matcher for elements with the given tag name.
func IsElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}
