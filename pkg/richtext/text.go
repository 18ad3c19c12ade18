package richtext

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Text returns the concatenated data of every text node under n, n included.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			sb.WriteString(d.Data)
		}
	}
	return sb.String()
}

// RuneLen returns the rune length of Text(n).
func RuneLen(n *html.Node) int {
	if n == nil {
		return 0
	}
	if n.Type == html.TextNode {
		return utf8.RuneCountInString(n.Data)
	}
	total := 0
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			total += utf8.RuneCountInString(d.Data)
		}
	}
	return total
}

// PrecedingLen returns the rune length of the text of parent's children
// that come before child. A nil child counts every child.
func PrecedingLen(parent, child *html.Node) int {
	total := 0
	for c := parent.FirstChild; c != nil && c != child; c = c.NextSibling {
		total += RuneLen(c)
	}
	return total
}

// ChildLen returns the rune length of the text of parent's first n children.
func ChildLen(parent *html.Node, n int) int {
	total := 0
	for c := parent.FirstChild; c != nil && n > 0; c = c.NextSibling {
		total += RuneLen(c)
		n--
	}
	return total
}
