package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// Walk visits n and its descendants depth-first. The visitor returns
// false to stop the walk.
func Walk(n *html.Node, visit func(*html.Node) bool) {
	var rec func(*html.Node) bool
	rec = func(node *html.Node) bool {
		if !visit(node) {
			return false
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if !rec(c) {
				return false
			}
		}
		return true
	}
	rec(n)
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether an element carries the CSS class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// FindAll returns every descendant element with the given tag name.
func FindAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	Walk(n, func(node *html.Node) bool {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Find returns the first descendant element with the given tag name.
func Find(n *html.Node, tag string) *html.Node {
	var out *html.Node
	Walk(n, func(node *html.Node) bool {
		if node.Type == html.ElementNode && node.Data == tag {
			out = node
			return false
		}
		return true
	})
	return out
}

// FindByClass returns every descendant element with the tag and class.
func FindByClass(n *html.Node, tag, class string) []*html.Node {
	var out []*html.Node
	Walk(n, func(node *html.Node) bool {
		if node.Type == html.ElementNode && node.Data == tag && HasClass(node, class) {
			out = append(out, node)
		}
		return true
	})
	return out
}

// FindByID returns the descendant element with the given id, or nil.
func FindByID(n *html.Node, id string) *html.Node {
	var out *html.Node
	Walk(n, func(node *html.Node) bool {
		if node.Type == html.ElementNode && Attr(node, "id") == id {
			out = node
			return false
		}
		return true
	})
	return out
}

// Text returns the concatenated text content of a node with whitespace
// collapsed, the way a reader would see it.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	Walk(n, func(node *html.Node) bool {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteString(" ")
		}
		return true
	})
	return CleanText(b.String())
}

// CleanText collapses runs of whitespace into single spaces and trims.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TableRows extracts the cell texts of every row in a table node,
// skipping header rows (rows whose cells are all <th>).
func TableRows(table *html.Node) [][]string {
	var rows [][]string
	for _, tr := range FindAll(table, "tr") {
		var cells []string
		header := true
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "td":
				header = false
				cells = append(cells, Text(c))
			case "th":
				cells = append(cells, Text(c))
			}
		}
		if len(cells) == 0 || header {
			continue
		}
		rows = append(rows, cells)
	}
	return rows
}
