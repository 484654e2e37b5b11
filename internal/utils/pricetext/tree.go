package pricetext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HasAnnotationNode is the document tree variant of HasAnnotation. Besides the
// node itself it looks at its siblings, its parent, the enclosing list item
// (shipping methods) and the enclosing mini cart item.
func HasAnnotationNode(n *html.Node, secondaryLabel string) bool {
	if n == nil {
		return false
	}
	if containsMarker(n) {
		return true
	}
	if n.Parent != nil && containsMarker(n.Parent) {
		return true
	}
	if li := closest(n, func(p *html.Node) bool { return p.DataAtom == atom.Li }); li != nil && containsMarker(li) {
		return true
	}
	if item := closest(n, func(p *html.Node) bool { return hasClass(p, "mini_cart_item") }); item != nil && containsMarker(item) {
		return true
	}

	if secondaryLabel == "" {
		return false
	}
	text := nodeText(n)
	for _, pattern := range []string{"(" + secondaryLabel + ")", secondaryLabel + ")", "/ " + secondaryLabel} {
		if strings.Contains(text, pattern) {
			return true
		}
	}
	return false
}

func containsMarker(n *html.Node) bool {
	if hasClass(n, AnnotationClass) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if containsMarker(c) {
			return true
		}
	}
	return false
}

func closest(n *html.Node, match func(*html.Node) bool) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && match(p) {
			return p
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
