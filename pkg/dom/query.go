package dom

import "golang.org/x/net/html"

// IsElement reports whether n is an element. With tags given, the element's
// tag name must also be one of them.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if n.Data == t {
			return true
		}
	}
	return false
}

// Attr returns the value of the attribute key and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets key to val, replacing an existing value in place or appending
// a new attribute at the end.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// ClearAttrs removes every attribute from n.
func ClearAttrs(n *html.Node) {
	n.Attr = nil
}

// NextElementSibling returns the first element after n among its siblings,
// skipping text and comment nodes, or nil.
func NextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// ChildCount counts n's children of every node kind.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// Children returns a snapshot of n's children.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// PostOrder returns the elements of the tree rooted at root in post-order:
// every descendant before its ancestor, siblings left to right, root last.
// The result is a snapshot; later mutations do not change it.
func PostOrder(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for _, c := range Children(n) {
			walk(c)
		}
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
	}
	walk(root)
	return out
}

// Attached reports whether n is root or a descendant of root.
func Attached(root, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}
