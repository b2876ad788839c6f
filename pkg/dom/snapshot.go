package dom

import "golang.org/x/net/html"

// Snapshot is a serializable view of a node and its subtree, used for
// debugging output.
type Snapshot struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Tag      string      `json:"tag,omitempty" yaml:"tag,omitempty"`
	Attrs    []AttrEntry `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty"`
	Children []*Snapshot `json:"children,omitempty" yaml:"children,omitempty"`
}

// AttrEntry is one attribute in a Snapshot, kept as a list to preserve order.
type AttrEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Snap builds a Snapshot of the subtree rooted at n.
func Snap(n *html.Node) *Snapshot {
	s := &Snapshot{Kind: kindName(n.Type)}
	switch n.Type {
	case html.ElementNode:
		s.Tag = n.Data
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + a.Key
			}
			s.Attrs = append(s.Attrs, AttrEntry{Key: key, Value: a.Val})
		}
	case html.TextNode, html.CommentNode, html.RawNode:
		s.Text = n.Data
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.Children = append(s.Children, Snap(c))
	}
	return s
}

func kindName(t html.NodeType) string {
	switch t {
	case html.ElementNode:
		return "element"
	case html.TextNode:
		return "text"
	case html.CommentNode:
		return "comment"
	case html.DocumentNode:
		return "document"
	case html.DoctypeNode:
		return "doctype"
	case html.RawNode:
		return "raw"
	default:
		return "error"
	}
}
