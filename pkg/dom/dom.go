package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/webpaste/pkg/errors"
)

// RootTag is the tag name of the synthetic root that owns a parsed fragment.
const RootTag = "body"

// Parse parses fragment as the contents of a <body> element and returns a
// detached body element holding the resulting nodes in document order.
//
// Input that is not valid UTF-8 or that the parser rejects yields a
// PARSE_FAILURE error; no partial tree is returned.
func Parse(fragment string) (*html.Node, error) {
	if err := errors.ValidateFragment(fragment, 0); err != nil {
		return nil, err
	}

	body := &html.Node{Type: html.ElementNode, Data: RootTag, DataAtom: atom.Body}
	// Scripting off: <noscript> content is parsed as markup, not raw text.
	nodes, err := html.ParseFragmentWithOptions(strings.NewReader(fragment), body, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "parse fragment")
	}

	root := NewElement(RootTag)
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		root.AppendChild(n)
	}
	return root, nil
}

// NewElement returns a detached element with the given tag and no attributes.
func NewElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// NewText returns a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Rename changes an element's tag while keeping its attributes and children.
func Rename(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
}
