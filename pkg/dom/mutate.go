package dom

import (
	"golang.org/x/net/html"

	"github.com/matzehuels/webpaste/pkg/errors"
)

// Unwrap removes n from its parent and splices n's children into the position
// n occupied, in their original order. n is left detached and empty.
func Unwrap(n *html.Node) error {
	p := n.Parent
	if p == nil {
		return errors.Invariant("unwrap <%s>: node has no parent", n.Data)
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		p.InsertBefore(c, n)
		c = next
	}
	p.RemoveChild(n)
	return nil
}

// WrapChildren moves all of n's children into a new element with the given
// tag and makes that element n's only child. It returns the new element.
func WrapChildren(n *html.Node, tag string) (*html.Node, error) {
	if n.Type != html.ElementNode {
		return nil, errors.Invariant("wrap children in <%s>: target is not an element", tag)
	}
	wrapper := NewElement(tag)
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		wrapper.AppendChild(c)
		c = next
	}
	n.AppendChild(wrapper)
	return wrapper, nil
}

// InsertAfter inserts the detached node newNode immediately after n.
func InsertAfter(n, newNode *html.Node) error {
	p := n.Parent
	if p == nil {
		return errors.Invariant("insert after <%s>: node has no parent", n.Data)
	}
	if newNode.Parent != nil {
		return errors.Invariant("insert after <%s>: new node is already attached", n.Data)
	}
	p.InsertBefore(newNode, n.NextSibling)
	return nil
}

// ReplaceWith puts the detached node newNode at n's position and detaches n
// together with its subtree.
func ReplaceWith(n, newNode *html.Node) error {
	p := n.Parent
	if p == nil {
		return errors.Invariant("replace <%s>: node has no parent", n.Data)
	}
	if newNode.Parent != nil {
		return errors.Invariant("replace <%s>: new node is already attached", n.Data)
	}
	p.InsertBefore(newNode, n)
	p.RemoveChild(n)
	return nil
}

// Remove detaches n together with its subtree.
func Remove(n *html.Node) error {
	if n.Parent == nil {
		return errors.Invariant("remove <%s>: node has no parent", n.Data)
	}
	n.Parent.RemoveChild(n)
	return nil
}
