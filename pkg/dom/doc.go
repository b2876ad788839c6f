// Package dom adapts golang.org/x/net/html to the fragment tree used by the
// transform pipeline.
//
// # Tree
//
// [Parse] turns an HTML fragment (the contents of a paste payload's body)
// into a tree rooted at a synthetic "body" element. The root is never removed
// or retagged; every other node has exactly one parent. Element and text
// nodes are plain [html.Node] values distinguished by their Type field, so
// the whole x/net/html navigation API (Parent, FirstChild, NextSibling, ...)
// remains available.
//
// # Mutation
//
// The helpers [Unwrap], [WrapChildren], [InsertAfter], [ReplaceWith] and
// [Remove] keep parent and sibling links consistent and preserve the order
// of untouched siblings. They return an INVARIANT_VIOLATION error instead of
// panicking when a node lacks the parent the operation requires.
//
// # Serialization
//
// [Render] writes the root's children back out densely (no indentation) with
// the base entity set only: &amp;, &lt;, &gt; and &nbsp; in text, &amp;,
// &quot; and &nbsp; in attribute values.
package dom
