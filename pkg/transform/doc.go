// Package transform rewrites a parsed HTML fragment into the small markup
// subset a web-mail compose field keeps intact.
//
// # Overview
//
// Clipboard HTML from word processors, browsers and document editors carries
// a lot of source-tool cruft: wrapper elements, converted-space markers,
// inline styles standing in for real markup, ids and classes. This package
// strips that cruft while keeping the semantic formatting (bold, italic,
// underline, strikethrough, links, paragraphs, lists).
//
// The [Clean] function parses a fragment, applies the default rules and
// renders the result.
//
// # Pipeline
//
// [Apply] runs an ordered list of [Rule] values over a tree. Each rule gets
// one full post-order pass: children are processed before their parent and
// siblings left to right. The set of elements visited by a pass is fixed
// when the pass starts, so elements a rule inserts are not visited by that
// same rule, and elements it detaches are skipped. Later rules see the tree
// exactly as earlier rules left it, which makes the order of [Rules] part of
// the contract.
//
// # Rules
//
// [Rules] returns, in order:
//
//  1. drop-meta: remove <meta> elements
//  2. converted-space: replace class="Apple-converted-space" with a space
//  3. docs-guid-wrapper: unwrap Google Docs' <b id="docs-internal-guid-...">
//  4. paragraph-separator: insert <br> between adjacent <p> elements
//  5. paragraph-to-div: rename <p> to <div>
//  6. lone-div: unwrap a <div> that is its parent's only child
//  7. style-contradiction: <em>/<i> with font-style: normal and <b>/<strong>
//     with font-weight: normal|400 become <span>
//  8. style-injection: wrap a <span>'s children in <i>, <b>, <u> and <strike>
//     for the matching inline styles
//  9. strip-attributes: drop every attribute except href on <a>
//
// Attribute stripping runs last so the earlier rules can still read style,
// class and id.
//
// # Inline styles
//
// Style checks treat the style attribute as a ';'-separated declaration list.
// A single-value property matches when some declaration is exactly
// "property: value" (whitespace around ':' and ';' ignored); text-decoration
// matches when the keyword is one of its space-separated values. Matching is
// case-sensitive and anchored, so "font-weight: 400" does not match
// "font-weight: 4000".
//
// # Usage
//
//	out, err := transform.Clean(`<p>hello</p><p>world</p>`)
//	// out == "<div>hello</div><br><div>world</div>"
//
// For fine-grained control, parse and apply rules yourself:
//
//	root, err := dom.Parse(fragment)
//	report, err := transform.Apply(root, transform.Rules())
//	out, err := dom.Render(root)
package transform
