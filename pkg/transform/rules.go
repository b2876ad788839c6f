package transform

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/webpaste/pkg/dom"
)

// Rule names, in pipeline order.
const (
	RuleDropMeta           = "drop-meta"
	RuleConvertedSpace     = "converted-space"
	RuleDocsGUIDWrapper    = "docs-guid-wrapper"
	RuleParagraphSeparator = "paragraph-separator"
	RuleParagraphToDiv     = "paragraph-to-div"
	RuleLoneDiv            = "lone-div"
	RuleStyleContradiction = "style-contradiction"
	RuleStyleInjection     = "style-injection"
	RuleStripAttributes    = "strip-attributes"
)

const (
	convertedSpaceClass = "Apple-converted-space"
	docsGUIDPrefix      = "docs-internal-guid-"
)

// styleWraps lists the element injected into a <span> for each inline style
// it carries, innermost first.
var styleWraps = []struct {
	tag   string
	style *regexp.Regexp
}{
	{"i", styleItalic},
	{"b", styleBold},
	{"u", styleUnderline},
	{"strike", styleLineThrough},
}

// Rules returns the default rule list in pipeline order. Each call returns a
// fresh slice, so callers may reorder or filter it.
func Rules() []Rule {
	return []Rule{
		{
			Name:        RuleDropMeta,
			Description: "remove <meta> elements",
			Match:       func(n *html.Node) bool { return dom.IsElement(n, "meta") },
			Rewrite:     dom.Remove,
		},
		{
			Name:        RuleConvertedSpace,
			Description: `replace class="Apple-converted-space" elements with a single space`,
			Match: func(n *html.Node) bool {
				class, ok := dom.Attr(n, "class")
				return ok && class == convertedSpaceClass
			},
			Rewrite: func(n *html.Node) error {
				return dom.ReplaceWith(n, dom.NewText(" "))
			},
		},
		{
			Name:        RuleDocsGUIDWrapper,
			Description: `unwrap Google Docs <b id="docs-internal-guid-..."> wrappers`,
			Match: func(n *html.Node) bool {
				if !dom.IsElement(n, "b") {
					return false
				}
				id, _ := dom.Attr(n, "id")
				return strings.HasPrefix(id, docsGUIDPrefix)
			},
			Rewrite: dom.Unwrap,
		},
		{
			Name:        RuleParagraphSeparator,
			Description: "insert <br> between adjacent <p> elements",
			Match: func(n *html.Node) bool {
				return dom.IsElement(n, "p") && dom.IsElement(dom.NextElementSibling(n), "p")
			},
			Rewrite: func(n *html.Node) error {
				return dom.InsertAfter(n, dom.NewElement("br"))
			},
		},
		{
			Name:        RuleParagraphToDiv,
			Description: "rename <p> to <div>",
			Match:       func(n *html.Node) bool { return dom.IsElement(n, "p") },
			Rewrite:     rename("div"),
		},
		{
			Name:        RuleLoneDiv,
			Description: "unwrap a <div> that is its parent's only child",
			Match: func(n *html.Node) bool {
				return dom.IsElement(n, "div") && n.Parent != nil && dom.ChildCount(n.Parent) == 1
			},
			Rewrite: dom.Unwrap,
		},
		{
			Name:        RuleStyleContradiction,
			Description: "turn <em>/<i> with font-style: normal and <b>/<strong> with font-weight: normal|400 into <span>",
			Match: func(n *html.Node) bool {
				return dom.IsElement(n, "em", "i") && hasStyle(n, styleItalicOff) ||
					dom.IsElement(n, "b", "strong") && hasStyle(n, styleBoldOff)
			},
			Rewrite: rename("span"),
		},
		{
			Name:        RuleStyleInjection,
			Description: "wrap <span> children in <i>, <b>, <u>, <strike> for italic, bold, underline, line-through styles",
			Match: func(n *html.Node) bool {
				if !dom.IsElement(n, "span") {
					return false
				}
				for _, w := range styleWraps {
					if hasStyle(n, w.style) {
						return true
					}
				}
				return false
			},
			Rewrite: injectStyleTags,
		},
		{
			Name:        RuleStripAttributes,
			Description: "drop all attributes except href on <a>",
			Match:       func(n *html.Node) bool { return len(n.Attr) > 0 },
			Rewrite:     stripAttributes,
		},
	}
}

func rename(tag string) func(*html.Node) error {
	return func(n *html.Node) error {
		dom.Rename(n, tag)
		return nil
	}
}

// injectStyleTags wraps the span's children once per matching style. Each
// wrap encloses the previous one, so italic+bold gives <span><b><i>.
// The style attribute is left as is.
func injectStyleTags(n *html.Node) error {
	style, _ := dom.Attr(n, "style")
	for _, w := range styleWraps {
		if !w.style.MatchString(style) {
			continue
		}
		if _, err := dom.WrapChildren(n, w.tag); err != nil {
			return err
		}
	}
	return nil
}

// stripAttributes clears every attribute, then restores href on links.
func stripAttributes(n *html.Node) error {
	href, hasHref := dom.Attr(n, "href")
	dom.ClearAttrs(n)
	if dom.IsElement(n, "a") && hasHref {
		dom.SetAttr(n, "href", href)
	}
	return nil
}
