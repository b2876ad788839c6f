package transform

import (
	"regexp"

	"golang.org/x/net/html"

	"github.com/matzehuels/webpaste/pkg/dom"
)

// Inline style patterns. Each one matches a whole declaration inside a
// style attribute, bounded by ';' or the ends of the value.
var (
	styleItalicOff = declaration("font-style", "normal")
	styleBoldOff   = declaration("font-weight", "normal", "400")

	styleItalic      = declaration("font-style", "italic")
	styleBold        = declaration("font-weight", "bold", "700")
	styleUnderline   = listDeclaration("text-decoration", "underline")
	styleLineThrough = listDeclaration("text-decoration", "line-through")
)

// declaration matches "prop: value" for any of the given values.
func declaration(prop string, values ...string) *regexp.Regexp {
	alts := ""
	for i, v := range values {
		if i > 0 {
			alts += "|"
		}
		alts += regexp.QuoteMeta(v)
	}
	return regexp.MustCompile(`(?:^|;)\s*` + regexp.QuoteMeta(prop) + `\s*:\s*(?:` + alts + `)\s*(?:;|$)`)
}

// listDeclaration matches "prop: a b c" when token is one of the
// space-separated values.
func listDeclaration(prop, token string) *regexp.Regexp {
	const value = `[a-zA-Z0-9-]+`
	return regexp.MustCompile(`(?:^|;)\s*` + regexp.QuoteMeta(prop) + `\s*:\s*(?:` + value + `\s+)*` +
		regexp.QuoteMeta(token) + `(?:\s+` + value + `)*\s*(?:;|$)`)
}

// hasStyle reports whether n's style attribute contains a declaration
// matching re. A missing style never matches.
func hasStyle(n *html.Node, re *regexp.Regexp) bool {
	style, ok := dom.Attr(n, "style")
	return ok && re.MatchString(style)
}
