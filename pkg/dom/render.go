package dom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/webpaste/pkg/errors"
)

// voidElements are elements that cannot have children and have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"keygen": true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// rawTextElements hold text that is written out verbatim.
var rawTextElements = map[string]bool{
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"plaintext": true,
	"script":    true,
	"style":     true,
	"xmp":       true,
}

// Render serializes the children of root as a dense HTML fragment using the
// base entity set. root itself is not written.
func Render(root *html.Node) (string, error) {
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func render(b *strings.Builder, n *html.Node) error {
	switch n.Type {
	case html.TextNode:
		if n.Parent != nil && n.Parent.Type == html.ElementNode && rawTextElements[n.Parent.Data] {
			b.WriteString(n.Data)
		} else {
			b.WriteString(escapeText(n.Data))
		}
	case html.CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")
	case html.RawNode:
		b.WriteString(n.Data)
	case html.DoctypeNode:
		// Fragments have no doctype.
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := render(b, c); err != nil {
				return err
			}
		}
	case html.ElementNode:
		return renderElement(b, n)
	default:
		return errors.Invariant("render: unexpected node type %d", n.Type)
	}
	return nil
}

func renderElement(b *strings.Builder, n *html.Node) error {
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		if a.Namespace != "" {
			b.WriteString(a.Namespace)
			b.WriteByte(':')
		}
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	if voidElements[n.Data] {
		if n.FirstChild != nil {
			return errors.Invariant("render: void element <%s> has children", n.Data)
		}
		return nil
	}

	// A leading newline directly after these tags is dropped by parsers, so
	// one is written back to keep the text intact.
	switch n.Data {
	case "pre", "listing", "textarea":
		if c := n.FirstChild; c != nil && c.Type == html.TextNode && strings.HasPrefix(c.Data, "\n") {
			b.WriteByte('\n')
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := render(b, c); err != nil {
			return err
		}
	}

	b.WriteString("</")
	b.WriteString(n.Data)
	b.WriteByte('>')
	return nil
}

// escapeText escapes text content with the base entity set.
func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>\u00a0") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\u00a0':
			b.WriteString("&nbsp;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeAttr escapes a double-quoted attribute value with the base entity set.
func escapeAttr(s string) string {
	if !strings.ContainsAny(s, "&\"\u00a0") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '\u00a0':
			b.WriteString("&nbsp;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
