// Package treeviz draws parsed fragment trees as Graphviz diagrams.
//
// [ToDOT] turns a [dom.Snapshot] into DOT source with one box per element
// and one note per text or comment node, children ordered left to right.
// [RenderSVG] lays the DOT out in-process with go-graphviz, so no Graphviz
// installation is needed.
package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/webpaste/pkg/dom"
)

// maxLabelRunes truncates long text labels.
const maxLabelRunes = 32

// ToDOT converts a snapshot tree to Graphviz DOT format. Nodes are numbered
// in pre-order, so the output is stable for a given tree.
func ToDOT(s *dom.Snapshot) string {
	var buf bytes.Buffer
	buf.WriteString("digraph fragment {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	var edges []string
	next := 0
	var walk func(n *dom.Snapshot) string
	walk = func(n *dom.Snapshot) string {
		id := fmt.Sprintf("n%d", next)
		next++
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(nodeAttrs(n), ", "))
		for _, c := range n.Children {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", id, walk(c)))
		}
		return id
	}
	walk(s)

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *dom.Snapshot) []string {
	switch n.Kind {
	case "element":
		label := "<" + n.Tag + ">"
		for _, a := range n.Attrs {
			label += "\n" + a.Key + "=" + truncate(a.Value)
		}
		return []string{fmt.Sprintf("label=%q", label)}
	case "comment":
		return []string{fmt.Sprintf("label=%q", "<!-- "+truncate(n.Text)+" -->"), "shape=note", "fillcolor=lightgrey"}
	default:
		return []string{fmt.Sprintf("label=%q", truncate(n.Text)), "shape=plaintext", "style=\"\""}
	}
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxLabelRunes {
		return s
	}
	return string([]rune(s)[:maxLabelRunes-1]) + "…"
}

// RenderSVG lays out a DOT graph and returns it as SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
