package treeviz

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/webpaste/pkg/dom"
)

func snapFragment(t *testing.T, fragment string) *dom.Snapshot {
	t.Helper()
	root, err := dom.Parse(fragment)
	if err != nil {
		t.Fatalf("Parse(%q): %v", fragment, err)
	}
	return dom.Snap(root)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(snapFragment(t, `<p id="a">hi</p><!-- c -->`))

	for _, want := range []string{
		"digraph fragment {",
		"ordering=out;",
		`n0 [label="<body>"];`,
		`n1 [label="<p>\nid=a"];`,
		`n2 [label="hi", shape=plaintext, style=""];`,
		`n3 [label="<!--  c  -->", shape=note, fillcolor=lightgrey];`,
		"n0 -> n1;",
		"n1 -> n2;",
		"n0 -> n3;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTStable(t *testing.T) {
	s := snapFragment(t, `<ul><li>a</li><li>b</li></ul>`)
	if ToDOT(s) != ToDOT(s) {
		t.Error("ToDOT is not deterministic")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("é", maxLabelRunes+5)
	got := truncate(long)
	if n := len([]rune(got)); n != maxLabelRunes {
		t.Errorf("truncate length = %d runes, want %d", n, maxLabelRunes)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncate(%q) = %q, want trailing ellipsis", long, got)
	}
	if got := truncate("short"); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(snapFragment(t, `<b>x</b>`)))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("output is not SVG: %.200s", svg)
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG accepted malformed DOT")
	}
}
