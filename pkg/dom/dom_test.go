package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/matzehuels/webpaste/pkg/errors"
)

// mustParse parses a fragment or fails the test.
func mustParse(t *testing.T, fragment string) *html.Node {
	t.Helper()
	root, err := Parse(fragment)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", fragment, err)
	}
	return root
}

// mustRender renders a tree or fails the test.
func mustRender(t *testing.T, root *html.Node) string {
	t.Helper()
	out, err := Render(root)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	return out
}

// find returns the first element with the given tag in document order.
func find(root *html.Node, tag string) *html.Node {
	if IsElement(root, tag) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := find(c, tag); n != nil {
			return n
		}
	}
	return nil
}

func tags(nodes []*html.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Data
	}
	return out
}

func TestParseBuildsBodyRoot(t *testing.T) {
	root := mustParse(t, "<b>hi</b> there")

	if !IsElement(root, RootTag) {
		t.Fatalf("root = %q, want <%s>", root.Data, RootTag)
	}
	if root.Parent != nil {
		t.Error("root should be detached")
	}

	children := Children(root)
	if len(children) != 2 {
		t.Fatalf("root has %d children, want 2", len(children))
	}
	if !IsElement(children[0], "b") {
		t.Errorf("first child = %v, want <b>", children[0].Data)
	}
	if children[1].Type != html.TextNode || children[1].Data != " there" {
		t.Errorf("second child = %q, want text %q", children[1].Data, " there")
	}
	for _, c := range children {
		if c.Parent != root {
			t.Errorf("child %q parent is not root", c.Data)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	root := mustParse(t, "")
	if root.FirstChild != nil {
		t.Error("empty fragment should produce an empty root")
	}
	if got := mustRender(t, root); got != "" {
		t.Errorf("Render = %q, want empty", got)
	}
}

func TestParseKeepsMetaInBody(t *testing.T) {
	root := mustParse(t, `<meta charset="UTF-8"><span>x</span>`)
	if find(root, "meta") == nil {
		t.Fatal("meta should be parsed as a child of the fragment root")
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	_, err := Parse("<b>\xff</b>")
	if !errors.Is(err, errors.ErrCodeParseFailure) {
		t.Errorf("Parse error = %v, want %s", err, errors.ErrCodeParseFailure)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"nested inline", `<span><b>hello</b> world</span>`, `<span><b>hello</b> world</span>`},
		{"text entities", `a &amp; b &lt;c&gt;`, `a &amp; b &lt;c&gt;`},
		{"quotes in text stay literal", `it's "quoted"`, `it's "quoted"`},
		{"nbsp", `x&nbsp;y`, `x&nbsp;y`},
		{"attr ampersand", `<a href="x?a=1&amp;b=2">l</a>`, `<a href="x?a=1&amp;b=2">l</a>`},
		{"attr quote", `<span title="say &quot;hi&quot;">q</span>`, `<span title="say &quot;hi&quot;">q</span>`},
		{"attribute order", `<a id="l" href="h" class="c">x</a>`, `<a id="l" href="h" class="c">x</a>`},
		{"void br", `a<br>b`, `a<br>b`},
		{"void img", `<img src="a.png">`, `<img src="a.png">`},
		{"comment", `<!-- c -->x`, `<!-- c -->x`},
		{"list", `<ul><li>a</li><li>b</li></ul>`, `<ul><li>a</li><li>b</li></ul>`},
		{"raw text style", `<style>a > b {}</style>`, `<style>a > b {}</style>`},
		{"noscript markup", `<noscript><b>x</b> &amp; y</noscript>`, `<noscript><b>x</b> &amp; y</noscript>`},
		{"no pretty printing", "<div>\n  <span>x</span>\n</div>", "<div>\n  <span>x</span>\n</div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustRender(t, mustParse(t, tt.input))
			if got != tt.want {
				t.Errorf("Render(Parse(%q)) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNoscriptChildrenAreElements(t *testing.T) {
	root := mustParse(t, `<noscript><b>x</b></noscript>`)
	noscript := root.FirstChild
	if !IsElement(noscript, "noscript") {
		t.Fatalf("first child = %+v, want <noscript>", noscript)
	}
	if !IsElement(noscript.FirstChild, "b") {
		t.Errorf("noscript child = %+v, want <b> element", noscript.FirstChild)
	}
}

func TestPostOrder(t *testing.T) {
	root := mustParse(t, "<div><b>x</b>text<i>y</i></div><p></p>")

	got := tags(PostOrder(root))
	want := []string{"b", "i", "div", "p", "body"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PostOrder mismatch (-want +got):\n%s", diff)
	}
}

func TestPostOrderIsSnapshot(t *testing.T) {
	root := mustParse(t, "<p>a</p><p>b</p>")
	order := PostOrder(root)

	if err := InsertAfter(order[0], NewElement("br")); err != nil {
		t.Fatal(err)
	}
	if len(order) != 3 {
		t.Errorf("snapshot length changed to %d", len(order))
	}
	if got := len(PostOrder(root)); got != 4 {
		t.Errorf("fresh PostOrder length = %d, want 4", got)
	}
}

func TestNextElementSibling(t *testing.T) {
	root := mustParse(t, "<p>a</p> \n<!-- c --><p>b</p>")
	first := find(root, "p")

	next := NextElementSibling(first)
	if next == nil || next.FirstChild.Data != "b" {
		t.Fatalf("NextElementSibling should skip text and comments, got %v", next)
	}
	if NextElementSibling(next) != nil {
		t.Error("last element should have no next element sibling")
	}
}

func TestChildCountCountsAllKinds(t *testing.T) {
	root := mustParse(t, "<li><div>x</div> </li>")
	li := find(root, "li")
	if got := ChildCount(li); got != 2 {
		t.Errorf("ChildCount = %d, want 2 (element + whitespace text)", got)
	}
}

func TestAttrs(t *testing.T) {
	root := mustParse(t, `<a id="x" href="">y</a>`)
	a := find(root, "a")

	if v, ok := Attr(a, "href"); !ok || v != "" {
		t.Errorf("Attr(href) = %q, %v; want empty and present", v, ok)
	}
	if _, ok := Attr(a, "class"); ok {
		t.Error("Attr(class) should be absent")
	}

	SetAttr(a, "id", "z")
	SetAttr(a, "title", "t")
	if got := mustRender(t, root); got != `<a id="z" href="" title="t">y</a>` {
		t.Errorf("after SetAttr = %s", got)
	}

	ClearAttrs(a)
	if got := mustRender(t, root); got != `<a>y</a>` {
		t.Errorf("after ClearAttrs = %s", got)
	}
}

func TestRename(t *testing.T) {
	root := mustParse(t, `<p class="c">x</p>`)
	Rename(find(root, "p"), "div")
	if got := mustRender(t, root); got != `<div class="c">x</div>` {
		t.Errorf("after Rename = %s", got)
	}
}

func TestSnap(t *testing.T) {
	root := mustParse(t, `<a href="h">x</a>`)
	got := Snap(root)
	want := &Snapshot{
		Kind: "element",
		Tag:  "body",
		Children: []*Snapshot{{
			Kind:     "element",
			Tag:      "a",
			Attrs:    []AttrEntry{{Key: "href", Value: "h"}},
			Children: []*Snapshot{{Kind: "text", Text: "x"}},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Snap mismatch (-want +got):\n%s", diff)
	}
}
