package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, 120, 48, 7)

	out := buf.String()
	for _, want := range []string{"120 → 48 bytes", "7 rewrites"} {
		if !strings.Contains(out, want) {
			t.Errorf("printStats output %q missing %q", out, want)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("printStats output %q, want a single line", out)
	}
}

func TestWriteFragmentToPipe(t *testing.T) {
	var buf bytes.Buffer
	if err := writeFragment(&buf, "<b>x</b>"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<b>x</b>" {
		t.Errorf("writeFragment = %q, want the fragment without a newline", buf.String())
	}
}

func TestRenderLinesStylesEachLine(t *testing.T) {
	got := renderLines(StyleDim, "a\n\nlonger line")
	if strings.Count(got, "\n") != 2 {
		t.Errorf("renderLines changed the line count: %q", got)
	}
	if strings.HasPrefix(got, "a ") {
		t.Errorf("renderLines padded a short line: %q", got)
	}
}
