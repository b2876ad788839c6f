package clipboard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	webpasteerrors "github.com/matzehuels/webpaste/pkg/errors"
)

// fakeRunner records osascript invocations and replays canned output.
type fakeRunner struct {
	calls [][]string
	out   string
	err   error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return []byte(f.out), f.err
}

func newTestPasteboard(f *fakeRunner) *Pasteboard {
	return NewPasteboard(f.run)
}

func TestEncodeDecodeData(t *testing.T) {
	tests := []string{
		"",
		"<b>hello</b>",
		`quotes " and \ backslashes`,
		"unicode ✓ and nbsp",
	}
	for _, s := range tests {
		lit := encodeData("HTML", s)
		if !strings.HasPrefix(lit, "«data HTML") || !strings.HasSuffix(lit, "»") {
			t.Errorf("encodeData(%q) = %q", s, lit)
		}
		got, err := decodeData(lit, htmlDataPrefix)
		if err != nil {
			t.Errorf("decodeData(%q) error: %v", lit, err)
			continue
		}
		if got != s {
			t.Errorf("round trip = %q, want %q", got, s)
		}
	}
}

func TestEncodeDataIsUppercaseHex(t *testing.T) {
	if got, want := encodeData("utf8", "<b>"), "«data utf83C623E»"; got != want {
		t.Errorf("encodeData = %q, want %q", got, want)
	}
}

func TestDecodeDataErrors(t *testing.T) {
	tests := map[string]string{
		"no prefix":  "3C623E",
		"wrong type": "«data utf83C623E»",
		"odd length": "«data HTML3C6»",
		"not hex":    "«data HTMLZZ»",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decodeData(in, htmlDataPrefix)
			if !webpasteerrors.Is(err, webpasteerrors.ErrCodeInvalidFormat) {
				t.Errorf("decodeData(%q) error = %v, want INVALID_FORMAT", in, err)
			}
		})
	}
}

func TestReadHTML(t *testing.T) {
	f := &fakeRunner{out: "«data HTML3C703E68693C2F703E»\n"}
	p := newTestPasteboard(f)

	got, err := p.ReadHTML(context.Background())
	if err != nil {
		t.Fatalf("ReadHTML error: %v", err)
	}
	if got != "<p>hi</p>" {
		t.Errorf("ReadHTML = %q, want <p>hi</p>", got)
	}
	want := [][]string{{"osascript", "-e", readHTMLScript}}
	if diff := cmp.Diff(want, f.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestReadHTMLMissing(t *testing.T) {
	f := &fakeRunner{err: errors.New("osascript: exit status 1: execution error: Can’t make the clipboard into type «class HTML». (-1700)")}
	_, err := newTestPasteboard(f).ReadHTML(context.Background())
	if !errors.Is(err, ErrNoHTML) {
		t.Errorf("ReadHTML error = %v, want ErrNoHTML", err)
	}
	if !webpasteerrors.Is(err, webpasteerrors.ErrCodeClipboardEmpty) {
		t.Errorf("code = %s, want CLIPBOARD_EMPTY", webpasteerrors.GetCode(err))
	}

	f = &fakeRunner{out: "«data HTML»"}
	if _, err := newTestPasteboard(f).ReadHTML(context.Background()); !errors.Is(err, ErrNoHTML) {
		t.Errorf("empty HTML error = %v, want ErrNoHTML", err)
	}
}

func TestReadHTMLFailure(t *testing.T) {
	f := &fakeRunner{err: errors.New("osascript: executable file not found")}
	_, err := newTestPasteboard(f).ReadHTML(context.Background())
	if !webpasteerrors.Is(err, webpasteerrors.ErrCodeInternal) {
		t.Errorf("ReadHTML error = %v, want INTERNAL_ERROR", err)
	}
}

func TestReadText(t *testing.T) {
	p := newTestPasteboard(&fakeRunner{})

	p.readText = func() (string, error) { return "hello", nil }
	if got, err := p.ReadText(context.Background()); err != nil || got != "hello" {
		t.Errorf("ReadText = %q, %v", got, err)
	}

	p.readText = func() (string, error) { return "", nil }
	if _, err := p.ReadText(context.Background()); !errors.Is(err, ErrNoText) {
		t.Errorf("ReadText error = %v, want ErrNoText", err)
	}

	p.readText = func() (string, error) { return "", errors.New("pbpaste failed") }
	if _, err := p.ReadText(context.Background()); !webpasteerrors.Is(err, webpasteerrors.ErrCodeInternal) {
		t.Errorf("ReadText error = %v, want INTERNAL_ERROR", err)
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		plain string
		want  string
	}{
		{
			name:  "both flavours",
			html:  "<b>",
			plain: "b",
			want:  "set the clipboard to {«class HTML»:«data HTML3C623E», «class utf8»:«data utf862»}",
		},
		{
			name: "html only",
			html: "<b>",
			want: "set the clipboard to {«class HTML»:«data HTML3C623E»}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRunner{}
			if err := newTestPasteboard(f).Write(context.Background(), tt.html, tt.plain); err != nil {
				t.Fatalf("Write error: %v", err)
			}
			want := [][]string{{"osascript", "-e", tt.want}}
			if diff := cmp.Diff(want, f.calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteFailure(t *testing.T) {
	f := &fakeRunner{err: errors.New("boom")}
	if err := newTestPasteboard(f).Write(context.Background(), "x", ""); !webpasteerrors.Is(err, webpasteerrors.ErrCodeInternal) {
		t.Errorf("Write error = %v, want INTERNAL_ERROR", err)
	}
}

func TestCheckAccess(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		err      error
		wantErr  error
		wantCode webpasteerrors.Code
	}{
		{name: "granted", out: "true\n"},
		{name: "denied", out: "false\n", wantErr: ErrNoAccess, wantCode: webpasteerrors.ErrCodeUnsupported},
		{name: "failure", err: errors.New("not allowed assistive access"), wantCode: webpasteerrors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRunner{out: tt.out, err: tt.err}
			err := newTestPasteboard(f).CheckAccess(context.Background())
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("CheckAccess error: %v", err)
				}
				return
			}
			if !webpasteerrors.Is(err, tt.wantCode) {
				t.Errorf("CheckAccess error = %v, want %s", err, tt.wantCode)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckAccess error = %v, want %v", err, tt.wantErr)
			}
			if f.calls[0][2] != checkAccessScript {
				t.Errorf("script = %q", f.calls[0][2])
			}
		})
	}
}

func TestPaste(t *testing.T) {
	f := &fakeRunner{}
	if err := newTestPasteboard(f).Paste(context.Background()); err != nil {
		t.Fatalf("Paste error: %v", err)
	}
	want := [][]string{{"osascript", "-e", pasteScript}}
	if diff := cmp.Diff(want, f.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsupported(t *testing.T) {
	ctx := context.Background()
	var u unsupported

	if _, err := u.ReadHTML(ctx); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ReadHTML error = %v", err)
	}
	if _, err := u.ReadText(ctx); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ReadText error = %v", err)
	}
	if err := u.Write(ctx, "", ""); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Write error = %v", err)
	}
	if err := u.CheckAccess(ctx); !errors.Is(err, ErrUnsupported) {
		t.Errorf("CheckAccess error = %v", err)
	}
	if err := u.Paste(ctx); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Paste error = %v", err)
	}
	if !webpasteerrors.Is(ErrUnsupported, webpasteerrors.ErrCodeUnsupported) {
		t.Error("ErrUnsupported should carry UNSUPPORTED")
	}
}

func TestExecRunner(t *testing.T) {
	out, err := ExecRunner(context.Background(), "sh", "-c", "printf ok")
	if err != nil {
		t.Skipf("sh not available: %v", err)
	}
	if string(out) != "ok" {
		t.Errorf("out = %q, want ok", out)
	}

	_, err = ExecRunner(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	if err == nil || !strings.Contains(err.Error(), "oops") {
		t.Errorf("error = %v, want stderr included", err)
	}
}
