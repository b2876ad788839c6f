package clipboard

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/matzehuels/webpaste/pkg/errors"
)

// Runner runs a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command with os/exec. A failing command's standard
// error is included in the returned error.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

const (
	readHTMLScript    = `the clipboard as «class HTML»`
	pasteScript       = `tell application "System Events" to keystroke "v" using command down`
	checkAccessScript = `tell application "System Events" to get UI elements enabled`

	htmlDataPrefix = "«data HTML"
	dataSuffix     = "»"

	// AppleScript error -1700: the clipboard cannot be coerced to the
	// requested class, i.e. the flavour is missing.
	errCoercion = "(-1700)"
)

// Pasteboard is the macOS clipboard driven through osascript.
type Pasteboard struct {
	run      Runner
	readText func() (string, error)
}

// NewPasteboard returns a Pasteboard that runs commands with run, or with
// ExecRunner when run is nil.
func NewPasteboard(run Runner) *Pasteboard {
	if run == nil {
		run = ExecRunner
	}
	return &Pasteboard{run: run, readText: clipboard.ReadAll}
}

func (p *Pasteboard) osascript(ctx context.Context, script string) (string, error) {
	out, err := p.run(ctx, "osascript", "-e", script)
	return strings.TrimSpace(string(out)), err
}

// ReadHTML returns the clipboard's HTML flavour.
func (p *Pasteboard) ReadHTML(ctx context.Context) (string, error) {
	out, err := p.osascript(ctx, readHTMLScript)
	if err != nil {
		if strings.Contains(err.Error(), errCoercion) {
			return "", ErrNoHTML
		}
		return "", errors.Wrap(errors.ErrCodeInternal, err, "read HTML from clipboard")
	}
	html, err := decodeData(out, htmlDataPrefix)
	if err != nil {
		return "", err
	}
	if html == "" {
		return "", ErrNoHTML
	}
	return html, nil
}

// ReadText returns the clipboard's plain-text flavour.
func (p *Pasteboard) ReadText(ctx context.Context) (string, error) {
	text, err := p.readText()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "read text from clipboard")
	}
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// Write replaces the clipboard with html and plain in one item.
func (p *Pasteboard) Write(ctx context.Context, html, plain string) error {
	if _, err := p.osascript(ctx, writeScript(html, plain)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write clipboard")
	}
	return nil
}

// CheckAccess fails with ErrNoAccess unless System Events accepts
// keystrokes from this process.
func (p *Pasteboard) CheckAccess(ctx context.Context) error {
	out, err := p.osascript(ctx, checkAccessScript)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnsupported, err, "check accessibility permission")
	}
	if out != "true" {
		return ErrNoAccess
	}
	return nil
}

// Paste posts Cmd-V to the frontmost application.
func (p *Pasteboard) Paste(ctx context.Context) error {
	if _, err := p.osascript(ctx, pasteScript); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "post paste keystroke")
	}
	return nil
}

// writeScript builds the AppleScript that sets both flavours. Text travels
// as hex data literals so no AppleScript string escaping is needed.
func writeScript(html, plain string) string {
	var b strings.Builder
	b.WriteString("set the clipboard to {«class HTML»:")
	b.WriteString(encodeData("HTML", html))
	if plain != "" {
		b.WriteString(", «class utf8»:")
		b.WriteString(encodeData("utf8", plain))
	}
	b.WriteString("}")
	return b.String()
}

// encodeData renders s as an AppleScript raw data literal of the given class.
func encodeData(class, s string) string {
	return "«data " + class + strings.ToUpper(hex.EncodeToString([]byte(s))) + dataSuffix
}

// decodeData parses an AppleScript raw data literal with the given prefix.
func decodeData(s, prefix string) (string, error) {
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, dataSuffix) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unexpected clipboard data %q", truncate(s, 40))
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(s, prefix), dataSuffix)
	data, err := hex.DecodeString(raw)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode clipboard data")
	}
	return string(data), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

var _ System = (*Pasteboard)(nil)
