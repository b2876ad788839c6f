// Package clipboard reads and writes rich-text clipboard contents and posts
// the paste keystroke to the frontmost application.
//
// Only macOS is supported. There the system pasteboard is driven through
// osascript: HTML goes in and out as hex-encoded «class HTML» data, and Cmd-V
// is posted through System Events, which needs the Accessibility permission.
// On other platforms every operation fails with an UNSUPPORTED error.
package clipboard

import (
	"context"
	"runtime"

	"github.com/matzehuels/webpaste/pkg/errors"
)

// Clipboard reads and replaces the clipboard contents.
type Clipboard interface {
	// ReadHTML returns the HTML flavour, or ErrNoHTML when there is none.
	ReadHTML(ctx context.Context) (string, error)

	// ReadText returns the plain-text flavour, or ErrNoText when there is none.
	ReadText(ctx context.Context) (string, error)

	// Write replaces the clipboard with html and, unless it is empty, plain,
	// as a single clipboard item.
	Write(ctx context.Context, html, plain string) error
}

// Trigger makes the frontmost application paste.
type Trigger interface {
	// CheckAccess reports ErrNoAccess when keystrokes cannot be posted.
	CheckAccess(ctx context.Context) error

	// Paste posts Cmd-V.
	Paste(ctx context.Context) error
}

var (
	// ErrUnsupported is returned on platforms without clipboard support.
	ErrUnsupported = errors.New(errors.ErrCodeUnsupported, "clipboard access is only supported on macOS")

	// ErrNoHTML is returned when the clipboard holds no HTML.
	ErrNoHTML = errors.New(errors.ErrCodeClipboardEmpty, "no HTML in clipboard")

	// ErrNoText is returned when the clipboard holds no plain text.
	ErrNoText = errors.New(errors.ErrCodeClipboardEmpty, "no plain text in clipboard")

	// ErrNoAccess is returned when the Accessibility permission is missing.
	ErrNoAccess = errors.New(errors.ErrCodeUnsupported, "accessibility permission not granted")
)

// System is the clipboard and paste trigger of the running OS.
type System interface {
	Clipboard
	Trigger
}

// New returns the clipboard for the running OS.
func New() System {
	if runtime.GOOS == "darwin" {
		return NewPasteboard(nil)
	}
	return unsupported{}
}

type unsupported struct{}

func (unsupported) ReadHTML(context.Context) (string, error)   { return "", ErrUnsupported }
func (unsupported) ReadText(context.Context) (string, error)   { return "", ErrUnsupported }
func (unsupported) Write(context.Context, string, string) error { return ErrUnsupported }
func (unsupported) CheckAccess(context.Context) error           { return ErrUnsupported }
func (unsupported) Paste(context.Context) error                 { return ErrUnsupported }
