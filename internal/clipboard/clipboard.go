// Package clipboard copies text to the system clipboard, falling back to an
// OSC 52 terminal escape when no clipboard utility is available.
package clipboard

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Method names the mechanism that performed a copy.
type Method string

const (
	MethodSystem Method = "system"
	MethodOSC52  Method = "osc52"
)

// ErrUnsupported is returned when no system clipboard utility exists.
var ErrUnsupported = errors.New("system clipboard unavailable")

// Writer copies text somewhere the user can paste it from.
type Writer interface {
	WriteText(ctx context.Context, text string) (Method, error)
}

// Error reports that every clipboard mechanism failed.
type Error struct {
	Errs []error
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "clipboard copy failed: " + strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() []error { return e.Errs }

// System uses the platform clipboard utility (pbcopy, xclip, wl-copy, ...).
type System struct{}

var (
	systemWriteAll    = clipboard.WriteAll
	systemUnsupported = func() bool { return clipboard.Unsupported }
)

func (System) WriteText(ctx context.Context, text string) (Method, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if systemUnsupported() {
		return "", ErrUnsupported
	}
	if err := systemWriteAll(text); err != nil {
		return "", err
	}
	return MethodSystem, nil
}

// OSC52 asks the terminal emulator to set the clipboard. Delivery cannot be
// confirmed; a nil error only means the sequence was written.
type OSC52 struct {
	Out io.Writer
	// Tmux wraps the sequence for tmux passthrough.
	Tmux bool
}

func (o OSC52) WriteText(ctx context.Context, text string) (Method, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out := o.Out
	if out == nil {
		out = os.Stderr
	}
	seq := osc52.New(text)
	if o.Tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(out); err != nil {
		return "", err
	}
	return MethodOSC52, nil
}

// Fallback tries Primary and then Secondary.
type Fallback struct {
	Primary   Writer
	Secondary Writer
}

func (f Fallback) WriteText(ctx context.Context, text string) (Method, error) {
	var errs []error
	for _, w := range []Writer{f.Primary, f.Secondary} {
		if w == nil {
			continue
		}
		m, err := w.WriteText(ctx, text)
		if err == nil {
			return m, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		errs = append(errs, ErrUnsupported)
	}
	return "", &Error{Errs: errs}
}

// Default returns the system clipboard with an OSC 52 fallback written to
// out. tmux passthrough is enabled when running inside tmux.
func Default(out io.Writer) Writer {
	return Fallback{
		Primary:   System{},
		Secondary: OSC52{Out: out, Tmux: os.Getenv("TMUX") != ""},
	}
}
