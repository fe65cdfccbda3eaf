// Package clipboard writes text to the user's clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Writer is the clipboard sink. Implementations must write text verbatim.
type Writer interface {
	WriteAll(text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(text string) error

// WriteAll calls f(text).
func (f WriterFunc) WriteAll(text string) error { return f(text) }

// System writes through the OS clipboard utilities.
type System struct{}

// WriteAll prefers pbcopy on macOS and falls back to the atotto backends.
func (System) WriteAll(text string) error {
	if runtime.GOOS == "darwin" {
		cmd := exec.Command("pbcopy")
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	if clipboard.Unsupported {
		return errors.New("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// OSC52 asks the terminal to set the clipboard with an OSC 52 escape.
type OSC52 struct {
	Out io.Writer
}

// WriteAll emits the escape sequence to Out (stderr when nil).
func (o OSC52) WriteAll(text string) error {
	out := o.Out
	if out == nil {
		out = os.Stderr
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	_, err := seq.WriteTo(out)
	return err
}

// Fallback tries each writer in order and returns the first success.
type Fallback []Writer

// WriteAll returns the joined errors if every writer fails.
func (f Fallback) WriteAll(text string) error {
	var errs []error
	for _, w := range f {
		err := w.WriteAll(text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return errors.New("no clipboard writer configured")
	}
	return errors.Join(errs...)
}

// New returns the writer for a configured mode: "system", "osc52" or "auto".
func New(mode string) (Writer, error) {
	switch strings.ToLower(mode) {
	case "", "auto":
		return Fallback{System{}, OSC52{}}, nil
	case "system":
		return System{}, nil
	case "osc52":
		return OSC52{}, nil
	default:
		return nil, fmt.Errorf("invalid clipboard mode %q: must be auto, system or osc52", mode)
	}
}
