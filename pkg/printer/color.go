package printer

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/lemonberrylabs/losp/pkg/values"
)

// ansi codes for the small palette the Stream color methods use.
const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiCyan   = "\x1b[36m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
)

// Stream wraps a writer, deciding once at construction whether ANSI
// escapes should actually be written. On Windows this wraps stdout/stderr
// in go-colorable's ANSI-aware writer so callers never special-case the
// platform; elsewhere it passes the file through unchanged.
type Stream struct {
	w       io.Writer
	colored bool
}

// NewStream wraps f (typically os.Stdout or os.Stderr). Coloring is
// enabled only when f is a real terminal, per go-isatty.
func NewStream(f *os.File) *Stream {
	colored := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return &Stream{w: colorable.NewColorable(f), colored: colored}
}

func (s *Stream) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *Stream) wrap(code, text string) string {
	if !s.colored {
		return text
	}
	return code + text + ansiReset
}

// Node colors an AST dump line's node-kind label.
func (s *Stream) Node(text string) string { return s.wrap(ansiCyan, text) }

// Type colors a FormatTyped "<type>" tag.
func (s *Stream) Type(text string) string { return s.wrap(ansiDim, text) }

// Warn colors a non-fatal diagnostic (e.g. a dropped/ignored value).
func (s *Stream) Warn(text string) string { return s.wrap(ansiYellow, text) }

// Err colors an error rendering.
func (s *Stream) Err(text string) string { return s.wrap(ansiRed, text) }

// FormatError renders err the way a REPL reports a failed evaluation:
// LospError.Error() already prepends the source operator's id, this just
// applies the stream's error color on top.
func (s *Stream) FormatError(err *values.LospError) string {
	return s.Err(err.Error())
}
