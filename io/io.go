// Package cliio owns the standard streams of a command-line program and
// knows whether they are terminals, so that help and diagnostics can be
// styled only when a human is looking.
package cliio

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// IOManager bundles the three standard streams with colour decisions.
type IOManager struct {
	in  io.Reader
	out io.Writer
	err io.Writer

	forceColor bool
	noColor    bool
	theme      Theme
}

// New returns a manager bound to the process streams.
func New() *IOManager {
	return &IOManager{in: os.Stdin, out: os.Stdout, err: os.Stderr, theme: DefaultTheme()}
}

// WithIn replaces the input stream.
func (m *IOManager) WithIn(r io.Reader) *IOManager { m.in = r; return m }

// WithOut replaces the output stream.
func (m *IOManager) WithOut(w io.Writer) *IOManager { m.out = w; return m }

// WithErr replaces the error stream.
func (m *IOManager) WithErr(w io.Writer) *IOManager { m.err = w; return m }

// WithTheme replaces the colour theme.
func (m *IOManager) WithTheme(t Theme) *IOManager { m.theme = t; return m }

// ForceColor turns styling on regardless of the environment.
func (m *IOManager) ForceColor() *IOManager { m.forceColor, m.noColor = true, false; return m }

// NoColor turns styling off regardless of the environment.
func (m *IOManager) NoColor() *IOManager { m.noColor, m.forceColor = true, false; return m }

// ColorAuto returns to environment-based detection.
func (m *IOManager) ColorAuto() *IOManager { m.noColor, m.forceColor = false, false; return m }

func (m *IOManager) In() io.Reader  { return m.in }
func (m *IOManager) Out() io.Writer { return m.out }
func (m *IOManager) Err() io.Writer { return m.err }

// Theme returns the active theme.
func (m *IOManager) Theme() Theme { return m.theme }

// IsTTY reports whether the output stream is a terminal.
func (m *IOManager) IsTTY() bool { return isTerminal(m.out) }

// IsInteractive reports whether input comes from a terminal outside CI.
func (m *IOManager) IsInteractive() bool {
	return isTerminal(m.in) && os.Getenv("CI") == ""
}

// Width returns the output terminal width, then $COLUMNS, then 80.
func (m *IOManager) Width() int {
	if f, ok := m.out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return 80
}

// SupportsColor applies, in order: NoColor/ForceColor, NO_COLOR,
// FORCE_COLOR, then terminal detection with TERM != dumb.
func (m *IOManager) SupportsColor() bool {
	switch {
	case m.noColor:
		return false
	case m.forceColor:
		return true
	case os.Getenv("NO_COLOR") != "":
		return false
	case os.Getenv("FORCE_COLOR") != "":
		return true
	}
	t := os.Getenv("TERM")
	return m.IsTTY() && t != "" && t != "dumb"
}

// Style renders text with s when colour is supported and returns it
// unchanged otherwise.
func (m *IOManager) Style(s Style, text string) string {
	if !m.SupportsColor() {
		return text
	}
	return s.Sprint(text)
}

// Bold is Style with a bold-only style.
func (m *IOManager) Bold(text string) string { return m.Style(Bold, text) }

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
