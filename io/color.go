package cliio

import "github.com/fatih/color"

// Style is a set of SGR attributes.
type Style struct {
	attrs []color.Attribute
}

// NewStyle returns a style made of attrs.
func NewStyle(attrs ...color.Attribute) Style {
	return Style{attrs: append([]color.Attribute(nil), attrs...)}
}

// Add returns a copy of s with attrs appended.
func (s Style) Add(attrs ...color.Attribute) Style {
	return NewStyle(append(append([]color.Attribute(nil), s.attrs...), attrs...)...)
}

// Plain reports whether s carries no attributes.
func (s Style) Plain() bool { return len(s.attrs) == 0 }

// Sprint always renders text with escape sequences. Use IOManager.Style to
// respect the terminal.
func (s Style) Sprint(text string) string {
	if s.Plain() {
		return text
	}
	c := color.New(s.attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

var Bold = NewStyle(color.Bold)

// Theme maps semantic roles to styles.
type Theme struct {
	Error   Style
	Warning Style
	Success Style
	Info    Style
	Debug   Style
	Hint    Style
	Heading Style
}

// DefaultTheme uses the 16 basic colours every ANSI terminal knows.
func DefaultTheme() Theme {
	return Theme{
		Error:   NewStyle(color.FgRed, color.Bold),
		Warning: NewStyle(color.FgYellow),
		Success: NewStyle(color.FgGreen),
		Info:    NewStyle(color.FgBlue),
		Debug:   NewStyle(color.FgMagenta),
		Hint:    NewStyle(color.FgCyan),
		Heading: NewStyle(color.Bold),
	}
}

// PlainTheme has no styling at all.
func PlainTheme() Theme { return Theme{} }
