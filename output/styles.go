// Package output provides styling helpers for terminal output.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles provides styled output helpers for the CLI.
// On writers that are not terminals termenv degrades to plain text.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

// Plain returns Styles that never emit escape sequences.
func Plain(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii)),
	}
}

// Colored returns Styles that always emit ANSI colours, even when w is not
// a terminal.
func Colored(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w, termenv.WithProfile(termenv.ANSI)),
	}
}

// Success returns a styled success string (green + bold).
func (s *Styles) Success(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("2")).
		Bold().
		String()
}

// Error returns a styled error string (red + bold).
func (s *Styles) Error(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("1")).
		Bold().
		String()
}

// FilePath returns a styled file path (cyan).
func (s *Styles) FilePath(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("6")).
		String()
}

// Keyword returns a styled keyword (bold).
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).
		Bold().
		String()
}

// Comment returns a styled comment (faint italic).
func (s *Styles) Comment(text string) string {
	return s.output.String(text).
		Faint().
		Italic().
		String()
}

// Literal returns a styled string literal (green).
func (s *Styles) Literal(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("2")).
		String()
}

// Number returns a styled number (magenta).
func (s *Styles) Number(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("5")).
		String()
}

// Operator returns a styled operator (yellow).
func (s *Styles) Operator(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		String()
}

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string {
	return s.output.String(text).
		Faint().
		String()
}

// Warning returns a styled warning (yellow + bold).
func (s *Styles) Warning(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		Bold().
		String()
}

// Timing returns a styled timing string: red when slow, dimmed otherwise.
func (s *Styles) Timing(text string, isSlowOperation bool) string {
	if isSlowOperation {
		return s.output.String(text).
			Foreground(s.output.Color("1")).
			String()
	}
	return s.Dim(text)
}

// Output returns the underlying termenv Output for advanced usage.
func (s *Styles) Output() *termenv.Output {
	return s.output
}
