package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	errfmt "github.com/robinvdvleuten/osalex/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	formatter *errfmt.TextFormatter
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	var opts []errfmt.TextFormatterOption
	if source != nil {
		opts = append(opts,
			errfmt.WithSource(source),
			errfmt.WithCaretStyle(errCaretStyle),
		)
	}
	return &ErrorRenderer{formatter: errfmt.NewTextFormatter(opts...)}
}

// Render formats a single error: the message in the error colour, the
// source excerpt dimmed and the caret highlighted.
func (r *ErrorRenderer) Render(err error) string {
	text := r.formatter.Format(err)

	message, context, found := strings.Cut(text, "\n\n")
	if !found {
		return errorStyle.Render(text)
	}

	lines := strings.Split(strings.TrimRight(context, "\n"), "\n")
	for i, line := range lines[:len(lines)-1] {
		lines[i] = errContextStyle.Render(line)
	}

	return errorStyle.Render(message) + "\n\n" + strings.Join(lines, "\n") + "\n"
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}
