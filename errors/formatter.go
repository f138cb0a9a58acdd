// Package errors renders scanner errors for different consumers.
// It keeps presentation apart from the lexer, so the same error can be shown
// on a terminal with source context or returned as JSON from the web API.
//
// Two implementations of Formatter are provided:
//   - TextFormatter: compiler-style output with the offending line and a caret
//   - JSONFormatter: structured JSON for APIs and web interfaces
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/osalex/ast"
	"github.com/robinvdvleuten/osalex/lexer"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	sourceContent []byte // Optional source content for context
	contextLines  int    // Lines shown before the offending line
	caretStyle    *lipgloss.Style
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content shown around the error position.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// WithContextLines sets how many lines before the offending one are shown.
func WithContextLines(n int) TextFormatterOption {
	return func(tf *TextFormatter) {
		if n >= 0 {
			tf.contextLines = n
		}
	}
}

// WithCaretStyle renders the caret line with style.
func WithCaretStyle(style lipgloss.Style) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.caretStyle = &style
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{contextLines: 2}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	if e, ok := err.(interface {
		GetPosition() ast.Position
		Error() string
	}); ok && tf.sourceContent != nil {
		return tf.formatWithSourceContext(e.GetPosition(), e.Error(), tf.sourceContent)
	}

	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// formatWithSourceContext writes the message followed by the source lines
// leading up to the error and a caret under the offending column.
func (tf *TextFormatter) formatWithSourceContext(pos ast.Position, message string, source []byte) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	lines := strings.Split(string(source), "\n")
	errLine := pos.Line - 1
	if errLine < 0 || errLine >= len(lines) {
		return strings.TrimRight(buf.String(), "\n")
	}

	start := errLine - tf.contextLines
	if start < 0 {
		start = 0
	}

	gutter := len(fmt.Sprint(pos.Line))
	for i := start; i <= errLine; i++ {
		fmt.Fprintf(&buf, " %*d | %s\n", gutter, i+1, strings.TrimRight(lines[i], "\r"))
	}

	caret := caretPadding(lines[errLine], pos.Column) + "^"
	if tf.caretStyle != nil {
		caret = tf.caretStyle.Render(caret)
	}
	fmt.Fprintf(&buf, " %*s | %s\n", gutter, "", caret)

	return buf.String()
}

// caretPadding returns the whitespace that lines a caret up with column
// (1-indexed, in runes) of line. Tabs are kept so the terminal expands them
// the same way as in the echoed line; wide runes take two cells.
func caretPadding(line string, column int) string {
	var pad strings.Builder
	n := 0
	for _, r := range line {
		if n >= column-1 {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		n++
	}
	// The error may sit past the end of the line (at end of input).
	for ; n < column-1; n++ {
		pad.WriteByte(' ')
	}
	return pad.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string                 `json:"type"`
	Message  string                 `json:"message"`
	Position *PositionJSON          `json:"position,omitempty"`
	Details  map[string]interface{} `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Offset   int    `json:"offset"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	errJSON := jf.toJSON(err)
	data, _ := json.Marshal(errJSON)
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	jsonErrors := jf.FormatAllToSlice(errs)
	data, _ := json.MarshalIndent(jsonErrors, "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

// toJSON converts an error to ErrorJSON.
func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Details: make(map[string]interface{}),
	}

	if e, ok := err.(interface{ GetPosition() ast.Position }); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Offset:   pos.Offset,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	if e, ok := err.(*lexer.LexError); ok {
		errJSON.Details["kind"] = e.Kind.String()
		if e.Expected != "" {
			errJSON.Details["expected"] = e.Expected
		}
		if e.Found != "" {
			errJSON.Details["found"] = e.Found
		}
	}

	return errJSON
}
