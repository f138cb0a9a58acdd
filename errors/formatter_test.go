package errors

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/osalex/ast"
	"github.com/robinvdvleuten/osalex/lexer"
)

type positionalError struct {
	pos ast.Position
	msg string
}

func (e positionalError) Error() string             { return e.msg }
func (e positionalError) GetPosition() ast.Position { return e.pos }

func lexErr(line, column, offset int) *lexer.LexError {
	return &lexer.LexError{
		Kind:     lexer.NoMatchingRule,
		Pos:      ast.Position{Filename: "main.applescript", Offset: offset, Line: line, Column: column},
		Expected: "a token",
		Found:    `'!'`,
	}
}

func TestTextFormatter_Format_WithoutSource(t *testing.T) {
	tf := NewTextFormatter()

	err := lexErr(3, 5, 20)
	assert.Equal(t, err.Error(), tf.Format(err))
}

func TestTextFormatter_Format_PlainError(t *testing.T) {
	tf := NewTextFormatter(WithSource([]byte("x")))
	assert.Equal(t, "boom", tf.Format(fmt.Errorf("boom")))
}

func TestTextFormatter_Format_WithSourceContext(t *testing.T) {
	source := "set a to 1\nset b to 2\nset c to 3\nset d to !\nset e to 5"
	tf := NewTextFormatter(WithSource([]byte(source)))

	output := tf.Format(lexErr(4, 10, 39))
	expected := "main.applescript:4:10: no matching rule: expected a token, found '!'\n\n" +
		" 2 | set b to 2\n" +
		" 3 | set c to 3\n" +
		" 4 | set d to !\n" +
		"   |          ^\n"

	assert.Equal(t, expected, output)
}

func TestTextFormatter_Format_ContextLines(t *testing.T) {
	source := "a\nb\nc !"
	tf := NewTextFormatter(WithSource([]byte(source)), WithContextLines(0))

	output := tf.Format(lexErr(3, 3, 6))
	assert.True(t, strings.HasSuffix(output, "\n\n 3 | c !\n   |   ^\n"), "got %q", output)
}

func TestTextFormatter_Format_WideGutter(t *testing.T) {
	source := strings.Repeat("x\n", 11) + "!"
	tf := NewTextFormatter(WithSource([]byte(source)), WithContextLines(1))

	output := tf.Format(lexErr(12, 1, 22))
	assert.True(t, strings.HasSuffix(output, " 11 | x\n 12 | !\n    | ^\n"), "got %q", output)
}

func TestTextFormatter_Format_OutOfRangeLine(t *testing.T) {
	tf := NewTextFormatter(WithSource([]byte("one line")))

	err := lexErr(9, 1, 0)
	assert.Equal(t, err.Error(), tf.Format(err))
}

func TestTextFormatter_Format_CaretStyle(t *testing.T) {
	tf := NewTextFormatter(
		WithSource([]byte("!")),
		WithCaretStyle(lipgloss.NewStyle().Bold(true)),
	)

	output := tf.Format(lexErr(1, 1, 0))
	assert.Contains(t, output, "^")
}

func TestCaretPadding(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		column int
		want   string
	}{
		{"first column", "x", 1, ""},
		{"ascii", "set x", 5, "    "},
		{"tabs kept", "\t\tx", 3, "\t\t"},
		{"multibyte narrow", "x é y", 5, "    "},
		{"wide runes", "日本 x", 4, "     "},
		{"past end of line", "ab", 5, "    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, caretPadding(tt.line, tt.column))
		})
	}
}

func TestTextFormatter_FormatAll(t *testing.T) {
	tf := NewTextFormatter()

	assert.Equal(t, "", tf.FormatAll(nil))

	errs := []error{
		positionalError{msg: "first"},
		positionalError{msg: "second"},
	}
	assert.Equal(t, "first\n\nsecond", tf.FormatAll(errs))
}

func TestJSONFormatter_Format(t *testing.T) {
	jf := NewJSONFormatter()

	var decoded ErrorJSON
	assert.NoError(t, json.Unmarshal([]byte(jf.Format(lexErr(2, 4, 15))), &decoded))

	assert.Equal(t, "*lexer.LexError", decoded.Type)
	assert.Equal(t, &PositionJSON{Filename: "main.applescript", Offset: 15, Line: 2, Column: 4}, decoded.Position)
	assert.Equal(t, "no matching rule", decoded.Details["kind"])
	assert.Equal(t, "a token", decoded.Details["expected"])
	assert.Equal(t, "'!'", decoded.Details["found"])
}

func TestJSONFormatter_FormatAll(t *testing.T) {
	jf := NewJSONFormatter()

	errs := []error{
		positionalError{pos: ast.Position{Filename: "a.applescript", Line: 1, Column: 2}, msg: "first"},
		fmt.Errorf("second"),
	}

	var decoded []ErrorJSON
	assert.NoError(t, json.Unmarshal([]byte(jf.FormatAll(errs)), &decoded))
	assert.Equal(t, 2, len(decoded))
	assert.Equal(t, "first", decoded[0].Message)
	assert.Equal(t, "a.applescript", decoded[0].Position.Filename)
	assert.Zero(t, decoded[1].Position)
	assert.Equal(t, 0, len(decoded[1].Details))
}

func TestJSONFormatter_FormatAllToSlice_Empty(t *testing.T) {
	jf := NewJSONFormatter()
	assert.Equal(t, 0, len(jf.FormatAllToSlice(nil)))
	assert.Equal(t, "[]", jf.FormatAll(nil))
}
