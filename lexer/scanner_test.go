package lexer

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// scanAll drives ScanOne until EOF or an error.
func scanAll(t *testing.T, input string) ([]Token, error) {
	t.Helper()

	var tokens []Token
	cur := NewCursor()
	for !cur.Exhausted {
		tok, next, err := ScanOne([]byte(input), cur)
		if err != nil {
			return tokens, err
		}
		assert.True(t, next.Offset >= cur.Offset, "cursor moved backwards")
		tokens = append(tokens, tok)
		cur = next
	}
	return tokens, nil
}

func tokenStrings(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.String())
	}
	return out
}

func TestScannerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "line comment",
			input: "-- hello",
			want:  []string{`comment("-- hello")`, "end"},
		},
		{
			name:  "hash bang comment",
			input: "#!/usr/bin/osascript\nset",
			want:  []string{`comment("#!/usr/bin/osascript")`, `keyword("set")`, "end"},
		},
		{
			name:  "line comment keeps carriage return",
			input: "-- dos\r\nx",
			want:  []string{`comment("-- dos\r")`, `identifier("x")`, "end"},
		},
		{
			name:  "block comment does not nest",
			input: "(* a (* b *) c *)",
			want: []string{
				`comment("(* a (* b *)")`,
				`identifier("c")`,
				`operator("*")`,
				`punctuation(")")`,
				"end",
			},
		},
		{
			name:  "block comment spanning lines",
			input: "(* one\ntwo **)x",
			want:  []string{`comment("(* one\ntwo **)")`, `identifier("x")`, "end"},
		},
		{
			name:  "empty block comment",
			input: "(**)",
			want:  []string{`comment("(**)")`, "end"},
		},
		{
			name:  "numbers identifiers and compound operator",
			input: "12.5 foo <= 3",
			want: []string{
				`number("12.5")`,
				`identifier("foo")`,
				`operator("<=")`,
				`number("3")`,
				"end",
			},
		},
		{
			name:  "identifier keeps case",
			input: "Foo",
			want:  []string{`identifier("Foo")`, "end"},
		},
		{
			name:  "keyword matched case-insensitively",
			input: "TELL Application",
			want:  []string{`keyword("TELL")`, `keyword("Application")`, "end"},
		},
		{
			name:  "keyword prefix is an identifier",
			input: "iffy ends",
			want:  []string{`identifier("iffy")`, `identifier("ends")`, "end"},
		},
		{
			name:  "underscore and digits in identifiers",
			input: "_tmp1 x_2",
			want:  []string{`identifier("_tmp1")`, `identifier("x_2")`, "end"},
		},
		{
			name:  "number followed by identifier",
			input: "1abc",
			want:  []string{`number("1")`, `identifier("abc")`, "end"},
		},
		{
			name:  "string without escapes",
			input: `"say \"hi`,
			want:  []string{`string("\"say \\\"")`, `identifier("hi")`, "end"},
		},
		{
			name:  "string spanning lines",
			input: "\"a\nb\"",
			want:  []string{`string("\"a\nb\"")`, "end"},
		},
		{
			name:  "empty string",
			input: `""`,
			want:  []string{`string("\"\"")`, "end"},
		},
		{
			name:  "single character operators",
			input: "& * + - = ^ / < >",
			want: []string{
				`operator("&")`, `operator("*")`, `operator("+")`,
				`operator("-")`, `operator("=")`, `operator("^")`,
				`operator("/")`, `operator("<")`, `operator(">")`,
				"end",
			},
		},
		{
			name:  "unicode operators",
			input: "¬≠≤≥",
			want:  []string{`operator("¬")`, `operator("≠")`, `operator("≤")`, `operator("≥")`, "end"},
		},
		{
			name:  "compound operators",
			input: "/=>=<=",
			want:  []string{`operator("/=")`, `operator(">=")`, `operator("<=")`, "end"},
		},
		{
			name:  "separated compound is two operators",
			input: "< =",
			want:  []string{`operator("<")`, `operator("=")`, "end"},
		},
		{
			name:  "double minus is a comment",
			input: "a--b",
			want:  []string{`identifier("a")`, `comment("--b")`, "end"},
		},
		{
			name:  "minus between identifiers",
			input: "a-b",
			want:  []string{`identifier("a")`, `operator("-")`, `identifier("b")`, "end"},
		},
		{
			name:  "punctuation",
			input: "'(),:[]{}",
			want: []string{
				`punctuation("'")`, `punctuation("(")`, `punctuation(")")`,
				`punctuation(",")`, `punctuation(":")`, `punctuation("[")`,
				`punctuation("]")`, `punctuation("{")`, `punctuation("}")`,
				"end",
			},
		},
		{
			name:  "open paren before identifier",
			input: "(x)",
			want:  []string{`punctuation("(")`, `identifier("x")`, `punctuation(")")`, "end"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{"end"},
		},
		{
			name:  "whitespace only",
			input: " \t\n\r\v\f ",
			want:  []string{"end"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := scanAll(t, tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, tokenStrings(tokens))
		})
	}
}

func TestScannerNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0"},
		{"123", "123"},
		{"12.5", "12.5"},
		{"0.50", "0.50"},
		{"1.2.3", "1.2"},
		{"007", "007"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, cur, err := ScanOne([]byte(tt.input), NewCursor())
			assert.NoError(t, err)
			assert.Equal(t, NUMBER, tok.Type)
			assert.Equal(t, tt.want, tok.Text)
			assert.Equal(t, len(tt.want), cur.Offset)
		})
	}
}

func TestScannerTrailingDotIsNotPartOfNumber(t *testing.T) {
	tokens, err := scanAll(t, "12.")

	assert.Equal(t, []string{`number("12")`}, tokenStrings(tokens))

	var lexErr *LexError
	assert.True(t, errors.As(err, &lexErr))
	assert.Equal(t, NoMatchingRule, lexErr.Kind)
	assert.Equal(t, 2, lexErr.Pos.Offset)
	assert.Equal(t, `'.'`, lexErr.Found)
}

func TestScannerPositions(t *testing.T) {
	tokens, err := scanAll(t, "set x\n  to ≠ 1")
	assert.NoError(t, err)

	type pos struct{ start, end, line, column int }
	want := []pos{
		{0, 3, 1, 1},   // set
		{4, 5, 1, 5},   // x
		{8, 10, 2, 3},  // to
		{11, 14, 2, 6}, // ≠ (three bytes, one column)
		{15, 16, 2, 8}, // 1
		{16, 16, 2, 9}, // end
	}

	assert.Equal(t, len(want), len(tokens))
	for i, tok := range tokens {
		assert.Equal(t, want[i], pos{tok.Start, tok.End, tok.Line, tok.Column}, "token %d (%s)", i, tok)
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     ErrorKind
		offset   int
		expected string
		found    string
	}{
		{"unterminated string", `"abc`, UnterminatedString, 0, `closing '"'`, "end of input"},
		{"unterminated string after token", `x "abc`, UnterminatedString, 2, `closing '"'`, "end of input"},
		{"unterminated comment", "(* never closed", UnterminatedComment, 0, `closing "*)"`, "end of input"},
		{"paren star paren is still open", "(*)", UnterminatedComment, 0, `closing "*)"`, "end of input"},
		{"lone hash", "#", NoMatchingRule, 0, `'!' after '#'`, "end of input"},
		{"hash without bang", "#x", NoMatchingRule, 0, `'!' after '#'`, `'x'`},
		{"stray bang", "!", NoMatchingRule, 0, "a token", `'!'`},
		{"stray dot", "  .", NoMatchingRule, 2, "a token", `'.'`},
		{"control character", "a\x01", NoMatchingRule, 1, "a token", `'\x01'`},
		{"invalid utf-8", "\xff", NoMatchingRule, 0, "a token", "invalid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanAll(t, tt.input)

			var lexErr *LexError
			assert.True(t, errors.As(err, &lexErr), "expected *LexError, got %v", err)
			assert.Equal(t, tt.kind, lexErr.Kind)
			assert.Equal(t, tt.offset, lexErr.Pos.Offset)
			assert.Equal(t, tt.expected, lexErr.Expected)
			assert.Equal(t, tt.found, lexErr.Found)
		})
	}
}

func TestScanOneLeavesCursorOnError(t *testing.T) {
	source := []byte(`  "open`)
	cur := NewCursor()

	_, next, err := ScanOne(source, cur)
	assert.Error(t, err)
	assert.Equal(t, cur, next)
}

func TestScanOneEmitsEOFOnce(t *testing.T) {
	source := []byte("x  ")

	_, cur, err := ScanOne(source, NewCursor())
	assert.NoError(t, err)

	tok, cur, err := ScanOne(source, cur)
	assert.NoError(t, err)
	assert.Equal(t, EOF, tok.Type)
	assert.Equal(t, 3, tok.Start)
	assert.Equal(t, 0, tok.Len())
	assert.True(t, cur.Exhausted)

	_, _, err = ScanOne(source, cur)
	assert.True(t, errors.Is(err, ErrExhausted))
}

func TestScannerInternsShortLexemes(t *testing.T) {
	scanner := NewScanner([]byte("set x to x"), "test")

	for !scanner.Done() {
		_, _, err := scanner.Next()
		assert.NoError(t, err)
	}

	// set, x, to
	assert.Equal(t, 3, scanner.Interner().Size())
	assert.True(t, scanner.Cursor().Exhausted)
}

func TestScannerNextReportsSkippedWhitespace(t *testing.T) {
	scanner := NewScanner([]byte("a \n b"), "test")

	_, skipped, err := scanner.Next()
	assert.NoError(t, err)
	assert.True(t, skipped.IsEmpty())

	tok, skipped, err := scanner.Next()
	assert.NoError(t, err)
	assert.Equal(t, "b", tok.Text)
	assert.Equal(t, 1, skipped.Start)
	assert.Equal(t, 4, skipped.End)
	assert.Equal(t, 2, skipped.Pos.Column)
	assert.Equal(t, "test", skipped.Pos.Filename)
}

func TestScannerNextSetsFilenameOnError(t *testing.T) {
	scanner := NewScanner([]byte("x\n  \"unterminated"), "main.applescript")

	_, _, err := scanner.Next()
	assert.NoError(t, err)

	_, skipped, err := scanner.Next()
	var lexErr *LexError
	assert.True(t, errors.As(err, &lexErr))
	assert.Equal(t, "main.applescript", lexErr.Pos.Filename)
	assert.Equal(t, 2, lexErr.Pos.Line)
	assert.Equal(t, 3, lexErr.Pos.Column)
	assert.Equal(t, 4, skipped.End)
	assert.False(t, scanner.Done())
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "Start", stateStart.String())
	assert.Equal(t, "InBlockComment", stateBlockComment.String())
	assert.Equal(t, "InNumberFraction", stateFraction.String())
	assert.Equal(t, "Unknown", scanState(200).String())
}
