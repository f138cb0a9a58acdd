package lexer

// Scanner implements a longest-match scanner for AppleScript source.
//
// The scanner walks an explicit state graph (see state.go) one rune at a
// time, remembering the last accepting state it passed through. When no
// transition matches the lookahead it commits to that last accepted prefix,
// which is how "12." yields the number "12" and leaves the dot behind.
// Delimited tokens (strings and block comments) never fall back: running
// into the end of input inside them is an error.

import (
	"errors"
	"unicode/utf8"

	"github.com/robinvdvleuten/osalex/ast"
)

const (
	eof         rune = -1
	invalidRune      = utf8.RuneError
)

// Cursor is the scan position within a source buffer. It only ever moves
// forward and is owned by whoever drives the scan.
type Cursor struct {
	Offset    int  // Byte offset of the next unread byte
	Line      int  // Current line (1-indexed)
	Column    int  // Current column (1-indexed, in runes)
	Exhausted bool // EOF has been emitted
}

// NewCursor returns a cursor at the start of the input.
func NewCursor() Cursor {
	return Cursor{Line: 1, Column: 1}
}

// Position converts the cursor into a source position.
func (c Cursor) Position(filename string) ast.Position {
	return ast.Position{
		Filename: filename,
		Offset:   c.Offset,
		Line:     c.Line,
		Column:   c.Column,
	}
}

func (c Cursor) advance(r rune, size int) Cursor {
	c.Offset += size
	if r == '\n' {
		c.Line++
		c.Column = 1
	} else {
		c.Column++
	}
	return c
}

// ScanOne skips whitespace at cur and scans a single token. It returns the
// token and the cursor just past it. At the end of the input it returns an
// EOF token and an exhausted cursor; scanning an exhausted cursor returns
// ErrExhausted. When no token can be produced the error is a *LexError and
// the returned cursor is cur, unchanged.
func ScanOne(source []byte, cur Cursor) (Token, Cursor, error) {
	return scanOne(source, cur, nil)
}

func scanOne(source []byte, cur Cursor, interner *Interner) (Token, Cursor, error) {
	if cur.Exhausted {
		return Token{}, cur, ErrExhausted
	}

	start := skipWhitespace(source, cur)
	if start.Offset >= len(source) {
		end := start
		end.Exhausted = true
		return Token{
			Type:   EOF,
			Start:  start.Offset,
			End:    start.Offset,
			Line:   start.Line,
			Column: start.Column,
		}, end, nil
	}

	typ, end, err := match(source, start)
	if err != nil {
		return Token{}, cur, err
	}

	lexeme := source[start.Offset:end.Offset]
	if typ == IDENT && IsKeyword(lexeme) {
		typ = KEYWORD
	}

	return Token{
		Type:   typ,
		Start:  start.Offset,
		End:    end.Offset,
		Line:   start.Line,
		Column: start.Column,
		Text:   lexemeText(lexeme, typ, interner),
	}, end, nil
}

// match runs the state graph from start and returns the longest accepted
// token type with the cursor just past it.
func match(source []byte, start Cursor) (TokenType, Cursor, error) {
	var (
		state      = stateStart
		pos        = start
		accepted   bool
		acceptType TokenType
		acceptEnd  Cursor
		r          rune
		size       int
	)

	for {
		if typ, ok := state.accepts(); ok {
			accepted, acceptType, acceptEnd = true, typ, pos
		}

		r, size = peek(source, pos.Offset)
		next, ok := state.next(r)
		if !ok {
			break
		}
		pos = pos.advance(r, size)
		state = next
	}

	if kind, ok := state.unterminated(); ok {
		expected := `closing '"'`
		if kind == UnterminatedComment {
			expected = `closing "*)"`
		}
		return EOF, start, newLexError(kind, start.Position(""), expected, describeRune(r, size))
	}

	if !accepted {
		expected := "a token"
		if state == stateHash {
			expected = `'!' after '#'`
		}
		return EOF, start, newLexError(NoMatchingRule, start.Position(""), expected, describeRune(r, size))
	}

	return acceptType, acceptEnd, nil
}

// peek decodes the rune at offset. It returns eof past the end of the input
// and utf8.RuneError with width 1 for an invalid byte.
func peek(source []byte, offset int) (rune, int) {
	if offset >= len(source) {
		return eof, 0
	}
	if ch := source[offset]; ch < utf8.RuneSelf {
		return rune(ch), 1
	}
	return utf8.DecodeRune(source[offset:])
}

// skipWhitespace advances cur past space, tab, newline, vertical tab, form
// feed and carriage return.
func skipWhitespace(source []byte, cur Cursor) Cursor {
	for cur.Offset < len(source) {
		ch := source[cur.Offset]
		if !isWhitespace(ch) {
			break
		}
		cur = cur.advance(rune(ch), 1)
	}
	return cur
}

func lexemeText(lexeme []byte, typ TokenType, interner *Interner) string {
	if interner == nil {
		return string(lexeme)
	}
	switch typ {
	case IDENT, KEYWORD, OPERATOR, PUNCTUATION:
		return interner.InternBytes(lexeme)
	default:
		return string(lexeme)
	}
}

// Scanner tokenizes one source buffer, one token per call to Next.
type Scanner struct {
	source   []byte    // Source buffer
	filename string    // Filename for error reporting
	cursor   Cursor    // Current scan position
	interner *Interner // String interning pool for short lexemes
}

// NewScanner creates a scanner positioned at the start of source.
func NewScanner(source []byte, filename string) *Scanner {
	// Short lexemes repeat heavily in scripts; size the pool from the input.
	internerCap := len(source) / 40
	if internerCap < 256 {
		internerCap = 256
	}

	return &Scanner{
		source:   source,
		filename: filename,
		cursor:   NewCursor(),
		interner: NewInterner(internerCap),
	}
}

// Cursor returns the current scan position.
func (s *Scanner) Cursor() Cursor {
	return s.cursor
}

// Done reports whether EOF has been emitted.
func (s *Scanner) Done() bool {
	return s.cursor.Exhausted
}

// Interner returns the string interner shared by all tokens of this scan.
func (s *Scanner) Interner() *Interner {
	return s.interner
}

// Next scans the next token. skipped is the whitespace consumed before the
// token, or before the failure when err is a *LexError.
func (s *Scanner) Next() (tok Token, skipped ast.Trivia, err error) {
	prev := s.cursor
	skipped = ast.Trivia{
		Span: ast.Span{Start: prev.Offset, End: prev.Offset},
		Pos:  prev.Position(s.filename),
	}

	tok, next, err := scanOne(s.source, s.cursor, s.interner)
	if err != nil {
		var lexErr *LexError
		if errors.As(err, &lexErr) {
			lexErr.Pos.Filename = s.filename
			skipped.End = lexErr.Pos.Offset
		}
		return Token{}, skipped, err
	}

	s.cursor = next
	skipped.End = tok.Start
	return tok, skipped, nil
}
