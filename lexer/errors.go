package lexer

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/osalex/ast"
)

// ErrorKind classifies why the scanner could not produce a token.
type ErrorKind uint8

const (
	// NoMatchingRule means the input at the cursor starts no known token.
	NoMatchingRule ErrorKind = iota
	// UnterminatedString means a string literal reached end of input.
	UnterminatedString
	// UnterminatedComment means a block comment reached end of input.
	UnterminatedComment
)

var errorKindNames = map[ErrorKind]string{
	NoMatchingRule:      "no matching rule",
	UnterminatedString:  "unterminated string",
	UnterminatedComment: "unterminated comment",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown error"
}

// Sentinels for errors.Is. They match any LexError of the same kind.
var (
	ErrNoMatchingRule      = &LexError{Kind: NoMatchingRule}
	ErrUnterminatedString  = &LexError{Kind: UnterminatedString}
	ErrUnterminatedComment = &LexError{Kind: UnterminatedComment}
)

// ErrExhausted is returned when scanning continues after EOF was emitted.
var ErrExhausted = errors.New("scan after end of input")

// LexError describes where and why classification failed.
// Pos is the position at which the offending token began.
type LexError struct {
	Kind     ErrorKind
	Pos      ast.Position
	Expected string // What the scanner was looking for
	Found    string // What it saw instead
}

func (e *LexError) Error() string {
	location := fmt.Sprintf("%s:%d:%d", e.Pos.Filename, e.Pos.Line, e.Pos.Column)
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d, column %d", e.Pos.Line, e.Pos.Column)
	}

	msg := fmt.Sprintf("%s: %s", location, e.Kind)
	if e.Expected != "" {
		msg += fmt.Sprintf(": expected %s", e.Expected)
		if e.Found != "" {
			msg += fmt.Sprintf(", found %s", e.Found)
		}
	}
	return msg
}

// GetPosition returns the position at which the offending token began.
func (e *LexError) GetPosition() ast.Position {
	return e.Pos
}

// Is matches another LexError of the same kind.
func (e *LexError) Is(target error) bool {
	t, ok := target.(*LexError)
	return ok && t.Kind == e.Kind
}

func newLexError(kind ErrorKind, pos ast.Position, expected, found string) *LexError {
	return &LexError{
		Kind:     kind,
		Pos:      pos,
		Expected: expected,
		Found:    found,
	}
}

// describeRune renders a lookahead for an error message.
func describeRune(r rune, width int) string {
	switch {
	case r == eof:
		return "end of input"
	case r == invalidRune && width == 1:
		return "invalid UTF-8"
	default:
		return fmt.Sprintf("%q", r)
	}
}
