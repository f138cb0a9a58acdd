package lexer

import (
	"fmt"

	"github.com/robinvdvleuten/osalex/ast"
)

// TokenType represents the category of a scanned token.
type TokenType uint8

const (
	// Special tokens
	EOF TokenType = iota

	// Lexical categories
	COMMENT     // -- line, #! line or (* block *)
	STRING      // "quoted string"
	NUMBER      // 123 or 12.5
	KEYWORD     // tell, end, repeat, ...
	OPERATOR    // & * + - = ^ / < > ¬ ≠ ≤ ≥ /= <= >=
	PUNCTUATION // ' ( ) , : [ ] { }
	IDENT       // identifiers that are not keywords
)

var tokenNames = map[TokenType]string{
	EOF: "end",

	COMMENT:     "comment",
	STRING:      "string",
	NUMBER:      "number",
	KEYWORD:     "keyword",
	OPERATOR:    "operator",
	PUNCTUATION: "punctuation",
	IDENT:       "identifier",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// TokenTypes returns every token type in declaration order.
func TokenTypes() []TokenType {
	return []TokenType{EOF, COMMENT, STRING, NUMBER, KEYWORD, OPERATOR, PUNCTUATION, IDENT}
}

// Token is a classified, contiguous slice of the source.
// Start and End are byte offsets into the source buffer; Text holds the
// exact lexeme so consumers do not need to keep the buffer around.
type Token struct {
	Type   TokenType
	Start  int    // Byte offset into source buffer
	End    int    // End offset (exclusive)
	Line   int    // Line number (1-indexed)
	Column int    // Column number (1-indexed, in runes)
	Text   string // Lexeme
}

// Span returns the byte range covered by the token.
func (t Token) Span() ast.Span {
	return ast.Span{Start: t.Start, End: t.End}
}

// Position returns the start position of the token.
func (t Token) Position(filename string) ast.Position {
	return ast.Position{
		Filename: filename,
		Offset:   t.Start,
		Line:     t.Line,
		Column:   t.Column,
	}
}

// Bytes returns a zero-copy view of the token text.
func (t Token) Bytes(source []byte) []byte {
	if t.Start < 0 || t.End > len(source) || t.Start > t.End {
		return nil
	}
	return source[t.Start:t.End]
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

func (t Token) String() string {
	if t.Type == EOF {
		return "end"
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Text)
}
