// Package osalex tokenizes AppleScript source.
//
// The scanner itself lives in the lexer package; this package is the
// single entry point most callers need.
//
//	seq, err := osalex.Tokenize(`tell application "Finder" to activate`)
//	if err != nil {
//		var lexErr *lexer.LexError
//		if errors.As(err, &lexErr) {
//			fmt.Println(lexErr.Pos)
//		}
//	}
//	for _, tok := range seq.Items() {
//		fmt.Println(tok)
//	}
package osalex

import (
	"context"

	"github.com/robinvdvleuten/osalex/lexer"
)

// Tokenize scans source into a token sequence ending with EOF.
// On failure it returns the tokens produced so far along with a
// *lexer.LexError describing the first offending position.
func Tokenize(source string) (*lexer.Sequence, error) {
	return TokenizeBytes(context.Background(), "", []byte(source))
}

// TokenizeBytes is Tokenize for a byte buffer. filename is only used in
// error positions; ctx may carry a telemetry collector.
func TokenizeBytes(ctx context.Context, filename string, source []byte) (*lexer.Sequence, error) {
	return lexer.Tokenize(ctx, filename, source)
}
