package lexer

import (
	"context"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/osalex/ast"
	"github.com/robinvdvleuten/osalex/telemetry"
)

// Sequence is the flat, ordered list of items produced for one input.
// Whitespace never appears in Tokens; the skipped runs are kept in Trivia
// so the input can be rebuilt exactly.
type Sequence struct {
	Filename string
	Source   []byte
	Tokens   []Token      // Ends with EOF unless tokenization failed
	Trivia   []ast.Trivia // Skipped whitespace, in source order
}

// Tokenize scans source from offset 0 until EOF or the first LexError.
//
// On success the returned sequence ends with an EOF token. On failure the
// sequence holds every token produced before the error (and no EOF), and
// the error is a *LexError. The context only carries telemetry; the scan
// itself never blocks.
func Tokenize(ctx context.Context, filename string, source []byte) (*Sequence, error) {
	collector := telemetry.FromContext(ctx)
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("lexer.tokenize %s", displayName(filename)))
	defer timer.End()

	scanner := NewScanner(source, filename)
	seq := &Sequence{
		Filename: filename,
		Source:   source,
		Tokens:   make([]Token, 0, estimateTokens(len(source))),
	}

	for !scanner.Done() {
		tok, skipped, err := scanner.Next()
		if !skipped.IsEmpty() {
			seq.Trivia = append(seq.Trivia, skipped)
		}
		if err != nil {
			collector.Count("lexer.errors", 1)
			collector.Count("lexer.tokens", len(seq.Tokens))
			return seq, err
		}
		seq.Tokens = append(seq.Tokens, tok)
	}

	collector.Count("lexer.tokens", len(seq.Tokens)-1)
	return seq, nil
}

// estimateTokens guesses a token buffer size: scripts average roughly one
// token per five bytes.
func estimateTokens(size int) int {
	return size/5 + 16
}

func displayName(filename string) string {
	if filename == "" {
		return "<input>"
	}
	return filename
}

// Complete reports whether the sequence reached EOF.
func (s *Sequence) Complete() bool {
	return len(s.Tokens) > 0 && s.Tokens[len(s.Tokens)-1].Type == EOF
}

// Items returns the tokens without the trailing EOF marker.
func (s *Sequence) Items() []Token {
	if s.Complete() {
		return s.Tokens[:len(s.Tokens)-1]
	}
	return s.Tokens
}

// Filter returns the tokens of the given types, in order.
func (s *Sequence) Filter(types ...TokenType) []Token {
	var want [256]bool
	for _, t := range types {
		want[t] = true
	}

	var out []Token
	for _, tok := range s.Tokens {
		if want[tok.Type] {
			out = append(out, tok)
		}
	}
	return out
}

// Counts returns the number of tokens per type, EOF excluded.
func (s *Sequence) Counts() map[TokenType]int {
	counts := make(map[TokenType]int)
	for _, tok := range s.Items() {
		counts[tok.Type]++
	}
	return counts
}

// Reconstruct rebuilds the scanned part of the input by interleaving token
// texts and trivia in offset order. For a complete sequence the result is
// byte-for-byte equal to Source.
func (s *Sequence) Reconstruct() string {
	var buf strings.Builder
	buf.Grow(len(s.Source))

	ti := 0
	for _, tok := range s.Tokens {
		for ti < len(s.Trivia) && s.Trivia[ti].Start < tok.Start {
			buf.WriteString(s.Trivia[ti].Text(s.Source))
			ti++
		}
		buf.WriteString(tok.Text)
	}
	for ; ti < len(s.Trivia); ti++ {
		buf.WriteString(s.Trivia[ti].Text(s.Source))
	}

	return buf.String()
}
