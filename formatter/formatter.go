// Package formatter re-spaces AppleScript source from its token stream.
//
// The formatter never adds, drops or reorders tokens. It only rewrites the
// whitespace between them:
//   - runs of spaces and tabs within a line become a single space
//   - tokens written without whitespace between them stay adjacent
//   - line breaks are kept, with blank lines capped at MaxBlankLines
//   - each line is re-indented from the block keywords that open and close it
//
// Because token boundaries are untouched, tokenizing the output yields the same
// token sequence as the input, and formatting is idempotent.
package formatter

import (
	"bytes"
	"context"
	"io"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/osalex/lexer"
	"github.com/robinvdvleuten/osalex/telemetry"
)

const (
	// DefaultMaxBlankLines is how many consecutive blank lines survive.
	DefaultMaxBlankLines = 1
)

// blockOpeners start a block when they lead a line.
var blockOpeners = []string{"considering", "ignoring", "on", "repeat", "script", "to", "try", "with"}

// Formatter handles re-spacing and indentation of a token sequence.
type Formatter struct {
	// Indentation is the number of spaces per block level.
	// If 0, a tab is used instead.
	Indentation int

	// MaxBlankLines caps consecutive blank lines. Negative means unlimited.
	MaxBlankLines int

	// Reindent controls whether leading whitespace is recomputed from block
	// structure. When false, lines start at column one.
	Reindent bool
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithIndentation indents blocks with n spaces per level instead of a tab.
func WithIndentation(n int) Option {
	return func(f *Formatter) {
		f.Indentation = n
	}
}

// WithMaxBlankLines caps the number of consecutive blank lines.
func WithMaxBlankLines(n int) Option {
	return func(f *Formatter) {
		f.MaxBlankLines = n
	}
}

// WithReindent enables or disables indentation from block structure.
func WithReindent(reindent bool) Option {
	return func(f *Formatter) {
		f.Reindent = reindent
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		MaxBlankLines: DefaultMaxBlankLines,
		Reindent:      true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// line is a run of tokens that share an output line. breaks is the number
// of line breaks that preceded it in the source.
type line struct {
	tokens []lexer.Token
	gaps   []bool // gaps[i] reports whitespace before tokens[i]
	breaks int
}

// Format writes the re-spaced source of seq to w.
// seq must be complete; a partial sequence would silently drop the input
// after the failure, so it is rejected.
func (f *Formatter) Format(ctx context.Context, seq *lexer.Sequence, w io.Writer) error {
	timer := telemetry.StartTimer(ctx, "formatter.format")
	defer timer.End()

	if !seq.Complete() {
		return ErrIncomplete
	}

	lines := f.splitLines(seq)

	var buf bytes.Buffer
	buf.Grow(len(seq.Source))

	depth := 0
	for i, ln := range lines {
		if i > 0 {
			buf.WriteString(strings.Repeat("\n", f.capBreaks(ln.breaks)))
		}

		before, after := blockDelta(ln.tokens)
		level := max(depth+before, 0)
		depth = max(level+after, 0)

		if f.Reindent {
			buf.WriteString(strings.Repeat(f.indent(), level))
		}

		for j, tok := range ln.tokens {
			if ln.gaps[j] {
				buf.WriteByte(' ')
			}
			buf.WriteString(tok.Text)
		}
	}

	if len(lines) > 0 {
		buf.WriteByte('\n')
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// FormatBytes tokenizes source and returns it re-spaced.
func (f *Formatter) FormatBytes(ctx context.Context, filename string, source []byte) ([]byte, error) {
	seq, err := lexer.Tokenize(ctx, filename, source)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Format(ctx, seq, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// splitLines groups the tokens of seq by the line breaks in the trivia
// between them.
func (f *Formatter) splitLines(seq *lexer.Sequence) []line {
	var (
		lines []line
		cur   *line
		ti    int
	)

	for _, tok := range seq.Items() {
		breaks, gap := 0, false
		for ti < len(seq.Trivia) && seq.Trivia[ti].Start < tok.Start {
			if seq.Trivia[ti].End == tok.Start {
				breaks = seq.Trivia[ti].Newlines(seq.Source)
				gap = true
			}
			ti++
		}

		if cur == nil || breaks > 0 {
			lines = append(lines, line{breaks: breaks})
			cur = &lines[len(lines)-1]
			gap = false
		}

		cur.tokens = append(cur.tokens, tok)
		cur.gaps = append(cur.gaps, gap)
	}

	return lines
}

func (f *Formatter) capBreaks(breaks int) int {
	if f.MaxBlankLines < 0 {
		return breaks
	}
	return min(breaks, f.MaxBlankLines+1)
}

func (f *Formatter) indent() string {
	if f.Indentation <= 0 {
		return "\t"
	}
	return strings.Repeat(" ", f.Indentation)
}

// blockDelta reports how a line changes the block depth: before applies to
// the line itself, after to the lines that follow it.
func blockDelta(tokens []lexer.Token) (before, after int) {
	first := keywordAt(tokens, 0)

	switch {
	case first == "end":
		return -1, 0
	case first == "else":
		return -1, 1
	case first == "on" && keywordAt(tokens, 1) == "error":
		return -1, 1
	case first == "if":
		if lastKeyword(tokens) == "then" {
			return 0, 1
		}
		return 0, 0
	case first == "tell":
		for i := 1; i < len(tokens); i++ {
			if keywordAt(tokens, i) == "to" {
				return 0, 0
			}
		}
		return 0, 1
	case first == "" && len(tokens) > 0 && strings.EqualFold(tokens[0].Text, "using"):
		return 0, 1
	case first != "" && slices.Contains(blockOpeners, first):
		return 0, 1
	}

	return 0, 0
}

// keywordAt returns the lower-cased keyword at index i, or "".
func keywordAt(tokens []lexer.Token, i int) string {
	if i >= len(tokens) || tokens[i].Type != lexer.KEYWORD {
		return ""
	}
	return strings.ToLower(tokens[i].Text)
}

// lastKeyword returns the last keyword on the line, skipping a trailing comment.
func lastKeyword(tokens []lexer.Token) string {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Type == lexer.COMMENT {
			continue
		}
		return keywordAt(tokens, i)
	}
	return ""
}
