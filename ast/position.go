// Package ast holds the source location types shared by the lexer and the
// tools built on top of its token stream.
package ast

import "fmt"

// Position represents a location in the source file.
type Position struct {
	Filename string
	Offset   int // Byte offset
	Line     int // Line number (1-indexed)
	Column   int // Column number (1-indexed, in runes)
}

// Span represents a half-open byte range [Start, End) in the source file.
type Span struct {
	Start int // Starting byte offset (inclusive)
	End   int // Ending byte offset (exclusive)
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no input.
func (s Span) IsEmpty() bool {
	return s.Len() == 0
}

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Text extracts the source text for this span.
// Returns empty string if the span does not fit the source.
func (s Span) Text(source []byte) string {
	if s.Start < 0 || s.End <= s.Start || s.End > len(source) {
		return ""
	}
	return string(source[s.Start:s.End])
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// GoString returns a Go-syntax representation of the position.
func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Offset: %d, Line: %d, Column: %d}", p.Filename, p.Offset, p.Line, p.Column)
}
