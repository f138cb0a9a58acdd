package ast

// Trivia is a run of skipped whitespace between two tokens. The lexer never
// emits whitespace as tokens but keeps these spans so that the original
// input can be rebuilt from a token sequence.
type Trivia struct {
	Span
	Pos Position // Position of the first skipped byte
}

// Position returns where the trivia run starts.
func (t Trivia) Position() Position { return t.Pos }

// Newlines counts the line feeds inside the trivia run.
func (t Trivia) Newlines(source []byte) int {
	if t.Start < 0 || t.End > len(source) {
		return 0
	}
	n := 0
	for _, b := range source[t.Start:t.End] {
		if b == '\n' {
			n++
		}
	}
	return n
}
