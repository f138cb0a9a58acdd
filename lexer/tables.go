package lexer

import (
	"golang.org/x/exp/slices"
)

// The rule tables below are initialized once at package load and only ever
// read afterwards, so any number of scans may consult them concurrently.

// maxKeywordLen is the length of the longest keyword ("applescript",
// "application", "considering").
const maxKeywordLen = 11

// keywords is the closed keyword table, stored lower-case.
var keywords = map[string]struct{}{
	"additions":   {},
	"and":         {},
	"applescript": {},
	"application": {},
	"by":          {},
	"case":        {},
	"considering": {},
	"contains":    {},
	"div":         {},
	"else":        {},
	"end":         {},
	"error":       {},
	"exit":        {},
	"false":       {},
	"framework":   {},
	"from":        {},
	"global":      {},
	"if":          {},
	"ignoring":    {},
	"in":          {},
	"is":          {},
	"it":          {},
	"local":       {},
	"me":          {},
	"missing":     {},
	"mod":         {},
	"not":         {},
	"of":          {},
	"on":          {},
	"or":          {},
	"property":    {},
	"repeat":      {},
	"result":      {},
	"return":      {},
	"script":      {},
	"scripting":   {},
	"set":         {},
	"tell":        {},
	"then":        {},
	"times":       {},
	"to":          {},
	"true":        {},
	"try":         {},
	"until":       {},
	"use":         {},
	"value":       {},
	"version":     {},
	"while":       {},
	"with":        {},
}

// punctuation lists the single-byte punctuation marks.
var punctuation = [128]bool{
	'\'': true,
	'(':  true,
	')':  true,
	',':  true,
	':':  true,
	'[':  true,
	']':  true,
	'{':  true,
	'}':  true,
}

// operators lists the single-rune operators that never extend into a longer
// token. '-', '/', '<' and '>' are handled by their own states because they
// may continue into a comment or a compound operator.
var operators = map[rune]struct{}{
	'&': {},
	'*': {},
	'+': {},
	'=': {},
	'^': {},
	'¬': {}, // U+00AC
	'≠': {}, // U+2260
	'≤': {}, // U+2264
	'≥': {}, // U+2265
}

// IsKeyword reports whether word is a keyword, ignoring ASCII case.
func IsKeyword(word []byte) bool {
	if len(word) == 0 || len(word) > maxKeywordLen {
		return false
	}

	var buf [maxKeywordLen]byte
	for i, ch := range word {
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		buf[i] = ch
	}

	_, ok := keywords[string(buf[:len(word)])]
	return ok
}

// Keywords returns the keyword table in sorted order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	slices.Sort(words)
	return words
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isPunctuation(r rune) bool {
	return r >= 0 && r < 128 && punctuation[r]
}

func isOperator(r rune) bool {
	_, ok := operators[r]
	return ok
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || (ch >= '\t' && ch <= '\r')
}
