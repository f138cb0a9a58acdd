package lexer

// scanState names a node of the scanner's transition graph. Each scan starts
// in stateStart and follows transitions until no edge matches the lookahead.
type scanState uint8

const (
	stateStart scanState = iota

	stateHash      // '#' seen, only '!' may follow
	stateMinus     // '-' seen: operator, or "--" comment
	stateCompare   // '<', '>' or '/' seen: operator, or compound with '='
	stateOpenParen // '(' seen: punctuation, or "(*" comment
	stateOperator  // complete operator
	statePunct     // complete punctuation

	stateLineComment      // inside "--" or "#!" comment
	stateBlockComment     // inside "(*" comment
	stateBlockCommentStar // inside block comment, just after '*'
	stateBlockCommentEnd  // "*)" consumed

	stateString    // inside "..."
	stateStringEnd // closing quote consumed

	stateInteger   // digits
	stateNumberDot // digits followed by '.', needs a digit to continue
	stateFraction  // digits '.' digits

	stateIdentifier // letters, digits and underscores
)

var stateNames = [...]string{
	stateStart:            "Start",
	stateHash:             "Hash",
	stateMinus:            "Minus",
	stateCompare:          "Compare",
	stateOpenParen:        "OpenParen",
	stateOperator:         "Operator",
	statePunct:            "Punctuation",
	stateLineComment:      "InLineComment",
	stateBlockComment:     "InBlockComment",
	stateBlockCommentStar: "InBlockCommentStar",
	stateBlockCommentEnd:  "BlockCommentEnd",
	stateString:           "InString",
	stateStringEnd:        "StringEnd",
	stateInteger:          "InInteger",
	stateNumberDot:        "InNumberDot",
	stateFraction:         "InNumberFraction",
	stateIdentifier:       "InIdentifier",
}

func (s scanState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// accepts returns the token type recognized when the scan may stop in s.
func (s scanState) accepts() (TokenType, bool) {
	switch s {
	case stateMinus, stateCompare, stateOperator:
		return OPERATOR, true
	case stateOpenParen, statePunct:
		return PUNCTUATION, true
	case stateLineComment, stateBlockCommentEnd:
		return COMMENT, true
	case stateStringEnd:
		return STRING, true
	case stateInteger, stateFraction:
		return NUMBER, true
	case stateIdentifier:
		return IDENT, true
	default:
		return EOF, false
	}
}

// next returns the state reached from s on lookahead r. r is eof at the end
// of the input.
func (s scanState) next(r rune) (scanState, bool) {
	switch s {
	case stateStart:
		switch {
		case r == '"':
			return stateString, true
		case r == '#':
			return stateHash, true
		case r == '(':
			return stateOpenParen, true
		case r == '-':
			return stateMinus, true
		case r == '/' || r == '<' || r == '>':
			return stateCompare, true
		case isDigit(r):
			return stateInteger, true
		case isIdentStart(r):
			return stateIdentifier, true
		case isPunctuation(r):
			return statePunct, true
		case isOperator(r):
			return stateOperator, true
		}

	case stateHash:
		if r == '!' {
			return stateLineComment, true
		}

	case stateMinus:
		if r == '-' {
			return stateLineComment, true
		}

	case stateCompare:
		if r == '=' {
			return stateOperator, true
		}

	case stateOpenParen:
		if r == '*' {
			return stateBlockComment, true
		}

	case stateLineComment:
		if r != eof && r != '\n' {
			return stateLineComment, true
		}

	case stateBlockComment:
		switch {
		case r == '*':
			return stateBlockCommentStar, true
		case r != eof:
			return stateBlockComment, true
		}

	case stateBlockCommentStar:
		switch {
		case r == ')':
			return stateBlockCommentEnd, true
		case r == '*':
			return stateBlockCommentStar, true
		case r != eof:
			return stateBlockComment, true
		}

	case stateString:
		switch {
		case r == '"':
			return stateStringEnd, true
		case r != eof:
			return stateString, true
		}

	case stateInteger:
		switch {
		case isDigit(r):
			return stateInteger, true
		case r == '.':
			return stateNumberDot, true
		}

	case stateNumberDot, stateFraction:
		if isDigit(r) {
			return stateFraction, true
		}

	case stateIdentifier:
		if isIdentPart(r) {
			return stateIdentifier, true
		}
	}

	return s, false
}

// unterminated reports whether stopping in s means a delimited token ran
// into the end of the input. These states never fall back to an earlier
// accepted prefix.
func (s scanState) unterminated() (ErrorKind, bool) {
	switch s {
	case stateString:
		return UnterminatedString, true
	case stateBlockComment, stateBlockCommentStar:
		return UnterminatedComment, true
	default:
		return NoMatchingRule, false
	}
}
