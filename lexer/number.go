package lexer

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NumberValue returns the exact value of a NUMBER token.
func NumberValue(tok Token) (decimal.Decimal, error) {
	if tok.Type != NUMBER {
		return decimal.Zero, fmt.Errorf("%s token %q is not a number", tok.Type, tok.Text)
	}
	return decimal.NewFromString(tok.Text)
}

// SumNumbers adds up every NUMBER token in tokens.
func SumNumbers(tokens []Token) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, tok := range tokens {
		if tok.Type != NUMBER {
			continue
		}
		v, err := NumberValue(tok)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(v)
	}
	return sum, nil
}
