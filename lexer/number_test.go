package lexer

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestNumberValue(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"0", "0"},
		{"12.5", "12.5"},
		{"007", "7"},
		{"0.50", "0.5"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, err := NumberValue(Token{Type: NUMBER, Text: tt.text})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestNumberValueRejectsOtherTokens(t *testing.T) {
	_, err := NumberValue(Token{Type: IDENT, Text: "x"})
	assert.EqualError(t, err, `identifier token "x" is not a number`)
}

func TestSumNumbers(t *testing.T) {
	tokens, err := scanAll(t, "set x to 0.1 + 0.2 + y * 3")
	assert.NoError(t, err)

	sum, err := SumNumbers(tokens)
	assert.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("3.3")), "got %s", sum)
}
