package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNewStyles(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	assert.NotZero(t, styles)
	assert.NotZero(t, styles.Output())
}

func TestStylesKeepText(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	tests := []struct {
		name  string
		style func(string) string
		text  string
	}{
		{"Success", styles.Success, "Check passed"},
		{"Error", styles.Error, "unterminated string"},
		{"FilePath", styles.FilePath, "/scripts/main.applescript"},
		{"Keyword", styles.Keyword, "tell"},
		{"Comment", styles.Comment, "-- note"},
		{"Literal", styles.Literal, `"Finder"`},
		{"Number", styles.Number, "12.5"},
		{"Operator", styles.Operator, "≠"},
		{"Dim", styles.Dim, "dimmed text"},
		{"Warning", styles.Warning, "slow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.style(tt.text)
			assert.True(t, strings.Contains(result, tt.text), "styled output should contain %q, got %q", tt.text, result)
		})
	}
}

func TestStylesTiming(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	t.Run("FastOperation", func(t *testing.T) {
		assert.True(t, strings.Contains(styles.Timing("5ms", false), "5ms"))
	})

	t.Run("SlowOperation", func(t *testing.T) {
		assert.True(t, strings.Contains(styles.Timing("500ms", true), "500ms"))
	})
}

func TestPlainStyles(t *testing.T) {
	var buf bytes.Buffer
	styles := Plain(&buf)

	assert.True(t, strings.Contains(styles.Number("42"), "42"))
	assert.True(t, strings.Contains(styles.Comment("(* c *)"), "(* c *)"))
}

func TestColoredStyles(t *testing.T) {
	var buf bytes.Buffer
	styles := Colored(&buf)

	styled := styles.Number("42")
	assert.True(t, strings.Contains(styled, "42"))
	assert.True(t, strings.Contains(styled, "\x1b["), "expected an escape sequence in %q", styled)
}
