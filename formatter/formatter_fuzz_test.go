package formatter

import (
	"bytes"
	"context"
	"testing"

	"github.com/robinvdvleuten/osalex/lexer"
)

func FuzzFormatter(f *testing.F) {
	seeds := []string{
		"tell application \"Finder\"\n\tactivate\nend tell",
		"tell application \"Finder\" to activate",
		"if x ≥ 1 then\nbeep\nelse\nbeep 2\nend if",
		"try\n  error \"x\"\non error msg\n  log msg\nend try",
		"on run argv\n\treturn argv's item 1 -- first\nend run",
		"set s to \"multi\nline\" & (* note *) t",
		"#!/usr/bin/osascript\n\n\n\nbeep",
		"end end end",
		"",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Formatter panicked: %v\nInput: %q", r, data)
			}
		}()

		ctx := context.Background()

		seq1, err := lexer.Tokenize(ctx, "fuzz", data)
		if err != nil {
			return // Only complete sequences can be formatted
		}

		var buf bytes.Buffer
		fmtr := New()
		if err := fmtr.Format(ctx, seq1, &buf); err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		formatted := buf.Bytes()

		// Property 1: the token stream survives formatting
		seq2, err := lexer.Tokenize(ctx, "fuzz", formatted)
		if err != nil {
			t.Fatalf("Re-tokenizing failed: %v\nOriginal: %q\nFormatted: %q", err, data, formatted)
		}
		if len(seq1.Tokens) != len(seq2.Tokens) {
			t.Fatalf("Token count changed: %d != %d\nFormatted: %q", len(seq1.Tokens), len(seq2.Tokens), formatted)
		}
		for i := range seq1.Tokens {
			if seq1.Tokens[i].Type != seq2.Tokens[i].Type || seq1.Tokens[i].Text != seq2.Tokens[i].Text {
				t.Fatalf("Token %d changed: %s != %s", i, seq1.Tokens[i], seq2.Tokens[i])
			}
		}

		// Property 2: Format(Format(x)) == Format(x)
		var buf2 bytes.Buffer
		if err := fmtr.Format(ctx, seq2, &buf2); err != nil {
			t.Fatalf("Second format failed: %v", err)
		}
		if !bytes.Equal(formatted, buf2.Bytes()) {
			t.Errorf("Not idempotent:\nFirst:  %q\nSecond: %q", formatted, buf2.Bytes())
		}
	})
}
