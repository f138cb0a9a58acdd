package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/osalex/lexer"
	"github.com/robinvdvleuten/osalex/loader"
	"github.com/robinvdvleuten/osalex/output"
)

type HighlightCmd struct {
	File  FileOrStdin `help:"AppleScript input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Color string      `help:"When to colour output: auto, always or never." enum:"auto,always,never" default:"auto"`
}

func (cmd *HighlightCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, report := startTelemetry(globals, ctx.Stderr, "highlight "+cmd.File.Filename)
	defer report()

	file, err := cmd.File.Load(runCtx, loader.New())
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var styles *output.Styles
	switch cmd.Color {
	case "always":
		styles = output.Colored(ctx.Stdout)
	case "never":
		styles = output.Plain(ctx.Stdout)
	default:
		styles = output.NewStyles(ctx.Stdout)
	}

	if err := highlight(ctx.Stdout, styles, file.Sequence); err != nil {
		return err
	}

	if file.Err != nil {
		// Print the unscanned remainder as-is so the output stays complete.
		rest := file.Source[len(file.Sequence.Reconstruct()):]
		_, _ = ctx.Stdout.Write(rest)

		report()
		_, _ = fmt.Fprintln(ctx.Stderr)
		_, _ = fmt.Fprint(ctx.Stderr, NewErrorRenderer(file.Source).Render(file.Err))
		return NewCommandError(1)
	}

	return nil
}

// highlight writes the source of seq with every token styled by its type.
// Whitespace between tokens is copied unchanged.
func highlight(w io.Writer, styles *output.Styles, seq *lexer.Sequence) error {
	ti := 0
	for _, tok := range seq.Tokens {
		for ti < len(seq.Trivia) && seq.Trivia[ti].Start < tok.Start {
			if _, err := io.WriteString(w, seq.Trivia[ti].Text(seq.Source)); err != nil {
				return err
			}
			ti++
		}
		if _, err := io.WriteString(w, styleFor(styles, tok.Type)(tok.Text)); err != nil {
			return err
		}
	}
	for ; ti < len(seq.Trivia); ti++ {
		if _, err := io.WriteString(w, seq.Trivia[ti].Text(seq.Source)); err != nil {
			return err
		}
	}
	return nil
}

func styleFor(styles *output.Styles, typ lexer.TokenType) func(string) string {
	switch typ {
	case lexer.COMMENT:
		return styles.Comment
	case lexer.STRING:
		return styles.Literal
	case lexer.NUMBER:
		return styles.Number
	case lexer.KEYWORD:
		return styles.Keyword
	case lexer.OPERATOR:
		return styles.Operator
	default:
		return plain
	}
}

func plain(text string) string { return text }
