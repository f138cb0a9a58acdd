package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/osalex/lexer"
	"github.com/robinvdvleuten/osalex/loader"
)

// LexCmd shows the lexical tokens of a script.
type LexCmd struct {
	File FileOrStdin `help:"AppleScript input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Repr bool        `help:"Dump tokens as Go values instead of a table."`
	EOF  bool        `help:"Include the end-of-input token." name:"eof"`
}

// Run executes the lex command.
func (cmd *LexCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, report := startTelemetry(globals, ctx.Stderr, "lex "+cmd.File.Filename)
	defer report()

	file, err := cmd.File.Load(runCtx, loader.New())
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	tokens := file.Sequence.Tokens
	if !cmd.EOF {
		tokens = file.Sequence.Items()
	}

	if cmd.Repr {
		repr.New(ctx.Stdout, repr.Indent("  ")).Println(tokens)
	} else {
		writeTokenTable(ctx, tokens)
	}

	if file.Err != nil {
		report()
		_, _ = fmt.Fprintln(ctx.Stderr)
		_, _ = fmt.Fprint(ctx.Stderr, NewErrorRenderer(file.Source).Render(file.Err))
		return NewCommandError(1)
	}

	return nil
}

// writeTokenTable prints one token per line: TYPE line:col "text".
func writeTokenTable(ctx *kong.Context, tokens []lexer.Token) {
	for _, tok := range tokens {
		pos := fmt.Sprintf("%d:%d", tok.Line, tok.Column)
		_, _ = fmt.Fprintf(ctx.Stdout, "%s %s %q\n",
			runewidth.FillRight(tok.Type.String(), 12),
			runewidth.FillRight(pos, 8),
			tok.Text)
	}
}
