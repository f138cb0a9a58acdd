package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/osalex/formatter"
	"github.com/robinvdvleuten/osalex/loader"
)

type FormatCmd struct {
	File          FileOrStdin `help:"AppleScript input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Indent        int         `help:"Spaces per indentation level (tab if 0)." default:"0"`
	MaxBlankLines int         `help:"Maximum consecutive blank lines to keep (unlimited if negative)." default:"1"`
	NoReindent    bool        `help:"Keep lines flush left instead of indenting blocks."`
	Write         bool        `help:"Write the result back to the file instead of stdout." short:"w"`
	Yes           bool        `help:"Overwrite without asking for confirmation." short:"y"`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	if cmd.Write && cmd.File.IsStdin() {
		return fmt.Errorf("--write needs a file argument")
	}

	runCtx, report := startTelemetry(globals, ctx.Stderr, "format "+cmd.File.Filename)
	defer report()

	file, err := cmd.File.Load(runCtx, loader.New())
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if file.Err != nil {
		_, _ = fmt.Fprint(ctx.Stderr, NewErrorRenderer(file.Source).Render(file.Err))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "tokenize error")
		return NewCommandError(1)
	}

	f := formatter.New(
		formatter.WithIndentation(cmd.Indent),
		formatter.WithMaxBlankLines(cmd.MaxBlankLines),
		formatter.WithReindent(!cmd.NoReindent),
	)

	var buf bytes.Buffer
	if err := f.Format(runCtx, file.Sequence, &buf); err != nil {
		return err
	}

	if !cmd.Write {
		_, err := ctx.Stdout.Write(buf.Bytes())
		return err
	}

	if bytes.Equal(buf.Bytes(), file.Source) {
		printInfof(ctx.Stdout, "%s is already formatted", pathStyle.Render(file.Filename))
		return nil
	}

	if !cmd.Yes {
		confirmed, err := promptYesNo(fmt.Sprintf("Overwrite %s?", file.Filename))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			return fmt.Errorf("not overwriting %s (use --yes to skip confirmation)", file.Filename)
		}
	}

	info, err := os.Stat(file.Filename)
	if err != nil {
		return err
	}
	if err := os.WriteFile(file.Filename, buf.Bytes(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", file.Filename, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Formatted %s", pathStyle.Render(file.Filename)))
	return nil
}
