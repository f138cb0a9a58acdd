package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
)

type CheckCmd struct {
	Paths []string `help:"AppleScript files or directories (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, report := startTelemetry(globals, ctx.Stderr, "check "+strings.Join(cmd.Paths, " "))
	defer report()

	result, err := loadPaths(runCtx, cmd.Paths)
	if err != nil {
		return err
	}

	failed := 0
	for _, f := range result.Files {
		if f.Err == nil {
			continue
		}
		if failed > 0 {
			_, _ = fmt.Fprintln(ctx.Stderr)
		}
		failed++
		_, _ = fmt.Fprint(ctx.Stderr, NewErrorRenderer(f.Source).Render(f.Err))
	}

	if failed > 0 {
		report()
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d of %d file(s) failed to tokenize", failed, len(result.Files)))
		return NewCommandError(1)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed (%d file(s), %d tokens)", len(result.Files), result.Tokens()))

	return nil
}
