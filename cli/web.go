package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/osalex/web"
)

type WebCmd struct {
	Paths   []string `help:"AppleScript files or directories to serve." arg:"" optional:""`
	Port    int      `help:"Port to listen on." default:"8080"`
	Host    string   `help:"Address to bind to." default:"127.0.0.1"`
	NoWatch bool     `help:"Do not re-tokenize files when they change."`
}

func (cmd *WebCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, report := startTelemetry(globals, ctx.Stderr, "web")
	defer report()

	paths := make([]string, 0, len(cmd.Paths))
	for _, p := range cmd.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("failed to access %s: %w", abs, err)
		}
		paths = append(paths, abs)
	}

	version := Version
	if version == "" {
		version = "dev"
	}
	commitSHA := CommitSHA
	if commitSHA == "" {
		commitSHA = "local"
	}

	server := web.NewWithVersion(cmd.Port, version, commitSHA, paths...)
	server.Host = cmd.Host
	server.WatchEnabled = !cmd.NoWatch

	printInfof(ctx.Stdout, "Starting server on %s:%d", server.Host, cmd.Port)
	for _, p := range paths {
		printInfof(ctx.Stdout, "Serving: %s", pathStyle.Render(p))
	}
	if server.WatchEnabled && len(paths) > 0 {
		printInfof(ctx.Stdout, "Watching for changes")
	}

	return server.Start(runCtx)
}
