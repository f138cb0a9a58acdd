package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/osalex/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	commands struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}
)

func main() {
	cli.Version = Version
	cli.CommitSHA = CommitSHA

	ctx := kong.Parse(&commands,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("osalex"),
		kong.Description("An AppleScript tokenizer, checker and formatter."),
		kong.UsageOnError(),
		kong.Bind(&commands.Globals),
	)

	result := cli.ResultOf(ctx.Run())
	if result.Err != nil {
		ctx.Errorf("%s", result.Err)
	}
	os.Exit(result.ExitCode)
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
