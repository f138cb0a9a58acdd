package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Lex       LexCmd       `cmd:"" help:"Show the lexical tokens of an AppleScript file."`
	Check     CheckCmd     `cmd:"" help:"Check that AppleScript files tokenize cleanly."`
	Highlight HighlightCmd `cmd:"" help:"Print an AppleScript file with syntax colouring."`
	Stats     StatsCmd     `cmd:"" help:"Show token statistics for AppleScript files."`
	Format    FormatCmd    `cmd:"" help:"Normalize spacing and indentation of an AppleScript file."`
	Web       WebCmd       `cmd:"" help:"Start a web server exposing the tokenizer API."`
}
