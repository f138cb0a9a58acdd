// Package cli implements the osalex command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/robinvdvleuten/osalex/loader"
	"github.com/robinvdvleuten/osalex/output"
	"github.com/robinvdvleuten/osalex/telemetry"
)

const stdinName = "<stdin>"

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D7D7", Dark: "#00D7D7"})
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

// promptYesNo prompts the user with a yes/no question.
// Returns false by default if stdin is not a terminal.
func promptYesNo(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var confirm bool

	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	return confirm, nil
}

// isTerminal is a variable so tests can pretend to be interactive.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// startTelemetry installs a timing collector when --telemetry is set. The
// returned function ends the root timer and writes the report to w; it is
// safe to call more than once.
func startTelemetry(globals *Globals, w io.Writer, name string) (context.Context, func()) {
	ctx := context.Background()
	if globals == nil || !globals.Telemetry {
		return ctx, func() {}
	}

	collector := telemetry.NewTimingCollector().WithStyles(output.NewStyles(w))
	ctx = telemetry.WithCollector(ctx, collector)

	timer := collector.Start(name)
	ctx = telemetry.WithTimer(ctx, timer)

	reported := false
	return ctx, func() {
		if reported {
			return
		}
		reported = true
		timer.End()
		_, _ = fmt.Fprintln(w)
		collector.Report(w)
	}
}

// FileOrStdin accepts either a file path or "-" for stdin.
// For stdin: Filename="<stdin>", Contents populated.
// For files: Filename set, Contents nil (read by loader).
type FileOrStdin struct {
	Filename string
	Contents []byte
}

// Decode implements kong.MapperValue.
func (f *FileOrStdin) Decode(ctx *kong.DecodeContext) error {
	var filename string
	if err := ctx.Scan.PopValueInto("filename", &filename); err != nil {
		return err
	}

	if filename == "-" || filename == "" {
		contents, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
		f.Filename = stdinName
		f.Contents = contents
		return nil
	}

	if _, err := os.Stat(filename); err != nil {
		return err
	}
	f.Filename = filename
	f.Contents = nil

	return nil
}

// EnsureContents populates Contents from stdin if Filename is empty.
func (f *FileOrStdin) EnsureContents() error {
	if f.Filename == "" {
		contents, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
		f.Filename = stdinName
		f.Contents = contents
	}
	return nil
}

// IsStdin reports whether the input came from stdin.
func (f *FileOrStdin) IsStdin() bool {
	return f.Filename == stdinName
}

// GetSourceContent returns the raw source, reading the file if needed.
func (f *FileOrStdin) GetSourceContent() ([]byte, error) {
	if f.IsStdin() {
		return f.Contents, nil
	}
	return os.ReadFile(f.Filename)
}

// GetAbsoluteFilename returns the absolute path, or "<stdin>" for stdin.
func (f *FileOrStdin) GetAbsoluteFilename() string {
	if f.IsStdin() {
		return f.Filename
	}
	absPath, err := filepath.Abs(f.Filename)
	if err != nil {
		return f.Filename
	}
	return absPath
}

// Load tokenizes the input using LoadBytes for stdin or Load for files.
// The result always holds exactly one file.
func (f *FileOrStdin) Load(ctx context.Context, ldr *loader.Loader) (*loader.File, error) {
	var (
		result *loader.Result
		err    error
	)

	if f.IsStdin() {
		result, err = ldr.LoadBytes(ctx, f.Filename, f.Contents)
	} else {
		result, err = ldr.Load(ctx, f.GetAbsoluteFilename())
	}
	if err != nil {
		return nil, err
	}

	return result.Files[0], nil
}

// loadPaths tokenizes every path, reading stdin when paths is empty or "-".
func loadPaths(ctx context.Context, paths []string) (*loader.Result, error) {
	ldr := loader.New(loader.WithRecursive())

	if len(paths) == 0 || (len(paths) == 1 && paths[0] == "-") {
		contents, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		return ldr.LoadBytes(ctx, stdinName, contents)
	}

	return ldr.Load(ctx, paths...)
}
