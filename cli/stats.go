package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/osalex/lexer"
	"github.com/robinvdvleuten/osalex/loader"
)

type StatsCmd struct {
	Paths []string `help:"AppleScript files or directories (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Top   int      `help:"Number of most frequent identifiers to list." default:"5"`
	JSON  bool     `help:"Emit statistics as JSON." name:"json"`
}

// Stats summarizes the token streams of a set of files.
type Stats struct {
	Files       int             `json:"files"`
	Failed      int             `json:"failed"`
	Tokens      int             `json:"tokens"`
	Counts      map[string]int  `json:"counts"`
	NumberTotal decimal.Decimal `json:"numberTotal"`
	Identifiers []NameCount     `json:"identifiers"`
}

// NameCount is a lexeme and how often it occurs.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (cmd *StatsCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, report := startTelemetry(globals, ctx.Stderr, "stats "+strings.Join(cmd.Paths, " "))
	defer report()

	result, err := loadPaths(runCtx, cmd.Paths)
	if err != nil {
		return err
	}

	stats, err := computeStats(result, cmd.Top)
	if err != nil {
		return err
	}

	if cmd.JSON {
		enc := json.NewEncoder(ctx.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	writeStats(ctx.Stdout, stats)
	return nil
}

// computeStats counts tokens per type over every file, including the
// tokens scanned before a failure. Identifiers are compared exactly;
// keywords are not listed.
func computeStats(result *loader.Result, top int) (Stats, error) {
	stats := Stats{
		Files:       len(result.Files),
		Counts:      make(map[string]int),
		NumberTotal: decimal.Zero,
	}

	idents := make(map[string]int)
	for _, f := range result.Files {
		if f.Err != nil {
			stats.Failed++
		}
		if f.Sequence == nil {
			continue
		}

		items := f.Sequence.Items()
		stats.Tokens += len(items)
		for typ, n := range f.Sequence.Counts() {
			stats.Counts[typ.String()] += n
		}
		for _, tok := range f.Sequence.Filter(lexer.IDENT) {
			idents[tok.Text]++
		}

		sum, err := lexer.SumNumbers(items)
		if err != nil {
			return Stats{}, fmt.Errorf("%s: %w", f.Filename, err)
		}
		stats.NumberTotal = stats.NumberTotal.Add(sum)
	}

	stats.Identifiers = make([]NameCount, 0, len(idents))
	for name, n := range idents {
		stats.Identifiers = append(stats.Identifiers, NameCount{Name: name, Count: n})
	}
	slices.SortFunc(stats.Identifiers, func(a, b NameCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Name, b.Name)
	})
	if top >= 0 && len(stats.Identifiers) > top {
		stats.Identifiers = stats.Identifiers[:top]
	}

	return stats, nil
}

func writeStats(w io.Writer, stats Stats) {
	const labelWidth = 14

	row := func(label string, value any) {
		_, _ = fmt.Fprintf(w, "%s %v\n", runewidth.FillRight(label, labelWidth), value)
	}

	row("files", stats.Files)
	if stats.Failed > 0 {
		row("failed", stats.Failed)
	}
	row("tokens", stats.Tokens)

	for _, typ := range lexer.TokenTypes() {
		if typ == lexer.EOF {
			continue
		}
		row("  "+typ.String(), stats.Counts[typ.String()])
	}

	row("number total", stats.NumberTotal.String())

	if len(stats.Identifiers) > 0 {
		_, _ = fmt.Fprintln(w, "top identifiers")
		for _, nc := range stats.Identifiers {
			row("  "+nc.Name, nc.Count)
		}
	}
}
