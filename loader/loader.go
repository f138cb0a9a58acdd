// Package loader reads AppleScript sources from disk and tokenizes them.
//
// Paths may name files or directories. Directories are walked for files with
// a known script extension. Every distinct file is tokenized exactly once, in
// parallel, and the results come back sorted by filename.
//
// Example usage:
//
//	// Tokenize two scripts
//	ldr := loader.New()
//	result, err := ldr.Load(ctx, "main.applescript", "lib.applescript")
//
//	// Tokenize every script below a directory, four at a time
//	ldr := loader.New(loader.WithRecursive(), loader.WithConcurrency(4))
//	result, err := ldr.Load(ctx, "scripts")
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/robinvdvleuten/osalex/lexer"
	"github.com/robinvdvleuten/osalex/telemetry"
)

// DefaultExtensions are the file extensions picked up when walking a directory.
var DefaultExtensions = []string{".applescript", ".osa"}

// Loader reads and tokenizes script files.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithRecursive(), WithConcurrency(8))
type Loader struct {
	// Recursive allows directory arguments. Without it a directory is an error.
	Recursive bool

	// Concurrency bounds how many files are tokenized at once.
	Concurrency int

	// Extensions selects files when walking directories.
	Extensions []string
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithRecursive allows directories, which are walked for script files.
func WithRecursive() Option {
	return func(l *Loader) {
		l.Recursive = true
	}
}

// WithConcurrency limits the number of files tokenized in parallel.
// Values below one are ignored.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.Concurrency = n
		}
	}
}

// WithExtensions replaces the extensions used when walking directories.
func WithExtensions(exts ...string) Option {
	return func(l *Loader) {
		l.Extensions = exts
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		Concurrency: runtime.GOMAXPROCS(0),
		Extensions:  DefaultExtensions,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// File is the outcome of tokenizing one input.
// Err is the *lexer.LexError for a file that failed to tokenize; Sequence
// then holds the tokens before the failure.
type File struct {
	Filename string
	Source   []byte
	Sequence *lexer.Sequence
	Err      error
}

// Result holds every loaded file, sorted by filename.
type Result struct {
	Files []*File
}

// Errors returns the tokenization errors of all files, in file order.
func (r *Result) Errors() []error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Tokens returns the total number of tokens across all files, EOF excluded.
func (r *Result) Tokens() int {
	total := 0
	for _, f := range r.Files {
		if f.Sequence != nil {
			total += len(f.Sequence.Items())
		}
	}
	return total
}

// Load resolves paths to script files and tokenizes each of them.
//
// I/O failures abort the load and are returned as the error. Tokenization
// failures do not: they are recorded on the File so every input is checked.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Result, error) {
	timer := telemetry.StartTimer(ctx, "loader.load")
	defer timer.End()

	filenames, err := l.resolve(paths)
	if err != nil {
		return nil, err
	}

	files := make([]*File, len(filenames))
	for i, name := range filenames {
		files[i] = &File{Filename: name}
	}

	g, gctx := errgroup.WithContext(telemetry.WithTimer(ctx, timer))
	g.SetLimit(l.Concurrency)

	for _, f := range files {
		f := f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(f.Filename)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", f.Filename, err)
			}

			f.Source = data
			f.Sequence, f.Err = lexer.Tokenize(gctx, f.Filename, data)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	telemetry.FromContext(ctx).Count("loader.files", len(files))
	return &Result{Files: files}, nil
}

// LoadBytes tokenizes in-memory contents, such as stdin, as a single file.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seq, err := lexer.Tokenize(ctx, filename, data)
	return &Result{Files: []*File{{
		Filename: filename,
		Source:   data,
		Sequence: seq,
		Err:      err,
	}}}, nil
}

// resolve expands paths into a sorted, deduplicated list of absolute filenames.
func (l *Loader) resolve(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	add := func(path string) error {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path for %s: %w", path, err)
		}
		if !seen[absPath] {
			seen[absPath] = true
			out = append(out, absPath)
		}
		return nil
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := add(path); err != nil {
				return nil, err
			}
			continue
		}

		if !l.Recursive {
			return nil, fmt.Errorf("%s is a directory", path)
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !l.matches(p) {
				return nil
			}
			return add(p)
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(out)
	return out, nil
}

func (l *Loader) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(l.Extensions, ext)
}
