// Package telemetry provides hierarchical timing and counter collection for
// tokenization runs.
//
// Collectors travel through a context so that the lexer, the loader and the
// web server can be instrumented without changing their signatures. When no
// collector is attached, FromContext returns a no-op implementation.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := collector.Start("check scripts")
//	seq, err := lexer.Tokenize(ctx, "main.applescript", source)
//	timer.End()
//
//	collector.Report(os.Stderr)
package telemetry

import (
	"context"
	"io"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

type timerKey struct{}

var collectorKey = contextKey{}

// Collector gathers timings and counters.
type Collector interface {
	// Start begins timing an operation and returns a Timer.
	// The timer should be ended with End() when the operation completes.
	Start(name string) Timer

	// Count adds n to the named counter.
	Count(name string, n int)

	// Report writes the collected data to w.
	Report(w io.Writer)
}

// Timer tracks a single operation's timing.
// Timers support hierarchical nesting via Child().
type Timer interface {
	// End stops the timer and records the duration.
	End()

	// Child creates a nested timer under this timer.
	Child(name string) Timer
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from context.
// If no collector is present, returns a collector that does nothing.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// WithTimer records timer as the parent for timers started through
// StartTimer with the returned context.
func WithTimer(ctx context.Context, timer Timer) context.Context {
	return context.WithValue(ctx, timerKey{}, timer)
}

// StartTimer starts a timer nested under the context's parent timer, or a
// new top-level timer on the context's collector when there is none.
// Concurrent callers sharing a parent each get their own sibling.
func StartTimer(ctx context.Context, name string) Timer {
	if parent, ok := ctx.Value(timerKey{}).(Timer); ok {
		return parent.Child(name)
	}
	return FromContext(ctx).Start(name)
}
