package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/osalex/output"
)

// slowThreshold marks operations that get highlighted in styled reports.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree outputs the timing tree in a hierarchical format:
//
//	check 3 files: 12ms
//	├─ lexer.tokenize a.applescript: 4ms
//	└─ lexer.tokenize b.applescript: 7ms
func formatTimingTree(w io.Writer, root *timerNode, styles *output.Styles) {
	timing := formatDuration(root.end.Sub(root.start))
	if styles != nil {
		_, _ = fmt.Fprintf(w, "%s: %s\n", styles.Keyword(root.name), timing)
	} else {
		_, _ = fmt.Fprintf(w, "%s: %s\n", root.name, timing)
	}

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles)
	}
}

// formatNode recursively formats a node and its children.
func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles) {
	duration := node.end.Sub(node.start)

	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	if styles != nil {
		timing := styles.Timing(formatDuration(duration), duration >= slowThreshold)
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", styles.Dim(prefix+branch), node.name, timing)
	} else {
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, node.name, formatDuration(duration))
	}

	for i, child := range node.children {
		formatNode(w, child, prefix+extension, i == len(node.children)-1, styles)
	}
}

// formatCounters writes one "name: value" line per counter.
func formatCounters(w io.Writer, names []string, counters map[string]int, styles *output.Styles) {
	for _, name := range names {
		if styles != nil {
			_, _ = fmt.Fprintf(w, "%s: %d\n", styles.Dim(name), counters[name])
		} else {
			_, _ = fmt.Fprintf(w, "%s: %d\n", name, counters[name])
		}
	}
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		ms := float64(d) / float64(time.Millisecond)
		return fmt.Sprintf("%.0fms", ms)
	}
	s := float64(d) / float64(time.Second)
	return fmt.Sprintf("%.2fs", s)
}
