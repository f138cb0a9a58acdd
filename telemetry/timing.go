package telemetry

import (
	"io"
	"sync"
	"time"

	"github.com/robinvdvleuten/osalex/output"
)

// TimingCollector collects a tree of timers plus flat counters.
// It is safe for concurrent use, so parallel tokenizations may share one.
type TimingCollector struct {
	mu       sync.Mutex
	root     *timerNode
	current  *timerNode
	counters map[string]int
	order    []string // Counter names in first-seen order
	styles   *output.Styles
}

// timerNode represents a single timed operation in the tree.
type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	children []*timerNode
	parent   *timerNode
}

// NewTimingCollector creates a new timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{
		counters: make(map[string]int),
	}
}

// WithStyles makes Report render with terminal styling.
func (c *TimingCollector) WithStyles(styles *output.Styles) *TimingCollector {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.styles = styles
	return c
}

// Start begins timing an operation. The first timer becomes the root; later
// ones nest under the most recently started timer that is still running.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{
		name:  name,
		start: time.Now(),
	}

	if c.root == nil {
		c.root = node
	} else {
		node.parent = c.current
		c.current.children = append(c.current.children, node)
	}
	c.current = node

	return &timingTimer{
		collector: c,
		node:      node,
	}
}

// Count adds n to the named counter.
func (c *TimingCollector) Count(name string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.counters[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counters[name] += n
}

// Counter returns the current value of a counter.
func (c *TimingCollector) Counter(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[name]
}

// Report outputs the timing tree followed by the counters.
func (c *TimingCollector) Report(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil && len(c.order) == 0 {
		return
	}

	if c.root != nil {
		formatTimingTree(w, c.root, c.styles)
	}
	formatCounters(w, c.order, c.counters, c.styles)
}

// timingTimer is a Timer implementation that records to a TimingCollector.
type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

// End stops the timer.
func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.node.end = time.Now()

	if t.collector.current == t.node && t.node.parent != nil {
		t.collector.current = t.node.parent
	}
}

// Child creates a timer nested under this one.
func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	node := &timerNode{
		name:   name,
		start:  time.Now(),
		parent: t.node,
	}

	t.node.children = append(t.node.children, node)

	return &timingTimer{
		collector: t.collector,
		node:      node,
	}
}
