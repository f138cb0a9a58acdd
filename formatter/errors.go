package formatter

import "errors"

// ErrIncomplete is returned when formatting a sequence that did not reach EOF.
var ErrIncomplete = errors.New("cannot format an incomplete token sequence")
