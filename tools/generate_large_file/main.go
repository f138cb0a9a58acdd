// Large AppleScript File Generator
//
// This tool generates a large AppleScript file for performance testing and profiling.
// It emits handlers, tell blocks, loops and comments to stress-test the lexer and formatter.
//
// Usage:
//
//	go run main.go > large.applescript
//	go run main.go 20000000 > large.applescript  # Specify target size in bytes
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	applications = []string{
		"Finder", "Mail", "Safari", "Music", "Calendar",
		"System Events", "Terminal", "Notes", "Preview",
	}

	verbs = []string{
		"activate", "quit", "open", "close", "reveal",
		"select", "display dialog", "beep", "delay",
	}

	identifiers = []string{
		"counter", "total", "itemList", "fileName", "theResult",
		"userName", "windowCount", "_index", "maxSize", "response",
	}

	phrases = []string{
		"Hello", "Processing files", "Done", "Ready to go",
		"Could not find the folder", "Überprüfung", "√ ok", "",
	}

	operators = []string{"+", "-", "*", "/", "^", "&", "=", "≠", "≤", "≥", "<=", ">=", "/=", "<", ">"}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	header := generateHeader()
	fmt.Print(header)
	bytesWritten := len(header)
	handlerCount := 0

	for bytesWritten < targetSize {
		var output string
		switch rand.Intn(10) {
		case 0, 1, 2: // 30% - Handler with a loop
			output = generateHandler(handlerCount)
			handlerCount++
		case 3, 4: // 20% - Tell block
			output = generateTellBlock()
		case 5, 6: // 20% - Assignments
			output = generateAssignments()
		case 7: // 10% - Conditional
			output = generateConditional()
		case 8: // 10% - Try block
			output = generateTryBlock()
		case 9: // 10% - Block comment
			output = generateBlockComment()
		}
		fmt.Print(output)
		bytesWritten += len(output)
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d handlers\n", bytesWritten, handlerCount)
}

func generateHeader() string {
	var b strings.Builder
	b.WriteString("#!/usr/bin/osascript\n")
	b.WriteString("-- Large AppleScript File for Performance Testing\n")
	fmt.Fprintf(&b, "-- Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("use scripting additions\n")
	b.WriteString("property version : \"1.0\"\n\n")
	return b.String()
}

func generateHandler(n int) string {
	ident := randIdent()
	return fmt.Sprintf(`on handler%d(%s)
	set total to 0
	repeat with i from 1 to %d
		set total to total %s i * %s -- accumulate
	end repeat
	return total
end handler%d

`, n, ident, rand.Intn(100)+1, randOperator(), randNumber(), n)
}

func generateTellBlock() string {
	app := applications[rand.Intn(len(applications))]
	if rand.Intn(2) == 0 {
		return fmt.Sprintf("tell application %q to %s\n\n", app, randVerb())
	}
	return fmt.Sprintf(`tell application %q
	%s
	set %s to {%s, %s, %q}
end tell

`, app, randVerb(), randIdent(), randNumber(), randNumber(), randPhrase())
}

func generateAssignments() string {
	var b strings.Builder
	for i := rand.Intn(5) + 1; i > 0; i-- {
		fmt.Fprintf(&b, "set %s to %s %s %s\n", randIdent(), randIdent(), randOperator(), randNumber())
	}
	fmt.Fprintf(&b, "set %s to %q & %s's item 1\n\n", randIdent(), randPhrase(), randIdent())
	return b.String()
}

func generateConditional() string {
	return fmt.Sprintf(`if %s %s %s and not %s then
	display dialog %q
else
	set %s to missing value
end if

`, randIdent(), randOperator(), randNumber(), randIdent(), randPhrase(), randIdent())
}

func generateTryBlock() string {
	return fmt.Sprintf(`try
	set %s to %s div %s
on error errMsg
	log errMsg
end try

`, randIdent(), randNumber(), randNumber())
}

func generateBlockComment() string {
	return fmt.Sprintf("(* %s\n   %s *)\n\n", randPhrase(), randPhrase())
}

// Helper functions

func randIdent() string {
	return identifiers[rand.Intn(len(identifiers))]
}

func randVerb() string {
	return verbs[rand.Intn(len(verbs))]
}

func randPhrase() string {
	return phrases[rand.Intn(len(phrases))]
}

func randOperator() string {
	return operators[rand.Intn(len(operators))]
}

func randNumber() string {
	if rand.Intn(3) == 0 {
		return fmt.Sprintf("%.2f", rand.Float64()*1000)
	}
	return strconv.Itoa(rand.Intn(1000))
}
