package ui

import (
	"os"

	"golang.org/x/term"
)

const (
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// HighlightID emphasizes a task ID for terminal display.
func HighlightID(id string) string {
	if id == "" || !ANSIEnabled() {
		return id
	}
	return ansiBold + ansiCyan + id + ansiReset
}

// ANSIEnabled reports whether styled output should be emitted.
func ANSIEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
