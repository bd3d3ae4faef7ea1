// Package tty adapts output to whether it goes to a terminal: table
// layout for sorted refs and a spinner while refs are fetched.
package tty

import (
	"io"

	"golang.org/x/term"
)

// IsTerminalFunc is the function used to check if a file descriptor is a terminal.
// It can be overridden for testing.
var IsTerminalFunc = term.IsTerminal

type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w is a terminal. Writers without a file
// descriptor, such as buffers, never are.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return IsTerminalFunc(int(f.Fd()))
}
