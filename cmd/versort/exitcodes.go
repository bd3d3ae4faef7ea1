package main

import "os"

// Exit codes for different error types.
// These enable scripts to distinguish between failure modes.
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0

	// ExitGeneral indicates a general error
	ExitGeneral = 1

	// ExitUsage indicates invalid arguments or usage error
	ExitUsage = 2

	// ExitConfig indicates an invalid configuration file or sorting options
	ExitConfig = 3

	// ExitNoStable indicates no ref qualifies as the stable version
	ExitNoStable = 4

	// ExitNetwork indicates a network or GitHub API error
	ExitNetwork = 5
)

// exitWithCode exits with the specified exit code
var exitWithCode = func(code int) {
	os.Exit(code)
}
