// Package errmsg provides enhanced error message formatting with actionable suggestions.
package errmsg

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/tsukumogami/versort/internal/remote"
	"github.com/tsukumogami/versort/internal/version"
)

// ErrorContext provides additional context for error formatting
type ErrorContext struct {
	Repo       string // The owner/repo being listed (for suggestions)
	ConfigFile string // Path of the config file in use
}

// Format returns a formatted error message with possible causes and suggestions.
// The context parameter is optional - pass nil for generic formatting.
func Format(err error, ctx *ErrorContext) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()

	var parseErr *version.ParseError
	if errors.As(err, &parseErr) {
		return formatParseError(errMsg, parseErr, ctx)
	}

	var rateLimitErr *remote.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return formatRemoteRateLimitError(rateLimitErr)
	}

	var notFoundErr *remote.RepoNotFoundError
	if errors.As(err, &notFoundErr) {
		return formatRepoNotFoundError(notFoundErr)
	}

	// Check for rate limit errors (string matching for unstructured errors)
	if isRateLimitError(errMsg) {
		return formatRateLimitError(errMsg)
	}

	// Check for network errors
	var netErr net.Error
	if errors.As(err, &netErr) {
		return formatNetworkError(netErr)
	}

	// Check for connection-related errors by message
	if isNetworkError(errMsg) {
		return formatGenericNetworkError(errMsg)
	}

	// Check for "not found" errors
	if isNotFoundError(errMsg) {
		return formatNotFoundError(errMsg, ctx)
	}

	// Check for permission errors
	if isPermissionError(errMsg) {
		return formatPermissionError(errMsg)
	}

	// Return original error for unrecognized types
	return errMsg
}

// Fprint writes the formatted error to w, prefixed with "Error: ".
func Fprint(w io.Writer, err error, ctx *ErrorContext) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "Error: %s\n", strings.TrimRight(Format(err, ctx), "\n"))
}

func formatParseError(errMsg string, err *version.ParseError, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	switch err.Type {
	case version.ErrTypeInvalidPattern:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - Unbalanced [ ] around an optional segment\n")
		sb.WriteString("  - A field such as MAJOR or YYYY used twice\n")
		sb.WriteString("  - A trailing backslash\n")

		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - " + err.Suggestion() + "\n")
		if ctx != nil && ctx.ConfigFile != "" {
			sb.WriteString(fmt.Sprintf("  - Fix custom_pattern in %s\n", ctx.ConfigFile))
		} else {
			sb.WriteString("  - Run 'versort config set custom_pattern <pattern>'\n")
		}

	default:
		if s := err.Suggestion(); s != "" {
			sb.WriteString("\nSuggestions:\n")
			sb.WriteString("  - " + s + "\n")
		}
	}

	return sb.String()
}

func formatRemoteRateLimitError(err *remote.RateLimitError) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - Too many requests to the GitHub API\n")
	if !err.Authenticated {
		sb.WriteString("  - Unauthenticated requests have lower limits\n")
	}

	sb.WriteString("\nSuggestions:\n")
	for _, line := range strings.Split(err.Suggestion(), "\n") {
		sb.WriteString("  - " + line + "\n")
	}
	sb.WriteString("  - Save the refs to a file and run 'versort sort <file>' offline\n")

	return sb.String()
}

func formatRepoNotFoundError(err *remote.RepoNotFoundError) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - Typo in the owner or repository name\n")
	sb.WriteString("  - The repository is private\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - " + err.Suggestion() + "\n")

	return sb.String()
}

func formatRateLimitError(errMsg string) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - Too many requests to the API\n")
	sb.WriteString("  - Unauthenticated requests have lower limits\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Set GITHUB_TOKEN environment variable to increase rate limit\n")
	sb.WriteString("  - Wait a few minutes before retrying\n")

	return sb.String()
}

func formatNetworkError(err net.Error) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	if err.Timeout() {
		sb.WriteString("  - Request timed out\n")
		sb.WriteString("  - Slow or unstable network connection\n")
	} else {
		sb.WriteString("  - Network connectivity issue\n")
		sb.WriteString("  - DNS resolution failure\n")
	}
	sb.WriteString("  - Firewall or proxy blocking the connection\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Check your internet connection\n")
	sb.WriteString("  - Try again in a few minutes\n")
	if err.Timeout() {
		sb.WriteString("  - Raise VERSORT_API_TIMEOUT (e.g. 2m)\n")
	}

	return sb.String()
}

func formatGenericNetworkError(errMsg string) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - Network connectivity issue\n")
	sb.WriteString("  - DNS resolution failure\n")
	sb.WriteString("  - Service temporarily unavailable\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Check your internet connection\n")
	sb.WriteString("  - Try again in a few minutes\n")

	return sb.String()
}

func formatNotFoundError(errMsg string, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - The input file does not exist\n")
	sb.WriteString("  - Typo in the path or repository name\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Check the spelling of the argument\n")
	if ctx != nil && ctx.Repo != "" {
		sb.WriteString(fmt.Sprintf("  - Open https://github.com/%s to confirm the repository exists\n", ctx.Repo))
	} else {
		sb.WriteString("  - Pass '-' to read refs from standard input\n")
	}

	return sb.String()
}

func formatPermissionError(errMsg string) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - Insufficient permissions on $VERSORT_HOME directory\n")
	sb.WriteString("  - File or directory owned by different user\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Check permissions on ~/.versort directory\n")
	sb.WriteString("  - Set VERSORT_HOME to a writable directory\n")

	return sb.String()
}

// isRateLimitError checks if the error message indicates a rate limit
func isRateLimitError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "rate-limit") ||
		strings.Contains(lower, "too many requests")
}

// isNetworkError checks if the error message indicates a network issue
func isNetworkError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "connection reset") ||
		strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "network is unreachable") ||
		strings.Contains(lower, "dial tcp") ||
		strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "i/o timeout")
}

// isNotFoundError checks if the error message indicates something not found
func isNotFoundError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "not found") ||
		strings.Contains(lower, "404") ||
		strings.Contains(lower, "does not exist") ||
		strings.Contains(lower, "no such file")
}

// isPermissionError checks if the error message indicates a permission issue
func isPermissionError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "permission denied") ||
		strings.Contains(lower, "access denied") ||
		strings.Contains(lower, "operation not permitted")
}
