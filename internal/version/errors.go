package version

import (
	"errors"
	"fmt"
)

// ErrorType classifies parse failures.
type ErrorType int

const (
	// ErrTypeInvalidVersion indicates the string is not a version in the strategy's grammar
	ErrTypeInvalidVersion ErrorType = iota
	// ErrTypePatternMismatch indicates the string does not match a custom pattern
	ErrTypePatternMismatch
	// ErrTypeInvalidDate indicates the string matches a pattern but names an impossible date
	ErrTypeInvalidDate
	// ErrTypeInvalidPattern indicates the custom pattern itself is malformed
	ErrTypeInvalidPattern
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeInvalidVersion:
		return "invalid version"
	case ErrTypePatternMismatch:
		return "pattern mismatch"
	case ErrTypeInvalidDate:
		return "invalid date"
	case ErrTypeInvalidPattern:
		return "invalid pattern"
	default:
		return "unknown"
	}
}

// ParseError is the only failure kind of the sorting strategies. Sort entry
// points turn it into a placement decision; it reaches callers only from
// CompilePattern, ParseStrategy and Options.Validate.
type ParseError struct {
	Type     ErrorType
	Strategy Strategy // Strategy whose grammar rejected the input
	Input    string   // Rejected version string or pattern
	Message  string   // Human-readable reason
	Err      error    // Underlying error (if any)
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %q: %s: %v", e.Strategy, e.Type, e.Input, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s %q: %s", e.Strategy, e.Type, e.Input, e.Message)
}

// Unwrap returns the underlying error for error chain support
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Suggestion returns an actionable suggestion for the user based on the error type.
// Returns an empty string if no specific suggestion is available.
func (e *ParseError) Suggestion() string {
	switch e.Type {
	case ErrTypeInvalidPattern:
		return "Check the pattern syntax, e.g. \"YYYY.0M.0D\" or \"vMAJOR.MINOR[.PATCH]\""
	case ErrTypePatternMismatch:
		return "Versions that do not match the pattern are listed last"
	case ErrTypeInvalidDate:
		return "Check that the year, month and day form a real calendar date"
	default:
		return ""
	}
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
