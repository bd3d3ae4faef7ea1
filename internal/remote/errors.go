package remote

import (
	"fmt"
	"time"
)

// RateLimitError indicates the GitHub API rate limit was exceeded.
type RateLimitError struct {
	Limit         int       // Requests allowed per hour
	Remaining     int       // Requests left in the current window
	ResetTime     time.Time // When the window resets
	Authenticated bool      // Whether requests carried GITHUB_TOKEN
	Err           error     // Underlying error
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("GitHub API rate limit exceeded (%d/%d remaining)", e.Remaining, e.Limit)
	}
	return "GitHub API rate limit exceeded"
}

// Unwrap returns the underlying error.
func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// Suggestion returns actionable steps for the user.
func (e *RateLimitError) Suggestion() string {
	suggestion := "Try again later"
	if !e.ResetTime.IsZero() {
		minutes := int(time.Until(e.ResetTime).Minutes())
		if minutes < 1 {
			minutes = 1
		}
		suggestion = fmt.Sprintf("Try again in: %d minutes", minutes)
	}
	if !e.Authenticated {
		suggestion += "\nOr set GITHUB_TOKEN for higher limits (5000 req/hour)"
	}
	return suggestion
}

// RepoNotFoundError indicates the requested GitHub repository was not found.
type RepoNotFoundError struct {
	Owner string
	Repo  string
	Err   error
}

// Error implements the error interface.
func (e *RepoNotFoundError) Error() string {
	return fmt.Sprintf("repository not found: %s/%s", e.Owner, e.Repo)
}

// Unwrap returns the underlying error.
func (e *RepoNotFoundError) Unwrap() error {
	return e.Err
}

// Suggestion returns actionable steps for the user.
func (e *RepoNotFoundError) Suggestion() string {
	return "Check the owner/repo spelling; private repositories need GITHUB_TOKEN"
}
