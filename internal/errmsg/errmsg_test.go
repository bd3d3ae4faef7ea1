package errmsg

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/tsukumogami/versort/internal/remote"
	"github.com/tsukumogami/versort/internal/version"
)

func assertContainsAll(t *testing.T, result string, checks ...string) {
	t.Helper()
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected result to contain %q, got:\n%s", check, result)
		}
	}
}

func TestFormat_NilError(t *testing.T) {
	result := Format(nil, nil)
	if result != "" {
		t.Errorf("expected empty string for nil error, got %q", result)
	}
}

func TestFormat_GenericError(t *testing.T) {
	err := errors.New("something went wrong")
	result := Format(err, nil)
	if result != "something went wrong" {
		t.Errorf("expected original error message, got %q", result)
	}
}

func TestFormat_InvalidPattern(t *testing.T) {
	_, err := version.CompilePattern("MAJOR[.MINOR")
	if err == nil {
		t.Fatal("expected pattern error")
	}

	result := Format(fmt.Errorf("invalid custom pattern: %w", err), &ErrorContext{ConfigFile: "/home/u/.versort/config.toml"})
	assertContainsAll(t, result,
		"unclosed '['",
		"Possible causes:",
		"Suggestions:",
		"YYYY.0M.0D",
		"/home/u/.versort/config.toml",
	)
}

func TestFormat_InvalidPatternWithoutContext(t *testing.T) {
	err := &version.ParseError{Type: version.ErrTypeInvalidPattern, Strategy: version.StrategyCustomPattern, Input: "x", Message: "pattern contains no version fields"}
	assertContainsAll(t, Format(err, nil), "versort config set custom_pattern")
}

func TestFormat_ParseErrorNoSuggestion(t *testing.T) {
	err := &version.ParseError{Type: version.ErrTypeInvalidVersion, Strategy: version.StrategyPythonPackaging, Input: "x", Message: "not a PEP 440 version"}
	result := Format(err, nil)
	if strings.Contains(result, "Suggestions:") {
		t.Errorf("expected no suggestions, got:\n%s", result)
	}
	if !strings.HasPrefix(result, err.Error()) {
		t.Errorf("expected original message first, got:\n%s", result)
	}
}

func TestFormat_RemoteRateLimitError(t *testing.T) {
	err := &remote.RateLimitError{Limit: 60, Remaining: 0, ResetTime: time.Now().Add(10 * time.Minute)}
	assertContainsAll(t, Format(fmt.Errorf("listing refs: %w", err), nil),
		"rate limit exceeded",
		"Unauthenticated requests have lower limits",
		"Try again in:",
		"GITHUB_TOKEN",
		"versort sort <file>",
	)
}

func TestFormat_RemoteRateLimitAuthenticated(t *testing.T) {
	err := &remote.RateLimitError{Limit: 5000, Authenticated: true}
	result := Format(err, nil)
	if strings.Contains(result, "GITHUB_TOKEN") {
		t.Errorf("authenticated rate limit should not suggest GITHUB_TOKEN, got:\n%s", result)
	}
}

func TestFormat_RepoNotFound(t *testing.T) {
	err := &remote.RepoNotFoundError{Owner: "acme", Repo: "missing"}
	assertContainsAll(t, Format(err, nil), "repository not found: acme/missing", "The repository is private", "GITHUB_TOKEN")
}

func TestFormat_RateLimitError(t *testing.T) {
	err := errors.New("API rate limit exceeded for 1.2.3.4")
	assertContainsAll(t, Format(err, nil), "Possible causes:", "Set GITHUB_TOKEN", "Wait a few minutes")
}

// mockNetError implements net.Error
type mockNetError struct {
	timeout bool
}

func (e *mockNetError) Error() string   { return "mock network error" }
func (e *mockNetError) Timeout() bool   { return e.timeout }
func (e *mockNetError) Temporary() bool { return false }

var _ net.Error = (*mockNetError)(nil)

func TestFormat_NetworkError(t *testing.T) {
	assertContainsAll(t, Format(&mockNetError{}, nil), "Network connectivity issue", "DNS resolution failure")
}

func TestFormat_NetError_Timeout(t *testing.T) {
	assertContainsAll(t, Format(&mockNetError{timeout: true}, nil), "Request timed out", "VERSORT_API_TIMEOUT")
}

func TestFormat_GenericNetworkError(t *testing.T) {
	assertContainsAll(t, Format(errors.New("dial tcp 127.0.0.1:443: connection refused"), nil), "Service temporarily unavailable")
}

func TestFormat_NotFoundError(t *testing.T) {
	assertContainsAll(t, Format(errors.New("open refs.txt: no such file or directory"), nil), "The input file does not exist", "Pass '-'")
	assertContainsAll(t, Format(errors.New("GET /repos/acme/docs: 404"), &ErrorContext{Repo: "acme/docs"}), "https://github.com/acme/docs")
}

func TestFormat_PermissionError(t *testing.T) {
	assertContainsAll(t, Format(errors.New("open /root/.versort/config.toml: permission denied"), nil), "$VERSORT_HOME", "VERSORT_HOME to a writable directory")
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	Fprint(&buf, errors.New("boom"), nil)
	if buf.String() != "Error: boom\n" {
		t.Errorf("Fprint() wrote %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, nil, nil)
	if buf.Len() != 0 {
		t.Errorf("Fprint(nil) wrote %q", buf.String())
	}
}

func TestIsRateLimitError(t *testing.T) {
	tests := []struct {
		msg      string
		expected bool
	}{
		{"GitHub API rate limit exceeded", true},
		{"rate-limit: too many requests", true},
		{"Too many requests to the server", true},
		{"connection failed", false},
		{"file not found", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := isRateLimitError(tt.msg); got != tt.expected {
				t.Errorf("isRateLimitError(%q) = %v, want %v", tt.msg, got, tt.expected)
			}
		})
	}
}

func TestIsNetworkError(t *testing.T) {
	tests := []struct {
		msg      string
		expected bool
	}{
		{"dial tcp: connection refused", true},
		{"connection reset by peer", true},
		{"no such host", true},
		{"i/o timeout", true},
		{"file not found", false},
		{"permission denied", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := isNetworkError(tt.msg); got != tt.expected {
				t.Errorf("isNetworkError(%q) = %v, want %v", tt.msg, got, tt.expected)
			}
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		msg      string
		expected bool
	}{
		{"ref file not found", true},
		{"open refs.txt: no such file or directory", true},
		{"returned 404", true},
		{"does not exist", true},
		{"connection failed", false},
		{"rate limit exceeded", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := isNotFoundError(tt.msg); got != tt.expected {
				t.Errorf("isNotFoundError(%q) = %v, want %v", tt.msg, got, tt.expected)
			}
		})
	}
}

func TestIsPermissionError(t *testing.T) {
	tests := []struct {
		msg      string
		expected bool
	}{
		{"permission denied", true},
		{"access denied", true},
		{"operation not permitted", true},
		{"file not found", false},
		{"connection refused", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := isPermissionError(tt.msg); got != tt.expected {
				t.Errorf("isPermissionError(%q) = %v, want %v", tt.msg, got, tt.expected)
			}
		})
	}
}
