package functional

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
)

// aCleanVersortEnvironment is a no-op because the Before hook already sets up
// the environment. This step exists so feature files read naturally.
func aCleanVersortEnvironment(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

func aFileWith(ctx context.Context, name string, content *godog.DocString) (context.Context, error) {
	state := getState(ctx)
	path := filepath.Join(state.workDir, name)
	if err := os.WriteFile(path, []byte(content.Content+"\n"), 0o644); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func iRunWithInput(ctx context.Context, command string, input *godog.DocString) (context.Context, error) {
	state := getState(ctx)
	state.stdin = input.Content + "\n"
	return iRun(ctx, command)
}

// iRun executes a command string, replacing "versort" with the test binary path.
// Arguments are split on whitespace; single quotes group an argument.
func iRun(ctx context.Context, command string) (context.Context, error) {
	state := getState(ctx)
	if state == nil {
		return ctx, fmt.Errorf("no test state; is the Before hook running?")
	}

	args := splitArgs(command)
	if len(args) > 0 && args[0] == "versort" {
		args[0] = state.binPath
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = state.workDir
	cmd.Env = append(os.Environ(),
		"VERSORT_HOME="+state.homeDir,
		"VERSORT_QUIET=",
		"VERSORT_VERBOSE=",
		"VERSORT_DEBUG=",
		// Nothing listens on port 1, so remote scenarios fail fast.
		"VERSORT_GITHUB_API_URL=http://127.0.0.1:1/",
		"VERSORT_API_TIMEOUT=2s",
		"GITHUB_TOKEN=",
		"GH_TOKEN=",
	)
	cmd.Stdin = strings.NewReader(state.stdin)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	state.stdout = stdout.String()
	state.stderr = stderr.String()
	state.stdin = ""

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			state.exitCode = exitErr.ExitCode()
		} else {
			return ctx, fmt.Errorf("command execution failed: %w", err)
		}
	} else {
		state.exitCode = 0
	}

	return ctx, nil
}

func splitArgs(command string) []string {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range command {
		switch {
		case r == '\'':
			quoted = !quoted
			started = true
		case r == ' ' && !quoted:
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, current.String())
	}
	return args
}

func theExitCodeIs(ctx context.Context, expected int) error {
	state := getState(ctx)
	if state.exitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d\nstdout: %s\nstderr: %s",
			expected, state.exitCode, state.stdout, state.stderr)
	}
	return nil
}

func theExitCodeIsNot(ctx context.Context, notExpected int) error {
	state := getState(ctx)
	if state.exitCode == notExpected {
		return fmt.Errorf("expected exit code to not be %d\nstdout: %s\nstderr: %s",
			notExpected, state.stdout, state.stderr)
	}
	return nil
}

func theOutputIs(ctx context.Context, expected *godog.DocString) error {
	state := getState(ctx)
	got := strings.TrimRight(state.stdout, "\n")
	if got != expected.Content {
		return fmt.Errorf("expected stdout:\n%s\ngot:\n%s\nstderr: %s", expected.Content, got, state.stderr)
	}
	return nil
}

func theOutputIsValidJSON(ctx context.Context) error {
	state := getState(ctx)
	if !json.Valid([]byte(state.stdout)) {
		return fmt.Errorf("expected stdout to be JSON, got:\n%s", state.stdout)
	}
	return nil
}

func theOutputContains(ctx context.Context, text string) error {
	state := getState(ctx)
	if !strings.Contains(state.stdout, text) {
		return fmt.Errorf("expected stdout to contain %q, got:\n%s", text, state.stdout)
	}
	return nil
}

func theOutputDoesNotContain(ctx context.Context, text string) error {
	state := getState(ctx)
	if strings.Contains(state.stdout, text) {
		return fmt.Errorf("expected stdout not to contain %q, got:\n%s", text, state.stdout)
	}
	return nil
}

func theErrorOutputContains(ctx context.Context, text string) error {
	state := getState(ctx)
	if !strings.Contains(state.stderr, text) {
		return fmt.Errorf("expected stderr to contain %q, got:\n%s", text, state.stderr)
	}
	return nil
}

func theFileExists(ctx context.Context, path string) error {
	state := getState(ctx)
	fullPath := filepath.Join(state.homeDir, path)
	if _, err := os.Lstat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("expected file %q to exist", fullPath)
	}
	return nil
}
