package functional

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"
)

type stateKeyType struct{}

var stateKey = stateKeyType{}

type testState struct {
	homeDir  string // VERSORT_HOME for the scenario
	workDir  string // working directory; files from "a file ... with:" live here
	binPath  string
	stdin    string
	stdout   string
	stderr   string
	exitCode int
}

func getState(ctx context.Context) *testState {
	if s, ok := ctx.Value(stateKey).(*testState); ok {
		return s
	}
	return nil
}

func setState(ctx context.Context, s *testState) context.Context {
	return context.WithValue(ctx, stateKey, s)
}

func TestFeatures(t *testing.T) {
	binPath := os.Getenv("VERSORT_TEST_BINARY")
	if binPath == "" {
		t.Skip("VERSORT_TEST_BINARY not set; build cmd/versort and point it at the binary")
	}

	// Resolve to absolute path since go test changes the working directory
	absBin, err := filepath.Abs(binPath)
	if err != nil {
		t.Fatalf("resolving binary path: %v", err)
	}
	binPath = absBin

	opts := &godog.Options{
		Format:   "pretty",
		Paths:    []string{"features"},
		TestingT: t,
	}
	if tags := os.Getenv("VERSORT_TEST_TAGS"); tags != "" {
		opts.Tags = tags
	}

	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			initializeScenario(ctx, binPath)
		},
		Options: opts,
	}
	if suite.Run() != 0 {
		t.Fatal("functional tests failed")
	}
}

func initializeScenario(ctx *godog.ScenarioContext, binPath string) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		root, err := os.MkdirTemp("", "versort-functional-")
		if err != nil {
			return ctx, err
		}
		state := &testState{
			homeDir: filepath.Join(root, "home"),
			workDir: filepath.Join(root, "work"),
			binPath: binPath,
		}
		if err := os.MkdirAll(state.workDir, 0o755); err != nil {
			return ctx, err
		}
		return setState(ctx, state), nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if state := getState(ctx); state != nil {
			os.RemoveAll(filepath.Dir(state.workDir))
		}
		return ctx, nil
	})

	// Environment steps
	ctx.Step(`^a clean versort environment$`, aCleanVersortEnvironment)
	ctx.Step(`^a file "([^"]*)" with:$`, aFileWith)

	// Command steps
	ctx.Step(`^I run "([^"]*)"$`, iRun)
	ctx.Step(`^I run "([^"]*)" with input:$`, iRunWithInput)

	// Assertion steps
	ctx.Step(`^the exit code is (\d+)$`, theExitCodeIs)
	ctx.Step(`^the exit code is not (\d+)$`, theExitCodeIsNot)
	ctx.Step(`^the output is:$`, theOutputIs)
	ctx.Step(`^the output is valid JSON$`, theOutputIsValidJSON)
	ctx.Step(`^the output contains "([^"]*)"$`, theOutputContains)
	ctx.Step(`^the output does not contain "([^"]*)"$`, theOutputDoesNotContain)
	ctx.Step(`^the error output contains "([^"]*)"$`, theErrorOutputContains)
	ctx.Step(`^the file "([^"]*)" exists$`, theFileExists)
}
