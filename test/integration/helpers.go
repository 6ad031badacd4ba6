//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	Embedding string
	LettaPath string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		BaseURL:   os.Getenv("LETTA_BASE_URL"),
		APIKey:    os.Getenv("LETTA_API_KEY"),
		Model:     envOr("LETTA_TEST_MODEL", "openai/gpt-4o-mini"),
		Embedding: envOr("LETTA_TEST_EMBEDDING", "openai/text-embedding-3-small"),
		LettaPath: getLettaPath(),
		Verbose:   os.Getenv("LETTA_VERBOSE") == "true",
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

// getLettaPath determines the path to the letta binary.
func getLettaPath() string {
	if path := os.Getenv("LETTA_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../letta", "./letta", "../letta"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "letta"
}

// SkipIfMissingServer skips the test unless a server is configured.
func (config *TestConfig) SkipIfMissingServer(t *testing.T) {
	t.Helper()

	if config.BaseURL == "" {
		t.Skip("LETTA_BASE_URL not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips the test unless the letta binary can be found.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	config.SkipIfMissingServer(t)

	if _, err := exec.LookPath(config.LettaPath); err != nil {
		t.Skipf("letta binary not found at %s, skipping integration test", config.LettaPath)
	}
}

// CommandRunner runs letta commands against the configured server.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{config: config, t: t}
}

// Run executes a letta command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--base-url", runner.config.BaseURL}, args...)
	if runner.config.APIKey != "" {
		args = append([]string{"--api-key", runner.config.APIKey}, args...)
	}

	// #nosec G204
	cmd := exec.Command(runner.config.LettaPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	// keep the developer's own config file out of the test
	cmd.Env = append(os.Environ(), "HOME="+runner.t.TempDir())

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.LettaPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON executes a letta command with JSON output and decodes it into v.
func (runner *CommandRunner) RunJSON(v any, args ...string) {
	runner.t.Helper()

	stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
	require.NoError(runner.t, err, "letta %s: %s", strings.Join(args, " "), stderr)
	require.NoError(runner.t, json.Unmarshal([]byte(stdout), v), "output was not JSON: %s", stdout)
}

// CleanupAgent deletes an agent, logging failures.
func (runner *CommandRunner) CleanupAgent(id string) {
	stdout, stderr, err := runner.Run("agents", "delete", id)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for agent %s: %s\nStderr: %s", id, stdout, stderr)
	}
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
