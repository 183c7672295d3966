package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/evmsim/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlan = `
resource "dev" {
  cost_per_hour = 10
}

task "design" {
  duration = 2
  cost     = 20
}

task "build" {
  duration   = 3
  cost       = 30
  resource   = resource.dev
  depends_on = [task.design]
}
`

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	planPath := filepath.Join(dir, "plan.hcl")
	require.NoError(t, os.WriteFile(planPath, []byte(samplePlan), 0600))
	outPath := filepath.Join(dir, "out", "results.csv")

	args := []string{planPath, "--runs", "3", "--seed", "7", "-o", outPath, "--log-level", "warn"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Runs: 3 requested, 3 successful, 0 failed")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "run_id,step,"), "CSV should start with the header")
	assert.Greater(t, len(lines), 3, "every run contributes at least one row")
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A syntax error in the plan must surface as an error, not a panic.
	dir := t.TempDir()
	planPath := filepath.Join(dir, "main.hcl")
	require.NoError(t, os.WriteFile(planPath, []byte("task \"a\" {\n  duration = \n"), 0600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{planPath, "-o", filepath.Join(dir, "r.csv")})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load experiment")
	assert.Contains(t, err.Error(), "malformed input")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
