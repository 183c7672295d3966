package integration_tests

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/evmsim/internal/app"
	"github.com/specialistvlad/evmsim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMerging_FlagsOverrideExperimentFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"plan.hcl":       testutil.ThreeTaskPlan,
		"experiment.hcl": testutil.ExactExperiment,
	}
	runs := 2
	maxSteps := 3

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, func(dir string, cfg *app.Config) {
		cfg.ExperimentPath = filepath.Join(dir, "experiment.hcl")
		cfg.Overrides.Runs = &runs
		cfg.Overrides.MaxSteps = &maxSteps
	})

	// --- Assert ---
	require.NoError(t, result.Err)

	_, records := testutil.CSVRows(t, result.CSVPath)
	assert.Equal(t, []int{1, 2}, testutil.RunIDs(t, records), "--runs wins over the file")
	// Steps 0..3 for each run: the plan needs 6 steps so every run is truncated.
	assert.Len(t, records, 2*4)
	assert.Contains(t, result.Output, "truncated")
}

func TestConfigMerging_ExperimentProjectPathIsRelativeToFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"plans/plan.hcl": testutil.ThreeTaskPlan,
		"experiments/exp.hcl": `
experiment "rel" {
  project = "../plans/plan.hcl"
  runs    = 1
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, func(dir string, cfg *app.Config) {
		cfg.ExperimentPath = filepath.Join(dir, "experiments", "exp.hcl")
	})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "Runs: 1 requested, 1 successful, 0 failed")
}

func TestConfigMerging_DirectoryProject(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Blocks from every .hcl file in the directory are merged.
	files := map[string]string{
		"plan/resources.hcl": `
resource "dev" {
  cost_per_hour = 10
}
`,
		"plan/tasks.hcl": `
task "only" {
  duration = 2
  cost     = 20
  resource = resource.dev
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, func(dir string, cfg *app.Config) {
		project := filepath.Join(dir, "plan")
		cfg.Overrides.ProjectPath = &project
	})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "Runs: 10 requested, 10 successful, 0 failed")
	assert.Contains(t, result.Output, `tasks=1`)
}
