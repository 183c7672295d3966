package integration_tests

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/evmsim/internal/app"
	"github.com/specialistvlad/evmsim/internal/report"
	"github.com/specialistvlad/evmsim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_ExactPlanFollowsBudget(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"plan.hcl":       testutil.ThreeTaskPlan,
		"experiment.hcl": testutil.ExactExperiment,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, func(dir string, cfg *app.Config) {
		cfg.ExperimentPath = filepath.Join(dir, "experiment.hcl")
	})

	// --- Assert ---
	require.NoError(t, result.Err)

	header, records := testutil.CSVRows(t, result.CSVPath)
	assert.Equal(t, report.Columns, header)
	assert.Equal(t, []int{1, 2, 3}, testutil.RunIDs(t, records))
	// Steps 0..6 for each run.
	require.Len(t, records, 3*7)

	final := records[len(records)-1]
	assert.Equal(t, "6", final[1], "step")
	assert.Equal(t, "100", final[2], "completion_percent")
	assert.Equal(t, "65", final[3], "earned_value")
	assert.Equal(t, "65", final[4], "actual_cost")
	assert.Equal(t, "1", final[5], "cpi")

	assert.Contains(t, result.Output, "Runs: 3 requested, 3 successful, 0 failed")
	assert.Contains(t, result.Output, "Simulation summary (run 3)")
	assert.Contains(t, result.Output, "finished")
}

func TestBatch_NoisyRunsKeepSeriesInvariants(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"plan.hcl": testutil.ThreeTaskPlan}
	runs, seed, margin, workers := 20, uint64(42), 0.9, 4

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, func(dir string, cfg *app.Config) {
		project := filepath.Join(dir, "plan.hcl")
		cfg.Overrides.ProjectPath = &project
		cfg.Overrides.Runs = &runs
		cfg.Overrides.Seed = &seed
		cfg.Overrides.ErrorMargin = &margin
		cfg.Overrides.Workers = &workers
	})

	// --- Assert ---
	require.NoError(t, result.Err)

	header, records := testutil.CSVRows(t, result.CSVPath)
	ids := testutil.RunIDs(t, records)
	require.Len(t, ids, runs)

	completion := testutil.Column(t, header, records, "completion_percent")
	actualCost := testutil.Column(t, header, records, "actual_cost")
	steps := testutil.Column(t, header, records, "step")
	for i := 1; i < len(records); i++ {
		if records[i][0] != records[i-1][0] {
			assert.Zero(t, steps[i], "a run's series starts at step 0")
			continue
		}
		assert.Equal(t, steps[i-1]+1, steps[i], "steps are consecutive")
		assert.GreaterOrEqual(t, actualCost[i], actualCost[i-1], "actual cost never decreases")
		assert.GreaterOrEqual(t, completion[i], completion[i-1], "completion never decreases")
		assert.LessOrEqual(t, completion[i], 100.0)
	}
}

func TestBatch_SameSeedSameOutput(t *testing.T) {
	t.Parallel()

	run := func(workers int) [][]string {
		runs, seed := 8, uint64(2024)
		result := testutil.RunIntegrationTest(t, map[string]string{"plan.yaml": testutil.ThreeTaskPlanYAML},
			func(dir string, cfg *app.Config) {
				project := filepath.Join(dir, "plan.yaml")
				cfg.Overrides.ProjectPath = &project
				cfg.Overrides.Runs = &runs
				cfg.Overrides.Seed = &seed
				cfg.Overrides.Workers = &workers
			})
		require.NoError(t, result.Err)
		_, records := testutil.CSVRows(t, result.CSVPath)
		return records
	}

	assert.Equal(t, run(1), run(5), "output must not depend on the worker count")
}
