package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/evmsim/internal/config"
	"github.com/specialistvlad/evmsim/internal/experiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plan = `
resource "dev" {
  cost_per_hour = 10
}

resource "qa" {
  cost_per_hour = 5
}

task "build" {
  duration = 2
  cost     = 20
  resource = resource.dev
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func ptr[T any](v T) *T { return &v }

func TestNewConfig_Validation(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.ErrorContains(t, err, "experiment file or a project path")

	_, err = NewConfig(Config{ExperimentPath: "e.hcl", HealthcheckPort: -1})
	assert.ErrorContains(t, err, "healthcheck port")

	cfg, err := NewConfig(Config{Overrides: config.Overrides{ProjectPath: ptr("p.hcl")}})
	require.NoError(t, err)
	assert.Equal(t, "p.hcl", *cfg.Overrides.ProjectPath)
}

func TestLoadExperiment_AppliesOverridesAndResources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plan.hcl", plan)
	expPath := writeFile(t, dir, "exp.hcl", `
experiment "e" {
  project = "plan.hcl"
  runs    = 5

  resource "contractor" {
    id            = 7
    cost_per_hour = 99
  }
}
`)
	a := NewApp(&bytes.Buffer{}, &Config{
		ExperimentPath: expPath,
		Overrides: config.Overrides{
			Runs:          ptr(9),
			CostOverrides: map[int]float64{2: 8},
		},
	})

	exp, project, err := a.LoadExperiment(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "e", exp.Name)
	assert.Equal(t, 9, exp.Runs, "overrides win over the file")
	assert.Equal(t, 3, project.ResourceCount())

	qa, ok := project.Resource(2)
	require.True(t, ok)
	assert.Equal(t, 8.0, qa.CostPerHour)

	contractor, ok := project.Resource(7)
	require.True(t, ok)
	assert.Equal(t, "contractor", contractor.Name)
	assert.Equal(t, 99.0, contractor.CostPerHour)
}

func TestLoadExperiment_Errors(t *testing.T) {
	dir := t.TempDir()
	planPath := writeFile(t, dir, "plan.hcl", plan)

	t.Run("missing experiment file", func(t *testing.T) {
		a := NewApp(&bytes.Buffer{}, &Config{ExperimentPath: filepath.Join(dir, "nope.hcl")})
		_, _, err := a.LoadExperiment(context.Background())
		assert.ErrorIs(t, err, config.ErrNotFound)
	})

	t.Run("no project configured", func(t *testing.T) {
		expPath := writeFile(t, dir, "empty.hcl", "experiment \"e\" {\n}\n")
		a := NewApp(&bytes.Buffer{}, &Config{ExperimentPath: expPath})
		_, _, err := a.LoadExperiment(context.Background())
		var cfgErr *experiment.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "project", cfgErr.Field)
	})

	t.Run("cost override for a missing resource", func(t *testing.T) {
		a := NewApp(&bytes.Buffer{}, &Config{Overrides: config.Overrides{
			ProjectPath:   &planPath,
			CostOverrides: map[int]float64{42: 1},
		}})
		_, _, err := a.LoadExperiment(context.Background())
		var cfgErr *experiment.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "cost_overrides", cfgErr.Field)
		assert.Contains(t, cfgErr.Reason, "42")
	})
}

func TestRun_WritesResultsAndSummary(t *testing.T) {
	dir := t.TempDir()
	planPath := writeFile(t, dir, "plan.hcl", plan)
	outPath := filepath.Join(dir, "nested", "results.csv")
	out := &bytes.Buffer{}

	a := NewApp(out, &Config{
		LogLevel: "info",
		Overrides: config.Overrides{
			ProjectPath: &planPath,
			Runs:        ptr(2),
			Output:      &outPath,
		},
	})

	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, phaseDone, a.Phase())
	_, err := os.Stat(outPath)
	require.NoError(t, err, "the output directory is created")
	assert.Contains(t, out.String(), "Runs: 2 requested, 2 successful, 0 failed")
	assert.Contains(t, out.String(), "Results saved.")
}

func TestHealthRoute(t *testing.T) {
	a := NewApp(&bytes.Buffer{}, &Config{})
	a.setPhase(phaseRunning)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	a.healthRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, phaseRunning, body["phase"])
}

func TestHealthRoute_UnknownPath(t *testing.T) {
	a := NewApp(&bytes.Buffer{}, &Config{})

	rec := httptest.NewRecorder()
	a.healthRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
