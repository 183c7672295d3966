package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct{ name string }

func (s *stubLoader) LoadProject(ctx context.Context, path string) (*ProjectDef, error) {
	return &ProjectDef{Name: s.name}, nil
}

func TestRegistry_DispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	hclPath := filepath.Join(dir, "plan.HCL")
	yamlPath := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(hclPath, nil, 0o644))
	require.NoError(t, os.WriteFile(yamlPath, nil, 0o644))

	reg := NewRegistry()
	reg.Register(&stubLoader{name: "hcl"}, ".hcl")
	reg.Register(&stubLoader{name: "yaml"}, ".yaml", ".yml")
	reg.RegisterDirectory(&stubLoader{name: "dir"})

	def, err := reg.LoadProject(context.Background(), hclPath)
	require.NoError(t, err)
	assert.Equal(t, "hcl", def.Name)

	def, err = reg.LoadProject(context.Background(), yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "yaml", def.Name)

	def, err = reg.LoadProject(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "dir", def.Name)
}

func TestRegistry_Errors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "plan.txt")
	require.NoError(t, os.WriteFile(txt, nil, 0o644))

	reg := NewRegistry()

	_, err := reg.For(filepath.Join(dir, "missing.hcl"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrMalformed)

	_, err = reg.For(txt)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = reg.For(dir)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadErrorHelpers(t *testing.T) {
	err := Malformed("a.hcl", "task %d: bad", 3)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.EqualError(t, err, "load a.hcl: malformed input: task 3: bad")

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "a.hcl", loadErr.Path)

	cause := errors.New("stat failed")
	err = NotFound("b.hcl", cause)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, cause)
}

func TestOverrides_Apply(t *testing.T) {
	exp := DefaultExperiment()
	runs, margin, shuffle := 25, 0.3, true
	out := "out.csv"

	o := &Overrides{
		Runs:          &runs,
		ErrorMargin:   &margin,
		ShuffleAgents: &shuffle,
		Output:        &out,
		CostOverrides: map[int]float64{2: 55},
	}
	o.Apply(exp)

	assert.Equal(t, 25, exp.Runs)
	assert.Equal(t, 0.3, exp.Parameters.ErrorMargin)
	assert.True(t, exp.Parameters.ShuffleAgents)
	assert.Equal(t, "out.csv", exp.Output)
	assert.Equal(t, map[int]float64{2: 55}, exp.CostOverrides)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultMaxSteps, exp.Parameters.MaxSteps)
	assert.Equal(t, DefaultWorkers, exp.Workers)

	var nilOverrides *Overrides
	assert.NotPanics(t, func() { nilOverrides.Apply(exp) })
}
