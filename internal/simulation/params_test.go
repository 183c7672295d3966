package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())

	testCases := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{name: "negative margin", mutate: func(p *Params) { p.ErrorMargin = -0.1 }, field: "error_margin"},
		{name: "negative reassignment", mutate: func(p *Params) { p.ReassignmentFrequency = -1 }, field: "reassignment_frequency"},
		{name: "zero max steps", mutate: func(p *Params) { p.MaxSteps = 0 }, field: "max_steps"},
		{name: "inverted efficiency", mutate: func(p *Params) { p.EfficiencyMin, p.EfficiencyMax = 1.5, 1 }, field: "efficiency"},
		{name: "zero efficiency", mutate: func(p *Params) { p.EfficiencyMin = 0 }, field: "efficiency"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			err := p.Validate()
			var pe *ParamError
			if assert.ErrorAs(t, err, &pe) {
				assert.Equal(t, tc.field, pe.Field)
			}
		})
	}
}

func TestParams_ZeroReassignmentAndLargeMarginAllowed(t *testing.T) {
	p := DefaultParams()
	p.ReassignmentFrequency = 0
	p.ErrorMargin = 2
	assert.NoError(t, p.Validate())
}

func TestTermination_String(t *testing.T) {
	assert.Equal(t, "finished", Finished.String())
	assert.Equal(t, "deadlocked", Deadlocked.String())
	assert.Equal(t, "truncated", Truncated.String())
	assert.Equal(t, "running", NotTerminated.String())
	assert.Equal(t, "completed", Completed.String())
}
