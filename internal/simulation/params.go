package simulation

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/evmsim/internal/config"
)

// Params are the tunables of one simulation run.
type Params struct {
	// ErrorMargin is the half-width ε of the uniform noise applied to every
	// hour of work. Values above 1 are allowed; progress still never regresses.
	ErrorMargin float64
	// ReassignmentFrequency releases every agent's task every K steps. Zero
	// disables it.
	ReassignmentFrequency int
	// MaxSteps truncates the run.
	MaxSteps int
	// ShuffleAgents randomizes the activation order once per run.
	ShuffleAgents bool
	// EfficiencyMin and EfficiencyMax bound the per-agent efficiency factor.
	EfficiencyMin float64
	EfficiencyMax float64
}

// DefaultParams returns the default parameter set.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultParameters())
}

// ParamsFromConfig converts loaded parameters into Params.
func ParamsFromConfig(c config.Parameters) Params {
	return Params{
		ErrorMargin:           c.ErrorMargin,
		ReassignmentFrequency: c.ReassignmentFrequency,
		MaxSteps:              c.MaxSteps,
		ShuffleAgents:         c.ShuffleAgents,
		EfficiencyMin:         c.EfficiencyMin,
		EfficiencyMax:         c.EfficiencyMax,
	}
}

// ParamError reports an invalid parameter.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// Validate reports every invalid parameter, joined.
func (p Params) Validate() error {
	var errs []error
	if p.ErrorMargin < 0 {
		errs = append(errs, &ParamError{Field: "error_margin", Reason: fmt.Sprintf("must be >= 0, got %g", p.ErrorMargin)})
	}
	if p.ReassignmentFrequency < 0 {
		errs = append(errs, &ParamError{Field: "reassignment_frequency", Reason: fmt.Sprintf("must be >= 0, got %d", p.ReassignmentFrequency)})
	}
	if p.MaxSteps <= 0 {
		errs = append(errs, &ParamError{Field: "max_steps", Reason: fmt.Sprintf("must be > 0, got %d", p.MaxSteps)})
	}
	if p.EfficiencyMin <= 0 || p.EfficiencyMax <= 0 {
		errs = append(errs, &ParamError{Field: "efficiency", Reason: fmt.Sprintf("bounds must be > 0, got [%g, %g]", p.EfficiencyMin, p.EfficiencyMax)})
	} else if p.EfficiencyMin > p.EfficiencyMax {
		errs = append(errs, &ParamError{Field: "efficiency", Reason: fmt.Sprintf("min %g exceeds max %g", p.EfficiencyMin, p.EfficiencyMax)})
	}
	return errors.Join(errs...)
}
