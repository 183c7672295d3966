package config

// Overrides carries values explicitly provided on the command line. A nil
// field means "not set" and leaves the experiment value untouched.
type Overrides struct {
	ProjectPath           *string
	Runs                  *int
	Seed                  *uint64
	Workers               *int
	Output                *string
	ErrorMargin           *float64
	ReassignmentFrequency *int
	MaxSteps              *int
	ShuffleAgents         *bool
	CostOverrides         map[int]float64
}

// Apply writes every set override into the experiment.
func (o *Overrides) Apply(e *Experiment) {
	if o == nil {
		return
	}
	setIf(&e.ProjectPath, o.ProjectPath)
	setIf(&e.Runs, o.Runs)
	setIf(&e.Seed, o.Seed)
	setIf(&e.Workers, o.Workers)
	setIf(&e.Output, o.Output)
	setIf(&e.Parameters.ErrorMargin, o.ErrorMargin)
	setIf(&e.Parameters.ReassignmentFrequency, o.ReassignmentFrequency)
	setIf(&e.Parameters.MaxSteps, o.MaxSteps)
	setIf(&e.Parameters.ShuffleAgents, o.ShuffleAgents)

	if len(o.CostOverrides) > 0 && e.CostOverrides == nil {
		e.CostOverrides = make(map[int]float64, len(o.CostOverrides))
	}
	for id, cost := range o.CostOverrides {
		e.CostOverrides[id] = cost
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
