package config

// ProjectDef is the unified, format-agnostic representation of a project
// plan: the tasks to execute and the resources that can execute them.
type ProjectDef struct {
	Name      string
	Resources []*ResourceDef
	Tasks     []*TaskDef
}

// ResourceDef is the format-agnostic representation of a resource.
type ResourceDef struct {
	ID          int
	Name        string
	CostPerHour float64
}

// TaskDef is the format-agnostic representation of a task.
type TaskDef struct {
	ID   int
	Name string
	// Duration is the planned duration in hours.
	Duration float64
	// Cost is the planned (budgeted) cost.
	Cost float64
	// RequiredResource is the ID of the only resource allowed to execute the
	// task, or nil when any resource may.
	RequiredResource *int
	// DependsOn lists finish-to-start predecessors by task ID.
	DependsOn []int
}

// Parameters are the tunables of a single simulation run.
type Parameters struct {
	ErrorMargin           float64
	ReassignmentFrequency int
	MaxSteps              int
	ShuffleAgents         bool
	EfficiencyMin         float64
	EfficiencyMax         float64
}

// Experiment describes a batch of Monte Carlo runs over one project.
type Experiment struct {
	Name        string
	ProjectPath string
	Runs        int
	Seed        uint64
	Workers     int
	Output      string
	Parameters  Parameters
	// CostOverrides replaces the hourly cost of existing resources, keyed by
	// resource ID.
	CostOverrides map[int]float64
	// Resources are added to (or replace those of) the loaded project.
	Resources []*ResourceDef
}

// Default values, matching the reference experiment setup.
const (
	DefaultErrorMargin           = 0.1
	DefaultReassignmentFrequency = 10
	DefaultMaxSteps              = 1000
	DefaultRuns                  = 10
	DefaultWorkers               = 1
	DefaultEfficiencyMin         = 0.8
	DefaultEfficiencyMax         = 1.2
	DefaultOutput                = "simulation_results.csv"
)

// DefaultParameters returns the parameter set used when nothing is configured.
func DefaultParameters() Parameters {
	return Parameters{
		ErrorMargin:           DefaultErrorMargin,
		ReassignmentFrequency: DefaultReassignmentFrequency,
		MaxSteps:              DefaultMaxSteps,
		EfficiencyMin:         DefaultEfficiencyMin,
		EfficiencyMax:         DefaultEfficiencyMax,
	}
}

// DefaultExperiment returns an experiment populated with default values.
func DefaultExperiment() *Experiment {
	return &Experiment{
		Name:          "default",
		Runs:          DefaultRuns,
		Workers:       DefaultWorkers,
		Output:        DefaultOutput,
		Parameters:    DefaultParameters(),
		CostOverrides: map[int]float64{},
	}
}
