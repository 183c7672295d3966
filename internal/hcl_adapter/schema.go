// This file contains the HCL schema structs that gohcl decodes project and
// experiment files into. Attribute values are kept as expressions so they can
// be evaluated once variables and references are known.

package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// projectFile is used to decode all possible top-level blocks of a project file.
type projectFile struct {
	Projects  []*projectBlock  `hcl:"project,block"`
	Variables []*variableBlock `hcl:"variable,block"`
	Resources []*resourceBlock `hcl:"resource,block"`
	Tasks     []*taskBlock     `hcl:"task,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

type projectBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
}

type variableBlock struct {
	Name        string         `hcl:"name,label"`
	Default     hcl.Expression `hcl:"default,optional"`
	Description string         `hcl:"description,optional"`
}

type resourceBlock struct {
	Label       string         `hcl:"label,label"`
	ID          hcl.Expression `hcl:"id,optional"`
	Name        hcl.Expression `hcl:"name,optional"`
	CostPerHour hcl.Expression `hcl:"cost_per_hour,optional"`
}

type taskBlock struct {
	Label     string         `hcl:"label,label"`
	ID        hcl.Expression `hcl:"id,optional"`
	Name      hcl.Expression `hcl:"name,optional"`
	Duration  hcl.Expression `hcl:"duration,optional"`
	Cost      hcl.Expression `hcl:"cost,optional"`
	Resource  hcl.Expression `hcl:"resource,optional"`
	DependsOn hcl.Expression `hcl:"depends_on,optional"`
}

// experimentFile is used to decode the top-level blocks of an experiment file.
// Experiment bodies are decoded in a second pass, once variables are known.
type experimentFile struct {
	Variables   []*variableBlock    `hcl:"variable,block"`
	Experiments []*experimentHeader `hcl:"experiment,block"`
	Remain      hcl.Body            `hcl:",remain"`
}

type experimentHeader struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

type experimentBlock struct {
	Project       *string                    `hcl:"project,optional"`
	Runs          *int                       `hcl:"runs,optional"`
	Seed          *uint64                    `hcl:"seed,optional"`
	Workers       *int                       `hcl:"workers,optional"`
	Output        *string                    `hcl:"output,optional"`
	Parameters    *parametersBlock           `hcl:"parameters,block"`
	CostOverrides map[string]float64         `hcl:"cost_overrides,optional"`
	Resources     []*experimentResourceBlock `hcl:"resource,block"`
}

type parametersBlock struct {
	ErrorMargin           *float64 `hcl:"error_margin,optional"`
	ReassignmentFrequency *int     `hcl:"reassignment_frequency,optional"`
	MaxSteps              *int     `hcl:"max_steps,optional"`
	ShuffleAgents         *bool    `hcl:"shuffle_agents,optional"`
	EfficiencyMin         *float64 `hcl:"efficiency_min,optional"`
	EfficiencyMax         *float64 `hcl:"efficiency_max,optional"`
}

type experimentResourceBlock struct {
	Label       string  `hcl:"label,label"`
	ID          *int    `hcl:"id,optional"`
	Name        *string `hcl:"name,optional"`
	CostPerHour float64 `hcl:"cost_per_hour"`
}
