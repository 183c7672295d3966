package metrics

import (
	"slices"

	"github.com/specialistvlad/evmsim/internal/agent"
	"github.com/specialistvlad/evmsim/internal/model"
)

// Snapshot is the state of the EVM figures at the end of one step.
type Snapshot struct {
	Step              int
	CompletionPercent float64
	EarnedValue       float64
	ActualCost        float64
	CPI               float64
	PlannedValue      float64
	SPI               float64
	ActiveAgents      int
	StepCost          float64
	TasksDone         int
}

// Collector accumulates snapshots for one run.
type Collector struct {
	baseline   *model.Baseline
	actualCost float64
	snapshots  []Snapshot
}

// NewCollector creates a collector. baseline may be nil, in which case
// planned value and SPI are reported as zero.
func NewCollector(baseline *model.Baseline) *Collector {
	return &Collector{baseline: baseline}
}

// Capture adds stepCost to the cumulative actual cost and records a snapshot
// of p at the given step. Agents are sampled after activation to count the
// ones holding a task.
func (c *Collector) Capture(p *model.Project, agents []*agent.Agent, step int, stepCost float64) Snapshot {
	c.actualCost += max(0, stepCost)

	active := 0
	for _, a := range agents {
		if a.Busy() {
			active++
		}
	}

	ev := EarnedValue(p)
	pv := c.baseline.PlannedValue(float64(step))
	s := Snapshot{
		Step:              step,
		CompletionPercent: CompletionPercent(p),
		EarnedValue:       ev,
		ActualCost:        c.actualCost,
		CPI:               PerformanceIndex(ev, c.actualCost),
		PlannedValue:      pv,
		SPI:               PerformanceIndex(ev, pv),
		ActiveAgents:      active,
		StepCost:          stepCost,
		TasksDone:         p.DoneCount(),
	}
	c.snapshots = append(c.snapshots, s)
	return s
}

// ActualCost returns the cumulative actual cost.
func (c *Collector) ActualCost() float64 { return c.actualCost }

// Snapshots returns a copy of the recorded series, in step order.
func (c *Collector) Snapshots() []Snapshot { return slices.Clone(c.snapshots) }

// Last returns the most recent snapshot.
func (c *Collector) Last() (Snapshot, bool) {
	if len(c.snapshots) == 0 {
		return Snapshot{}, false
	}
	return c.snapshots[len(c.snapshots)-1], true
}
