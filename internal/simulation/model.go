package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/specialistvlad/evmsim/internal/agent"
	"github.com/specialistvlad/evmsim/internal/metrics"
	"github.com/specialistvlad/evmsim/internal/model"
)

// ErrNotRunning is returned by Step once the model has completed.
var ErrNotRunning = errors.New("simulation is not running")

// StepReport describes what happened during one step.
type StepReport struct {
	Step int
	// Cost is the total cost incurred by all agents during the step.
	Cost float64
	// Completed lists the IDs of tasks finished during the step.
	Completed []int
	// Released lists the IDs of tasks handed back by the reassignment policy.
	Released []int
}

// Model is one simulation run.
type Model struct {
	project     *model.Project
	agents      []*agent.Agent
	params      Params
	collector   *metrics.Collector
	step        int
	state       State
	termination Termination
}

// New builds a run from a baseline project. The baseline is cloned and reset,
// so it is never mutated. One agent is created per resource, in resource
// order, each sampling its efficiency from rng; when shuffling is enabled the
// activation order is then randomized once. The step-0 snapshot is captured
// before New returns.
func New(base *model.Project, params Params, rng *rand.Rand) (*Model, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: nil project", model.ErrInvalidPlan)
	}
	if rng == nil {
		return nil, errors.New("nil random source")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	p := base.Clone()
	p.ResetState()

	baseline, err := model.PlanBaseline(p)
	if err != nil {
		return nil, err
	}

	agents := make([]*agent.Agent, 0, p.ResourceCount())
	for _, r := range p.Resources() {
		eff := params.EfficiencyMin + rng.Float64()*(params.EfficiencyMax-params.EfficiencyMin)
		agents = append(agents, agent.New(r, eff, rng))
	}
	if params.ShuffleAgents {
		rng.Shuffle(len(agents), func(i, j int) { agents[i], agents[j] = agents[j], agents[i] })
	}

	m := &Model{
		project:   p,
		agents:    agents,
		params:    params,
		collector: metrics.NewCollector(baseline),
		state:     Running,
	}
	m.collector.Capture(p, agents, 0, 0)
	m.evaluate()
	return m, nil
}

// Step advances the run by one hour.
func (m *Model) Step() (StepReport, error) {
	if m.state != Running {
		return StepReport{}, ErrNotRunning
	}

	var report StepReport
	if k := m.params.ReassignmentFrequency; k > 0 && (m.step+1)%k == 0 {
		report.Released = m.reassign()
	}

	for _, a := range m.agents {
		completed, cost, err := a.Step(m.project, m.params.ErrorMargin)
		if err != nil {
			return report, fmt.Errorf("step %d: %w", m.step+1, err)
		}
		report.Cost += cost
		if completed {
			report.Completed = append(report.Completed, a.LastTask().ID)
		}
	}

	m.step++
	report.Step = m.step
	m.collector.Capture(m.project, m.agents, m.step, report.Cost)
	m.evaluate()
	return report, nil
}

// reassign releases every agent's task back to the project and returns the
// released task IDs.
func (m *Model) reassign() []int {
	var released []int
	for _, a := range m.agents {
		if t := a.Release(); t != nil {
			released = append(released, t.ID)
		}
	}
	return released
}

// Run steps the model until it completes. The context is only checked
// between steps.
func (m *Model) Run(ctx context.Context) (Termination, error) {
	for m.state == Running {
		if err := ctx.Err(); err != nil {
			return NotTerminated, err
		}
		if _, err := m.Step(); err != nil {
			return NotTerminated, err
		}
	}
	return m.termination, nil
}

// evaluate applies the terminal conditions, in priority order.
func (m *Model) evaluate() {
	switch {
	case m.project.AllDone():
		m.termination = Finished
	case m.deadlocked():
		m.termination = Deadlocked
	case m.step >= m.params.MaxSteps:
		m.termination = Truncated
	default:
		return
	}
	m.state = Completed
}

// deadlocked reports whether no agent holds a task and none could claim one.
// Eligibility is checked per agent against its own resource.
func (m *Model) deadlocked() bool {
	for _, a := range m.agents {
		if a.Busy() {
			return false
		}
	}
	for _, a := range m.agents {
		if m.project.FindNextEligibleTask(a.Ref()) != nil {
			return false
		}
	}
	return true
}

// State returns the lifecycle state.
func (m *Model) State() State { return m.state }

// Termination returns the terminal cause, or NotTerminated while running.
func (m *Model) Termination() Termination { return m.termination }

// CurrentStep returns the number of steps performed.
func (m *Model) CurrentStep() int { return m.step }

// Project returns the run's own project clone.
func (m *Model) Project() *model.Project { return m.project }

// Agents returns the agents in activation order.
func (m *Model) Agents() []*agent.Agent { return slices.Clone(m.agents) }

// Snapshots returns the metric series recorded so far, starting at step 0.
func (m *Model) Snapshots() []metrics.Snapshot { return m.collector.Snapshots() }
