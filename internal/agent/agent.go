package agent

import (
	"fmt"
	"math/rand/v2"

	"github.com/specialistvlad/evmsim/internal/model"
)

// Agent executes tasks on behalf of a single resource.
type Agent struct {
	resource   *model.Resource
	efficiency float64
	current    *model.Task
	last       *model.Task
	completed  int
	rng        *rand.Rand
}

// New creates an idle agent for res. The efficiency factor is fixed for the
// lifetime of the agent; rng is the run's random stream and is used for the
// per-step noise.
func New(res *model.Resource, efficiency float64, rng *rand.Rand) *Agent {
	return &Agent{
		resource:   res,
		efficiency: efficiency,
		rng:        rng,
	}
}

// Resource returns the resource this agent works for.
func (a *Agent) Resource() *model.Resource { return a.resource }

// Efficiency returns the sampled efficiency factor.
func (a *Agent) Efficiency() float64 { return a.efficiency }

// CurrentTask returns the task being worked on, or nil when idle.
func (a *Agent) CurrentTask() *model.Task { return a.current }

// LastTask returns the task worked on during the most recent Step, or nil if
// the agent stayed idle. It stays set after the task completes.
func (a *Agent) LastTask() *model.Task { return a.last }

// Busy reports whether the agent holds a task.
func (a *Agent) Busy() bool { return a.current != nil }

// Completed returns how many tasks this agent has finished.
func (a *Agent) Completed() int { return a.completed }

// Ref returns the reference used to scope eligibility queries to this
// agent's resource.
func (a *Agent) Ref() model.ResourceRef { return model.RefTo(a.resource.ID) }

// Step runs one activation of the agent against p. An idle agent first claims
// the first eligible task scoped to its resource; a busy agent (including one
// that just claimed) then performs one hour of work on it.
//
// It returns whether a task was completed during this activation and the
// cost incurred. Cost is only reported here so callers never recompute it.
func (a *Agent) Step(p *model.Project, errorMargin float64) (completed bool, cost float64, err error) {
	a.last = nil
	if a.current == nil {
		next := p.FindNextEligibleTask(a.Ref())
		if next == nil {
			return false, 0, nil
		}
		if err := next.Claim(a.resource); err != nil {
			return false, 0, fmt.Errorf("agent %d: %w", a.resource.ID, err)
		}
		a.current = next
	}

	t := a.current
	a.last = t
	if t.IsMilestone() {
		t.Complete()
		a.finish()
		return true, 0, nil
	}

	cost = a.resource.CostPerHour
	if t.Work(a.increment(t, errorMargin)) {
		a.finish()
		return true, cost, nil
	}
	return false, cost, nil
}

// increment computes the progress made in one hour:
// (1 / max(1, duration)) * efficiency * (1 + U(-margin, margin)).
func (a *Agent) increment(t *model.Task, errorMargin float64) float64 {
	noise := 1.0
	if errorMargin > 0 {
		noise += errorMargin * (2*a.rng.Float64() - 1)
	}
	return max(0, (1/max(1, t.PlannedDuration))*a.efficiency*noise)
}

func (a *Agent) finish() {
	a.completed++
	a.current = nil
}

// Release hands the current task back to the project as todo, keeping its
// progress, and leaves the agent idle. It returns the released task, or nil
// if the agent was idle.
func (a *Agent) Release() *model.Task {
	t := a.current
	if t == nil {
		return nil
	}
	t.Release()
	a.current = nil
	return t
}

// String returns a short human-readable description.
func (a *Agent) String() string {
	current := "-"
	if a.current != nil {
		current = fmt.Sprintf("%d", a.current.ID)
	}
	return fmt.Sprintf("Agent(resource=%d, eff=%.2f, task=%s, completed=%d)",
		a.resource.ID, a.efficiency, current, a.completed)
}
