// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Project aggregate. It owns every task and resource of
// a plan, keyed by ID, and remembers the order in which they were added. That
// order is the tie-breaker for every query, which keeps simulations that use
// the same seed reproducible.
package model

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/evmsim/internal/dag"
)

// Project owns the task/resource graph of a plan.
type Project struct {
	Name string

	tasks         map[int]*Task
	taskOrder     []int
	resources     map[int]*Resource
	resourceOrder []int
	baselineCost  float64
}

// NewProject creates an empty project.
func NewProject(name string) *Project {
	return &Project{
		Name:      name,
		tasks:     make(map[int]*Task),
		resources: make(map[int]*Resource),
	}
}

// AddTask inserts a task, replacing any task with the same ID (last write
// wins; the original insertion position is kept). The baseline cost is
// recomputed.
func (p *Project) AddTask(t *Task) error {
	if t == nil {
		return fmt.Errorf("%w: task must not be nil", ErrInvalidEntity)
	}
	if _, exists := p.tasks[t.ID]; !exists {
		p.taskOrder = append(p.taskOrder, t.ID)
	}
	p.tasks[t.ID] = t
	p.recalculateBaseline()
	return nil
}

// AddResource inserts a resource, replacing any resource with the same ID.
func (p *Project) AddResource(r *Resource) error {
	if r == nil {
		return fmt.Errorf("%w: resource must not be nil", ErrInvalidEntity)
	}
	if _, exists := p.resources[r.ID]; !exists {
		p.resourceOrder = append(p.resourceOrder, r.ID)
	}
	p.resources[r.ID] = r
	return nil
}

// OverrideCost sets the hourly cost of an existing resource. It is meant for
// experiment setup, before any run starts.
func (p *Project) OverrideCost(resourceID int, costPerHour float64) error {
	r, ok := p.resources[resourceID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownResource, resourceID)
	}
	r.CostPerHour = max(0, costPerHour)
	return nil
}

// Task returns the task with the given ID.
func (p *Project) Task(id int) (*Task, bool) {
	t, ok := p.tasks[id]
	return t, ok
}

// Resource returns the resource with the given ID.
func (p *Project) Resource(id int) (*Resource, bool) {
	r, ok := p.resources[id]
	return r, ok
}

// Tasks returns all tasks in insertion order.
func (p *Project) Tasks() []*Task {
	out := make([]*Task, 0, len(p.taskOrder))
	for _, id := range p.taskOrder {
		out = append(out, p.tasks[id])
	}
	return out
}

// Resources returns all resources in insertion order.
func (p *Project) Resources() []*Resource {
	out := make([]*Resource, 0, len(p.resourceOrder))
	for _, id := range p.resourceOrder {
		out = append(out, p.resources[id])
	}
	return out
}

// TaskCount returns the number of tasks.
func (p *Project) TaskCount() int { return len(p.taskOrder) }

// ResourceCount returns the number of resources.
func (p *Project) ResourceCount() int { return len(p.resourceOrder) }

// BaselineCost is the sum of the planned cost of all tasks.
func (p *Project) BaselineCost() float64 { return p.baselineCost }

func (p *Project) recalculateBaseline() {
	total := 0.0
	for _, t := range p.tasks {
		total += t.PlannedCost
	}
	p.baselineCost = total
}

// DependenciesDone reports whether every predecessor of t is done. A
// dependency on an unknown task is never satisfied.
func (p *Project) DependenciesDone(t *Task) bool {
	for _, depID := range t.Dependencies {
		dep, ok := p.tasks[depID]
		if !ok || !dep.IsDone() {
			return false
		}
	}
	return true
}

// IsEligible reports whether t can be claimed by the referenced resource:
// it is todo, unassigned, all of its dependencies are done, and its resource
// restriction (if any) matches. With AnyResource the restriction is ignored.
func (p *Project) IsEligible(t *Task, resource ResourceRef) bool {
	if t.status != StatusTodo || t.assigned != nil {
		return false
	}
	if resource.Valid && !t.RequiredResource.Allows(resource.ID) {
		return false
	}
	return p.DependenciesDone(t)
}

// FindNextEligibleTask returns the first task, in insertion order, that the
// referenced resource could claim right now, or nil if none. It never blocks.
func (p *Project) FindNextEligibleTask(resource ResourceRef) *Task {
	for _, id := range p.taskOrder {
		if t := p.tasks[id]; p.IsEligible(t, resource) {
			return t
		}
	}
	return nil
}

// AllDone reports whether every task is done. A project without tasks is
// considered done.
func (p *Project) AllDone() bool {
	for _, t := range p.tasks {
		if !t.IsDone() {
			return false
		}
	}
	return true
}

// DoneCount returns the number of completed tasks.
func (p *Project) DoneCount() int {
	n := 0
	for _, t := range p.tasks {
		if t.IsDone() {
			n++
		}
	}
	return n
}

// ResetState reverts every task to its initial state. Resources are not touched.
func (p *Project) ResetState() {
	for _, t := range p.tasks {
		t.Reset()
	}
}

// Graph builds the dependency DAG of the project. Edges to unknown tasks are
// reported as ErrInvalidPlan.
func (p *Project) Graph() (*dag.Graph, error) {
	g := dag.New()
	for _, id := range p.taskOrder {
		g.AddNode(id)
	}
	for _, id := range p.taskOrder {
		t := p.tasks[id]
		for _, depID := range t.Dependencies {
			if !g.Has(depID) {
				return nil, fmt.Errorf("%w: task %d depends on unknown task %d", ErrInvalidPlan, id, depID)
			}
			if err := g.AddEdge(depID, id); err != nil {
				return nil, fmt.Errorf("%w: task %d: %w", ErrInvalidPlan, id, err)
			}
		}
	}
	return g, nil
}

// Validate checks that every dependency points to a known task and that the
// dependency graph is acyclic.
func (p *Project) Validate() error {
	g, err := p.Graph()
	if err != nil {
		return err
	}
	if err := g.DetectCycles(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	return nil
}

// String returns a short human-readable description.
func (p *Project) String() string {
	return fmt.Sprintf("Project(name=%q, tasks=%d, resources=%d, baseline_cost=%.2f)",
		p.Name, len(p.tasks), len(p.resources), p.baselineCost)
}

// TaskIDs returns the task IDs in insertion order.
func (p *Project) TaskIDs() []int {
	return slices.Clone(p.taskOrder)
}
