// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Task record and its state machine:
//
//	todo --Claim--> in_progress --Work/Complete--> done
//	in_progress --Release--> todo
package model

import (
	"fmt"
	"slices"
	"strings"
)

// Status is the execution status of a task.
type Status int

const (
	// StatusTodo indicates the task has not been started, or was released.
	StatusTodo Status = iota
	// StatusInProgress indicates a resource is currently working on the task.
	StatusInProgress
	// StatusDone indicates the task is complete.
	StatusDone
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "todo"
	case StatusInProgress:
		return "in_progress"
	case StatusDone:
		return "done"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Task is a single unit of planned work.
type Task struct {
	ID   int
	Name string
	// PlannedDuration is the planned effort in hours. Zero marks a milestone.
	PlannedDuration float64
	// PlannedCost is the budgeted cost of the whole task.
	PlannedCost float64
	// Dependencies are the IDs of finish-to-start predecessors.
	Dependencies []int
	// RequiredResource restricts execution to one resource when set.
	RequiredResource ResourceRef

	// --- Dynamic state, mutated only through methods ---

	status         Status
	progress       float64
	actualDuration float64
	assigned       *Resource
}

// NewTask creates a task in its initial state. Negative durations and costs
// are clamped to zero and duplicate dependency IDs are dropped.
func NewTask(id int, name string, duration, cost float64, deps ...int) *Task {
	t := &Task{
		ID:              id,
		Name:            name,
		PlannedDuration: max(0, duration),
		PlannedCost:     max(0, cost),
	}
	for _, dep := range deps {
		if !slices.Contains(t.Dependencies, dep) {
			t.Dependencies = append(t.Dependencies, dep)
		}
	}
	return t
}

// WithRequiredResource restricts the task to a single resource and returns it.
func (t *Task) WithRequiredResource(resourceID int) *Task {
	t.RequiredResource = RefTo(resourceID)
	return t
}

// Status returns the current status.
func (t *Task) Status() Status { return t.status }

// Progress returns the completed fraction in [0, 1].
func (t *Task) Progress() float64 { return t.progress }

// ActualDuration returns the simulated hours spent on the task so far.
func (t *Task) ActualDuration() float64 { return t.actualDuration }

// AssignedResource returns the resource currently working on the task, or nil.
func (t *Task) AssignedResource() *Resource { return t.assigned }

// IsMilestone reports whether the task has no planned duration.
func (t *Task) IsMilestone() bool { return t.PlannedDuration <= 0 }

// IsDone reports whether the task is complete.
func (t *Task) IsDone() bool { return t.status == StatusDone }

// Claim assigns the task to a resource, moving it to InProgress. Only an
// unassigned todo task may be claimed.
func (t *Task) Claim(r *Resource) error {
	if r == nil {
		return fmt.Errorf("%w: claim task %d with nil resource", ErrInvalidTransition, t.ID)
	}
	if t.status != StatusTodo || t.assigned != nil {
		return fmt.Errorf("%w: task %d is %s", ErrInvalidTransition, t.ID, t.status)
	}
	if !t.RequiredResource.Allows(r.ID) {
		return fmt.Errorf("%w: task %d requires resource %d, not %d", ErrInvalidTransition, t.ID, t.RequiredResource.ID, r.ID)
	}
	t.status = StatusInProgress
	t.assigned = r
	return nil
}

// Release returns an in-progress task to todo and clears its assignment.
// Progress made so far is kept. Releasing a task that is not in progress
// does nothing.
func (t *Task) Release() {
	if t.status != StatusInProgress {
		return
	}
	t.status = StatusTodo
	t.assigned = nil
}

// Work records one simulated hour of effort that advanced progress by
// increment. Negative increments are treated as zero so progress never
// regresses. It returns true if this call completed the task, in which case
// the assignment is cleared.
func (t *Task) Work(increment float64) bool {
	if t.status == StatusDone {
		return false
	}
	t.progress = min(1, t.progress+max(0, increment))
	t.actualDuration++
	return t.completeIfFinished()
}

// Complete finishes the task instantly without recording effort. It is used
// for milestones. It returns true if the task was not already done.
func (t *Task) Complete() bool {
	if t.status == StatusDone {
		return false
	}
	t.progress = 1
	return t.completeIfFinished()
}

// completionTolerance absorbs the rounding error of summing 1/duration
// increments, e.g. ten additions of 0.1 give 0.9999999999999999.
const completionTolerance = 1e-9

func (t *Task) completeIfFinished() bool {
	if t.progress < 1-completionTolerance {
		return false
	}
	t.progress = 1
	t.status = StatusDone
	t.assigned = nil
	return true
}

// Reset restores the initial state: todo, no progress, no actual duration
// and no assignment.
func (t *Task) Reset() {
	t.status = StatusTodo
	t.progress = 0
	t.actualDuration = 0
	t.assigned = nil
}

// String returns a short human-readable description.
func (t *Task) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task(id=%d, %q, dur=%.1fh, cost=%.2f, status=%s, prog=%.0f%%, real_dur=%.1fh",
		t.ID, t.Name, t.PlannedDuration, t.PlannedCost, t.status, t.progress*100, t.actualDuration)
	if t.RequiredResource.Valid {
		fmt.Fprintf(&b, " req_res=%d", t.RequiredResource.ID)
	}
	if t.assigned != nil {
		fmt.Fprintf(&b, " assigned=%d", t.assigned.ID)
	}
	if len(t.Dependencies) > 0 {
		fmt.Fprintf(&b, " deps=%v", t.Dependencies)
	}
	b.WriteString(")")
	return b.String()
}
