// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file computes the planned baseline used for planned value and the
// schedule performance index.
package model

import "fmt"

// Baseline is the resource-unconstrained early-start schedule of a project:
// every task starts as soon as its predecessors finish and runs for exactly
// its planned duration. Times are in hours from project start.
type Baseline struct {
	Start  map[int]float64
	Finish map[int]float64
	// PlannedFinish is the finish time of the last task (the critical path length).
	PlannedFinish float64

	costs map[int]float64
	order []int
}

// PlanBaseline computes the early-start schedule of p.
func PlanBaseline(p *Project) (*Baseline, error) {
	g, err := p.Graph()
	if err != nil {
		return nil, err
	}
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}

	b := &Baseline{
		Start:  make(map[int]float64, len(order)),
		Finish: make(map[int]float64, len(order)),
		costs:  make(map[int]float64, len(order)),
		order:  order,
	}
	for _, id := range order {
		t := p.tasks[id]
		start := 0.0
		for _, depID := range t.Dependencies {
			start = max(start, b.Finish[depID])
		}
		b.Start[id] = start
		b.Finish[id] = start + t.PlannedDuration
		b.costs[id] = t.PlannedCost
		b.PlannedFinish = max(b.PlannedFinish, b.Finish[id])
	}
	return b, nil
}

// PlannedValue returns the budgeted cost of the work scheduled to be done by
// time t. A task contributes linearly between its start and finish; a
// milestone contributes fully once t reaches its start.
func (b *Baseline) PlannedValue(t float64) float64 {
	if b == nil {
		return 0
	}
	pv := 0.0
	for _, id := range b.order {
		start, finish := b.Start[id], b.Finish[id]
		var fraction float64
		switch {
		case t >= finish:
			fraction = 1
		case t <= start:
			fraction = 0
		default:
			fraction = (t - start) / (finish - start)
		}
		pv += b.costs[id] * fraction
	}
	return pv
}
