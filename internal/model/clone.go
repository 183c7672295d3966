// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements per-run isolation. Each Monte Carlo run works on its
// own copy of the baseline project.
package model

import "slices"

// Clone returns a deep copy of the project. Tasks and resources are copied
// and every reference between them (dependencies, assignment) is rebuilt by
// ID lookup in the copy, so the clone shares no mutable object with p.
func (p *Project) Clone() *Project {
	c := NewProject(p.Name)

	for _, id := range p.resourceOrder {
		r := *p.resources[id]
		c.resources[id] = &r
	}
	c.resourceOrder = slices.Clone(p.resourceOrder)

	for _, id := range p.taskOrder {
		src := p.tasks[id]
		t := *src
		t.Dependencies = slices.Clone(src.Dependencies)
		t.assigned = nil
		if src.assigned != nil {
			t.assigned = c.resources[src.assigned.ID]
		}
		c.tasks[id] = &t
	}
	c.taskOrder = slices.Clone(p.taskOrder)
	c.baselineCost = p.baselineCost
	return c
}
