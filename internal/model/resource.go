// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Resource and ResourceRef, the explicit optional
// reference used wherever a task or a query may or may not name a resource.
package model

import "fmt"

// Resource is a person or piece of equipment that executes tasks.
type Resource struct {
	ID          int
	Name        string
	CostPerHour float64
}

// NewResource creates a resource. Negative rates are clamped to zero.
func NewResource(id int, name string, costPerHour float64) *Resource {
	return &Resource{
		ID:          id,
		Name:        name,
		CostPerHour: max(0, costPerHour),
	}
}

// String returns a short human-readable description.
func (r *Resource) String() string {
	return fmt.Sprintf("Resource(id=%d, name=%q, cost/h=%.2f)", r.ID, r.Name, r.CostPerHour)
}

// ResourceRef optionally names a resource. The zero value names none.
type ResourceRef struct {
	ID    int
	Valid bool
}

// AnyResource is the absent reference: no resource restriction.
var AnyResource = ResourceRef{}

// RefTo returns a reference to the resource with the given ID.
func RefTo(id int) ResourceRef {
	return ResourceRef{ID: id, Valid: true}
}

// Allows reports whether a task restricted by r may be executed by the
// resource with the given ID.
func (r ResourceRef) Allows(resourceID int) bool {
	return !r.Valid || r.ID == resourceID
}

// String renders the reference, "-" when absent.
func (r ResourceRef) String() string {
	if !r.Valid {
		return "-"
	}
	return fmt.Sprintf("%d", r.ID)
}
