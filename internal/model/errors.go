// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the sentinel errors of the model package.
package model

import "errors"

var (
	// ErrInvalidEntity is returned when a nil task or resource is added.
	ErrInvalidEntity = errors.New("invalid entity")
	// ErrUnknownResource is returned when an operation names a resource the
	// project does not have.
	ErrUnknownResource = errors.New("unknown resource")
	// ErrInvalidPlan is returned when the dependency graph is not a valid DAG
	// over the project's tasks.
	ErrInvalidPlan = errors.New("invalid project plan")
	// ErrInvalidTransition is returned when a task state change is not allowed.
	ErrInvalidTransition = errors.New("invalid task state transition")
)
