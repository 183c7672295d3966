// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the in-memory representation of a project plan under
// simulation. Its core purpose is to hold the task/resource graph, enforce the
// task state machine, and answer the eligibility questions that agents ask on
// every step.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Task: A unit of planned work with a duration, a budgeted cost and a set of
//     finish-to-start predecessors. Its dynamic state (status, progress, actual
//     duration, assignment) can only change through its methods, which keep
//     the invariants: progress never decreases until Reset, status is Done
//     exactly when progress has reached 1, and an assigned task is always
//     InProgress.
//
//   - Resource: Who executes work, and at what hourly rate. Resources are
//     immutable during a run.
//
//   - Project: The aggregate that owns tasks and resources keyed by ID, in
//     stable insertion order. It is built once from a loaded configuration and
//     then cloned for every simulation run, so no Task is ever shared between
//     two runs.
//
//   - Baseline: The resource-unconstrained early-start schedule of a project,
//     used to compute planned value for schedule performance.
package model
