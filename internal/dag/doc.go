// Package dag holds the dependency structure of a project plan as a directed
// acyclic graph keyed by task id. It is used to validate loaded plans (every
// edge must point at a known task, and no cycles may exist) and to produce the
// topological order that the baseline schedule is computed from.
//
// Iteration order is always the node insertion order, so every result the
// package produces is deterministic for a given input.
package dag
