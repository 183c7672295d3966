// Package agent implements the per-resource execution policy of a simulation
// run. An Agent wraps one Resource, holds at most one task at a time, and on
// each activation either claims the next eligible task or performs one
// simulated hour of stochastic work on the task it already holds.
//
// Agents are created at the start of a run and discarded at its end. They
// are not safe for concurrent use; a run activates its agents sequentially.
package agent
