// Package simulation drives a single run of a project plan in fixed one-hour
// steps.
//
// A Model owns its own clone of the baseline project and one agent per
// resource. Each call to Step performs, in this order: the optional
// reassignment disruption, sequential agent activation, the step counter
// advance, metric capture and the terminal check. A run ends Finished (all
// tasks done), Deadlocked (work remains but no agent can ever take it) or
// Truncated (max steps reached).
//
// The step loop performs no I/O and no logging.
package simulation
