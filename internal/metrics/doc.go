// Package metrics computes earned-value management figures for a running
// simulation. A Collector is fed once per step and keeps the cumulative
// actual cost together with an ordered series of Snapshots, starting with
// the step-0 baseline captured before any agent is activated.
package metrics
