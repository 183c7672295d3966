// Package report turns an experiment result into its outputs: the
// concatenated per-step time series as CSV, and a human-readable summary of
// the batch for the terminal.
package report
