package experiment

import (
	"github.com/specialistvlad/evmsim/internal/metrics"
	"github.com/specialistvlad/evmsim/internal/simulation"
)

// RunResult is the outcome of one successful run.
type RunResult struct {
	RunID       int
	Termination simulation.Termination
	Steps       int
	Snapshots   []metrics.Snapshot
}

// Final returns the last snapshot of the run.
func (r RunResult) Final() metrics.Snapshot {
	if len(r.Snapshots) == 0 {
		return metrics.Snapshot{}
	}
	return r.Snapshots[len(r.Snapshots)-1]
}

// Row is one line of the concatenated time series.
type Row struct {
	RunID int
	metrics.Snapshot
}

// Result is the outcome of a batch.
type Result struct {
	// Requested is the number of runs the batch was asked for.
	Requested int
	// PlannedFinish is the finish time of the unconstrained baseline schedule.
	PlannedFinish float64
	// Runs holds the successful runs, ordered by run ID.
	Runs []RunResult
	// Failures holds the skipped runs, ordered by run ID.
	Failures []*RunError
}

// Successful returns the number of runs that completed.
func (r *Result) Successful() int { return len(r.Runs) }

// Empty reports whether no run succeeded.
func (r *Result) Empty() bool { return len(r.Runs) == 0 }

// LastSuccessful returns the successful run with the highest run ID.
func (r *Result) LastSuccessful() (RunResult, bool) {
	if r.Empty() {
		return RunResult{}, false
	}
	return r.Runs[len(r.Runs)-1], true
}

// Rows concatenates the series of every successful run, in run order.
func (r *Result) Rows() []Row {
	n := 0
	for _, run := range r.Runs {
		n += len(run.Snapshots)
	}
	rows := make([]Row, 0, n)
	for _, run := range r.Runs {
		for _, s := range run.Snapshots {
			rows = append(rows, Row{RunID: run.RunID, Snapshot: s})
		}
	}
	return rows
}
