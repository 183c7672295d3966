package simulation

// State is the lifecycle state of a Model.
type State int

const (
	Running State = iota
	Completed
)

func (s State) String() string {
	if s == Completed {
		return "completed"
	}
	return "running"
}

// Termination is the cause a completed run stopped for.
type Termination int

const (
	// NotTerminated is reported while the model is still running.
	NotTerminated Termination = iota
	// Finished means every task is done.
	Finished
	// Deadlocked means work remains, every agent is idle, and no agent can
	// claim any remaining task.
	Deadlocked
	// Truncated means the step limit was reached first.
	Truncated
)

// String returns the lowercase name used in reports.
func (t Termination) String() string {
	switch t {
	case Finished:
		return "finished"
	case Deadlocked:
		return "deadlocked"
	case Truncated:
		return "truncated"
	default:
		return "running"
	}
}

// Terminations lists the terminal causes in report order.
var Terminations = []Termination{Finished, Deadlocked, Truncated}
