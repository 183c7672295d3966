package experiment

import "fmt"

// ConfigurationError reports an experiment that cannot start. It is fatal
// and raised before any run begins.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid experiment configuration: %s: %s", e.Field, e.Reason)
}

// RunError reports a single run that failed during construction or stepping.
// The run is abandoned and the batch continues.
type RunError struct {
	RunID int
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %d failed: %v", e.RunID, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
