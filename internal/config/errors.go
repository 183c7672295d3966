package config

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an input path does not exist.
	ErrNotFound = errors.New("input not found")
	// ErrMalformed is returned when an input exists but cannot be parsed or
	// describes an invalid project.
	ErrMalformed = errors.New("malformed input")
	// ErrUnsupportedFormat is returned when no loader is registered for a path.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// LoadError ties a load failure to the path that caused it. Err wraps one of
// the sentinel errors of this package.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface for LoadError.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Unwrap allows errors.Is to match the sentinel errors.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NotFound builds a LoadError for a missing path.
func NotFound(path string, cause error) error {
	if cause == nil {
		return &LoadError{Path: path, Err: ErrNotFound}
	}
	return &LoadError{Path: path, Err: fmt.Errorf("%w: %w", ErrNotFound, cause)}
}

// Malformed builds a LoadError for an unparseable or invalid input.
func Malformed(path string, format string, args ...any) error {
	return &LoadError{Path: path, Err: fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))}
}
