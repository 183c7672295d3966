package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProjectLoader is the interface for a format-specific project loader.
type ProjectLoader interface {
	// LoadProject reads a project plan from the given path and translates it
	// into the format-agnostic model. Failures are reported as *LoadError.
	LoadProject(ctx context.Context, path string) (*ProjectDef, error)
}

// ExperimentLoader is the interface for a format-specific experiment loader.
type ExperimentLoader interface {
	// LoadExperiment reads an experiment definition. Values that the file
	// does not set keep the defaults of DefaultExperiment.
	LoadExperiment(ctx context.Context, path string) (*Experiment, error)
}

// Registry maps file extensions to project loaders.
type Registry struct {
	loaders map[string]ProjectLoader
	// dirLoader handles directory inputs.
	dirLoader ProjectLoader
}

// NewRegistry creates an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]ProjectLoader)}
}

// Register associates a loader with one or more file extensions (".hcl").
func (r *Registry) Register(loader ProjectLoader, extensions ...string) {
	for _, ext := range extensions {
		r.loaders[strings.ToLower(ext)] = loader
	}
}

// RegisterDirectory sets the loader used when the input path is a directory.
func (r *Registry) RegisterDirectory(loader ProjectLoader) {
	r.dirLoader = loader
}

// For returns the loader responsible for the given path.
func (r *Registry) For(path string) (ProjectLoader, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFound(path, nil)
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	if info.IsDir() {
		if r.dirLoader == nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: directories are not supported", ErrUnsupportedFormat)}
		}
		return r.dirLoader, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := r.loaders[ext]
	if !ok {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)}
	}
	return loader, nil
}

// LoadProject dispatches to the loader registered for the path.
func (r *Registry) LoadProject(ctx context.Context, path string) (*ProjectDef, error) {
	loader, err := r.For(path)
	if err != nil {
		return nil, err
	}
	return loader.LoadProject(ctx, path)
}
